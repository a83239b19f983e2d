// Package conflict runs three detectors over the chronological message
// stream: escalation spikes, cold silences, and their resolutions (spec
// §4.11).
package conflict

import (
	"sort"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	rollingWindow          = 10
	minRollingSamples      = 5
	spikeRatio             = 2.0
	escalationWindowMillis = 15 * 60 * 1000
	escalationCooldown     = 4 * 60 * 60 * 1000
	coldSilenceGapMillis   = 24 * 60 * 60 * 1000
	coldSilenceCooldown    = 12 * 60 * 60 * 1000
	precedingHourMillis    = 60 * 60 * 1000
	minPrecedingMessages   = 8
	backAndForthLookback   = 5
	resolutionWindow       = 5
	hourMillis             = 60 * 60 * 1000
)

// Kind identifies the type of a conflict event.
type Kind string

const (
	KindEscalation   Kind = "escalation"
	KindColdSilence  Kind = "cold_silence"
	KindResolution   Kind = "resolution"
)

// Event is one chronologically-ordered conflict signal.
type Event struct {
	Kind      Kind
	Timestamp int64
	Severity  int
	Senders   []string
}

// Result is the §4.11 output.
type Result struct {
	Events            []Event
	TotalConflicts    int
	MostConflictProne string
}

type spike struct {
	ts     int64
	sender string
}

type coldSilence struct {
	startIdx int
	endIdx   int
	ts       int64
	severity int
	senders  []string
}

// Compute runs all three detectors and merges their output chronologically.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) == 0 {
		return Result{}, false
	}

	spikes := detectSpikes(messages)
	escalations := confirmEscalations(spikes)
	coldSilences := detectColdSilences(messages)
	resolutions := detectResolutions(messages, coldSilences)

	var events []Event
	tally := map[string]int{}

	for _, e := range escalations {
		events = append(events, e)
		for _, s := range e.Senders {
			tally[s] += 2
		}
	}
	for _, cs := range coldSilences {
		events = append(events, Event{Kind: KindColdSilence, Timestamp: cs.ts, Severity: cs.severity, Senders: cs.senders})
		for _, s := range cs.senders {
			tally[s]++
		}
	}
	events = append(events, resolutions...)

	sort.SliceStable(events, func(i, j int) bool { return events[i].Timestamp < events[j].Timestamp })

	total := len(escalations) + len(coldSilences)
	return Result{
		Events:            events,
		TotalConflicts:    total,
		MostConflictProne: proneName(tally),
	}, true
}

func detectSpikes(messages []chatmodel.UnifiedMessage) []spike {
	rolling := map[string][]int{}
	var spikes []spike

	for i, m := range messages {
		wc := len(textproc.Tokenize(m.Content))
		if wc == 0 {
			continue
		}
		hist := rolling[m.Sender]
		if len(hist) >= minRollingSamples {
			avg := mean(hist)
			prevDifferent := i > 0 && messages[i-1].Sender != m.Sender
			if avg > 0 && float64(wc) > spikeRatio*avg && prevDifferent {
				spikes = append(spikes, spike{ts: m.Timestamp, sender: m.Sender})
			}
		}
		hist = append(hist, wc)
		if len(hist) > rollingWindow {
			hist = hist[1:]
		}
		rolling[m.Sender] = hist
	}
	return spikes
}

func confirmEscalations(spikes []spike) []Event {
	var events []Event
	var lastTS int64
	hasLast := false

	i := 0
	for i < len(spikes) {
		j := i
		senders := map[string]bool{}
		for j < len(spikes) && spikes[j].ts-spikes[i].ts <= escalationWindowMillis {
			senders[spikes[j].sender] = true
			j++
		}
		count := j - i
		if len(senders) >= 2 {
			ts := spikes[i].ts
			if !hasLast || ts-lastTS >= escalationCooldown {
				sev := 2
				if count >= 3 {
					sev = 3
				}
				events = append(events, Event{Kind: KindEscalation, Timestamp: ts, Severity: sev, Senders: sortedKeys(senders)})
				lastTS = ts
				hasLast = true
			}
		}
		i = j
	}
	return events
}

func detectColdSilences(messages []chatmodel.UnifiedMessage) []coldSilence {
	var out []coldSilence
	var lastTS int64
	hasLast := false

	for i := 1; i < len(messages); i++ {
		gap := messages[i].Timestamp - messages[i-1].Timestamp
		if gap < coldSilenceGapMillis {
			continue
		}

		precedingStart := messages[i-1].Timestamp - precedingHourMillis
		precedingCount := 0
		precedingSenders := map[string]bool{}
		for k := i - 1; k >= 0 && messages[k].Timestamp >= precedingStart; k-- {
			precedingCount++
			precedingSenders[messages[k].Sender] = true
		}
		if precedingCount < minPrecedingMessages || len(precedingSenders) < 2 {
			continue
		}

		lookbackStart := i - backAndForthLookback
		if lookbackStart < 0 {
			lookbackStart = 0
		}
		recentSenders := map[string]bool{}
		for k := lookbackStart; k < i; k++ {
			recentSenders[messages[k].Sender] = true
		}
		if len(recentSenders) < 2 {
			continue
		}

		ts := messages[i-1].Timestamp
		if hasLast && ts-lastTS < coldSilenceCooldown {
			continue
		}

		out = append(out, coldSilence{
			startIdx: i - 1,
			endIdx:   i,
			ts:       ts,
			severity: coldSilenceSeverity(gap),
			senders:  sortedKeys(precedingSenders),
		})
		lastTS = ts
		hasLast = true
	}
	return out
}

func coldSilenceSeverity(gapMillis int64) int {
	hours := gapMillis / hourMillis
	switch {
	case hours >= 72:
		return 3
	case hours >= 48:
		return 2
	default:
		return 1
	}
}

func detectResolutions(messages []chatmodel.UnifiedMessage, silences []coldSilence) []Event {
	var events []Event
	for _, cs := range silences {
		preStart := cs.startIdx - resolutionWindow + 1
		if preStart < 0 {
			preStart = 0
		}
		preMean := meanWordCount(messages[preStart : cs.startIdx+1])

		postEnd := cs.endIdx + resolutionWindow
		if postEnd > len(messages) {
			postEnd = len(messages)
		}
		postMean := meanWordCount(messages[cs.endIdx:postEnd])

		if postMean < preMean {
			events = append(events, Event{
				Kind:      KindResolution,
				Timestamp: messages[cs.endIdx].Timestamp,
				Senders:   []string{messages[cs.endIdx].Sender},
			})
		}
	}
	return events
}

func meanWordCount(messages []chatmodel.UnifiedMessage) float64 {
	if len(messages) == 0 {
		return 0
	}
	total := 0
	for _, m := range messages {
		total += len(textproc.Tokenize(m.Content))
	}
	return float64(total) / float64(len(messages))
}

func mean(xs []int) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum int
	for _, x := range xs {
		sum += x
	}
	return float64(sum) / float64(len(xs))
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func proneName(tally map[string]int) string {
	best := ""
	bestCount := -1
	for _, name := range sortedKeys(boolify(tally)) {
		c := tally[name]
		if c > bestCount {
			best, bestCount = name, c
		}
	}
	return best
}

func boolify(m map[string]int) map[string]bool {
	out := make(map[string]bool, len(m))
	for k := range m {
		out[k] = true
	}
	return out
}
