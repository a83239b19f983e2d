// Package engagement computes double-text counts, consecutive-run records,
// message share, reaction rates, session statistics, and burst-day
// detection (spec §4.5).
package engagement

import (
	"sort"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

// burstMultiplier is how far above the running daily average a day's
// message count must land to count as a burst.
const burstMultiplier = 3.0

// Person holds the §4.5 engagement facets for one participant.
type Person struct {
	DoubleTexts       int
	MaxConsecutiveRun int
	MessageRatio      float64
	ReactionsGivenPer1000    float64
	ReactionsReceivedPer1000 float64
}

// BurstSpan is one or more consecutive burst days merged together.
type BurstSpan struct {
	StartDay string
	EndDay   string
	Count    int
}

// Result is the §4.5 output.
type Result struct {
	PerPerson        *chatmodel.OrderedMap[Person]
	SessionCount     int
	MeanPerSession    float64
	Bursts           []BurstSpan
}

// Compute derives engagement metrics for conv.
func Compute(conv *chatmodel.ParsedConversation, volumePerPerson map[string]int, reactionsGiven map[string]int, reactionsReceived map[string]int) Result {
	messages := conv.NonSystemMessages()
	total := len(messages)

	doubleTexts := map[string]int{}
	maxRun := map[string]int{}
	curRun := map[string]int{}
	var prevSender string

	for i, m := range messages {
		if i > 0 && textproc.IsDoubleText(messages, i) {
			doubleTexts[m.Sender]++
		}
		if m.Sender == prevSender {
			curRun[m.Sender]++
		} else {
			curRun[m.Sender] = 1
		}
		if curRun[m.Sender] > maxRun[m.Sender] {
			maxRun[m.Sender] = curRun[m.Sender]
		}
		prevSender = m.Sender
	}

	order := make([]string, 0, len(volumePerPerson))
	for name := range volumePerPerson {
		order = append(order, name)
	}
	sort.Strings(order)

	perPerson := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		count := volumePerPerson[name]
		p := Person{
			DoubleTexts:       doubleTexts[name],
			MaxConsecutiveRun: maxRun[name],
		}
		if total > 0 {
			p.MessageRatio = float64(count) / float64(total)
		}
		if count > 0 {
			p.ReactionsGivenPer1000 = float64(reactionsGiven[name]) / float64(count) * 1000
			p.ReactionsReceivedPer1000 = float64(reactionsReceived[name]) / float64(count) * 1000
		}
		perPerson.Set(name, p)
	}

	sessions := textproc.Segment(messages, textproc.DefaultSessionGapMillis)
	meanPerSession := 0.0
	if len(sessions) > 0 {
		meanPerSession = float64(len(messages)) / float64(len(sessions))
	}

	return Result{
		PerPerson:      perPerson,
		SessionCount:   len(sessions),
		MeanPerSession: meanPerSession,
		Bursts:         detectBursts(messages),
	}
}

func detectBursts(messages []chatmodel.UnifiedMessage) []BurstSpan {
	if len(messages) == 0 {
		return nil
	}

	dailyCounts := map[string]int{}
	var dayOrder []string
	seen := map[string]bool{}
	for _, m := range messages {
		day := textproc.DayKey(m.Time())
		if !seen[day] {
			seen[day] = true
			dayOrder = append(dayOrder, day)
		}
		dailyCounts[day]++
	}
	sort.Strings(dayOrder)

	var spans []BurstSpan
	var runningTotal float64
	var cur *BurstSpan

	for i, day := range dayOrder {
		count := dailyCounts[day]
		isBurst := false
		if i > 0 {
			runningAvg := runningTotal / float64(i)
			if runningAvg > 0 && float64(count) > burstMultiplier*runningAvg {
				isBurst = true
			}
		}

		if isBurst {
			if cur == nil {
				cur = &BurstSpan{StartDay: day, EndDay: day, Count: count}
			} else {
				cur.EndDay = day
				cur.Count += count
			}
		} else if cur != nil {
			spans = append(spans, *cur)
			cur = nil
		}

		runningTotal += float64(count)
	}
	if cur != nil {
		spans = append(spans, *cur)
	}
	return spans
}
