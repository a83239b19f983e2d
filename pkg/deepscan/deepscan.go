// Package deepscan extracts per-person narrative artifacts — confessions,
// embarrassing quotes, contradictions, topic obsessions, power moves, pet
// names — plus a global list of interesting exchanges (spec §4.18).
package deepscan

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/dlclark/regexp2"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minConfessionWords  = 30
	topConfessions      = 15
	confessionTruncate  = 250
	topQuotes           = 20
	contradictionWindow = 72 * 60 * 60 * 1000
	contradictionTrigger = 8
	maxContradictions   = 8
	bigramFloor         = 5
	unigramFloor        = 15
	topObsessions       = 7
	leftOnReadThreshold = 4 * 60 * 60 * 1000
	apologyCooldown     = 6 * 60 * 60 * 1000
	doubleTextChainMin  = 3
	threadGapMillis     = 30 * 60 * 1000
	minThreadMessages   = 5
	lateNightThreadBoost = 1.5
	topThreads          = 5
	summaryBudget       = 5000
)

// Confession is one of a participant's longest messages (30 or more words),
// selected by word count alone.
type Confession struct {
	Content   string
	Words     int
	Timestamp int64
}

// EmbarrassingQuote is a message scored by length, emotional density, and
// the hour it was sent.
type EmbarrassingQuote struct {
	Content   string
	Score     float64
	Reason    string
	Timestamp int64
}

// Contradiction pairs a strong assertion with what followed it.
type Contradiction struct {
	Assertion string
	Timestamp int64
	Label     string
}

// TopicObsession is a recurring bigram or unigram.
type TopicObsession struct {
	Phrase string
	Count  int
}

// PowerMoves bundles the three power-dynamic signals.
type PowerMoves struct {
	LeftOnReadCount    int
	WorstLeftOnReadGap int64
	ApologiesFirst     int
	LongestDoubleTextChain int
}

// PersonDossier is one participant's full set of deep-scan artifacts.
type PersonDossier struct {
	Confessions       []Confession
	EmbarrassingQuotes []EmbarrassingQuote
	Contradictions    []Contradiction
	TopicObsessions   []TopicObsession
	PowerMoves        PowerMoves
	PetNameHits       int
}

// Thread is a global, cross-participant interesting exchange.
type Thread struct {
	StartTimestamp int64
	EndTimestamp   int64
	MessageCount   int
	Score          float64
}

// Result is the §4.18 output.
type Result struct {
	PerPerson          *chatmodel.OrderedMap[PersonDossier]
	InterestingThreads []Thread
	Summary            string
}

var stemEscape = regexp.MustCompile(`[.*+?^${}()|[\]\\]`)

// Compute extracts every §4.18 artifact from conv.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) == 0 {
		return Result{}, false
	}
	bundle := lexicon.Default()

	assertionRE := boundaryRegex(bundle.StrongAssertions.Words())
	affectionateRE := boundaryRegex(bundle.AffectionatePhrases.Words())
	petNameRE := boundaryRegex(bundle.PetNames.Words())

	byPerson := map[string][]int{} // sender -> message indices
	var order []string
	for i, m := range messages {
		if _, ok := byPerson[m.Sender]; !ok {
			order = append(order, m.Sender)
		}
		byPerson[m.Sender] = append(byPerson[m.Sender], i)
	}

	result := chatmodel.NewOrderedMap[PersonDossier]()
	for _, name := range order {
		indices := byPerson[name]
		d := PersonDossier{
			Confessions:        confessions(messages, indices),
			EmbarrassingQuotes: embarrassingQuotes(messages, indices, bundle),
			Contradictions:     contradictions(messages, indices, assertionRE, affectionateRE),
			TopicObsessions:    topicObsessions(messages, indices, bundle),
			PowerMoves:         powerMoves(messages, indices, bundle),
			PetNameHits:        petNameHits(messages, indices, petNameRE),
		}
		result.Set(name, d)
	}

	threads := interestingThreads(messages, bundle)
	summary := render(result, threads)

	return Result{PerPerson: result, InterestingThreads: threads, Summary: summary}, true
}

func confessions(messages []chatmodel.UnifiedMessage, indices []int) []Confession {
	var candidates []Confession
	for _, i := range indices {
		m := messages[i]
		words := len(textproc.Tokenize(m.Content))
		if words < minConfessionWords {
			continue
		}
		candidates = append(candidates, Confession{Content: truncate(m.Content, confessionTruncate), Words: words, Timestamp: m.Timestamp})
	}
	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].Words > candidates[b].Words })
	if len(candidates) > topConfessions {
		candidates = candidates[:topConfessions]
	}
	return candidates
}

func embarrassingQuotes(messages []chatmodel.UnifiedMessage, indices []int, bundle *lexicon.Bundle) []EmbarrassingQuote {
	var candidates []EmbarrassingQuote
	for _, i := range indices {
		m := messages[i]
		tokens := textproc.Tokenize(m.Content)
		if len(tokens) == 0 {
			continue
		}
		emotional := 0
		for _, t := range tokens {
			if bundle.Emotional.Contains(t) {
				emotional++
			}
		}
		density := float64(emotional) / float64(len(tokens))
		hour := m.Time().Hour()
		factor, reason := nightFactor(hour)
		score := float64(len(tokens)) * (0.3 + 2*density) * factor
		candidates = append(candidates, EmbarrassingQuote{Content: truncate(m.Content, confessionTruncate), Score: score, Reason: reason, Timestamp: m.Timestamp})
	}
	sort.SliceStable(candidates, func(a, b int) bool { return candidates[a].Score > candidates[b].Score })
	if len(candidates) > topQuotes {
		candidates = candidates[:topQuotes]
	}
	return candidates
}

func nightFactor(hour int) (float64, string) {
	switch {
	case hour >= 3 && hour < 5:
		return 3, "03:00-05:00"
	case hour >= 1 && hour < 3:
		return 2, "01:00-02:00"
	case hour >= 23 || hour == 0:
		return 1.5, "23:00-00:00"
	default:
		return 1, ""
	}
}

func contradictions(messages []chatmodel.UnifiedMessage, indices []int, assertionRE, affectionateRE *regexp2.Regexp) []Contradiction {
	var out []Contradiction
	sender := ""
	if len(indices) > 0 {
		sender = messages[indices[0]].Sender
	}
	for _, i := range indices {
		m := messages[i]
		if !matches(assertionRE, m.Content) {
			continue
		}
		windowEnd := m.Timestamp + contradictionWindow
		followupCount := 0
		affectionateFound := false
		for j := i + 1; j < len(messages) && messages[j].Timestamp <= windowEnd; j++ {
			if messages[j].Sender != sender {
				continue
			}
			followupCount++
			if matches(affectionateRE, messages[j].Content) {
				affectionateFound = true
			}
		}
		if followupCount >= contradictionTrigger || affectionateFound {
			label := "kept talking"
			if affectionateFound {
				label = "affectionate follow-up"
			}
			out = append(out, Contradiction{Assertion: truncate(m.Content, confessionTruncate), Timestamp: m.Timestamp, Label: label})
		}
		if len(out) >= maxContradictions {
			break
		}
	}
	return out
}

func topicObsessions(messages []chatmodel.UnifiedMessage, indices []int, bundle *lexicon.Bundle) []TopicObsession {
	unigrams := map[string]int{}
	bigrams := map[string]int{}
	for _, i := range indices {
		tokens := filterStopwords(textproc.Tokenize(messages[i].Content), bundle)
		for k, t := range tokens {
			unigrams[t]++
			if k+1 < len(tokens) {
				bigrams[t+" "+tokens[k+1]]++
			}
		}
	}

	reportedUnigrams := map[string]bool{}
	var out []TopicObsession
	for phrase, count := range bigrams {
		if count < bigramFloor {
			continue
		}
		out = append(out, TopicObsession{Phrase: phrase, Count: count})
		for _, w := range strings.Fields(phrase) {
			reportedUnigrams[w] = true
		}
	}
	for word, count := range unigrams {
		if count < unigramFloor || reportedUnigrams[word] {
			continue
		}
		out = append(out, TopicObsession{Phrase: word, Count: count})
	}

	sort.SliceStable(out, func(a, b int) bool {
		if out[a].Count != out[b].Count {
			return out[a].Count > out[b].Count
		}
		return out[a].Phrase < out[b].Phrase
	})
	if len(out) > topObsessions {
		out = out[:topObsessions]
	}
	return out
}

func filterStopwords(tokens []string, bundle *lexicon.Bundle) []string {
	out := make([]string, 0, len(tokens))
	for _, t := range tokens {
		if bundle.Stopwords.Contains(t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func powerMoves(messages []chatmodel.UnifiedMessage, indices []int, bundle *lexicon.Bundle) PowerMoves {
	var pm PowerMoves
	sender := ""
	if len(indices) > 0 {
		sender = messages[indices[0]].Sender
	}

	for k := 1; k < len(indices); k++ {
		cur := messages[indices[k]]
		prev := messages[indices[k-1]]
		gap := cur.Timestamp - prev.Timestamp
		if gap >= leftOnReadThreshold {
			pm.LeftOnReadCount++
			if gap > pm.WorstLeftOnReadGap {
				pm.WorstLeftOnReadGap = gap
			}
		}
	}

	var lastOtherApology int64 = -1
	for i := range messages {
		if !isApology(messages[i].Content, bundle) {
			continue
		}
		if messages[i].Sender == sender {
			if lastOtherApology < 0 || messages[i].Timestamp-lastOtherApology > apologyCooldown {
				pm.ApologiesFirst++
			}
		} else {
			lastOtherApology = messages[i].Timestamp
		}
	}

	run := 0
	longest := 0
	for i := range messages {
		if messages[i].Sender != sender {
			run = 0
			continue
		}
		run++
		if run > longest {
			longest = run
		}
	}
	if longest >= doubleTextChainMin {
		pm.LongestDoubleTextChain = longest
	}

	return pm
}

func isApology(content string, bundle *lexicon.Bundle) bool {
	for _, t := range textproc.Tokenize(content) {
		if bundle.ApologyTokens.Contains(t) {
			return true
		}
	}
	return false
}

func petNameHits(messages []chatmodel.UnifiedMessage, indices []int, re *regexp2.Regexp) int {
	count := 0
	for _, i := range indices {
		if matches(re, messages[i].Content) {
			count++
		}
	}
	return count
}

func interestingThreads(messages []chatmodel.UnifiedMessage, bundle *lexicon.Bundle) []Thread {
	var threads []Thread
	i := 0
	for i < len(messages) {
		j := i
		for j+1 < len(messages) && messages[j+1].Timestamp-messages[j].Timestamp < threadGapMillis {
			j++
		}
		count := j - i + 1
		if count >= minThreadMessages {
			threads = append(threads, scoreThread(messages[i:j+1], bundle))
		}
		i = j + 1
	}

	sort.SliceStable(threads, func(a, b int) bool { return threads[a].Score > threads[b].Score })
	if len(threads) > topThreads {
		threads = threads[:topThreads]
	}
	return threads
}

func scoreThread(messages []chatmodel.UnifiedMessage, bundle *lexicon.Bundle) Thread {
	lengths := make([]float64, len(messages))
	emotional := 0
	totalWords := 0
	lateNight := false
	for i, m := range messages {
		tokens := textproc.Tokenize(m.Content)
		lengths[i] = float64(len(tokens))
		totalWords += len(tokens)
		for _, t := range tokens {
			if bundle.Emotional.Contains(t) {
				emotional++
			}
		}
		if textproc.IsLateNight(m.Time().Hour()) {
			lateNight = true
		}
	}
	density := 0.0
	if totalWords > 0 {
		density = float64(emotional) / float64(totalWords)
	}
	variance := lengthVariance(lengths)

	score := density*100 + variance + float64(len(messages))
	if lateNight {
		score *= lateNightThreadBoost
	}

	return Thread{
		StartTimestamp: messages[0].Timestamp,
		EndTimestamp:   messages[len(messages)-1].Timestamp,
		MessageCount:   len(messages),
		Score:          score,
	}
}

func lengthVariance(lengths []float64) float64 {
	if len(lengths) == 0 {
		return 0
	}
	var sum float64
	for _, l := range lengths {
		sum += l
	}
	mean := sum / float64(len(lengths))
	var variance float64
	for _, l := range lengths {
		d := l - mean
		variance += d * d
	}
	return variance / float64(len(lengths))
}

func render(perPerson *chatmodel.OrderedMap[PersonDossier], threads []Thread) string {
	var b strings.Builder
	perPerson.Range(func(name string, d PersonDossier) bool {
		fmt.Fprintf(&b, "== %s ==\n", name)
		for _, c := range d.Confessions {
			fmt.Fprintf(&b, "confession (%d words): %s\n", c.Words, c.Content)
		}
		for _, q := range d.EmbarrassingQuotes {
			fmt.Fprintf(&b, "quote [%s]: %s\n", q.Reason, q.Content)
		}
		for _, c := range d.Contradictions {
			fmt.Fprintf(&b, "contradiction (%s): %s\n", c.Label, c.Assertion)
		}
		for _, t := range d.TopicObsessions {
			fmt.Fprintf(&b, "obsession: %s (%d)\n", t.Phrase, t.Count)
		}
		fmt.Fprintf(&b, "power moves: left-on-read=%d apologies-first=%d double-text-chain=%d pet-names=%d\n",
			d.PowerMoves.LeftOnReadCount, d.PowerMoves.ApologiesFirst, d.PowerMoves.LongestDoubleTextChain, d.PetNameHits)
		return b.Len() < summaryBudget
	})
	for _, t := range threads {
		fmt.Fprintf(&b, "thread: %d messages, score %.1f\n", t.MessageCount, t.Score)
		if b.Len() >= summaryBudget {
			break
		}
	}
	out := b.String()
	if len(out) > summaryBudget {
		out = out[:summaryBudget]
	}
	return out
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func boundaryRegex(words []string) *regexp2.Regexp {
	if len(words) == 0 {
		return regexp2.MustCompile(`(?!)`, regexp2.None)
	}
	escaped := make([]string, len(words))
	for i, w := range words {
		escaped[i] = stemEscape.ReplaceAllString(w, `\$0`)
	}
	pattern := `\b(` + strings.Join(escaped, "|") + `)\b`
	return regexp2.MustCompile(pattern, regexp2.IgnoreCase)
}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
