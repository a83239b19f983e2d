// Package temporalfocus rates each participant's orientation toward past,
// present, or future phrasing (spec §4.14).
package temporalfocus

import (
	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minWords     = 500
	rateScale    = 1000
	indexFloor   = 1e-3
	prospectiveBand = 0.35
	presentBand     = 0.20
)

// Person holds one participant's temporal-marker rates and orientation.
type Person struct {
	WordCount    int
	PastRate     float64
	PresentRate  float64
	FutureRate   float64
	FutureIndex  float64
	Orientation  string
}

// Result is the §4.14 output.
type Result struct {
	PerPerson     *chatmodel.OrderedMap[Person]
	MonthlyFutureIndex *chatmodel.OrderedMap[float64]
}

// Compute tokenizes every message and tallies past/present/future marker
// hits per participant, requiring ≥500 words per person.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	bundle := lexicon.Default()

	type tally struct {
		words, past, present, future int
	}
	counts := map[string]*tally{}
	order := []string{}
	ensure := func(name string) *tally {
		t, ok := counts[name]
		if !ok {
			t = &tally{}
			counts[name] = t
			order = append(order, name)
		}
		return t
	}

	monthPast := map[string]int{}
	monthPresent := map[string]int{}
	monthFuture := map[string]int{}
	var monthOrder []string
	seenMonth := map[string]bool{}

	for _, m := range messages {
		tokens := textproc.Tokenize(m.Content)
		if len(tokens) == 0 {
			continue
		}
		t := ensure(m.Sender)
		t.words += len(tokens)

		past := countHits(tokens, bundle.TemporalPast)
		present := countHits(tokens, bundle.TemporalPresent)
		future := countHits(tokens, bundle.TemporalFuture)
		t.past += past
		t.present += present
		t.future += future

		mk := textproc.MonthKey(m.Time())
		if !seenMonth[mk] {
			seenMonth[mk] = true
			monthOrder = append(monthOrder, mk)
		}
		monthPast[mk] += past
		monthPresent[mk] += present
		monthFuture[mk] += future
	}

	result := chatmodel.NewOrderedMap[Person]()
	any := false
	for _, name := range order {
		t := counts[name]
		if t.words < minWords {
			continue
		}
		p := Person{
			WordCount:   t.words,
			PastRate:    float64(t.past) / float64(t.words) * rateScale,
			PresentRate: float64(t.present) / float64(t.words) * rateScale,
			FutureRate:  float64(t.future) / float64(t.words) * rateScale,
		}
		p.FutureIndex = float64(t.future) / (float64(t.past) + float64(t.present) + float64(t.future) + indexFloor)
		p.Orientation = orientation(p.FutureIndex)
		result.Set(name, p)
		any = true
	}
	if !any {
		return Result{}, false
	}

	series := chatmodel.NewOrderedMap[float64]()
	for _, mk := range monthOrder {
		past, present, future := monthPast[mk], monthPresent[mk], monthFuture[mk]
		idx := float64(future) / (float64(past) + float64(present) + float64(future) + indexFloor)
		series.Set(mk, idx)
	}

	return Result{PerPerson: result, MonthlyFutureIndex: series}, true
}

// countHits matches unigrams plus bigrams/trigrams, since several temporal
// markers are multi-word ("used to", "going to").
func countHits(tokens []string, set lexicon.Set) int {
	count := 0
	for i, t := range tokens {
		if set.Contains(t) {
			count++
		}
		if i+1 < len(tokens) && set.Contains(t+" "+tokens[i+1]) {
			count++
		}
		if i+2 < len(tokens) && set.Contains(t+" "+tokens[i+1]+" "+tokens[i+2]) {
			count++
		}
	}
	return count
}

func orientation(futureIndex float64) string {
	switch {
	case futureIndex >= prospectiveBand:
		return "prospective"
	case futureIndex >= presentBand:
		return "present_focused"
	default:
		return "retrospective"
	}
}
