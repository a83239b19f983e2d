// Package integrativecomplexity scores each participant's balance of
// differentiation ("on the other hand") against integration ("therefore")
// phrasing (spec §4.13).
package integrativecomplexity

import (
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minPersonMessages = 30
	minTotalPhrases   = 3
	scoreScale        = 6.5
)

// Person holds one participant's differentiation/integration tally and IC
// score.
type Person struct {
	MessageCount      int
	Differentiations  int
	Integrations      int
	Score             float64
}

// Result is the §4.13 output.
type Result struct {
	PerPerson    *chatmodel.OrderedMap[Person]
	MonthlySeries *chatmodel.OrderedMap[float64]
	Slope        float64
}

// Compute scores integrative complexity per participant, requiring ≥30
// messages per person and ≥3 total phrase hits across the pair.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	bundle := lexicon.Default()

	counts := map[string]*Person{}
	order := []string{}
	ensure := func(name string) *Person {
		p, ok := counts[name]
		if !ok {
			p = &Person{}
			counts[name] = p
			order = append(order, name)
		}
		return p
	}

	monthlyDiff := map[string]int{}
	monthlyInteg := map[string]int{}
	var monthOrder []string
	seenMonth := map[string]bool{}

	totalPhrases := 0
	for _, m := range messages {
		p := ensure(m.Sender)
		p.MessageCount++

		diff := countMatches(m.Content, bundle.DifferentiationPhrases)
		integ := countMatches(m.Content, bundle.IntegrationPhrases)
		p.Differentiations += diff
		p.Integrations += integ
		totalPhrases += diff + integ

		if diff+integ > 0 {
			mk := textproc.MonthKey(m.Time())
			if !seenMonth[mk] {
				seenMonth[mk] = true
				monthOrder = append(monthOrder, mk)
			}
			monthlyDiff[mk] += diff
			monthlyInteg[mk] += integ
		}
	}

	if totalPhrases < minTotalPhrases {
		return Result{}, false
	}

	result := chatmodel.NewOrderedMap[Person]()
	any := false
	for _, name := range order {
		p := *counts[name]
		if p.MessageCount < minPersonMessages {
			continue
		}
		total := p.Differentiations + p.Integrations
		if total > 0 {
			raw := (float64(p.Differentiations) + 2*float64(p.Integrations)) / float64(total) * 100 * scoreScale
			p.Score = clamp(raw, 0, 100)
		}
		result.Set(name, p)
		any = true
	}
	if !any {
		return Result{}, false
	}

	series := chatmodel.NewOrderedMap[float64]()
	values := make([]float64, 0, len(monthOrder))
	for _, mk := range monthOrder {
		d, i := monthlyDiff[mk], monthlyInteg[mk]
		total := d + i
		var score float64
		if total > 0 {
			score = clamp((float64(d)+2*float64(i))/float64(total)*100*scoreScale, 0, 100)
		}
		series.Set(mk, score)
		values = append(values, score)
	}

	return Result{
		PerPerson:     result,
		MonthlySeries: series,
		Slope:         textproc.SeriesSlope(values),
	}, true
}

func countMatches(content string, set lexicon.Set) int {
	lower := strings.ToLower(content)
	count := 0
	for _, phrase := range set.Words() {
		count += strings.Count(lower, phrase)
	}
	return count
}

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
