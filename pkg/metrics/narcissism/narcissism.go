// Package narcissism classifies each reply as conversational support or a
// topic shift, and derives the per-person Conversational Narcissism Index
// (spec §4.8).
package narcissism

import (
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	maxReplyGapMillis = 6 * 60 * 60 * 1000
	minClassified     = 10
)

// Person holds one participant's shift/support tally and resulting CNI.
type Person struct {
	Supports  int
	Shifts    int
	Ambiguous int
	CNI       float64
}

// Result maps each qualifying participant to their Person record.
type Result struct {
	PerPerson *chatmodel.OrderedMap[Person]
}

// Compute classifies every eligible reply in conv and derives CNI per
// person, omitting anyone with fewer than 10 classified responses.
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

	for i := 1; i < len(messages); i++ {
		m := messages[i]
		prev := messages[i-1]
		if m.Sender == prev.Sender {
			continue
		}
		gap := m.Timestamp - prev.Timestamp
		if gap > maxReplyGapMillis {
			continue
		}
		if strings.TrimSpace(m.Content) == "" || strings.TrimSpace(prev.Content) == "" {
			continue
		}

		tokens := textproc.Tokenize(m.Content)
		prevTokens := textproc.Tokenize(prev.Content)
		overlap := textproc.WordOverlapCount(tokens, prevTokens, 3)

		support := false
		switch {
		case strings.Contains(m.Content, "?"):
			support = true
		case len(tokens) > 0 && bundle.QuestionWords.Contains(tokens[0]):
			support = true
		case referencesPartner(tokens, bundle):
			support = true
		case len(tokens) > 0 && bundle.AcknowledgementTokens.Contains(tokens[0]):
			support = true
		case overlap >= 2:
			support = true
		}

		shift := !support && len(tokens) > 0 && bundle.SelfReference.Contains(tokens[0]) && overlap == 0

		p := ensure(m.Sender)
		switch {
		case support:
			p.Supports++
		case shift:
			p.Shifts++
		default:
			p.Ambiguous++
		}
	}

	result := chatmodel.NewOrderedMap[Person]()
	any := false
	for _, name := range order {
		p := counts[name]
		classified := p.Supports + p.Shifts
		if classified < minClassified {
			continue
		}
		if classified > 0 {
			p.CNI = float64(p.Shifts) / float64(classified) * 100
		}
		result.Set(name, *p)
		any = true
	}

	return Result{PerPerson: result}, any
}

func referencesPartner(tokens []string, bundle *lexicon.Bundle) bool {
	limit := len(tokens)
	if limit > 4 {
		limit = 4
	}
	for i := 0; i < limit; i++ {
		if bundle.PartnerReference.Contains(tokens[i]) {
			return true
		}
	}
	return false
}
