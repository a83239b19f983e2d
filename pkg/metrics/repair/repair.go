// Package repair detects self-repair and other-repair-initiation per
// message and derives the mutual-repair index (spec §4.12).
package repair

import (
	"regexp"
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minPersonMessages = 10
	minOverallMessages = 100
	minRepairEvents    = 5
	ratioFloor         = 1e-3
	perRate            = 100
	mutualIndexScale   = 500
)

var asteriskCorrection = regexp.MustCompile(`(^|\s)\*\p{L}`)

// Person holds one participant's repair tallies.
type Person struct {
	MessageCount           int
	SelfRepairs            int
	OtherRepairs           int
	SelfRepairsPer100      float64
	OtherRepairsPer100     float64
	RepairInitiationRatio  float64
}

// Result is the §4.12 output.
type Result struct {
	PerPerson         *chatmodel.OrderedMap[Person]
	MutualRepairIndex float64
}

// Compute scans conv for repair events, requiring ≥100 total messages and
// ≥5 repair events overall; per-person output is limited to participants
// with ≥10 messages.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) < minOverallMessages {
		return Result{}, false
	}

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

	totalRepairs := 0
	for _, m := range messages {
		p := ensure(m.Sender)
		p.MessageCount++

		if isSelfRepair(m.Content, bundle) {
			p.SelfRepairs++
			totalRepairs++
		}
		if isOtherRepair(m.Content, bundle) {
			p.OtherRepairs++
			totalRepairs++
		}
	}

	if totalRepairs < minRepairEvents {
		return Result{}, false
	}

	result := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		p := *counts[name]
		if p.MessageCount < minPersonMessages {
			continue
		}
		rate := float64(perRate) / float64(p.MessageCount)
		p.SelfRepairsPer100 = float64(p.SelfRepairs) * rate
		p.OtherRepairsPer100 = float64(p.OtherRepairs) * rate
		p.RepairInitiationRatio = float64(p.SelfRepairs) / (float64(p.SelfRepairs) + float64(p.OtherRepairs) + ratioFloor)
		result.Set(name, p)
	}

	mutual := float64(totalRepairs) / float64(len(messages)) * mutualIndexScale
	return Result{PerPerson: result, MutualRepairIndex: clamp(mutual, 0, 100)}, true
}

func isSelfRepair(content string, bundle *lexicon.Bundle) bool {
	if asteriskCorrection.MatchString(content) {
		return true
	}
	return matchesPhraseSet(content, bundle.SelfRepairPhrases)
}

func isOtherRepair(content string, bundle *lexicon.Bundle) bool {
	return matchesPhraseSet(content, bundle.OtherRepairPhrases)
}

// matchesPhraseSet reports a match as prefix, whole word, or standalone
// exact content (the spec's "prefix, word, or standalone exact match").
func matchesPhraseSet(content string, set lexicon.Set) bool {
	trimmed := strings.ToLower(strings.TrimSpace(content))
	if trimmed == "" {
		return false
	}
	if set.Contains(trimmed) {
		return true
	}
	if set.HasPrefix(trimmed) {
		return true
	}
	for _, t := range textproc.Tokenize(content) {
		if set.Contains(t) {
			return true
		}
	}
	return false
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
