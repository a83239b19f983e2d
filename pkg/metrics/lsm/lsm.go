// Package lsm computes two-participant Language Style Matching over the
// nine bilingual function-word categories (spec §4.7).
package lsm

import (
	"math"

	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minTokens          = 50
	rateFloor          = 0.001
	asymmetryThreshold = 0.005
)

// CategoryScore is one function-word category's per-person rates and the
// resulting LSM score.
type CategoryScore struct {
	Category lexicon.LSMCategory
	RateA    float64
	RateB    float64
	Score    float64
}

// Result is the §4.7 output, valid only for two-participant conversations
// with ≥50 tokens per person.
type Result struct {
	Categories []CategoryScore
	Overall    float64
	Band       string
	Chameleon  string // participant name, or "" if asymmetry <= threshold
}

// Compute derives LSM between the two participants' concatenated text,
// reporting ok=false when the preconditions in §4.7 aren't met.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	names := conv.ParticipantNames()
	if len(names) != 2 {
		return Result{}, false
	}

	textA, textB := "", ""
	for _, m := range conv.NonSystemMessages() {
		switch m.Sender {
		case names[0]:
			textA += " " + m.Content
		case names[1]:
			textB += " " + m.Content
		}
	}

	tokensA := textproc.Tokenize(textA)
	tokensB := textproc.Tokenize(textB)
	if len(tokensA) < minTokens || len(tokensB) < minTokens {
		return Result{}, false
	}

	bundle := lexicon.Default()
	var categories []CategoryScore
	var sum float64
	profileA := map[lexicon.LSMCategory]float64{}
	profileB := map[lexicon.LSMCategory]float64{}

	for _, cat := range lexicon.LSMCategories {
		set := bundle.LSM[cat]
		rateA := rate(tokensA, set)
		rateB := rate(tokensB, set)
		profileA[cat] = rateA
		profileB[cat] = rateB

		if rateA < rateFloor && rateB < rateFloor {
			continue
		}
		score := 1 - math.Abs(rateA-rateB)/(rateA+rateB+1e-4)
		score = clamp01(score)
		categories = append(categories, CategoryScore{Category: cat, RateA: rateA, RateB: rateB, Score: score})
		sum += score
	}

	if len(categories) == 0 {
		return Result{}, false
	}
	overall := sum / float64(len(categories))

	chameleon := ""
	asymmetry := profileDistance(profileA, profileB)
	if asymmetry > asymmetryThreshold {
		mean := map[lexicon.LSMCategory]float64{}
		for _, cat := range lexicon.LSMCategories {
			mean[cat] = (profileA[cat] + profileB[cat]) / 2
		}
		distA := profileDistance(profileA, mean)
		distB := profileDistance(profileB, mean)
		if distA < distB {
			chameleon = names[0]
		} else {
			chameleon = names[1]
		}
	}

	return Result{
		Categories: categories,
		Overall:    overall,
		Band:       band(overall),
		Chameleon:  chameleon,
	}, true
}

func rate(tokens []string, set lexicon.Set) float64 {
	if len(tokens) == 0 {
		return 0
	}
	count := 0
	for _, t := range tokens {
		if set.Contains(t) {
			count++
		}
	}
	return float64(count) / float64(len(tokens))
}

func profileDistance(a, b map[lexicon.LSMCategory]float64) float64 {
	var sum float64
	for _, cat := range lexicon.LSMCategories {
		d := a[cat] - b[cat]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// band returns the Ireland & Pennebaker (2010) interpretation band for a
// two-person established-couple LSM score.
func band(overall float64) string {
	switch {
	case overall >= 0.87:
		return "very_high"
	case overall >= 0.80:
		return "high"
	case overall >= 0.65:
		return "moderate"
	case overall >= 0.50:
		return "low"
	default:
		return "very_low"
	}
}
