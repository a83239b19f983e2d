// Package intimacy tracks how message length, emotional density,
// informality, and late-night timing trend month over month (spec §4.17).
package intimacy

import (
	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	lengthWeight      = 0.25
	emotionalWeight   = 0.30
	informalityWeight = 0.25
	nightWeight       = 0.20
	exclamationScore  = 1.0
	emojiScore        = 2.0
)

// MonthStat is one month's raw accumulators and derived composite score.
type MonthStat struct {
	Key              string
	WordCount        int
	MessageCount     int
	EmotionalHits    int
	InformalityTotal float64
	LateNightCount   int

	LengthFactor      float64
	EmotionalFactor   float64
	InformalityFactor float64
	NightFactor       float64
	Composite         float64
}

// Result is the §4.17 output.
type Result struct {
	Months []MonthStat
	Slope  float64
	Label  string
}

// Compute builds the monthly intimacy series for conv and its overall
// trend label.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) == 0 {
		return Result{}, false
	}
	bundle := lexicon.Default()

	byMonth := map[string]*MonthStat{}
	var order []string

	for _, m := range messages {
		mk := textproc.MonthKey(m.Time())
		stat, ok := byMonth[mk]
		if !ok {
			stat = &MonthStat{Key: mk}
			byMonth[mk] = stat
			order = append(order, mk)
		}

		tokens := textproc.Tokenize(m.Content)
		stat.WordCount += len(tokens)
		stat.MessageCount++

		for _, t := range tokens {
			if bundle.Emotional.Contains(t) {
				stat.EmotionalHits++
			}
		}

		exclamations := countRune(m.Content, '!')
		emoji := textproc.CountEmoji(m.Content)
		stat.InformalityTotal += float64(exclamations)*exclamationScore + float64(emoji)*emojiScore

		if textproc.IsLateNight(textproc.HourOfDay(m.Time())) {
			stat.LateNightCount++
		}
	}

	if len(order) == 0 {
		return Result{}, false
	}

	var maxLen, maxEmo, maxInf, maxNight float64
	months := make([]MonthStat, len(order))
	for i, mk := range order {
		s := *byMonth[mk]
		avgLen := 0.0
		if s.MessageCount > 0 {
			avgLen = float64(s.WordCount) / float64(s.MessageCount)
		}
		emoDensity := 0.0
		if s.WordCount > 0 {
			emoDensity = float64(s.EmotionalHits) / float64(s.WordCount)
		}
		avgInformality := 0.0
		nightShare := 0.0
		if s.MessageCount > 0 {
			avgInformality = s.InformalityTotal / float64(s.MessageCount)
			nightShare = float64(s.LateNightCount) / float64(s.MessageCount)
		}

		s.LengthFactor = avgLen
		s.EmotionalFactor = emoDensity
		s.InformalityFactor = avgInformality
		s.NightFactor = nightShare

		if avgLen > maxLen {
			maxLen = avgLen
		}
		if emoDensity > maxEmo {
			maxEmo = emoDensity
		}
		if avgInformality > maxInf {
			maxInf = avgInformality
		}
		if nightShare > maxNight {
			maxNight = nightShare
		}
		months[i] = s
	}

	composites := make([]float64, len(months))
	for i := range months {
		m := &months[i]
		norm := func(v, max float64) float64 {
			if max == 0 {
				return 0
			}
			return v / max
		}
		m.Composite = lengthWeight*norm(m.LengthFactor, maxLen) +
			emotionalWeight*norm(m.EmotionalFactor, maxEmo) +
			informalityWeight*norm(m.InformalityFactor, maxInf) +
			nightWeight*norm(m.NightFactor, maxNight)
		composites[i] = m.Composite
	}

	slope := textproc.SeriesSlope(composites)
	return Result{Months: months, Slope: slope, Label: label(slope)}, true
}

func countRune(s string, r rune) int {
	count := 0
	for _, c := range s {
		if c == r {
			count++
		}
	}
	return count
}

func label(slope float64) string {
	switch {
	case slope > 2:
		return "deepening_fast"
	case slope > 0.5:
		return "deepening"
	case slope > -0.5:
		return "stable"
	case slope > -2:
		return "cooling"
	default:
		return "cooling_fast"
	}
}
