// Package chronotype compares two participants' hourly activity rhythms
// and derives a compatibility score (spec §4.15).
package chronotype

import (
	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minPersonMessages = 20
	minSplitSamples   = 10
	earlyBirdBound    = 10.0
	nightOwlBound     = 20.0
)

// Person holds one participant's hourly histograms and derived chronotype.
type Person struct {
	Hourly        [24]int
	WeekdayHourly [24]int
	WeekendHourly [24]int
	Midpoint      float64
	PeakHour      int
	Category      string
	SocialJetLag  float64
	JetLagLevel   string
}

// Result is the §4.15 output, valid only for two-participant conversations.
type Result struct {
	PerPerson        *chatmodel.OrderedMap[Person]
	Delta            float64
	CompatibilityScore int
	IsCompatible     bool
}

// Compute builds per-person hourly histograms and compares the two
// participants' circular midpoints, requiring exactly two participants
// with ≥20 messages each.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	names := conv.ParticipantNames()
	if len(names) != 2 {
		return Result{}, false
	}

	people := map[string]*Person{names[0]: {}, names[1]: {}}
	weekdaySamples := map[string]int{}
	weekendSamples := map[string]int{}
	messageCounts := map[string]int{}

	for _, m := range conv.NonSystemMessages() {
		p, ok := people[m.Sender]
		if !ok {
			continue
		}
		messageCounts[m.Sender]++
		hour := textproc.HourOfDay(m.Time())
		p.Hourly[hour]++
		if textproc.IsWeekend(m.Time()) {
			p.WeekendHourly[hour]++
			weekendSamples[m.Sender]++
		} else {
			p.WeekdayHourly[hour]++
			weekdaySamples[m.Sender]++
		}
	}

	for _, name := range names {
		if messageCounts[name] < minPersonMessages {
			return Result{}, false
		}
	}

	result := chatmodel.NewOrderedMap[Person]()
	for _, name := range names {
		p := people[name]
		p.Midpoint = textproc.CircularMidpoint(p.Hourly)
		p.PeakHour = argmax(p.Hourly)
		p.Category = category(p.Midpoint)

		weekdayMid := p.Midpoint
		weekendMid := p.Midpoint
		if weekdaySamples[name] >= minSplitSamples {
			weekdayMid = textproc.CircularMidpoint(p.WeekdayHourly)
		}
		if weekendSamples[name] >= minSplitSamples {
			weekendMid = textproc.CircularMidpoint(p.WeekendHourly)
		}
		p.SocialJetLag = textproc.CircularDelta(weekdayMid, weekendMid)
		p.JetLagLevel = jetLagLevel(p.SocialJetLag)

		result.Set(name, *p)
	}

	a, _ := result.Get(names[0])
	b, _ := result.Get(names[1])
	delta := textproc.CircularDelta(a.Midpoint, b.Midpoint)
	score := compatibilityScore(delta)

	return Result{
		PerPerson:          result,
		Delta:              delta,
		CompatibilityScore: score,
		IsCompatible:       score >= 60,
	}, true
}

func argmax(hourly [24]int) int {
	best := 0
	for h := 1; h < 24; h++ {
		if hourly[h] > hourly[best] {
			best = h
		}
	}
	return best
}

func category(midpoint float64) string {
	switch {
	case midpoint < earlyBirdBound:
		return "early_bird"
	case midpoint >= nightOwlBound:
		return "night_owl"
	default:
		return "intermediate"
	}
}

func jetLagLevel(delta float64) string {
	switch {
	case delta < 1:
		return "minimal"
	case delta < 2:
		return "mild"
	case delta < 4:
		return "moderate"
	default:
		return "severe"
	}
}

func compatibilityScore(delta float64) int {
	switch {
	case delta <= 1:
		return 95
	case delta <= 2:
		return 80
	case delta <= 3:
		return 60
	case delta <= 4:
		return 40
	case delta <= 6:
		return 20
	default:
		return 5
	}
}
