// Package timing computes response-time distributions, the longest
// silence, and late-night message share per person (spec §4.4).
package timing

import (
	"math"
	"sort"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

// nonInformativeGapMillis excludes response gaps the engine treats as
// deferred/overnight rather than a genuine response latency.
const nonInformativeGapMillis = 12 * 60 * 60 * 1000

// Person holds the response-time distribution and late-night share for one
// participant.
type Person struct {
	SampleCount int

	Mean        float64
	Median      float64
	TrimmedMean float64
	StdDev      float64
	P75         float64
	P90         float64
	P95         float64
	Fastest     float64
	Slowest     float64

	MonthlyMedianMillis *chatmodel.OrderedMap[float64]

	LateNightShare float64
}

// Silence is the single longest gap between any two consecutive messages.
type Silence struct {
	Millis      int64
	StartTS     int64
	EndTS       int64
	BeforeSend  string
	AfterSender string
}

// Result is the §4.4 output.
type Result struct {
	PerPerson *chatmodel.OrderedMap[Person]
	Longest   Silence
}

// Compute derives timing metrics from conv's chronological message stream.
func Compute(conv *chatmodel.ParsedConversation) Result {
	messages := conv.NonSystemMessages()

	gapsByPerson := map[string][]int64{}
	monthGapsByPerson := map[string]map[string][]int64{}
	order := []string{}
	seen := map[string]bool{}
	lateNight := map[string]int{}
	total := map[string]int{}

	touch := func(name string) {
		if !seen[name] {
			seen[name] = true
			order = append(order, name)
			monthGapsByPerson[name] = map[string][]int64{}
		}
	}

	var longest Silence
	for i, m := range messages {
		touch(m.Sender)
		total[m.Sender]++
		if textproc.IsLateNight(m.Time().Hour()) {
			lateNight[m.Sender]++
		}

		if i == 0 {
			continue
		}
		prev := messages[i-1]
		gap := m.Timestamp - prev.Timestamp
		if gap > longest.Millis {
			longest = Silence{Millis: gap, StartTS: prev.Timestamp, EndTS: m.Timestamp, BeforeSend: prev.Sender, AfterSender: m.Sender}
		}

		if m.Sender == prev.Sender || gap <= 0 || gap > nonInformativeGapMillis {
			continue
		}
		gapsByPerson[m.Sender] = append(gapsByPerson[m.Sender], gap)
		monthKey := textproc.MonthKey(m.Time())
		monthGapsByPerson[m.Sender][monthKey] = append(monthGapsByPerson[m.Sender][monthKey], gap)
	}

	result := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		p := Person{SampleCount: len(gapsByPerson[name])}
		if total[name] > 0 {
			p.LateNightShare = float64(lateNight[name]) / float64(total[name])
		}
		if samples := gapsByPerson[name]; len(samples) > 0 {
			stats := distribution(samples)
			p.Mean, p.Median, p.TrimmedMean = stats.mean, stats.median, stats.trimmedMean
			p.StdDev = stats.stdDev
			p.P75, p.P90, p.P95 = stats.p75, stats.p90, stats.p95
			p.Fastest, p.Slowest = stats.fastest, stats.slowest
		}

		monthly := chatmodel.NewOrderedMap[float64]()
		monthKeys := make([]string, 0, len(monthGapsByPerson[name]))
		for k := range monthGapsByPerson[name] {
			monthKeys = append(monthKeys, k)
		}
		sort.Strings(monthKeys)
		for _, k := range monthKeys {
			monthly.Set(k, median(monthGapsByPerson[name][k]))
		}
		p.MonthlyMedianMillis = monthly

		result.Set(name, p)
	}

	return Result{PerPerson: result, Longest: longest}
}

type distStats struct {
	mean, median, trimmedMean, stdDev, p75, p90, p95, fastest, slowest float64
}

func distribution(samples []int64) distStats {
	sorted := append([]int64(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	floats := make([]float64, len(sorted))
	var sum float64
	for i, v := range sorted {
		floats[i] = float64(v)
		sum += floats[i]
	}
	n := float64(len(floats))
	mean := sum / n

	var variance float64
	for _, v := range floats {
		variance += (v - mean) * (v - mean)
	}
	variance /= n

	trimCount := int(n * 0.05)
	trimmed := floats
	if len(floats) > 2*trimCount {
		trimmed = floats[trimCount : len(floats)-trimCount]
	}
	var trimmedSum float64
	for _, v := range trimmed {
		trimmedSum += v
	}
	trimmedMean := trimmedSum / float64(len(trimmed))

	return distStats{
		mean:        mean,
		median:      percentile(floats, 0.5),
		trimmedMean: trimmedMean,
		stdDev:      math.Sqrt(variance),
		p75:         percentile(floats, 0.75),
		p90:         percentile(floats, 0.90),
		p95:         percentile(floats, 0.95),
		fastest:     floats[0],
		slowest:     floats[len(floats)-1],
	}
}

func median(samples []int64) float64 {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]int64(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	floats := make([]float64, len(sorted))
	for i, v := range sorted {
		floats[i] = float64(v)
	}
	return percentile(floats, 0.5)
}

// percentile uses linear interpolation between closest ranks over an
// already-sorted slice.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if len(sorted) == 1 {
		return sorted[0]
	}
	idx := p * float64(len(sorted)-1)
	lo := int(math.Floor(idx))
	hi := int(math.Ceil(idx))
	if lo == hi {
		return sorted[lo]
	}
	frac := idx - float64(lo)
	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
