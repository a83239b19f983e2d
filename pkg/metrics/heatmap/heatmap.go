// Package heatmap builds the 7x24 day/hour activity matrix, monthly volume
// series, and weekday/weekend split (spec §4.6).
package heatmap

import (
	"sort"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

// Matrix is a [day-of-week][hour] message count grid. Day 0 is Sunday,
// matching time.Weekday.
type Matrix [7][24]int

// Person holds one participant's heatmap facets.
type Person struct {
	Matrix          Matrix
	MonthlyVolume   *chatmodel.OrderedMap[int]
	WeekdayCount    int
	WeekendCount    int
	VolumeTrend     float64
}

// Result is the §4.6 output.
type Result struct {
	PerPerson     *chatmodel.OrderedMap[Person]
	Combined      Matrix
	MonthlyTotal  *chatmodel.OrderedMap[int]
	VolumeTrend   float64
}

// Compute derives heatmap metrics for conv.
func Compute(conv *chatmodel.ParsedConversation) Result {
	messages := conv.NonSystemMessages()

	type acc struct {
		matrix  Matrix
		monthly map[string]int
		weekday int
		weekend int
	}
	accs := map[string]*acc{}
	order := []string{}
	ensure := func(name string) *acc {
		a, ok := accs[name]
		if !ok {
			a = &acc{monthly: map[string]int{}}
			accs[name] = a
			order = append(order, name)
		}
		return a
	}

	var combined Matrix
	combinedMonthly := map[string]int{}

	for _, m := range messages {
		t := m.Time()
		day := int(t.Weekday())
		hour := t.Hour()
		monthKey := textproc.MonthKey(t)

		a := ensure(m.Sender)
		a.matrix[day][hour]++
		a.monthly[monthKey]++
		combined[day][hour]++
		combinedMonthly[monthKey]++

		if textproc.IsWeekend(t) {
			a.weekend++
		} else {
			a.weekday++
		}
	}

	perPerson := chatmodel.NewOrderedMap[Person]()
	for _, name := range order {
		a := accs[name]
		monthly := sortedOrderedMap(a.monthly)
		perPerson.Set(name, Person{
			Matrix:        a.matrix,
			MonthlyVolume: monthly,
			WeekdayCount:  a.weekday,
			WeekendCount:  a.weekend,
			VolumeTrend:   textproc.SeriesSlope(values(monthly)),
		})
	}

	monthlyTotal := sortedOrderedMap(combinedMonthly)
	return Result{
		PerPerson:    perPerson,
		Combined:     combined,
		MonthlyTotal: monthlyTotal,
		VolumeTrend:  textproc.SeriesSlope(values(monthlyTotal)),
	}
}

func sortedOrderedMap(m map[string]int) *chatmodel.OrderedMap[int] {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := chatmodel.NewOrderedMap[int]()
	for _, k := range keys {
		out.Set(k, m[k])
	}
	return out
}

func values(m *chatmodel.OrderedMap[int]) []float64 {
	out := make([]float64, 0, m.Len())
	m.Range(func(_ string, v int) bool {
		out = append(out, float64(v))
		return true
	})
	return out
}
