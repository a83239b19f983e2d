// Package sampler selects representative message subsets for downstream
// narrative generation and renders a deterministic plain-text summary of a
// computed quantitative result (spec §4.19).
package sampler

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	minEligibleMessages = 10
	overviewBudget      = 250
	oldBandShare        = 0.75
	oldBudgetShare      = 0.40
	recentBudgetShare   = 0.60
	dynamicsBudget      = 200
	withinGapPositions  = 3
	monthChangeFloor    = 0.30
	longestMessageShare = 0.05
	perPersonBudget     = 150
	maxProfiledPeople   = 8
	groupModeThreshold  = 2
	largeGapMillis      = 48 * 60 * 60 * 1000
)

// Selection is an ordered set of message indices into the source
// conversation's message slice.
type Selection struct {
	Indices []int
}

// Messages resolves the selection's indices against conv's messages.
func (s Selection) Messages(conv *chatmodel.ParsedConversation) []chatmodel.UnifiedMessage {
	out := make([]chatmodel.UnifiedMessage, 0, len(s.Indices))
	for _, i := range s.Indices {
		out = append(out, conv.Messages[i])
	}
	return out
}

// Result is the §4.19 output.
type Result struct {
	Overview  Selection
	Dynamics  Selection
	PerPerson *chatmodel.OrderedMap[Selection]
}

// Fact is one label/value pair from a computed quantitative result, fed to
// RenderSummary.
type Fact struct {
	Label string
	Value string
}

// Compute builds the overview, dynamics, and per-person samples, failing
// when fewer than 10 eligible messages exist overall.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) < minEligibleMessages {
		return Result{}, false
	}

	return Result{
		Overview:  overview(messages),
		Dynamics:  dynamics(messages),
		PerPerson: perPerson(messages),
	}, true
}

func overview(messages []chatmodel.UnifiedMessage) Selection {
	byMonth, order := groupByMonth(messages)
	if len(order) <= 1 {
		return Selection{Indices: topUp(stratifiedSample(byMonth, order, overviewBudget), messages, overviewBudget)}
	}

	splitIdx := int(math.Ceil(float64(len(order)) * oldBandShare))
	if splitIdx >= len(order) {
		splitIdx = len(order) - 1
	}
	old := order[:splitIdx]
	recent := order[splitIdx:]

	var picked []int
	picked = append(picked, stratifiedSample(byMonth, old, int(float64(overviewBudget)*oldBudgetShare))...)
	picked = append(picked, stratifiedSample(byMonth, recent, int(float64(overviewBudget)*recentBudgetShare))...)
	sort.Ints(picked)

	return Selection{Indices: topUp(picked, messages, overviewBudget)}
}

func dynamics(messages []chatmodel.UnifiedMessage) Selection {
	candidates := map[int]bool{}

	for i, m := range messages {
		if len(m.Reactions) > 0 {
			candidates[i] = true
		}
	}

	for i := 1; i < len(messages); i++ {
		if messages[i].Timestamp-messages[i-1].Timestamp >= largeGapMillis {
			for k := i - withinGapPositions; k <= i+withinGapPositions; k++ {
				if k >= 0 && k < len(messages) {
					candidates[k] = true
				}
			}
		}
	}

	byMonth, order := groupByMonth(messages)
	for idx := 1; idx < len(order); idx++ {
		prev := len(byMonth[order[idx-1]])
		cur := len(byMonth[order[idx]])
		if prev == 0 {
			continue
		}
		change := math.Abs(float64(cur-prev)) / float64(prev)
		if change > monthChangeFloor {
			for _, i := range byMonth[order[idx]] {
				candidates[i] = true
			}
		}
	}

	lengths := make([]int, len(messages))
	for i, m := range messages {
		lengths[i] = len(textproc.Tokenize(m.Content))
	}
	threshold := percentileThreshold(lengths, 1-longestMessageShare)
	for i, l := range lengths {
		if l >= threshold {
			candidates[i] = true
		}
	}

	indices := make([]int, 0, len(candidates))
	for i := range candidates {
		indices = append(indices, i)
	}
	sort.Ints(indices)
	if len(indices) > dynamicsBudget {
		indices = evenSample(indices, dynamicsBudget)
	}
	return Selection{Indices: indices}
}

func perPerson(messages []chatmodel.UnifiedMessage) *chatmodel.OrderedMap[Selection] {
	byPerson := map[string][]int{}
	var order []string
	for i, m := range messages {
		if _, ok := byPerson[m.Sender]; !ok {
			order = append(order, m.Sender)
		}
		byPerson[m.Sender] = append(byPerson[m.Sender], i)
	}

	if len(order) > groupModeThreshold {
		sort.SliceStable(order, func(a, b int) bool { return len(byPerson[order[a]]) > len(byPerson[order[b]]) })
		if len(order) > maxProfiledPeople {
			order = order[:maxProfiledPeople]
		}
	}

	result := chatmodel.NewOrderedMap[Selection]()
	for _, name := range order {
		indices := byPerson[name]
		byMonth, monthOrder := groupByMonthFromIndices(messages, indices)
		sample := stratifiedSample(byMonth, monthOrder, perPersonBudget)
		sort.Ints(sample)
		result.Set(name, Selection{Indices: sample})
	}
	return result
}

func groupByMonth(messages []chatmodel.UnifiedMessage) (map[string][]int, []string) {
	indices := make([]int, len(messages))
	for i := range messages {
		indices[i] = i
	}
	return groupByMonthFromIndices(messages, indices)
}

func groupByMonthFromIndices(messages []chatmodel.UnifiedMessage, indices []int) (map[string][]int, []string) {
	byMonth := map[string][]int{}
	var order []string
	seen := map[string]bool{}
	for _, i := range indices {
		mk := textproc.MonthKey(messages[i].Time())
		if !seen[mk] {
			seen[mk] = true
			order = append(order, mk)
		}
		byMonth[mk] = append(byMonth[mk], i)
	}
	return byMonth, order
}

func stratifiedSample(byMonth map[string][]int, order []string, budget int) []int {
	if budget <= 0 || len(order) == 0 {
		return nil
	}
	perMonth := budget / len(order)
	remainder := budget % len(order)

	var out []int
	for i, mk := range order {
		quota := perMonth
		if i < remainder {
			quota++
		}
		out = append(out, evenSample(byMonth[mk], quota)...)
	}
	return out
}

func evenSample(indices []int, n int) []int {
	if n <= 0 || len(indices) == 0 {
		return nil
	}
	if n >= len(indices) {
		return append([]int(nil), indices...)
	}
	step := float64(len(indices)) / float64(n)
	out := make([]int, 0, n)
	for i := 0; i < n; i++ {
		idx := int(float64(i) * step)
		if idx >= len(indices) {
			idx = len(indices) - 1
		}
		out = append(out, indices[idx])
	}
	return out
}

// topUp fills picked up to budget from the global message pool, in order,
// skipping anything already selected.
func topUp(picked []int, messages []chatmodel.UnifiedMessage, budget int) []int {
	have := map[int]bool{}
	for _, i := range picked {
		have[i] = true
	}
	if len(have) >= budget {
		out := make([]int, 0, len(have))
		for i := range have {
			out = append(out, i)
		}
		sort.Ints(out)
		return out
	}
	for i := range messages {
		if len(have) >= budget {
			break
		}
		if !have[i] {
			have[i] = true
		}
	}
	out := make([]int, 0, len(have))
	for i := range have {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func percentileThreshold(values []int, p float64) int {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]int(nil), values...)
	sort.Ints(sorted)
	idx := int(float64(len(sorted)-1) * p)
	return sorted[idx]
}

// RenderSummary renders facts as a deterministic plain-text block, one
// label/value pair per line in the order given.
func RenderSummary(facts []Fact) string {
	var b strings.Builder
	for _, f := range facts {
		fmt.Fprintf(&b, "%s: %s\n", f.Label, f.Value)
	}
	return b.String()
}
