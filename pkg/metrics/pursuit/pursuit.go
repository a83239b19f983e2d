// Package pursuit detects pursuit-withdrawal cycles: bursts of same-sender
// messages followed by a long silence from the other side (spec §4.10).
package pursuit

import (
	"strings"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/lexicon"
	"github.com/papercomputeco/duet/pkg/textproc"
)

const (
	burstWindowMillis      = 30 * 60 * 1000
	withdrawalThreshold    = 4 * 60 * 60 * 1000
	minBurstLen            = 4
	gatedBurstMax          = 5
	unconditionalBurstLen  = 6
	minTotalMessages       = 50
	minCycles              = 2
	mutualBandFraction     = 0.20
	sentinelMutual         = "mutual"
)

// Cycle records one pursuit burst and, if found, its paired withdrawal.
type Cycle struct {
	Pursuer       string
	StartTS       int64
	LogicalCount  int
	SilenceMillis int64
	Resolved      bool
}

// Result is the §4.10 output.
type Result struct {
	Cycles           []Cycle
	Pursuer          string
	Withdrawer       string
	EscalationTrend  float64
}

// Compute walks conv's message stream for pursuit-withdrawal cycles,
// returning ok=false when the preconditions aren't met.
func Compute(conv *chatmodel.ParsedConversation) (Result, bool) {
	messages := conv.NonSystemMessages()
	if len(messages) < minTotalMessages || len(conv.ParticipantNames()) < 2 {
		return Result{}, false
	}

	logical := textproc.ConsolidateEnterAsComma(messages)
	bundle := lexicon.Default()

	var cycles []Cycle
	burstCounts := map[string]int{}
	for _, name := range conv.ParticipantNames() {
		burstCounts[name] = 0
	}

	i := 0
	for i < len(logical) {
		j := i
		for j+1 < len(logical) &&
			logical[j+1].Sender == logical[i].Sender &&
			messages[logical[j+1].StartIndex].Timestamp-messages[logical[j].EndIndex].Timestamp < burstWindowMillis {
			j++
		}

		burstLen := j - i + 1
		if burstLen >= minBurstLen && qualifies(messages, logical[i:j+1], burstLen, bundle) {
			sender := logical[i].Sender
			burstCounts[sender]++

			lastRawIdx := logical[j].EndIndex
			if lastRawIdx+1 < len(messages) {
				next := messages[lastRawIdx+1]
				last := messages[lastRawIdx]
				gap := next.Timestamp - last.Timestamp
				suppressed := textproc.IsOvernightSuppressed(last.Time().Hour(), gap)
				if gap >= withdrawalThreshold && !suppressed {
					cycles = append(cycles, Cycle{
						Pursuer:       sender,
						StartTS:       messages[logical[i].StartIndex].Timestamp,
						LogicalCount:  burstLen,
						SilenceMillis: gap,
						Resolved:      next.Sender != sender,
					})
				}
			}
		}
		i = j + 1
	}

	if len(cycles) < minCycles {
		return Result{}, false
	}

	pursuer, withdrawer := roles(burstCounts, len(cycles))
	return Result{
		Cycles:          cycles,
		Pursuer:         pursuer,
		Withdrawer:      withdrawer,
		EscalationTrend: escalationTrend(cycles),
	}, true
}

// qualifies applies the demand-marker gate for 4-5 message bursts; bursts
// of 6 or more logical messages are flagged unconditionally.
func qualifies(messages []chatmodel.UnifiedMessage, burst []textproc.LogicalMessage, burstLen int, bundle *lexicon.Bundle) bool {
	if burstLen >= unconditionalBurstLen {
		return true
	}
	if burstLen > gatedBurstMax {
		return true
	}
	for _, lm := range burst {
		for k := lm.StartIndex; k <= lm.EndIndex; k++ {
			content := messages[k].Content
			trimmed := strings.TrimSpace(content)
			if trimmed == "??" || trimmed == "???" || trimmed == "????" {
				return true
			}
			lower := strings.ToLower(trimmed)
			for _, marker := range bundle.DemandMarkers.Words() {
				if strings.Contains(lower, marker) {
					return true
				}
			}
		}
	}
	return false
}

func roles(counts map[string]int, totalCycles int) (pursuer, withdrawer string) {
	var top, bottom string
	var topCount, bottomCount = -1, -1
	for name, c := range counts {
		if c > topCount {
			top, topCount = name, c
		}
	}
	for name, c := range counts {
		if bottomCount == -1 || c < bottomCount {
			bottom, bottomCount = name, c
		}
	}
	if top == "" {
		return sentinelMutual, sentinelMutual
	}
	if float64(topCount-bottomCount) < mutualBandFraction*float64(totalCycles) {
		return sentinelMutual, sentinelMutual
	}
	return top, bottom
}

func escalationTrend(cycles []Cycle) float64 {
	if len(cycles) < 2 {
		return 0
	}
	half := len(cycles) / 2
	first := cycles[:half]
	second := cycles[half:]

	avg := func(cs []Cycle) float64 {
		if len(cs) == 0 {
			return 0
		}
		var sum int64
		for _, c := range cs {
			sum += c.SilenceMillis
		}
		return float64(sum) / float64(len(cs))
	}

	firstAvg := avg(first)
	if firstAvg == 0 {
		return 0
	}
	return avg(second)/firstAvg - 1
}
