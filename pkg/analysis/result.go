// Package analysis wires every metric module, the deep scanner, and the
// sampler into one top-level quantitative result, grounded on the
// teacher's flat DeckOverview aggregate (spec §9 — QUANTITATIVE RESULT).
package analysis

import (
	"strconv"

	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/deepscan"
	"github.com/papercomputeco/duet/pkg/metrics/bidresponse"
	"github.com/papercomputeco/duet/pkg/metrics/chronotype"
	"github.com/papercomputeco/duet/pkg/metrics/conflict"
	"github.com/papercomputeco/duet/pkg/metrics/engagement"
	"github.com/papercomputeco/duet/pkg/metrics/heatmap"
	"github.com/papercomputeco/duet/pkg/metrics/integrativecomplexity"
	"github.com/papercomputeco/duet/pkg/metrics/intimacy"
	"github.com/papercomputeco/duet/pkg/metrics/lsm"
	"github.com/papercomputeco/duet/pkg/metrics/narcissism"
	"github.com/papercomputeco/duet/pkg/metrics/pursuit"
	"github.com/papercomputeco/duet/pkg/metrics/ranking"
	"github.com/papercomputeco/duet/pkg/metrics/reciprocity"
	"github.com/papercomputeco/duet/pkg/metrics/repair"
	"github.com/papercomputeco/duet/pkg/metrics/temporalfocus"
	"github.com/papercomputeco/duet/pkg/metrics/timing"
	"github.com/papercomputeco/duet/pkg/metrics/volume"
	"github.com/papercomputeco/duet/pkg/sampler"
)

// QuantitativeAnalysis is the full set of computed metrics for one
// conversation. Modules whose preconditions weren't met are left as a nil
// pointer rather than a zero-valued struct, matching §7's "return
// undefined when the signal floor isn't met" contract.
type QuantitativeAnalysis struct {
	Metadata chatmodel.Metadata `json:"metadata"`

	Volume      volume.Result      `json:"volume"`
	Timing      timing.Result      `json:"timing"`
	Engagement  engagement.Result  `json:"engagement"`
	Heatmap     heatmap.Result     `json:"heatmap"`
	Reciprocity reciprocity.Result `json:"reciprocity"`
	Ranking     ranking.Result     `json:"ranking"`

	LSM                   *lsm.Result                   `json:"lsm,omitempty"`
	Narcissism            *narcissism.Result            `json:"narcissism,omitempty"`
	BidResponse           *bidresponse.Result           `json:"bidResponse,omitempty"`
	Pursuit               *pursuit.Result               `json:"pursuit,omitempty"`
	Conflict              *conflict.Result              `json:"conflict,omitempty"`
	Repair                *repair.Result                `json:"repair,omitempty"`
	IntegrativeComplexity *integrativecomplexity.Result `json:"integrativeComplexity,omitempty"`
	TemporalFocus         *temporalfocus.Result         `json:"temporalFocus,omitempty"`
	Chronotype            *chronotype.Result            `json:"chronotype,omitempty"`
	Intimacy              *intimacy.Result              `json:"intimacy,omitempty"`

	DeepScan *deepscan.Result `json:"deepScan,omitempty"`
	Sampler  *sampler.Result  `json:"-"`

	// RunID correlates this run's log lines across the worker pool. It is
	// generated fresh per Run call and deliberately excluded from the
	// serialized result so the same conversation always marshals to the
	// same JSON bytes.
	RunID string `json:"-"`
}

// RenderSummary reduces the analysis to its headline facts and renders them
// through the sampler's deterministic plain-text format.
func (a *QuantitativeAnalysis) RenderSummary() string {
	return sampler.RenderSummary(a.headlineFacts())
}

// headlineFacts reduces the analysis to the label/value pairs the sampler's
// plain-text renderer emits alongside message samples.
func (a *QuantitativeAnalysis) headlineFacts() []sampler.Fact {
	facts := []sampler.Fact{
		{Label: "total messages", Value: strconv.Itoa(a.Metadata.TotalMessages)},
		{Label: "duration days", Value: strconv.Itoa(a.Metadata.DurationDays)},
	}
	if a.LSM != nil {
		facts = append(facts, sampler.Fact{Label: "language style match", Value: a.LSM.Band})
	}
	if a.BidResponse != nil {
		facts = append(facts, sampler.Fact{Label: "bid-response band", Value: a.BidResponse.Band})
	}
	if a.Chronotype != nil {
		facts = append(facts, sampler.Fact{Label: "chronotype compatible", Value: strconv.FormatBool(a.Chronotype.IsCompatible)})
	}
	if a.Intimacy != nil {
		facts = append(facts, sampler.Fact{Label: "intimacy trend", Value: a.Intimacy.Label})
	}
	return facts
}
