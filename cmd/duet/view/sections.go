package viewcmder

import (
	"fmt"
	"strings"

	"github.com/papercomputeco/duet/pkg/analysis"
)

// section is one titled page of the dashboard.
type section struct {
	Title string
	Body  string
}

// buildSections flattens a computed result into navigable pages, skipping
// any module that reported an absent result.
func buildSections(a *analysis.QuantitativeAnalysis) []section {
	sections := []section{
		{Title: "Overview", Body: fmt.Sprintf(
			"%d messages over %d days\nGroup conversation: %v",
			a.Metadata.TotalMessages, a.Metadata.DurationDays, a.Metadata.IsGroup,
		)},
		{Title: "Ranking", Body: fmt.Sprintf(
			"Volume       p%.0f\nResponse     p%.0f\nSilence      p%.0f\nAsymmetry    p%.0f",
			a.Ranking.VolumePercentile, a.Ranking.ResponsePercentile,
			a.Ranking.SilencePercentile, a.Ranking.AsymmetryPercentile,
		)},
		{Title: "Reciprocity", Body: fmt.Sprintf(
			"Message balance    %.1f\nInitiation balance %.1f\nResponse symmetry %.1f\nReaction balance   %.1f\nOverall           %.1f",
			a.Reciprocity.MessageBalance, a.Reciprocity.InitiationBalance,
			a.Reciprocity.ResponseTimeSymmetry, a.Reciprocity.ReactionBalance, a.Reciprocity.Overall,
		)},
	}

	if a.LSM != nil {
		sections = append(sections, section{Title: "Language Style Matching", Body: fmt.Sprintf(
			"Overall %.1f (%s)\nChameleon: %s", a.LSM.Overall, a.LSM.Band, orNone(a.LSM.Chameleon),
		)})
	}
	if a.BidResponse != nil {
		sections = append(sections, section{Title: "Bids for Connection", Body: fmt.Sprintf(
			"Overall response rate %.1f%% (%s)", a.BidResponse.OverallRate, a.BidResponse.Band,
		)})
	}
	if a.Pursuit != nil {
		sections = append(sections, section{Title: "Pursuit-Withdrawal", Body: fmt.Sprintf(
			"Pursuer:    %s\nWithdrawer: %s\nCycles:     %d\nEscalation trend: %.2f",
			orNone(a.Pursuit.Pursuer), orNone(a.Pursuit.Withdrawer), len(a.Pursuit.Cycles), a.Pursuit.EscalationTrend,
		)})
	}
	if a.Conflict != nil {
		sections = append(sections, section{Title: "Conflict", Body: fmt.Sprintf(
			"Total conflicts:      %d\nMost conflict-prone:  %s",
			a.Conflict.TotalConflicts, orNone(a.Conflict.MostConflictProne),
		)})
	}
	if a.Chronotype != nil {
		sections = append(sections, section{Title: "Chronotype", Body: fmt.Sprintf(
			"Midpoint gap:   %.1fh\nCompatible:     %v", a.Chronotype.Delta, a.Chronotype.IsCompatible,
		)})
	}
	if a.Intimacy != nil {
		sections = append(sections, section{Title: "Intimacy Trajectory", Body: fmt.Sprintf(
			"Trend: %s\nSlope: %.2f", a.Intimacy.Label, a.Intimacy.Slope,
		)})
	}
	if a.DeepScan != nil && strings.TrimSpace(a.DeepScan.Summary) != "" {
		sections = append(sections, section{Title: "Deep Scan", Body: a.DeepScan.Summary})
	}

	return sections
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
