// Package reportcmder provides the report command for rendering a computed
// quantitative result as a readable terminal document.
package reportcmder

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/analysis"
	"github.com/papercomputeco/duet/pkg/cliui"
)

const reportLongDesc string = `Report renders a previously computed duet JSON result as a markdown-style
terminal document.

Examples:
  duet report result.json
  duet analyze export.txt --out result.json && duet report result.json`

const reportShortDesc string = "Render a readable report from a JSON result"

// NewReportCmd creates the report cobra command.
func NewReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <result.json>",
		Short: reportShortDesc,
		Long:  reportLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args[0])
		},
	}
	return cmd
}

func run(cmd *cobra.Command, path string) error {
	result, err := load(path)
	if err != nil {
		return err
	}

	markdown := render(result)
	out, err := cliui.RenderMarkdown(markdown)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}

func load(path string) (*analysis.QuantitativeAnalysis, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("report: reading %s: %w", path, err)
	}
	var result analysis.QuantitativeAnalysis
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("report: decoding %s: %w", path, err)
	}
	return &result, nil
}

func render(a *analysis.QuantitativeAnalysis) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Conversation Report\n\n")
	fmt.Fprintf(&b, "%d messages over %d days.\n\n", a.Metadata.TotalMessages, a.Metadata.DurationDays)

	fmt.Fprintf(&b, "## Headline\n\n")
	b.WriteString(a.RenderSummary())
	b.WriteString("\n")

	if a.LSM != nil {
		fmt.Fprintf(&b, "## Language Style Matching\n\nOverall score %.1f (%s).\n\n", a.LSM.Overall, a.LSM.Band)
	}
	if a.BidResponse != nil {
		fmt.Fprintf(&b, "## Bid for Connection\n\nOverall response rate %.1f%% (%s).\n\n", a.BidResponse.OverallRate, a.BidResponse.Band)
	}
	if a.Pursuit != nil {
		fmt.Fprintf(&b, "## Pursuit-Withdrawal\n\nPursuer: %s. Withdrawer: %s. %d cycles observed.\n\n",
			a.Pursuit.Pursuer, a.Pursuit.Withdrawer, len(a.Pursuit.Cycles))
	}
	if a.Conflict != nil {
		fmt.Fprintf(&b, "## Conflict\n\n%d conflict events detected. Most conflict-prone: %s.\n\n",
			a.Conflict.TotalConflicts, a.Conflict.MostConflictProne)
	}
	if a.Chronotype != nil {
		fmt.Fprintf(&b, "## Chronotype\n\nMidpoint difference: %.1f hours. Compatible: %v.\n\n",
			a.Chronotype.Delta, a.Chronotype.IsCompatible)
	}
	if a.Intimacy != nil {
		fmt.Fprintf(&b, "## Intimacy Trajectory\n\nTrend: %s (slope %.2f).\n\n", a.Intimacy.Label, a.Intimacy.Slope)
	}

	fmt.Fprintf(&b, "## Ranking\n\nVolume p%.0f, response p%.0f, silence p%.0f, asymmetry p%.0f.\n\n",
		a.Ranking.VolumePercentile, a.Ranking.ResponsePercentile, a.Ranking.SilencePercentile, a.Ranking.AsymmetryPercentile)

	return b.String()
}
