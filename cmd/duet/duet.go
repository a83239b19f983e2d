// Package duetcmder assembles the duet root command.
package duetcmder

import (
	"github.com/spf13/cobra"

	analyzecmder "github.com/papercomputeco/duet/cmd/duet/analyze"
	reportcmder "github.com/papercomputeco/duet/cmd/duet/report"
	viewcmder "github.com/papercomputeco/duet/cmd/duet/view"
)

const duetLongDesc string = `Duet analyzes exported chat transcripts between two or more people.

Run analysis using:
  duet analyze <files...>       Parse a transcript export and compute metrics
  duet analyze --format json    Write the raw quantitative result as JSON

View the result using:
  duet report <result.json>     Render a readable markdown-style report
  duet view <result.json>       Open an interactive terminal dashboard

Supported export formats: Messenger/Instagram JSON, WhatsApp .txt, Telegram JSON.`

const duetShortDesc string = "Duet - chat transcript analysis"

// NewDuetCmd builds the root duet command with every subcommand attached.
func NewDuetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "duet",
		Short: duetShortDesc,
		Long:  duetLongDesc,
	}

	cmd.PersistentFlags().BoolP("debug", "d", false, "Enable debug logging")
	cmd.PersistentFlags().String("config-dir", "", "Override path to .duet/ config directory")

	cmd.AddCommand(analyzecmder.NewAnalyzeCmd())
	cmd.AddCommand(reportcmder.NewReportCmd())
	cmd.AddCommand(viewcmder.NewViewCmd())

	return cmd
}
