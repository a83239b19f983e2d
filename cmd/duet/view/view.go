// Package viewcmder provides the view command: an interactive terminal
// dashboard over a previously computed duet JSON result.
package viewcmder

import (
	"encoding/json"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/analysis"
)

const viewLongDesc string = `View opens an interactive terminal dashboard over a computed duet result.

Navigate sections with the arrow keys or j/k, and quit with q or ctrl+c.

Examples:
  duet analyze export.txt --out result.json && duet view result.json`

const viewShortDesc string = "Open an interactive terminal dashboard"

// NewViewCmd creates the view cobra command.
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view <result.json>",
		Short: viewShortDesc,
		Long:  viewLongDesc,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0])
		},
	}
	return cmd
}

func run(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("view: reading %s: %w", path, err)
	}

	var result analysis.QuantitativeAnalysis
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("view: decoding %s: %w", path, err)
	}

	sections := buildSections(&result)
	p := tea.NewProgram(newModel(sections), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
