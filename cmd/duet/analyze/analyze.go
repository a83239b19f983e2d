// Package analyzecmder provides the analyze command for parsing a chat
// export and computing its quantitative result.
package analyzecmder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/papercomputeco/duet/pkg/analysis"
	"github.com/papercomputeco/duet/pkg/chatmodel"
	"github.com/papercomputeco/duet/pkg/cliui"
	"github.com/papercomputeco/duet/pkg/config"
	"github.com/papercomputeco/duet/pkg/logger"
	"github.com/papercomputeco/duet/pkg/parser"
)

const analyzeLongDesc string = `Analyze parses a chat transcript export and computes its quantitative result.

Examples:
  duet analyze export.txt
  duet analyze message_1.json message_2.json
  duet analyze --platform whatsapp chat.txt
  duet analyze export.txt --out result.json`

const analyzeShortDesc string = "Parse a transcript export and compute metrics"

type analyzeCommander struct {
	platform string
	out      string
	format   string
	watch    bool
}

// NewAnalyzeCmd creates the analyze cobra command.
func NewAnalyzeCmd() *cobra.Command {
	cmder := &analyzeCommander{}

	cmd := &cobra.Command{
		Use:   "analyze <files...>",
		Short: analyzeShortDesc,
		Long:  analyzeLongDesc,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmder.run(cmd, args)
		},
	}

	cmd.Flags().StringVar(&cmder.platform, "platform", "", "Override format detection (messenger|instagram|whatsapp|telegram)")
	cmd.Flags().StringVarP(&cmder.out, "out", "o", "", "Write the full JSON result to this path")
	cmd.Flags().StringVar(&cmder.format, "format", "text", "Summary format to print: text|json")
	cmd.Flags().BoolVar(&cmder.watch, "watch", false, "Re-run analysis whenever an input file changes")

	return cmd
}

func (c *analyzeCommander) run(cmd *cobra.Command, paths []string) error {
	debug, _ := cmd.Flags().GetBool("debug")
	log := logger.New(logger.WithDebug(debug))

	configDir, _ := cmd.Flags().GetString("config-dir")
	cfg := config.NewDefaultConfig().Watch
	if configer, err := config.NewConfiger(configDir); err == nil {
		if loaded, err := configer.LoadConfig(); err == nil {
			cfg = loaded.Watch
		}
	}

	runOnce := func() error {
		inputs := make([]parser.Input, 0, len(paths))
		for _, p := range paths {
			data, err := os.ReadFile(p)
			if err != nil {
				return fmt.Errorf("analyze: reading %s: %w", p, err)
			}
			inputs = append(inputs, parser.Input{Name: filepath.Base(p), Data: data})
		}

		var conv *chatmodel.ParsedConversation
		err := cliui.Step(cmd.OutOrStdout(), "parsing transcript", func() error {
			pc, warnings, err := parser.ParseAll(inputs, parser.Format(c.platform))
			if err != nil {
				return err
			}
			for _, w := range warnings {
				log.Warn(w.Message, "kind", string(w.Kind))
			}
			conv = pc
			return nil
		})
		if err != nil {
			return err
		}

		var result *analysis.QuantitativeAnalysis
		err = cliui.Step(cmd.OutOrStdout(), "computing metrics", func() error {
			r, err := analysis.Run(cmd.Context(), conv, log)
			if err != nil {
				return err
			}
			result = r
			return nil
		})
		if err != nil {
			return err
		}

		if c.out != "" {
			if err := writeJSON(c.out, result); err != nil {
				return fmt.Errorf("analyze: writing %s: %w", c.out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", c.out)
		}

		switch strings.ToLower(c.format) {
		case "json":
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		default:
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprint(cmd.OutOrStdout(), result.RenderSummary())
			return nil
		}
	}

	if c.watch || cfg.Enabled {
		debounce := time.Duration(cfg.DebounceMS) * time.Millisecond
		if debounce <= 0 {
			debounce = 750 * time.Millisecond
		}
		return watch(cmd.Context(), cmd.OutOrStdout(), paths, debounce, runOnce)
	}

	return runOnce()
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
