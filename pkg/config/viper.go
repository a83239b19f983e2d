package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"github.com/papercomputeco/duet/pkg/dotdir"
)

// InitViper creates and returns a configured *viper.Viper.
// It sets defaults from NewDefaultConfig(), reads the config.toml file
// (if found via dotdir resolution), and binds environment variables
// with the DUET_ prefix.
//
// Config precedence (highest to lowest):
//  1. CLI flags (once bound via BindRegisteredFlags)
//  2. Environment variables (DUET_OUTPUT_FORMAT, DUET_LOG_LEVEL, etc.)
//  3. config.toml file values
//  4. Defaults from NewDefaultConfig()
func InitViper(configDir string) (*viper.Viper, error) {
	v := viper.New()

	// 1. Register all defaults from NewDefaultConfig().
	setViperDefaults(v)

	// 2. Config file discovery via dotdir resolution.
	v.SetConfigName("config")
	v.SetConfigType("toml")

	ddm := dotdir.NewManager()
	target, err := ddm.Target(configDir)
	if err != nil {
		return nil, fmt.Errorf("resolving config dir: %w", err)
	}

	if target != "" {
		v.AddConfigPath(target)
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file not found errors are fine, defaults will apply.
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	// 3. Environment variables: DUET_OUTPUT_FORMAT, DUET_LOG_LEVEL, etc.
	v.SetEnvPrefix("DUET")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper
// using dotted-key notation. This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("version", d.Version)

	// Output
	v.SetDefault("output.format", d.Output.Format)
	v.SetDefault("output.dir", d.Output.Dir)

	// Lexicon
	v.SetDefault("lexicon.override_dir", d.Lexicon.OverrideDir)

	// Log
	v.SetDefault("log.level", d.Log.Level)
	v.SetDefault("log.json", d.Log.JSON)

	// TUI
	v.SetDefault("tui.enabled", d.TUI.Enabled)

	// Watch
	v.SetDefault("watch.enabled", d.Watch.Enabled)
	v.SetDefault("watch.debounce_ms", d.Watch.DebounceMS)
}
