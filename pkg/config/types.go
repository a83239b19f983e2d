package config

// Config represents the persistent duet configuration stored as
// config.toml in the .duet/ directory. The TOML layout uses sections for
// logical grouping. Config governs CLI-level concerns only — it never
// carries metric thresholds, which are fixed constants by design.
type Config struct {
	Version int           `toml:"version" mapstructure:"version"`
	Output  OutputConfig  `toml:"output"  mapstructure:"output"`
	Lexicon LexiconConfig `toml:"lexicon" mapstructure:"lexicon"`
	Log     LogConfig     `toml:"log"     mapstructure:"log"`
	TUI     TUIConfig     `toml:"tui"     mapstructure:"tui"`
	Watch   WatchConfig   `toml:"watch"   mapstructure:"watch"`
}

// OutputConfig controls where and how `duet analyze` writes its result.
type OutputConfig struct {
	Format string `toml:"format,omitempty" mapstructure:"format"` // "json" or "text"
	Dir    string `toml:"dir,omitempty"    mapstructure:"dir"`
}

// LexiconConfig lets an operator point at a directory of replacement word
// lists instead of the embedded defaults, for calibrating a language the
// bundled lexicons don't cover.
type LexiconConfig struct {
	OverrideDir string `toml:"override_dir,omitempty" mapstructure:"override_dir"`
}

// LogConfig controls the pkg/logger construction.
type LogConfig struct {
	Level string `toml:"level,omitempty" mapstructure:"level"` // "debug", "info", "warn", "error"
	JSON  bool   `toml:"json,omitempty"  mapstructure:"json"`
}

// TUIConfig toggles the interactive bubbletea report viewer.
type TUIConfig struct {
	Enabled bool `toml:"enabled,omitempty" mapstructure:"enabled"`
}

// WatchConfig controls `duet analyze --watch` re-run behavior.
type WatchConfig struct {
	Enabled    bool `toml:"enabled,omitempty"     mapstructure:"enabled"`
	DebounceMS int  `toml:"debounce_ms,omitempty" mapstructure:"debounce_ms"`
}

// validConfigKeys is the authoritative set of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var validConfigKeys = map[string]bool{
	"output.format":        true,
	"output.dir":           true,
	"lexicon.override_dir": true,
	"log.level":            true,
	"log.json":             true,
	"tui.enabled":          true,
	"watch.enabled":        true,
	"watch.debounce_ms":    true,
}
