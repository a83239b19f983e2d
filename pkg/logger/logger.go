// Package logger builds the *slog.Logger used across the engine and CLI.
// New composes a handler from Options: charmbracelet/log for colorized
// human-facing CLI output, slog's JSON handler for machine-readable logs,
// or both at once via Multi.
package logger

import (
	"context"
	"io"
	"log/slog"
	"os"

	charmlog "github.com/charmbracelet/log"
)

type config struct {
	level   slog.Level
	pretty  bool
	json    bool
	writers []io.Writer
	source  bool
}

// New builds a *slog.Logger from the given options. With no options it
// logs at Info level, pretty-printed, to stdout.
func New(opts ...Option) *slog.Logger {
	cfg := config{level: slog.LevelInfo, pretty: true}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.json {
		cfg.pretty = false
	}

	w := io.Writer(os.Stdout)
	switch len(cfg.writers) {
	case 0:
	case 1:
		w = cfg.writers[0]
	default:
		w = io.MultiWriter(cfg.writers...)
	}

	if cfg.json {
		h := slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level:     cfg.level,
			AddSource: cfg.source,
		})
		return slog.New(h)
	}

	h := charmlog.NewWithOptions(w, charmlog.Options{
		Level:           charmLevel(cfg.level),
		ReportTimestamp: true,
		ReportCaller:    cfg.source,
	})
	return slog.New(h)
}

func charmLevel(level slog.Level) charmlog.Level {
	switch {
	case level <= slog.LevelDebug:
		return charmlog.DebugLevel
	case level <= slog.LevelInfo:
		return charmlog.InfoLevel
	case level <= slog.LevelWarn:
		return charmlog.WarnLevel
	default:
		return charmlog.ErrorLevel
	}
}

// Nop returns a *slog.Logger that discards everything, for tests and
// call sites that accept an optional logger.
func Nop() *slog.Logger {
	return slog.New(nopHandler{})
}

type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool   { return false }
func (nopHandler) Handle(context.Context, slog.Record) error  { return nil }
func (h nopHandler) WithAttrs(attrs []slog.Attr) slog.Handler { return h }
func (h nopHandler) WithGroup(name string) slog.Handler       { return h }
