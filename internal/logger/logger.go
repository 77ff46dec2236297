// Package logger is a thin wrapper around zerolog so the rest of the
// program logs through package-level helpers instead of passing a logger
// value through every constructor.
package logger

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"rtspproxy_go/internal/types"
)

var log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
	With().Timestamp().Logger()

// Init configures the global logger from LogConf. The command-line verbosity
// takes precedence over the configured level: -v selects debug, -V trace.
func Init(cfg types.LogConf, verbosity int) error {
	level := zerolog.InfoLevel
	if cfg.Level != "" {
		parsed, err := zerolog.ParseLevel(cfg.Level)
		if err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		level = parsed
	}
	switch verbosity {
	case types.Verbose:
		level = zerolog.DebugLevel
	case types.VeryVerbose:
		level = zerolog.TraceLevel
	}

	var out io.Writer = os.Stderr
	if cfg.Format != "json" {
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}

	log = zerolog.New(out).Level(level).With().Timestamp().Logger()
	return nil
}

func Trace() *zerolog.Event { return log.Trace() }
func Debug() *zerolog.Event { return log.Debug() }
func Info() *zerolog.Event  { return log.Info() }
func Warn() *zerolog.Event  { return log.Warn() }
func Error() *zerolog.Event { return log.Error() }

// Fatal logs the event and exits with status 1. Only cmd/ entrypoints
// should reach for this.
func Fatal() *zerolog.Event { return log.Fatal() }
