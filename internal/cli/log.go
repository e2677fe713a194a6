// Package cli implements the dagstats command-line interface.
//
// The root command reads a transaction database and prints its summary
// statistics. Subcommands expose the same pipeline in other shapes:
//
//   - inspect: Per-node table and timestamp histogram
//   - dot: Graphviz DOT or SVG of the graph
//   - generate: Random valid databases for testing
//   - serve: HTTP API with Prometheus metrics
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that stdout carries only command output. Loggers are passed
// through context.Context to allow structured progress tracking.
//
// # Configuration
//
// Defaults come from an optional TOML file (see internal/config); the
// --precision, --bucket-width and --format flags override it.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time, e.g. "Generated 100 records (3ms)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, falling back to log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
