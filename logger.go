package quads

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler drops every record. Enabled reports false, so Step skips
// building split attributes when nobody listens.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr holds the package logger. Models capture it in New, while
// animate reads it on every progress report.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger routes the output of every Model built without WithLogger, and
// of the animate package, to l. Models already built keep their logger.
// Pass nil to silence the package again, which is the default.
//
// Records emitted:
//   - [slog.LevelDebug] "split": rect, score and leaf count after each Step;
//     "gif written" and "apng written" from the animation sinks
//   - [slog.LevelInfo] "model created" with the source size and root error,
//     "converged" when no leaf can be split, "animation progress" every
//     100 frames and "animation converged" when recording stops early
//
// Example:
//
//	quads.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the package logger. It is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
