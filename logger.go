package snowfall

import (
	"context"
	"log/slog"
	"sync/atomic"
)

// nopHandler is a slog.Handler that silently discards all log records.
// Enabled returns false so callers skip message formatting entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called while the scheduler goroutine is logging.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for snowfall and its host packages.
// By default, snowfall produces no log output.
//
// Pass nil to restore the default silent behavior.
//
// Log levels used by snowfall:
//   - [slog.LevelDebug]: field creation and resize
//   - [slog.LevelInfo]: renderer start and stop
//   - [slog.LevelWarn]: frames dropped because a host failed to draw
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
}

// Logger returns the current logger used by snowfall.
// Host packages (capture, term, window) call this to share the same
// configuration.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
