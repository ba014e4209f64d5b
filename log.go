package mommy

import (
	"io"
	"log/slog"
)

// NewLogger returns the logger for one invocation. Debug records go to w only
// when debug is set; otherwise everything is discarded so the wrapped
// command's stderr stays untouched.
func NewLogger(w io.Writer, debug bool) *slog.Logger {
	if !debug || w == nil {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})).
		With("component", "mommy")
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.New(slog.DiscardHandler)
	}
	return l
}
