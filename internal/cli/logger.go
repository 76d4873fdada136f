package cli

import (
	"io"
	"log/slog"
)

// NewLogger returns a text logger on w. quiet keeps errors only; each
// verbose step lowers the level from warn to info to debug.
func NewLogger(w io.Writer, verbose int, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case quiet:
		level = slog.LevelError
	case verbose >= 2:
		level = slog.LevelDebug
	case verbose == 1:
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
