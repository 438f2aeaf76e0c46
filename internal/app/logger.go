package app

import (
	"io"
	"log/slog"
)

// newLogger builds the app's isolated slog.Logger. It never touches the
// global default, so tests and embedders keep their own logging intact.
// An unrecognized level falls back to info rather than failing startup.
func newLogger(levelStr, formatStr string, outW io.Writer) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(levelStr)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if formatStr == "json" {
		return slog.New(slog.NewJSONHandler(outW, opts))
	}
	return slog.New(slog.NewTextHandler(outW, opts))
}
