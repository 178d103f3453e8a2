package logger

import (
	"io"
	"log/slog"
	"os"
)

// Init installs the process-wide logger. Development and debug runs get the
// human-readable text handler, everything else logs JSON.
func Init(env string, debug bool) *slog.Logger {
	return InitWriter(os.Stdout, env, debug)
}

func InitWriter(w io.Writer, env string, debug bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}

	var handler slog.Handler
	if debug || env == "development" {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(w, opts)
	} else {
		handler = slog.NewJSONHandler(w, opts)
	}

	l := slog.New(handler)
	slog.SetDefault(l)
	return l
}

// With returns the process logger tagged with args, e.g. a component name.
func With(args ...any) *slog.Logger {
	return slog.Default().With(args...)
}
