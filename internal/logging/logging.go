// Package logging builds the JSON-lines logger shared by the API, the CLI and
// the pipeline.
package logging

import (
	"io"
	"log/slog"
	"strings"
	"time"
)

// New returns a logger that writes one JSON object per line with the record
// time under "ts", formatted as RFC3339Nano in loc.
func New(w io.Writer, level string, loc *time.Location) *slog.Logger {
	if loc == nil {
		loc = time.UTC
	}
	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: ParseLevel(level),
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if len(groups) > 0 || a.Key != slog.TimeKey {
				return a
			}
			return slog.String("ts", a.Value.Time().In(loc).Format(time.RFC3339Nano))
		},
	})
	return slog.New(h)
}

// ParseLevel maps debug, info, warn and error (any case) to a slog level.
// Unknown values mean info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
