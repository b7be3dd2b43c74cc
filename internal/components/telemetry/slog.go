package telemetry

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// SlogAPI implements API using the log/slog package.
type SlogAPI struct{}

func (SlogAPI) formatParams(out *[]any, params []any) {
	for i, p := range params {
		*out = append(
			*out,
			fmt.Sprintf("params.%d", i),
			p,
		)
	}
}

func (s SlogAPI) ReportBroken(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Error("broken component", remainingPairs...)
}

func (s SlogAPI) ReportWarning(id string, params ...any) {
	remainingPairs := []any{"id", id}
	s.formatParams(&remainingPairs, params)
	slog.Warn("warning", remainingPairs...)
}

func (s SlogAPI) ReportDebug(message string, params ...any) {
	remainingPairs := []any{}
	s.formatParams(&remainingPairs, params)
	slog.Debug(message, remainingPairs...)
}

func (s SlogAPI) ReportCount(id string, count int64) {
	slog.Info("count", "id", id, "n", count)
}

// ParseLevel maps the cli log level names onto slog levels, "off" silences everything.
func ParseLevel(name string) (slog.Level, bool, error) {
	switch strings.ToLower(name) {
	case "off":
		return 0, false, nil
	case "error":
		return slog.LevelError, true, nil
	case "warn", "warning":
		return slog.LevelWarn, true, nil
	case "info", "":
		return slog.LevelInfo, true, nil
	case "debug", "trace":
		return slog.LevelDebug, true, nil
	}
	return 0, false, fmt.Errorf("unknown log level '%s' (expected off, error, warn, info, debug)", name)
}

// InitSlog installs a text handler writing to `out` as the default slog logger.
func InitSlog(out io.Writer, level slog.Level, enabled bool) {
	if !enabled {
		out = io.Discard
	}
	handler := slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
