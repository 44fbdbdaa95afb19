// Package logger configures the process-wide slog logger.
package logger

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// Setup installs a text or JSON handler on stdout as the slog default.
func Setup(level string, format string) *slog.Logger {
	return SetupWriter(os.Stdout, level, format)
}

func SetupWriter(output io.Writer, level string, format string) *slog.Logger {
	parsedLevel := ParseLevel(level)
	opts := &slog.HandlerOptions{
		Level:     parsedLevel,
		AddSource: parsedLevel == slog.LevelDebug,
	}

	var handler slog.Handler
	if strings.EqualFold(strings.TrimSpace(format), "json") {
		handler = slog.NewJSONHandler(output, opts)
	} else {
		handler = slog.NewTextHandler(output, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

func ParseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
