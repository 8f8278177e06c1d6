package common

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Log file rotation limits.
const (
	logMaxSizeMB  = 10
	logMaxBackups = 3
	logMaxAgeDays = 28
)

// ParseLevel maps a level name to a slog.Level, defaulting to info.
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
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

// SetupLogger configures the global logger. When file is set, output goes to a
// size-rotated log file instead of stderr.
func SetupLogger(level slog.Level, format, file string) (*slog.Logger, error) {
	var out io.Writer = os.Stderr
	if file != "" {
		if err := os.MkdirAll(filepath.Dir(file), 0750); err != nil {
			return nil, err
		}
		out = &lumberjack.Logger{
			Filename:   file,
			MaxSize:    logMaxSizeMB,
			MaxBackups: logMaxBackups,
			MaxAge:     logMaxAgeDays,
		}
	}

	logger := slog.New(newHandler(out, level, format))
	slog.SetDefault(logger)

	return logger, nil
}

// newHandler picks the handler for format: "json" and "text" are the slog
// handlers, anything else is the colored console logger.
func newHandler(out io.Writer, level slog.Level, format string) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}

	switch format {
	case "json":
		return slog.NewJSONHandler(out, opts)
	case "text":
		return slog.NewTextHandler(out, opts)
	default:
		return log.NewWithOptions(out, log.Options{
			Level:           log.Level(level),
			ReportTimestamp: true,
			Prefix:          "shopimpact",
		})
	}
}
