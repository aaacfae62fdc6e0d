// Package logging wires up the process-wide structured logger (§6). Only
// the command boundary logs; core/expr/csvcodec/rules never log directly.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a text-handler slog.Logger writing to logFile if set (rotated
// via lumberjack), else to stderr, at the given level ("debug", "info",
// "warn", or "error"; defaults to info on an unrecognized value).
func New(logFile, level string) *slog.Logger {
	var w io.Writer = os.Stderr
	if logFile != "" {
		w = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10,
			MaxBackups: 3,
			MaxAge:     28,
		}
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: parseLevel(level)})
	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
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

// LogCommand emits the one-line-per-invocation record described in §6: kind,
// table, duration, and outcome at info, full error detail at error.
func LogCommand(logger *slog.Logger, command, table string, start time.Time, err error) {
	duration := time.Since(start)
	if err != nil {
		logger.Error("command failed", "command", command, "table", table, "duration", duration, "error", err)
		return
	}
	logger.Info("command executed", "command", command, "table", table, "duration", duration)
}
