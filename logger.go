package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// initLogger sends JSON records to a rotating file. The terminal belongs to
// the UI, so nothing is written to stdout. Returns a cleanup function to
// close the log file.
func initLogger(cfg *Config) (func(), error) {
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, err
	}

	// lumberjack handles log rotation
	lj := &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    10,   // 10MB
		MaxBackups: 3,    // 3 backups
		LocalTime:  true, // Use local time for backup file names
	}

	handler := slog.NewJSONHandler(lj, &slog.HandlerOptions{
		Level:     parseLevel(cfg.LogLevel),
		AddSource: true,
	})
	slog.SetDefault(slog.New(handler).With("session", uuid.NewString()))

	cleanup := func() {
		if err := lj.Close(); err != nil {
			slog.Error("Failed to close log file", "error", err)
		}
	}
	return cleanup, nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
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
