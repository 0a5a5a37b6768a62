package config

import (
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

// InitLog sets up the global logger. Diagnostics go to a rotated file rather
// than the terminal since the TUI owns stdout while a session is running.
func InitLog(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	w := &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    5, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
	}

	h := slog.NewJSONHandler(w, &slog.HandlerOptions{
		Level: level,
	})

	slog.SetDefault(slog.New(h))
}
