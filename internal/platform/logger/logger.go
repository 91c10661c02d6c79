package logger

import (
	"log/slog"
	"os"
)

// New returns the root structured logger. Level defaults to info; set
// APPEALBOARD_LOG_LEVEL=debug to see qualifier evaluation detail.
func New() *slog.Logger {
	level := slog.LevelInfo
	if os.Getenv("APPEALBOARD_LOG_LEVEL") == "debug" {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}
