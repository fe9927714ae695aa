package logging

import (
	"log/slog"
	"os"
	"strings"
)

// Setup installs the stdout JSON logger. The postgres sink is attached
// later through a MultiHandler, once the database connection exists.
// LOG_LEVEL selects the stdout threshold; anything unrecognized means
// info.
func Setup() {
	slog.SetDefault(slog.New(NewStdoutHandler()))
}

// NewStdoutHandler builds the JSON handler used both at boot and as the
// stdout leg of the MultiHandler.
func NewStdoutHandler() slog.Handler {
	return slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv()})
}

func levelFromEnv() slog.Level {
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
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
