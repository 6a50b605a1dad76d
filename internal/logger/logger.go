package logger

import (
	"log/slog"
	"os"
)

func init() {
	var logger *slog.Logger
	switch os.Getenv("APP_ENV") {
	case "prod":
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv(slog.LevelInfo)}))
	case "dev":
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv(slog.LevelDebug)}))
	default:
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: levelFromEnv(slog.LevelDebug)}))
	}
	slog.SetDefault(logger.With("app", "duobot"))
}

// levelFromEnv reads LOG_LEVEL (debug, info, warn, error), falling back to def.
func levelFromEnv(def slog.Level) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(os.Getenv("LOG_LEVEL"))); err != nil {
		return def
	}
	return level
}
