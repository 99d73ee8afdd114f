package cli

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds server configuration, read from the environment. A .env
// file in the working directory is loaded first if present.
type Config struct {
	Port        int
	StorageType string
	RedisURL    string
	GracePeriod time.Duration
	LogLevel    slog.Level
}

// LoadConfig reads configuration from .env and the environment
func LoadConfig() *Config {
	// Missing .env is fine; real environments set variables directly
	_ = godotenv.Load()

	return &Config{
		Port:        getEnvInt("PORT", 8080),
		StorageType: os.Getenv("STORAGE_TYPE"),
		RedisURL:    os.Getenv("REDIS_URL"),
		GracePeriod: getEnvDuration("PARTY_GRACE_PERIOD", 0),
		LogLevel:    parseLogLevel(os.Getenv("LOG_LEVEL")),
	}
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func parseLogLevel(s string) slog.Level {
	switch s {
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

// NewLogger builds the application logger with JSON output
func (c *Config) NewLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: c.LogLevel,
	}))
}
