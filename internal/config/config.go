package config

import (
	"context"
	"os"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var logger = logrus.New()

// Init loads the .env file when present and configures the process logger.
// Missing .env is not an error: in production everything comes from the
// environment directly.
func Init() {
	_ = godotenv.Load()

	logger.SetOutput(os.Stdout)

	if os.Getenv("APP_ENV") == "production" {
		logger.SetFormatter(&logrus.JSONFormatter{})
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		logger.SetLevel(logrus.DebugLevel)
	}

	if lvl, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		logger.SetLevel(lvl)
	}
}

// WithContext returns a request-scoped logger carrying the chi request ID.
func WithContext(ctx context.Context) *logrus.Entry {
	entry := logrus.NewEntry(logger)
	if ctx == nil {
		return entry
	}
	if reqID := middleware.GetReqID(ctx); reqID != "" {
		entry = entry.WithField("request_id", reqID)
	}
	return entry
}

func Logger() *logrus.Logger {
	return logger
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// MustGetEnv panics when a required variable is absent. Used during startup
// only, so a misconfigured deployment fails before serving traffic.
func MustGetEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("missing required environment variable: " + key)
	}
	return v
}
