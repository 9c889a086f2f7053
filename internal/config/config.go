package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/vytor/ivanachess/internal/logger"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	WorkerCount      int
	QueueSize        int
	ReconcileOnStart bool
	DefaultPageSize  int
	MaxPageSize      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:ivanachess.db"),
		LogLevel:         strings.ToUpper(envOr("LOG_LEVEL", "INFO")),
		WorkerCount:      envIntOr("WORKER_COUNT", 2),
		QueueSize:        envIntOr("QUEUE_SIZE", 64),
		ReconcileOnStart: envBoolOr("RECONCILE_ON_START", true),
		DefaultPageSize:  envIntOr("DEFAULT_PAGE_SIZE", 10),
		MaxPageSize:      envIntOr("MAX_PAGE_SIZE", 100),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("ADDR cannot be empty"))
	}
	if strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("DB_PATH cannot be empty"))
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR, got %q", c.LogLevel))
	}
	if c.WorkerCount < 1 {
		errs = append(errs, fmt.Errorf("WORKER_COUNT must be at least 1, got %d", c.WorkerCount))
	}
	if c.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("QUEUE_SIZE must be at least 1, got %d", c.QueueSize))
	}
	if c.MaxPageSize < 1 {
		errs = append(errs, fmt.Errorf("MAX_PAGE_SIZE must be at least 1, got %d", c.MaxPageSize))
	}
	if c.DefaultPageSize < 1 || c.DefaultPageSize > c.MaxPageSize {
		errs = append(errs, fmt.Errorf("DEFAULT_PAGE_SIZE must be between 1 and MAX_PAGE_SIZE, got %d", c.DefaultPageSize))
	}
	return errors.Join(errs...)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envBoolOr(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
		log.Printf("invalid value for %s=%q, using default %t", key, v, def)
	}
	return def
}
