package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/ivanachess/internal/config"
)

func validConfig() config.Config {
	return config.Config{
		Addr:             ":8080",
		DBPath:           "test.db",
		LogLevel:         "INFO",
		WorkerCount:      2,
		QueueSize:        64,
		ReconcileOnStart: true,
		DefaultPageSize:  10,
		MaxPageSize:      100,
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_EmptyAddr(t *testing.T) {
	cfg := validConfig()
	cfg.Addr = ""

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "ADDR cannot be empty")
}

func TestValidate_EmptyDBPath(t *testing.T) {
	cfg := validConfig()
	cfg.DBPath = "  "

	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DB_PATH cannot be empty")
}

func TestValidate_LogLevel(t *testing.T) {
	tests := []struct {
		level string
		valid bool
	}{
		{"DEBUG", true},
		{"INFO", true},
		{"WARN", true},
		{"ERROR", true},
		{"debug", true},
		{"INVALID", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := validConfig()
			cfg.LogLevel = tt.level

			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), "LOG_LEVEL")
			}
		})
	}
}

func TestValidate_WorkerAndQueue(t *testing.T) {
	tests := []struct {
		name          string
		workers       int
		queue         int
		expectedError string
	}{
		{"zero workers", 0, 64, "WORKER_COUNT"},
		{"negative workers", -1, 64, "WORKER_COUNT"},
		{"zero queue", 2, 0, "QUEUE_SIZE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			cfg.WorkerCount = tt.workers
			cfg.QueueSize = tt.queue

			err := cfg.Validate()
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedError)
		})
	}
}

func TestValidate_PageSizes(t *testing.T) {
	cfg := validConfig()
	cfg.DefaultPageSize = 200
	err := cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "DEFAULT_PAGE_SIZE")

	cfg = validConfig()
	cfg.MaxPageSize = 0
	err = cfg.Validate()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_PAGE_SIZE")
}

func TestValidate_MultipleErrors(t *testing.T) {
	cfg := config.Config{LogLevel: "INVALID"}

	err := cfg.Validate()
	require.Error(t, err)

	errStr := err.Error()
	assert.Contains(t, errStr, "ADDR cannot be empty")
	assert.Contains(t, errStr, "DB_PATH cannot be empty")
	assert.Contains(t, errStr, "LOG_LEVEL")
	assert.Contains(t, errStr, "WORKER_COUNT")
	assert.Contains(t, errStr, "QUEUE_SIZE")
	assert.Contains(t, errStr, "MAX_PAGE_SIZE")
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	t.Setenv("ADDR", ":9090")
	t.Setenv("DB_PATH", "custom.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("WORKER_COUNT", "4")
	t.Setenv("RECONCILE_ON_START", "false")

	cfg := config.Load()

	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "custom.db", cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.False(t, cfg.ReconcileOnStart)
}

func TestLoad_InvalidNumberFallsBack(t *testing.T) {
	t.Setenv("QUEUE_SIZE", "lots")

	cfg := config.Load()
	assert.Equal(t, 64, cfg.QueueSize)
}
