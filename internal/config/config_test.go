package config

import (
	"os"
	"testing"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allEnvVars = []string{
	"PORT", "SNCF_API_KEY", "UPSTREAM_BASE_URL", "CACHE_TTL",
	"TRAIN_TIMEOUT_SECONDS", "PLACES_TIMEOUT_SECONDS", "BOARD_TIMEOUT_SECONDS",
	"DATABASE_URL", "LOG_LEVEL", "LOG_FORMAT",
	"SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "SERVER_SHUTDOWN_TIMEOUT",
}

// clearEnv unsets every variable Load reads and restores them after the test
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allEnvVars {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoad_MissingAPIKey(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.ErrorIs(t, err, models.ErrMissingAPIKey)
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNCF_API_KEY", "secret-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "secret-key", cfg.APIKey)
	assert.Equal(t, DefaultUpstreamBaseURL, cfg.UpstreamBaseURL)
	assert.Equal(t, 120*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.TrainTimeout)
	assert.Equal(t, 5*time.Second, cfg.PlacesTimeout)
	assert.Equal(t, 10*time.Second, cfg.BoardTimeout)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, 30*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_WithEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNCF_API_KEY", "other-key")
	t.Setenv("PORT", "9090")
	t.Setenv("UPSTREAM_BASE_URL", "http://localhost:4000/v1")
	t.Setenv("CACHE_TTL", "60")
	t.Setenv("TRAIN_TIMEOUT_SECONDS", "20")
	t.Setenv("PLACES_TIMEOUT_SECONDS", "3")
	t.Setenv("BOARD_TIMEOUT_SECONDS", "12")
	t.Setenv("DATABASE_URL", "postgresql://custom-db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SERVER_READ_TIMEOUT", "5")
	t.Setenv("SERVER_WRITE_TIMEOUT", "45")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "60")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "other-key", cfg.APIKey)
	assert.Equal(t, "http://localhost:4000/v1", cfg.UpstreamBaseURL)
	assert.Equal(t, 60*time.Second, cfg.CacheTTL)
	assert.Equal(t, 20*time.Second, cfg.TrainTimeout)
	assert.Equal(t, 3*time.Second, cfg.PlacesTimeout)
	assert.Equal(t, 12*time.Second, cfg.BoardTimeout)
	assert.Equal(t, "postgresql://custom-db", cfg.DatabaseURL)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 5*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 45*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.ServerShutdownTimeout)
}

func TestLoad_InvalidDurationEnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("SNCF_API_KEY", "secret-key")
	t.Setenv("CACHE_TTL", "invalid")
	t.Setenv("TRAIN_TIMEOUT_SECONDS", "0")
	t.Setenv("SERVER_READ_TIMEOUT", "-4")

	cfg, err := Load()
	require.NoError(t, err)

	// Should fall back to defaults
	assert.Equal(t, 120*time.Second, cfg.CacheTTL)
	assert.Equal(t, 10*time.Second, cfg.TrainTimeout)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		envValue     string
		expected     string
	}{
		{
			name:         "uses default when env not set",
			key:          "TEST_VAR_1",
			defaultValue: "default",
			envValue:     "",
			expected:     "default",
		},
		{
			name:         "uses env value when set",
			key:          "TEST_VAR_2",
			defaultValue: "default",
			envValue:     "custom",
			expected:     "custom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.envValue)

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetIntEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue int
		expected     int
	}{
		{"uses default when env not set", "", 42, 42},
		{"uses env value when valid int", "100", 42, 100},
		{"uses default when env value is invalid", "not-a-number", 42, 42},
		{"handles negative numbers", "-10", 42, -10},
		{"handles zero", "0", 42, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_INT", tt.envValue)

			result := getIntEnv("TEST_INT", tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestGetDurationEnv(t *testing.T) {
	tests := []struct {
		name         string
		envValue     string
		defaultValue time.Duration
		expected     time.Duration
	}{
		{"uses default when env not set", "", 10 * time.Second, 10 * time.Second},
		{"reads seconds", "30", 10 * time.Second, 30 * time.Second},
		{"uses default when env value is invalid", "ten", 10 * time.Second, 10 * time.Second},
		{"uses default for zero", "0", 10 * time.Second, 10 * time.Second},
		{"uses default for negative", "-5", 10 * time.Second, 10 * time.Second},
		{"handles large numbers", "3600", 10 * time.Second, time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TEST_DURATION", tt.envValue)

			result := getDurationEnv("TEST_DURATION", tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}
