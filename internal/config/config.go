package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"SNCF_Proxy/internal/models"

	"github.com/joho/godotenv"
)

// DefaultUpstreamBaseURL is the SNCF coverage root of the Navitia API
const DefaultUpstreamBaseURL = "https://api.sncf.com/v1/coverage/sncf"

type Config struct {
	Port                  string
	APIKey                string
	UpstreamBaseURL       string
	CacheTTL              time.Duration
	TrainTimeout          time.Duration
	PlacesTimeout         time.Duration
	BoardTimeout          time.Duration
	DatabaseURL           string
	LogLevel              string
	LogFormat             string
	ServerReadTimeout     time.Duration
	ServerWriteTimeout    time.Duration
	ServerShutdownTimeout time.Duration
}

// Load reads the configuration from the environment. The upstream API key is
// the only required value.
func Load() (*Config, error) {
	// Load .env file if it exists (optional)
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found or error loading it: %v", err)
	}

	cfg := &Config{
		Port:                  getEnv("PORT", "3000"),
		APIKey:                os.Getenv("SNCF_API_KEY"),
		UpstreamBaseURL:       getEnv("UPSTREAM_BASE_URL", DefaultUpstreamBaseURL),
		CacheTTL:              getDurationEnv("CACHE_TTL", 120*time.Second),
		TrainTimeout:          getDurationEnv("TRAIN_TIMEOUT_SECONDS", 10*time.Second),
		PlacesTimeout:         getDurationEnv("PLACES_TIMEOUT_SECONDS", 5*time.Second),
		BoardTimeout:          getDurationEnv("BOARD_TIMEOUT_SECONDS", 10*time.Second),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		LogFormat:             getEnv("LOG_FORMAT", "json"),
		ServerReadTimeout:     getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout:    getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),
		ServerShutdownTimeout: getDurationEnv("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}

	if cfg.APIKey == "" {
		return nil, models.ErrMissingAPIKey
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getDurationEnv reads a whole number of seconds
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if seconds := getIntEnv(key, -1); seconds > 0 {
		return time.Duration(seconds) * time.Second
	}
	return defaultValue
}
