package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the front-end needs from the environment. The
// planner backend, auth, RAG and booking services all live behind a single
// base URL; this process only renders pages and proxies typed requests.
type Config struct {
	BackendURL  string
	MapsAPIKey  string
	ServerPort  string
	MetricsPort string
	PprofPort   string
	SessionTTL  time.Duration
}

// Load reads configuration from the environment. Resolution happens once at
// startup; there is no dynamic re-resolution.
func Load() (*Config, error) {
	cfg := &Config{
		BackendURL:  getEnvOrDefault("BACKEND_URL", "http://localhost:8000"),
		MapsAPIKey:  os.Getenv("MAPS_API_KEY"),
		ServerPort:  getEnvOrDefault("SERVER_PORT", "8091"),
		MetricsPort: getEnvOrDefault("METRICS_PORT", "9092"),
		PprofPort:   getEnvOrDefault("PPROF_PORT", "6060"),
		SessionTTL:  getEnvDuration("SESSION_TTL", 24*time.Hour),
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	// Plain integers are treated as hours.
	if h, err := strconv.Atoi(value); err == nil && h > 0 {
		return time.Duration(h) * time.Hour
	}
	return defaultValue
}
