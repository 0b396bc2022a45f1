package config

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Config contains all runtime settings for the task service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	DataFile    string
	DatabaseURL string

	// Simulated round-trip latency applied by the task service before each
	// read and write operation. Zero disables the delay.
	ReadLatency  time.Duration
	WriteLatency time.Duration
}

// Load reads environment variables and applies safe defaults.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:         envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace: envOrDefault("APP_METRICS_NAMESPACE", "taskdeck"),
		DataFile:         envOrDefault("TASKDECK_DATA_FILE", "taskdeck.json"),
		DatabaseURL:      envTrimmed("DATABASE_URL"),
		ShutdownTimeout:  15 * time.Second,
		ReadLatency:      100 * time.Millisecond,
		WriteLatency:     200 * time.Millisecond,
	}
	var err error
	cfg.ShutdownTimeout, err = durationFromEnv("APP_SHUTDOWN_TIMEOUT", cfg.ShutdownTimeout)
	if err != nil {
		return Config{}, err
	}
	cfg.ReadLatency, err = durationFromEnv("APP_READ_LATENCY", cfg.ReadLatency)
	if err != nil {
		return Config{}, err
	}
	cfg.WriteLatency, err = durationFromEnv("APP_WRITE_LATENCY", cfg.WriteLatency)
	if err != nil {
		return Config{}, err
	}

	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("APP_SHUTDOWN_TIMEOUT must be positive")
	}
	if cfg.ReadLatency < 0 {
		return Config{}, fmt.Errorf("APP_READ_LATENCY must be >= 0")
	}
	if cfg.WriteLatency < 0 {
		return Config{}, fmt.Errorf("APP_WRITE_LATENCY must be >= 0")
	}
	if strings.TrimSpace(cfg.DataFile) == "" && cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("TASKDECK_DATA_FILE or DATABASE_URL must be set")
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envTrimmed(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func durationFromEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := envTrimmed(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s parse error: %w", key, err)
	}
	return d, nil
}
