// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration.
type Config struct {
	// Server settings.
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// Storage settings. When DatabaseURL is empty the server falls back
	// to the SQLite store at SQLitePath.
	DatabaseURL string
	SQLitePath  string

	// Rate limit settings (requests per second per client IP).
	RateLimitRPS   float64
	RateLimitBurst int

	// OTEL settings.
	OTELEndpoint    string
	OTELInsecure    bool
	OTELSampleRatio float64
	ServiceName     string

	// Operational settings.
	LogLevel            string
	MaxRequestBodyBytes int64

	// PredictSeed, when nonzero, seeds the prediction and comparison
	// jitter for reproducible runs.
	PredictSeed uint64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                envInt("SCREENROUTE_PORT", 8080),
		ReadTimeout:         envDuration("SCREENROUTE_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:        envDuration("SCREENROUTE_WRITE_TIMEOUT", 30*time.Second),
		DatabaseURL:         envStr("DATABASE_URL", ""),
		SQLitePath:          envStr("SCREENROUTE_SQLITE_PATH", "screenroute.db"),
		RateLimitRPS:        envFloat("SCREENROUTE_RATE_LIMIT_RPS", 5),
		RateLimitBurst:      envInt("SCREENROUTE_RATE_LIMIT_BURST", 10),
		OTELEndpoint:        envStr("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
		OTELInsecure:        envBool("OTEL_EXPORTER_OTLP_INSECURE", false),
		OTELSampleRatio:     envFloat("OTEL_TRACES_SAMPLER_ARG", 1),
		ServiceName:         envStr("OTEL_SERVICE_NAME", "screenroute"),
		LogLevel:            envStr("SCREENROUTE_LOG_LEVEL", "info"),
		MaxRequestBodyBytes: int64(envInt("SCREENROUTE_MAX_REQUEST_BODY_BYTES", 1*1024*1024)), // 1 MB default
		PredictSeed:         uint64(envInt("SCREENROUTE_PREDICT_SEED", 0)),
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that required configuration is present.
func (c Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config: SCREENROUTE_PORT must be in [1,65535]")
	}
	if c.DatabaseURL == "" && c.SQLitePath == "" {
		return fmt.Errorf("config: either DATABASE_URL or SCREENROUTE_SQLITE_PATH is required")
	}
	if c.MaxRequestBodyBytes <= 0 {
		return fmt.Errorf("config: SCREENROUTE_MAX_REQUEST_BODY_BYTES must be positive")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("config: rate limit settings must be non-negative")
	}
	if c.OTELSampleRatio < 0 || c.OTELSampleRatio > 1 {
		return fmt.Errorf("config: OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}
	return nil
}

func envStr(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultVal
}

func envBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func envFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultVal
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
