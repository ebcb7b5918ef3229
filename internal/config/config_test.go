package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.WriteTimeout)
	require.Empty(t, cfg.DatabaseURL)
	require.Equal(t, "screenroute.db", cfg.SQLitePath)
	require.Equal(t, 5.0, cfg.RateLimitRPS)
	require.Equal(t, 10, cfg.RateLimitBurst)
	require.Equal(t, 1.0, cfg.OTELSampleRatio)
	require.Equal(t, "screenroute", cfg.ServiceName)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, int64(1<<20), cfg.MaxRequestBodyBytes)
	require.Zero(t, cfg.PredictSeed)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SCREENROUTE_PORT", "9090")
	t.Setenv("SCREENROUTE_READ_TIMEOUT", "5s")
	t.Setenv("DATABASE_URL", "postgres://localhost/screenroute")
	t.Setenv("SCREENROUTE_RATE_LIMIT_RPS", "2.5")
	t.Setenv("SCREENROUTE_LOG_LEVEL", "debug")
	t.Setenv("SCREENROUTE_PREDICT_SEED", "42")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 9090, cfg.Port)
	require.Equal(t, 5*time.Second, cfg.ReadTimeout)
	require.Equal(t, "postgres://localhost/screenroute", cfg.DatabaseURL)
	require.Equal(t, 2.5, cfg.RateLimitRPS)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, uint64(42), cfg.PredictSeed)
}

func TestLoadMalformedValuesFallBack(t *testing.T) {
	t.Setenv("SCREENROUTE_PORT", "not-a-number")
	t.Setenv("SCREENROUTE_READ_TIMEOUT", "eventually")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 8080, cfg.Port)
	require.Equal(t, 30*time.Second, cfg.ReadTimeout)
}

func TestValidate(t *testing.T) {
	t.Setenv("SCREENROUTE_PORT", "70000")
	_, err := Load()
	require.ErrorContains(t, err, "SCREENROUTE_PORT")

	cfg := Config{Port: 8080, SQLitePath: "x.db", MaxRequestBodyBytes: 1}
	require.NoError(t, cfg.Validate())

	cfg.SQLitePath = ""
	require.ErrorContains(t, cfg.Validate(), "DATABASE_URL")

	cfg.SQLitePath = "x.db"
	cfg.MaxRequestBodyBytes = 0
	require.ErrorContains(t, cfg.Validate(), "MAX_REQUEST_BODY_BYTES")

	cfg.MaxRequestBodyBytes = 1
	cfg.RateLimitRPS = -1
	require.ErrorContains(t, cfg.Validate(), "rate limit")

	cfg.RateLimitRPS = 0
	cfg.OTELSampleRatio = 1.5
	require.ErrorContains(t, cfg.Validate(), "OTEL_TRACES_SAMPLER_ARG")
}
