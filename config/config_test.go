package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "SNAPSHOT_PATH", "TOKEN_SECRET", "TOKEN_TTL",
		"API_LATENCY", "SLOW_LATENCY", "RETRY_DELAY", "RETRY_ATTEMPTS",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("ENVIRONMENT", "development")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "cinevault_session.json", cfg.SnapshotPath)
	assert.Equal(t, "cinevault-dev-secret", cfg.TokenSecret)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, time.Second, cfg.APILatency)
	assert.Equal(t, 5*time.Second, cfg.SlowLatency)
	assert.Equal(t, time.Second, cfg.RetryDelay)
	assert.Equal(t, 3, cfg.RetryAttempts)
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "staging")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("API_LATENCY", "50ms")
	t.Setenv("RETRY_ATTEMPTS", "5")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "staging", cfg.Environment)
	assert.Equal(t, time.Hour, cfg.TokenTTL)
	assert.Equal(t, 50*time.Millisecond, cfg.APILatency)
	assert.Equal(t, 5, cfg.RetryAttempts)
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("TOKEN_TTL", "soon")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_TTL")
}

func TestLoadInvalidAttempts(t *testing.T) {
	t.Setenv("RETRY_ATTEMPTS", "0")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RETRY_ATTEMPTS")
}

func TestProductionRequiresSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TOKEN_SECRET", "")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TOKEN_SECRET", "prod-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "prod-secret", cfg.TokenSecret)
}
