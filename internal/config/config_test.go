package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_PoolSettings(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("DB_MAX_CONNS", "25")
	t.Setenv("DB_MIN_CONNS", "5")
	t.Setenv("DB_MAX_IDLE_TIME", "2m")
	t.Setenv("DB_MAX_LIFETIME", "1h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.DBMaxConns)
	assert.Equal(t, 5, cfg.DBMinConns)
	assert.Equal(t, 2*time.Minute, cfg.DBMaxIdleTime)
	assert.Equal(t, time.Hour, cfg.DBMaxLifetime)
}

func TestLoad_PoolDefaults(t *testing.T) {
	t.Setenv("API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.DBMaxConns)
	assert.Equal(t, 2, cfg.DBMinConns)
	assert.Equal(t, 5*time.Minute, cfg.DBMaxIdleTime)
	assert.Equal(t, 30*time.Minute, cfg.DBMaxLifetime)
}

func TestLoad_RejectsMalformedPoolSettings(t *testing.T) {
	t.Setenv("API_KEY", "test-key")
	t.Setenv("DB_MAX_CONNS", "lots")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RequiresAPIKey(t *testing.T) {
	t.Setenv("API_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}
