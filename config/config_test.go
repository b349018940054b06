package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "ecommerce-api", cfg.AppName)
	assert.Equal(t, ":8000", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.SeedOnStartup)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("APP_NAME", "test-api")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("ACCESS_TOKEN_EXPIRE_MINUTES", "5")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("SEED_ON_STARTUP", "false")
	t.Setenv("DEBUG", "true")

	cfg := Load()

	assert.Equal(t, "test-api", cfg.AppName)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, 5*time.Minute, cfg.TokenTTL)
	assert.Equal(t, 3, cfg.MaxOpenConns)
	assert.False(t, cfg.SeedOnStartup)
	assert.True(t, cfg.Debug)
}

func TestMalformedValuesFallBack(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "not-a-number")
	t.Setenv("SEED_ON_STARTUP", "maybe")
	t.Setenv("HTTP_READ_TIMEOUT", "")

	cfg := Load()

	assert.Equal(t, 25, cfg.MaxOpenConns)
	assert.True(t, cfg.SeedOnStartup)
	assert.Equal(t, 30*time.Second, cfg.ReadTimeout)
}
