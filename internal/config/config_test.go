package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "1", cfg.ChainID)
	assert.False(t, cfg.TestMode)
	assert.Equal(t, uint64(0), cfg.PoolID)
	assert.Empty(t, cfg.PrivateKey)
	assert.Equal(t, 2*time.Minute, cfg.RequestTimeout)
	assert.Equal(t, 10.0, cfg.RateLimitRPS)
	assert.Equal(t, 20, cfg.RateLimitBurst)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CHAIN_ID", "8453")
	t.Setenv("TEST_MODE", "true")
	t.Setenv("POOL_ID", "3")
	t.Setenv("REQUEST_TIMEOUT", "30s")
	t.Setenv("RATE_LIMIT_RPS", "2.5")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "8453", cfg.ChainID)
	assert.True(t, cfg.TestMode)
	assert.Equal(t, uint64(3), cfg.PoolID)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
}

func TestEnvHelpersIgnoreMalformedValues(t *testing.T) {
	t.Setenv("SOME_INT", "not-an-int")
	t.Setenv("SOME_BOOL", "maybe")
	t.Setenv("SOME_DURATION", "soon")
	t.Setenv("SOME_UINT", "-1")

	assert.Equal(t, 42, GetEnvAsInt("SOME_INT", 42))
	assert.True(t, GetEnvAsBool("SOME_BOOL", true))
	assert.Equal(t, time.Second, GetEnvAsDuration("SOME_DURATION", time.Second))
	assert.Equal(t, uint64(7), GetEnvAsUint64("SOME_UINT", 7))
}
