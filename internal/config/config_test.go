package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServe_Defaults(t *testing.T) {
	cfg, err := LoadServe()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":2112", cfg.MetricsAddr)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, "rxfsm:", cfg.RedisPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadServe_FromEnvironment(t *testing.T) {
	t.Setenv("RXFSM_ADDR", ":9999")
	t.Setenv("RXFSM_REDIS_ADDR", "localhost:6379")
	t.Setenv("RXFSM_REDIS_PREFIX", "machine:")
	t.Setenv("RXFSM_LOG_LEVEL", "debug")

	cfg, err := LoadServe()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, "machine:", cfg.RedisPrefix)
	assert.Equal(t, "debug", cfg.LogLevel)
}
