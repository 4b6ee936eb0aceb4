package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, TransportMemory, cfg.Transport)
	assert.Equal(t, 1024, cfg.FanoutQueueSize)
	assert.Equal(t, 100*time.Millisecond, cfg.FanoutRetryBase)
	assert.Equal(t, 3, cfg.WebhookMaxRetries)
	assert.Equal(t, time.Second, cfg.WebhookBaseDelay)
	assert.Nil(t, cfg.APIKeys)
	assert.False(t, cfg.NeedsRedis())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")
	t.Setenv("TRANSPORT", "MQTT")
	t.Setenv("API_KEYS", " key1, ,key2 ")
	t.Setenv("FANOUT_RETRY_BASE", "250ms")
	t.Setenv("WEBHOOK_URL", "http://console.local/hook")
	t.Setenv("REDIS_DB", "not-a-number")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, TransportMQTT, cfg.Transport)
	assert.Equal(t, []string{"key1", "key2"}, cfg.APIKeys)
	assert.Equal(t, 250*time.Millisecond, cfg.FanoutRetryBase)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.True(t, cfg.NeedsRedis())
}

func TestLoadConfig_Invalid(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("DATABASE_URL", "postgres://localhost/dispatch")
	t.Setenv("TRANSPORT", "carrier-pigeon")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "TRANSPORT")

	t.Setenv("TRANSPORT", "redis")
	t.Setenv("FANOUT_QUEUE_SIZE", "0")
	_, err = LoadConfig()
	assert.ErrorContains(t, err, "FANOUT_QUEUE_SIZE")
}
