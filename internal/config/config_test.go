package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Minute, cfg.Redis.CacheTTL)
	assert.Equal(t, "order_notifications", cfg.RabbitMQ.NotificationQueue)
	assert.Equal(t, "https://api.resend.com", cfg.Mail.BaseURL)
	assert.Equal(t, float64(1_000_000), cfg.Order.MaxAmount)
	assert.Equal(t, 3, cfg.Order.DeliveryLeadDays)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_NAME", "slmarkets_staging")
	t.Setenv("ORDER_MAX_AMOUNT", "250000")
	t.Setenv("REDIS_CACHE_TTL", "90s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "slmarkets_staging", cfg.Database.Name)
	assert.Equal(t, float64(250_000), cfg.Order.MaxAmount)
	assert.Equal(t, 90*time.Second, cfg.Redis.CacheTTL)
}

func TestOrderConfig_DeliveryFeeFor(t *testing.T) {
	policy := OrderConfig{FreeDeliveryThreshold: 2000, DeliveryFee: 200}

	assert.Equal(t, float64(200), policy.DeliveryFeeFor(0))
	assert.Equal(t, float64(200), policy.DeliveryFeeFor(1999))
	assert.Equal(t, float64(0), policy.DeliveryFeeFor(2000))
	assert.Equal(t, float64(0), policy.DeliveryFeeFor(2500))
}

func TestLoad_RejectsBadDuration(t *testing.T) {
	t.Setenv("DB_CONN_MAX_LIFETIME", "forever")

	_, err := Load()
	assert.Error(t, err)
}
