package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "https://dummyjson.com", cfg.CatalogBaseURL)
	assert.Equal(t, 60, cfg.CatalogFetchLimit)
	assert.Equal(t, 20*time.Second, cfg.CatalogTimeout)
	assert.InDelta(t, 10, cfg.ShippingFlatFee, 1e-9)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9999")
	t.Setenv("CATALOG_TIMEOUT", "5s")
	t.Setenv("CART_SHIPPING_FLAT_FEE", "7.5")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.HTTPPort)
	assert.Equal(t, 5*time.Second, cfg.CatalogTimeout)
	assert.InDelta(t, 7.5, cfg.ShippingFlatFee, 1e-9)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "70000")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoadInvalidFetchLimit(t *testing.T) {
	t.Setenv("CATALOG_FETCH_LIMIT", "0")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog fetch limit")
}
