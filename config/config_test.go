package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.HTTPPort)
	assert.Equal(t, 10, cfg.CheckRatePerMinute)
	assert.Equal(t, 50, cfg.RatePerHour)
	assert.Equal(t, 200, cfg.RatePerDay)
	assert.False(t, cfg.ForceHTTPS)
	assert.False(t, cfg.CatalogFromS3())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("CHECK_RATE_PER_MINUTE", "3")
	t.Setenv("CATALOG_S3_BUCKET", "catalogs")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1, 10.0.0.2,")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, 3, cfg.CheckRatePerMinute)
	assert.True(t, cfg.CatalogFromS3())
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.TrustedProxyList())
}

func TestLoadRejectsMalformedNumbers(t *testing.T) {
	t.Setenv("RATE_PER_DAY", "lots")

	_, err := Load()
	assert.Error(t, err)
}
