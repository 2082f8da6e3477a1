package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "PERSONALIZATION_MODE", "DEMO_URL", "DEMO_FETCH_TIMEOUT", "REDIS_ADDR", "GEOIP_DB", "GEO_COUNTRY_HEADER", "TRACING_ENABLED"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "8787", cfg.Port)
	assert.Equal(t, "indicator", cfg.PersonalizationMode)
	assert.Equal(t, DefaultDemoURL, cfg.DemoURL)
	assert.Equal(t, 5*time.Second, cfg.DemoFetchTimeout)
	assert.Equal(t, int64(1<<20), cfg.DemoMaxBytes)
	assert.Empty(t, cfg.RedisAddr)
	assert.Empty(t, cfg.GeoIPDB)
	assert.Equal(t, "CF-IPCountry", cfg.GeoCountryHeader)
	assert.Equal(t, "CF-IPCity", cfg.GeoCityHeader)
	assert.False(t, cfg.TracingEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("PERSONALIZATION_MODE", "silent")
	t.Setenv("DEMO_FETCH_TIMEOUT", "3")
	t.Setenv("DEMO_CACHE_TTL", "90s")
	t.Setenv("DEMO_MAX_BYTES", "nope")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("TRACING_SAMPLE_RATE", "0.5")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "silent", cfg.PersonalizationMode)
	assert.Equal(t, 3*time.Second, cfg.DemoFetchTimeout)
	assert.Equal(t, 90*time.Second, cfg.DemoCacheTTL)
	assert.Equal(t, int64(1<<20), cfg.DemoMaxBytes)
	assert.True(t, cfg.TracingEnabled)
	assert.Equal(t, 0.5, cfg.TracingSampleRate)
}

func TestValidate(t *testing.T) {
	valid := Config{
		PersonalizationMode: "indicator",
		DemoURL:             DefaultDemoURL,
		DemoFetchTimeout:    time.Second,
		DemoMaxBytes:        1024,
		TracingSampleRate:   1,
	}
	assert.NoError(t, valid.Validate())

	noDemo := valid
	noDemo.DemoURL = ""
	assert.NoError(t, noDemo.Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"demo mode", func(c *Config) { c.PersonalizationMode = "demo" }},
		{"relative url", func(c *Config) { c.DemoURL = "/examples/demo.html" }},
		{"ftp url", func(c *Config) { c.DemoURL = "ftp://example.com/demo.html" }},
		{"zero timeout", func(c *Config) { c.DemoFetchTimeout = 0 }},
		{"zero max bytes", func(c *Config) { c.DemoMaxBytes = 0 }},
		{"sample rate", func(c *Config) { c.TracingSampleRate = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
