package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"time"
)

// DefaultDemoURL serves the full demo page from the project repository.
const DefaultDemoURL = "https://raw.githubusercontent.com/kcwilliamson/smart-docs-worker/main/examples/cloudflare-docs-demo.html"

// Config holds application configuration derived from environment variables.
type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	ServiceName  string
	Environment  string
	// PersonalizationMode selects the policy for the documentation page:
	// "indicator" or "silent".
	PersonalizationMode string
	// Remote demo page
	DemoURL          string
	DemoFetchTimeout time.Duration
	DemoMaxBytes     int64
	DemoCacheTTL     time.Duration
	// RedisAddr enables the demo cache when non-empty.
	RedisAddr string
	// Geolocation
	GeoIPDB          string
	GeoCountryHeader string
	GeoCityHeader    string
	// Tracing configuration
	TracingEnabled    bool
	TempoEndpoint     string
	TracingSampleRate float64
}

// Load parses environment variables and returns a Config populated with
// defaults when variables are absent.
func Load() Config {
	cfg := Config{}

	cfg.Port = getenv("PORT", "8787")
	cfg.ReadTimeout = envDuration("READ_TIMEOUT", 5*time.Second)
	cfg.WriteTimeout = envDuration("WRITE_TIMEOUT", 10*time.Second)
	cfg.ServiceName = getenv("SERVICE_NAME", "smartdocs")
	cfg.Environment = getenv("ENV", "production")
	cfg.PersonalizationMode = getenv("PERSONALIZATION_MODE", "indicator")

	cfg.DemoURL = getenv("DEMO_URL", DefaultDemoURL)
	cfg.DemoFetchTimeout = envDuration("DEMO_FETCH_TIMEOUT", 5*time.Second)
	cfg.DemoMaxBytes = int64(envInt("DEMO_MAX_BYTES", 1<<20))
	cfg.DemoCacheTTL = envDuration("DEMO_CACHE_TTL", 10*time.Minute)
	cfg.RedisAddr = os.Getenv("REDIS_ADDR")

	cfg.GeoIPDB = os.Getenv("GEOIP_DB")
	cfg.GeoCountryHeader = getenv("GEO_COUNTRY_HEADER", "CF-IPCountry")
	cfg.GeoCityHeader = getenv("GEO_CITY_HEADER", "CF-IPCity")

	cfg.TracingEnabled = envBool("TRACING_ENABLED", false)
	cfg.TempoEndpoint = getenv("TEMPO_ENDPOINT", "tempo:4317")
	cfg.TracingSampleRate = envFloat("TRACING_SAMPLE_RATE", 1.0)

	return cfg
}

// Validate reports settings that would make the server misbehave rather
// than fail. An empty DemoURL is allowed and always serves the fallback page.
func (c Config) Validate() error {
	var errs []error
	switch c.PersonalizationMode {
	case "indicator", "silent":
	default:
		errs = append(errs, fmt.Errorf("PERSONALIZATION_MODE must be indicator or silent, got %q", c.PersonalizationMode))
	}
	if c.DemoURL != "" {
		u, err := url.Parse(c.DemoURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("DEMO_URL must be an absolute http(s) URL, got %q", c.DemoURL))
		}
	}
	if c.DemoFetchTimeout <= 0 {
		errs = append(errs, errors.New("DEMO_FETCH_TIMEOUT must be positive"))
	}
	if c.DemoMaxBytes <= 0 {
		errs = append(errs, errors.New("DEMO_MAX_BYTES must be positive"))
	}
	if c.TracingSampleRate < 0 || c.TracingSampleRate > 1 {
		errs = append(errs, fmt.Errorf("TRACING_SAMPLE_RATE must be within [0, 1], got %v", c.TracingSampleRate))
	}
	return errors.Join(errs...)
}

// getenv returns the value of the environment variable if set, otherwise def.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// envDuration parses an environment variable into a time.Duration.
// The value can be a duration string (e.g. "5s") or a number of seconds.
// If the variable is unset or invalid, def is returned.
func envDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return def
}

// envBool parses a boolean environment variable. Accepted values are those
// supported by strconv.ParseBool. When unset or invalid, def is returned.
func envBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if b, err := strconv.ParseBool(v); err == nil {
		return b
	}
	return def
}

// envInt parses an integer environment variable. When unset or invalid, def is returned.
func envInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return def
}

// envFloat parses a float64 environment variable. When unset or invalid, def is returned.
func envFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return def
}
