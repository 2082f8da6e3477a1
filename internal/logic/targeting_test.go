package logic

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/geoip"
	"github.com/patrickwarner/smartdocs/internal/models"
)

var cfResolver = LocationResolver{CountryHeader: "CF-IPCountry", CityHeader: "CF-IPCity"}

func TestResolveEnvironment_Defaults(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Del("User-Agent")

	env := ResolveEnvironment(req, cfResolver, DiagnosticDefaults)
	assert.Equal(t, models.Environment{
		OS:        environment.OSUnknown,
		Browser:   environment.BrowserUnknown,
		Location:  models.Location{Country: "unknown", City: "unknown"},
		UserAgent: "",
	}, env)

	env = ResolveEnvironment(req, cfResolver, PageDefaults)
	assert.Equal(t, "US", env.Location.Country)
	assert.Equal(t, "unknown", env.Location.City)
}

func TestResolveEnvironment_Headers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) Firefox/120.0")
	req.Header.Set("CF-IPCountry", "FR")
	req.Header.Set("CF-IPCity", " Lyon ")

	env := ResolveEnvironment(req, cfResolver, DiagnosticDefaults)
	assert.Equal(t, environment.OSWindows, env.OS)
	assert.Equal(t, environment.BrowserFirefox, env.Browser)
	assert.Equal(t, models.Location{Country: "FR", City: "Lyon"}, env.Location)
}

func TestLocationResolver_GeoIPFallback(t *testing.T) {
	g, err := geoip.Init(filepath.Join("..", "geoip", "testdata", "fallback.json"))
	require.NoError(t, err)
	lr := cfResolver
	lr.GeoIP = g

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, models.Location{Country: "NZ", City: "Wellington"}, lr.Resolve(req, DiagnosticDefaults))

	// Headers take precedence over the database.
	req.Header.Set("CF-IPCountry", "AU")
	assert.Equal(t, models.Location{Country: "AU", City: "Wellington"}, lr.Resolve(req, DiagnosticDefaults))

	// Unknown addresses fall through to defaults.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.10:4000"
	assert.Equal(t, PageDefaults, lr.Resolve(req, PageDefaults))
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", ClientIP(req).String())

	req.Header.Set("X-Forwarded-For", "198.51.100.4,192.0.2.1")
	assert.Equal(t, "198.51.100.4", ClientIP(req).String())

	req.Header.Set("X-Forwarded-For", "garbage")
	assert.Nil(t, ClientIP(req))
}
