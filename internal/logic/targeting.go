package logic

import (
	"net"
	"net/http"
	"strings"

	"github.com/patrickwarner/smartdocs/internal/environment"
	"github.com/patrickwarner/smartdocs/internal/geoip"
	"github.com/patrickwarner/smartdocs/internal/models"
)

const unknown = "unknown"

// Defaults used when neither the edge nor the GeoIP database knows the
// client location. The HTML pages assume US; the diagnostic endpoint
// reports what it actually knows.
var (
	PageDefaults       = models.Location{Country: "US", City: unknown}
	DiagnosticDefaults = models.Location{Country: unknown, City: unknown}
)

// LocationResolver derives the client location from edge-supplied headers,
// falling back to a GeoIP lookup of the client address.
type LocationResolver struct {
	CountryHeader string
	CityHeader    string
	GeoIP         *geoip.GeoIP
}

// Resolve returns the request location. Every empty field is filled from def.
func (lr LocationResolver) Resolve(r *http.Request, def models.Location) models.Location {
	var loc models.Location
	if lr.CountryHeader != "" {
		loc.Country = strings.TrimSpace(r.Header.Get(lr.CountryHeader))
	}
	if lr.CityHeader != "" {
		loc.City = strings.TrimSpace(r.Header.Get(lr.CityHeader))
	}

	if lr.GeoIP != nil && (loc.Country == "" || loc.City == "") {
		if ip := ClientIP(r); ip != nil {
			if loc.Country == "" {
				loc.Country = lr.GeoIP.Country(ip)
			}
			if loc.City == "" {
				loc.City = lr.GeoIP.City(ip)
			}
		}
	}

	if loc.Country == "" {
		loc.Country = def.Country
	}
	if loc.City == "" {
		loc.City = def.City
	}
	return loc
}

// ResolveEnvironment classifies the request User-Agent (absent means empty)
// and attaches the resolved location.
func ResolveEnvironment(r *http.Request, lr LocationResolver, def models.Location) models.Environment {
	ua := r.Header.Get("User-Agent")
	return models.Environment{
		OS:        environment.ClassifyOS(ua),
		Browser:   environment.ClassifyBrowser(ua),
		Location:  lr.Resolve(r, def),
		UserAgent: ua,
	}
}

// ClientIP returns the first X-Forwarded-For address, falling back to
// RemoteAddr. It returns nil when neither parses.
func ClientIP(r *http.Request) net.IP {
	ipStr := r.Header.Get("X-Forwarded-For")
	if ipStr == "" {
		ipStr = r.RemoteAddr
		if host, _, err := net.SplitHostPort(ipStr); err == nil {
			ipStr = host
		}
	} else if idx := strings.Index(ipStr, ","); idx != -1 {
		ipStr = ipStr[:idx]
	}
	return net.ParseIP(strings.TrimSpace(ipStr))
}
