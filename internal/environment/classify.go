// Package environment classifies the client environment from a User-Agent
// string and maps the result to display facts used by the documentation pages.
package environment

import "strings"

// OS is the coarse operating-system category of a client.
type OS string

const (
	OSMac     OS = "mac"
	OSWindows OS = "windows"
	OSLinux   OS = "linux"
	OSIOS     OS = "ios"
	OSAndroid OS = "android"
	OSUnknown OS = "unknown"
)

// AllOS lists every OS category, including OSUnknown.
var AllOS = []OS{OSMac, OSWindows, OSLinux, OSIOS, OSAndroid, OSUnknown}

// Browser is the coarse browser category of a client.
type Browser string

const (
	BrowserChrome  Browser = "chrome"
	BrowserSafari  Browser = "safari"
	BrowserFirefox Browser = "firefox"
	BrowserEdge    Browser = "edge"
	BrowserUnknown Browser = "unknown"
)

// ClassifyOS maps a raw User-Agent to an OS category. Matching is
// case-insensitive and the first matching rule wins, so Android agents that
// advertise "Linux" classify as OSLinux.
func ClassifyOS(userAgent string) OS {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "mac os x") || strings.Contains(ua, "macintosh"):
		return OSMac
	case strings.Contains(ua, "windows"):
		return OSWindows
	case strings.Contains(ua, "linux"):
		return OSLinux
	case strings.Contains(ua, "iphone") || strings.Contains(ua, "ipad"):
		return OSIOS
	case strings.Contains(ua, "android"):
		return OSAndroid
	}
	return OSUnknown
}

// ClassifyBrowser maps a raw User-Agent to a browser category. Chromium Edge
// carries both "Chrome" and "Edg" tokens and is reported as BrowserEdge.
func ClassifyBrowser(userAgent string) Browser {
	ua := strings.ToLower(userAgent)

	switch {
	case strings.Contains(ua, "chrome") && !strings.Contains(ua, "edg"):
		return BrowserChrome
	case strings.Contains(ua, "safari") && !strings.Contains(ua, "chrome"):
		return BrowserSafari
	case strings.Contains(ua, "firefox"):
		return BrowserFirefox
	case strings.Contains(ua, "edg"):
		return BrowserEdge
	}
	return BrowserUnknown
}
