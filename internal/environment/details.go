package environment

import (
	"fmt"
	"strings"

	"github.com/avct/uasurfer"
)

// Details is a richer view of a User-Agent. OS and Browser always come from
// the substring classifiers; the remaining fields come from uasurfer.
type Details struct {
	OS             OS      `json:"os"`
	Browser        Browser `json:"browser"`
	Platform       string  `json:"platform"`
	OSName         string  `json:"osName"`
	OSVersion      string  `json:"osVersion"`
	BrowserName    string  `json:"browserName"`
	BrowserVersion string  `json:"browserVersion"`
	DeviceType     string  `json:"deviceType"`
	IsBot          bool    `json:"isBot"`
}

// Inspect parses userAgent with uasurfer and attaches the coarse categories.
func Inspect(userAgent string) Details {
	u := uasurfer.Parse(userAgent)

	var deviceType string
	switch u.DeviceType {
	case uasurfer.DeviceComputer:
		deviceType = "desktop"
	case uasurfer.DevicePhone:
		deviceType = "mobile"
	case uasurfer.DeviceTablet:
		deviceType = "tablet"
	default:
		deviceType = "other"
	}

	return Details{
		OS:             ClassifyOS(userAgent),
		Browser:        ClassifyBrowser(userAgent),
		Platform:       strings.TrimPrefix(u.OS.Platform.String(), "Platform"),
		OSName:         strings.TrimPrefix(u.OS.Name.String(), "OS"),
		OSVersion:      formatVersion(u.OS.Version),
		BrowserName:    strings.TrimPrefix(u.Browser.Name.String(), "Browser"),
		BrowserVersion: formatVersion(u.Browser.Version),
		DeviceType:     deviceType,
		IsBot:          u.IsBot(),
	}
}

func formatVersion(v uasurfer.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}
