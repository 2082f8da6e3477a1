package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupsAreTotal(t *testing.T) {
	all := append(append([]OS{}, AllOS...), OS(""), OS("plan9"))
	for _, os := range all {
		p := Describe(os)
		assert.NotEmpty(t, p.Name, "name for %q", os)
		assert.NotEmpty(t, p.Icon, "icon for %q", os)
		assert.NotEmpty(t, p.Shell, "shell for %q", os)
		assert.NotEmpty(t, p.PackageManager, "package manager for %q", os)
		assert.NotEmpty(t, p.ConfigDir, "config dir for %q", os)
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		os   OS
		want Profile
	}{
		{OSMac, Profile{OS: OSMac, Name: "macOS", Icon: "🍎", Shell: "zsh", PackageManager: "brew", ConfigDir: "~/.config"}},
		{OSIOS, Profile{OS: OSIOS, Name: "iOS", Icon: "🍎", Shell: "zsh", PackageManager: "brew", ConfigDir: "~/.config"}},
		{OSWindows, Profile{OS: OSWindows, Name: "Windows", Icon: "🪟", Shell: "powershell", PackageManager: "winget", ConfigDir: "%APPDATA%"}},
		{OSLinux, Profile{OS: OSLinux, Name: "Linux", Icon: "🐧", Shell: "bash", PackageManager: "apt", ConfigDir: "~/.config"}},
		{OSAndroid, Profile{OS: OSAndroid, Name: "Android", Icon: "🤖", Shell: "bash", PackageManager: "apt", ConfigDir: "~/.config"}},
		{OSUnknown, Profile{OS: OSUnknown, Name: "Unknown OS", Icon: "💻", Shell: "sh", PackageManager: "npm", ConfigDir: "~/.config"}},
	}

	for _, tc := range tests {
		t.Run(string(tc.os), func(t *testing.T) {
			assert.Equal(t, tc.want, Describe(tc.os))
		})
	}
}
