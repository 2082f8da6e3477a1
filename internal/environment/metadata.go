package environment

// Profile bundles the display facts for one OS category.
type Profile struct {
	OS             OS     `json:"os"`
	Name           string `json:"name"`
	Icon           string `json:"icon"`
	Shell          string `json:"shell"`
	PackageManager string `json:"packageManager"`
	ConfigDir      string `json:"configDir"`
}

// Describe returns every display fact for os.
func Describe(os OS) Profile {
	return Profile{
		OS:             os,
		Name:           DisplayName(os),
		Icon:           Icon(os),
		Shell:          DefaultShell(os),
		PackageManager: PackageManager(os),
		ConfigDir:      ConfigDir(os),
	}
}

// PackageManager returns the package manager suggested in install snippets.
func PackageManager(os OS) string {
	switch os {
	case OSMac, OSIOS:
		return "brew"
	case OSWindows:
		return "winget"
	case OSLinux, OSAndroid:
		return "apt"
	default:
		return "npm"
	}
}

// DefaultShell returns the shell a user of os most likely runs.
func DefaultShell(os OS) string {
	switch os {
	case OSMac, OSIOS:
		return "zsh"
	case OSWindows:
		return "powershell"
	case OSLinux, OSAndroid:
		return "bash"
	default:
		return "sh"
	}
}

// ConfigDir returns the base directory for per-user configuration files.
func ConfigDir(os OS) string {
	switch os {
	case OSMac, OSIOS, OSLinux, OSAndroid:
		return "~/.config"
	case OSWindows:
		return "%APPDATA%"
	default:
		return "~/.config"
	}
}

// Icon returns the emoji shown next to os in badges.
func Icon(os OS) string {
	switch os {
	case OSMac, OSIOS:
		return "🍎"
	case OSWindows:
		return "🪟"
	case OSLinux:
		return "🐧"
	case OSAndroid:
		return "🤖"
	default:
		return "💻"
	}
}

// DisplayName returns the human readable name of os.
func DisplayName(os OS) string {
	switch os {
	case OSMac:
		return "macOS"
	case OSIOS:
		return "iOS"
	case OSWindows:
		return "Windows"
	case OSLinux:
		return "Linux"
	case OSAndroid:
		return "Android"
	default:
		return "Unknown OS"
	}
}
