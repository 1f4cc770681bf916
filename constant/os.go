package constant

// GOOS values the editor branches on.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
	Android = "android"
)

var platformNames = map[string]string{
	Windows: "Windows",
	Darwin:  "macOS",
	Linux:   "Linux",
	Android: "Android",
}

// PlatformName returns the display name of goos, or goos itself when unknown.
func PlatformName(goos string) string {
	if name, ok := platformNames[goos]; ok {
		return name
	}
	return goos
}
