package version

import (
	"fmt"
	"runtime/debug"
)

// Set with -ldflags "-X .../version.Version=v1.2.0" and friends; the
// defaults fall back to the module build info.
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Info contains version information
type Info struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Package string `json:"package"`
}

// buildSetting reads one vcs.* setting recorded by the go tool.
func buildSetting(key string) (string, bool) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", false
	}
	for _, s := range info.Settings {
		if s.Key == key {
			return s.Value, true
		}
	}
	return "", false
}

// GetVersion returns the injected version, then the module version, then "development".
func GetVersion() string {
	if Version != "dev" && Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return "development"
}

// GetCommit returns the VCS revision the binary was built from.
func GetCommit() string {
	if Commit != "unknown" && Commit != "" {
		return Commit
	}
	if rev, ok := buildSetting("vcs.revision"); ok {
		return rev
	}
	return "unknown"
}

// GetBuildDate returns the commit time of the build.
func GetBuildDate() string {
	if Date != "unknown" && Date != "" {
		return Date
	}
	if t, ok := buildSetting("vcs.time"); ok {
		return t
	}
	return "unknown"
}

// GetInfo returns complete version information
func GetInfo() Info {
	return Info{
		Version: GetVersion(),
		Commit:  GetCommit(),
		Date:    GetBuildDate(),
		Package: "mixcreator",
	}
}

// GetFullVersion returns the version with a short commit and build date when known.
func GetFullVersion() string {
	info := GetInfo()
	if info.Commit == "unknown" || len(info.Commit) <= 7 {
		return info.Version
	}
	if info.Date == "unknown" {
		return fmt.Sprintf("%s (%s)", info.Version, info.Commit[:7])
	}
	return fmt.Sprintf("%s (%s, built %s)", info.Version, info.Commit[:7], info.Date)
}
