package misc

import (
	"runtime/debug"
	"strings"
)

// Build related values, set from the linker or derived from the build info
// embedded by the go tool.
var (
	appName = "gdex"
	version = ""
	gitHash = ""
)

// GetAppName returns base name used for configuration, logging and reporting
// artifacts.
func GetAppName() string {
	return appName
}

// GetVersion returns program version.
func GetVersion() string {
	if version != "" {
		return version
	}
	if bi, ok := debug.ReadBuildInfo(); ok && bi.Main.Version != "" {
		return bi.Main.Version
	}
	return "unknown"
}

// GetGitHash returns short hash of the source revision program was built from.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	var rev, modified string
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				rev = s.Value
			case "vcs.modified":
				if s.Value == "true" {
					modified = "*"
				}
			}
		}
	}
	if rev == "" {
		return "unknown"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	return rev + modified
}

// GetUserAgent returns value suitable for the User-Agent header on outgoing
// requests.
func GetUserAgent() string {
	var b strings.Builder
	b.WriteString(appName)
	b.WriteByte('/')
	b.WriteString(GetVersion())
	return b.String()
}
