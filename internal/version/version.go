package version

import "strings"

// Set via -ldflags at build time.
var (
	Version = "dev"
	Commit  = ""
)

// Get returns a human-readable version string.
func Get() string {
	if strings.TrimSpace(Commit) == "" {
		return Version
	}
	return Version + " (" + Commit + ")"
}
