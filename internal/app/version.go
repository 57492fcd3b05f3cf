package app

import "fmt"

// Set via -ldflags "-X github.com/freeup86/trainingpulse-sub004/internal/app.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is the one-line build identifier reported by /health, the
// startup log and the CLI.
func BuildVersion() string {
	if Commit == "unknown" && BuildTime == "unknown" {
		return Version
	}
	return fmt.Sprintf("%s (commit %s, built %s)", Version, Commit, BuildTime)
}
