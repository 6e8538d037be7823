package version

import "fmt"

var (
	// Version is the current version of m365, set via build flags
	Version = "dev"

	// Commit is the git commit hash, set via build flags
	Commit = "none"

	// BuildTime is the build timestamp, set via build flags
	BuildTime = "unknown"
)

// FullVersion returns the full version string
func FullVersion() string {
	return fmt.Sprintf("m365 %s, build %s, built at %s", Version, Commit, BuildTime)
}

func AbbreviatedVersion() string {
	return fmt.Sprintf("%s-%s", Version, Commit)
}

// UserAgent is sent with every REST request so tenant admins can attribute traffic.
func UserAgent() string {
	return fmt.Sprintf("m365/%s", Version)
}
