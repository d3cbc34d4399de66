package version

import "fmt"

// Set at build time with -ldflags "-X github.com/johnquangdev/voxly/internal/version.Version=..."
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func Full() string {
	return fmt.Sprintf("voxly %s, commit %s, built at %s", Version, Commit, Date)
}
