// Package version holds the build version of the ikos binary.
package version

import "fmt"

var (
	// Version is set at build time with -ldflags.
	Version = "0.1.0-dev"

	// GitCommit is the commit the binary was built from.
	GitCommit = ""
)

// String returns the full version string.
func String() string {
	if GitCommit == "" {
		return fmt.Sprintf("ikos v%s", Version)
	}
	return fmt.Sprintf("ikos v%s (%s)", Version, GitCommit)
}
