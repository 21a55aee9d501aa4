package version

// Set by -ldflags at build time.
var (
	// Version is the semantic version of this build.
	Version = "dev"
	// GitCommit is the git commit hash of this build.
	GitCommit = "unknown"
)
