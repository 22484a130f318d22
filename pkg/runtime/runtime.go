package runtime

// Set at build time via -ldflags.
var (
	Version   = "dev"
	GitCommit = "unknown"
	Timestamp = "unknown"
)
