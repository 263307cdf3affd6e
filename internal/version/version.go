package version

// Values for these are injected at build time using ldflags.
var (
	version = "devel"
	commit  = "unknown"
)

// Version returns the semantic version of this build.
func Version() string {
	return version
}

// Commit returns the git commit this build was produced from.
func Commit() string {
	return commit
}
