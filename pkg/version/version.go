// Package version holds build metadata, set with -ldflags at release time.
package version

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String formats the build metadata for --version and `qrpop version`.
func String() string {
	return "qrpop " + Version + " (" + Commit + ") built " + Date
}
