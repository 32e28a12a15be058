// Package version reports what build is running
package version

// Stamped at link time:
//
//	go build -ldflags "-X botdesk/internal/core/version.version=v0.3.0 -X botdesk/internal/core/version.commit=$(git rev-parse --short HEAD)"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// BuildInfo is served by /meta/version and heads the API document
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build values
func Info() BuildInfo {
	return BuildInfo{Service: "botdesk-api", Version: version, Commit: commit, Date: date}
}
