// Package version reports build metadata stamped at link time
package version

// BuildInfo is served by the meta module
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Info returns the stamped build metadata
// go build -ldflags "-X 'juryduty/internal/core/version.version=v0.1.0' -X 'juryduty/internal/core/version.commit=abcd'"
func Info() BuildInfo {
	return BuildInfo{
		Service: "juryduty-api",
		Version: version,
		Commit:  commit,
		Date:    date,
	}
}

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)
