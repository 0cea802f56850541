// Package version reports build metadata stamped in at link time
package version

// BuildInfo holds version information about the service build
type BuildInfo struct {
	Service string `json:"service"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

// Service is the name reported by /meta/version and the logs
const Service = "devsolutions-api"

// Info returns the build information
func Info() BuildInfo {
	// -ldflags "-X 'devsolutions/internal/core/version.version=v1.2.0'
	// -X 'devsolutions/internal/core/version.commit=abcd' -X 'devsolutions/internal/core/version.date=2025-09-02'"
	return BuildInfo{
		Service: Service,
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
