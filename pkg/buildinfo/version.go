// Package buildinfo holds the version reported by dagstats --version.
//
// Release builds inject the values with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/dagstats/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/dagstats/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/dagstats/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/dagstats
//
// Local builds keep the placeholders below.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// String returns the build information as three "key: value" lines.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", Version, Commit, Date)
}

// Template returns the cobra version template, e.g.
// "dagstats version v0.3.0 (commit abc1234, built 2026-01-02T03:04:05Z)".
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s (commit %s, built %s)\n", Version, Commit, Date)
}
