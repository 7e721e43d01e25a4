// Package version carries build identification for the shopplan
// binary. The variables are overridden at link time:
//
//	go build -ldflags "-X github.com/teranos/shopplan/version.Version=v1.2.0 \
//	  -X github.com/teranos/shopplan/version.CommitHash=$(git rev-parse HEAD) \
//	  -X github.com/teranos/shopplan/version.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
package version

import (
	"fmt"
	"runtime"
)

var (
	// Version is the semantic version of a tagged release.
	Version = "dev"
	// CommitHash identifies the exact source revision.
	CommitHash = "unknown"
	// BuildTime is the UTC build timestamp.
	BuildTime = "unknown"
)

// Info is the full build identification, JSON-serializable for the
// version command's --json output.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash"`
	BuildTime  string `json:"build_time"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get assembles the build identification of the running binary.
func Get() Info {
	return Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String renders a one-line human-readable identification.
func (i Info) String() string {
	return fmt.Sprintf("shopplan %s (commit %s, built %s)", i.Version, i.Short(), i.BuildTime)
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 7 {
		return i.CommitHash[:7]
	}
	return i.CommitHash
}
