// Package version reports build metadata of the gallery service
package version

import (
	"fmt"
	"runtime"
)

// Set with -ldflags "-X github.com/latoulicious/artgallery/internal/version.Version=..."
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

// Name is the service name reported on /status
const Name = "artgallery"

// Info contains version information
type Info struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
}

// Get returns version information
func Get() Info {
	return Info{
		Name:      Name,
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}
}

func (i Info) String() string {
	return fmt.Sprintf("%s v%s (commit: %s, built: %s, go: %s)",
		i.Name, i.Version, i.GitCommit, i.BuildTime, i.GoVersion)
}
