package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// ServiceName identifies this service in health and version responses.
const ServiceName = "fivetran-universal-connector"

var (
	// Version is the semantic version (set by ldflags during build)
	Version = "dev"

	// GitCommit is the git commit hash (set by ldflags during build)
	GitCommit = ""

	// BuildDate is the build date (set by ldflags during build)
	BuildDate = ""
)

// Info represents version and build information
type Info struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	GitCommit string `json:"git_commit,omitempty"`
	BuildDate string `json:"build_date,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the version information
func Get() Info {
	return Info{
		Service:   ServiceName,
		Version:   getVersion(),
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}

// GetVersion returns the version string
func GetVersion() string {
	return getVersion()
}

// getVersion returns the version, falling back to build info if ldflags version is not set
func getVersion() string {
	if Version != "" && Version != "dev" {
		return Version
	}

	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			return info.Main.Version
		}
	}

	return "dev"
}

// GetShortVersion returns a short version string
func GetShortVersion() string {
	version := getVersion()
	if GitCommit != "" && len(GitCommit) >= 7 {
		return fmt.Sprintf("%s-%s", version, GitCommit[:7])
	}
	return version
}
