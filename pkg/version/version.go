// Package version reports build information for brainai.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata, injected with
// -ldflags "-X github.com/Aman-CERP/brainai/pkg/version.Version=..."
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// BuildInfo is the JSON shape of `brainai version --json`.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
}

// Short returns the version. A `go install`ed binary without ldflags
// reports its module version instead of "dev".
func Short() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		if v := info.Main.Version; v != "" && v != "(devel)" {
			return v
		}
	}
	return Version
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("brainai %s (commit: %s, built: %s, go: %s)",
		Short(), Commit, Date, runtime.Version())
}

// UserAgent is the User-Agent header the CLI sends to the service.
func UserAgent() string {
	return "brainai-go/" + Short()
}

// GetInfo returns structured build information.
func GetInfo() BuildInfo {
	return BuildInfo{
		Version:   Short(),
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	}
}
