// Package cmd holds build metadata for the ccprops binary, injected with
// -ldflags "-X github.com/thoreinstein/ccprops/cmd.Version=...".
package cmd

import (
	"fmt"
	"runtime"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// BuildInfo is the version report printed by "ccprops version".
type BuildInfo struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
	Go      string `json:"go"`
	OS      string `json:"os"`
	Arch    string `json:"arch"`
}

// Info returns the metadata of the running binary.
func Info() BuildInfo {
	return BuildInfo{
		Version: Version,
		Commit:  Commit,
		Date:    Date,
		Go:      runtime.Version(),
		OS:      runtime.GOOS,
		Arch:    runtime.GOARCH,
	}
}

func (b BuildInfo) String() string {
	return fmt.Sprintf("ccprops version %s\n  commit: %s\n  built:  %s\n  go:     %s %s/%s\n",
		b.Version, b.Commit, b.Date, b.Go, b.OS, b.Arch)
}
