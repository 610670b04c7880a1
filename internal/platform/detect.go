package platform

import (
	"runtime"
	"strings"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/paths"
)

// ErrUnknownHost is returned by ParseHost for unrecognized names.
var ErrUnknownHost = errors.New("unknown host platform")

// Host describes the running machine.
func Host() Descriptor {
	return Descriptor{OS: runtime.GOOS, Home: paths.Home()}
}

// ParseHost maps a user supplied platform name to a descriptor for the
// --host flag. Both GOOS spellings and configuration names are accepted.
func ParseHost(name string) (Descriptor, error) {
	d := Descriptor{Home: paths.Home()}
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "windows", "win32", "win":
		d.OS = OSWindows
	case "darwin", "mac", "macos", "osx":
		d.OS = OSDarwin
	case "linux":
		d.OS = OSLinux
	default:
		return Descriptor{}, errors.Wrapf(ErrUnknownHost, "%q (valid: windows, mac, linux)", name)
	}
	return d, nil
}
