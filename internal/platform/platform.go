package platform

import (
	"slices"
	"strings"
)

// Host operating systems, using runtime.GOOS spelling.
const (
	OSWindows = "windows"
	OSDarwin  = "darwin"
	OSLinux   = "linux"
)

// Built-in configuration names, one per host family.
const (
	ConfigWin32 = "Win32"
	ConfigMac   = "Mac"
	ConfigLinux = "Linux"
)

// IntelliSense modes assigned by default.
const (
	ModeMSVC  = "msvc-x64"
	ModeClang = "clang-x64"
	ModeGCC   = "gcc-x64"
)

// Descriptor describes the machine the properties are evaluated on. It is
// passed explicitly so that Windows behavior can be exercised on any host.
type Descriptor struct {
	// OS is one of OSWindows, OSDarwin or OSLinux. Anything else is
	// treated like Linux.
	OS string

	// Home is used for leading "~" expansion.
	Home string
}

// IsWindows reports whether the descriptor is a Windows host.
func (d Descriptor) IsWindows() bool { return d.OS == OSWindows }

// IsMac reports whether the descriptor is a macOS host.
func (d Descriptor) IsMac() bool { return d.OS == OSDarwin }

// NormalizeSeparators rewrites both separator styles to the host one.
func (d Descriptor) NormalizeSeparators(p string) string {
	if d.IsWindows() {
		return strings.ReplaceAll(p, "/", `\`)
	}
	return strings.ReplaceAll(p, `\`, "/")
}

// DefaultConfigurationName is the name of the configuration fabricated
// for this host when no properties file exists.
func (d Descriptor) DefaultConfigurationName() string {
	switch d.OS {
	case OSWindows:
		return ConfigWin32
	case OSDarwin:
		return ConfigMac
	default:
		return ConfigLinux
	}
}

// IntelliSenseModeFor returns the default mode for a configuration name.
// The three built-in names map to their own compiler family; any other
// name gets the host preference.
func (d Descriptor) IntelliSenseModeFor(name string) string {
	switch name {
	case ConfigLinux:
		return ModeGCC
	case ConfigMac:
		return ModeClang
	case ConfigWin32:
		return ModeMSVC
	}
	switch d.OS {
	case OSWindows:
		return ModeMSVC
	case OSDarwin:
		return ModeClang
	default:
		return ModeGCC
	}
}

// DefaultDefines are the preprocessor defines of a fabricated configuration.
func (d Descriptor) DefaultDefines() []string {
	if d.IsWindows() {
		return []string{"_DEBUG", "UNICODE", "_UNICODE"}
	}
	return []string{}
}

// DefaultMacFrameworks is the framework search path used on macOS.
func DefaultMacFrameworks() []string {
	return []string{"/System/Library/Frameworks", "/Library/Frameworks"}
}

// PreferredIndex picks the configuration to select when nothing else
// applies: the one named after the host, otherwise the last one.
func (d Descriptor) PreferredIndex(names []string) int {
	if i := slices.Index(names, d.DefaultConfigurationName()); i >= 0 {
		return i
	}
	return len(names) - 1
}
