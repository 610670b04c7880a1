// Package platform describes the host that properties are evaluated on.
//
// A [Descriptor] is built once at the CLI edge (from runtime.GOOS or the
// --host flag) and passed to every component that has host-specific
// behavior: default configuration names, IntelliSense modes, path
// separators, WSL path remapping and .exe probing.
package platform
