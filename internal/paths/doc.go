// Package paths resolves the files ccprops reads and writes.
//
// Workspace files live under <root>/.vscode; per-user state and settings
// follow the XDG base directory layout through github.com/adrg/xdg, so on
// macOS they land under ~/Library/Application Support and on Windows under
// %LOCALAPPDATA%.
package paths
