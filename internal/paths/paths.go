package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
)

// Workspace layout.
const (
	// EditorDir is the per-workspace editor directory holding the files below.
	EditorDir = ".vscode"

	// PropertiesFileName is the name of the properties file.
	PropertiesFileName = "c_cpp_properties.json"

	// SettingsFileName is the workspace settings file read for external defaults.
	SettingsFileName = "settings.json"

	// AppName names the per-user state and config directories.
	AppName = "ccprops"
)

// ErrHomeDirNotFound indicates the user's home directory could not be determined.
var ErrHomeDirNotFound = errors.New("home directory not found")

// DefaultDirPerm is the permission for directories created by ccprops.
const DefaultDirPerm = 0o755

// EnsureDir creates path and any parents on fs. A zero perm means DefaultDirPerm.
func EnsureDir(fs afero.Fs, path string, perm os.FileMode) error {
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return errors.Wrapf(fs.MkdirAll(path, perm), "creating %s", path)
}

// Home returns the user's home directory, or "" when unknown.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(ErrHomeDirNotFound, err.Error())
	}
	return home, nil
}

// PropertiesDir is the directory holding the properties file of a workspace.
func PropertiesDir(workspaceRoot string) string {
	return filepath.Join(workspaceRoot, EditorDir)
}

// PropertiesFile is the properties file of a workspace.
func PropertiesFile(workspaceRoot string) string {
	return filepath.Join(PropertiesDir(workspaceRoot), PropertiesFileName)
}

// SettingsFile is the workspace settings file.
func SettingsFile(workspaceRoot string) string {
	return filepath.Join(PropertiesDir(workspaceRoot), SettingsFileName)
}

// StateDir is where ccprops keeps per-user state.
// On Linux: ~/.local/state/ccprops
func StateDir() string {
	return filepath.Join(xdg.StateHome, AppName)
}

// StateFile holds the persisted configuration selection of every workspace.
func StateFile() string {
	return filepath.Join(StateDir(), "state.toml")
}

// ConfigDir is the per-user config directory.
// On Linux: ~/.config/ccprops
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// UserSettingsFile is the user-level settings file, consulted when the
// workspace has none.
func UserSettingsFile() string {
	return filepath.Join(ConfigDir(), "settings.json")
}
