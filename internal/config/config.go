package config

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"

	"github.com/thoreinstein/ccprops/internal/paths"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// EnvPrefix prefixes environment overrides, e.g.
// CCPROPS_C_CPP_DEFAULT_COMPILERPATH=/usr/bin/clang.
const EnvPrefix = "CCPROPS"

// Setting keys, spelled the way editor settings files spell them.
const (
	KeyIncludePath                   = "C_Cpp.default.includePath"
	KeyDefines                       = "C_Cpp.default.defines"
	KeyMacFrameworkPath              = "C_Cpp.default.macFrameworkPath"
	KeyWindowsSdkVersion             = "C_Cpp.default.windowsSdkVersion"
	KeyCompileCommands               = "C_Cpp.default.compileCommands"
	KeyForcedInclude                 = "C_Cpp.default.forcedInclude"
	KeyCompilerPath                  = "C_Cpp.default.compilerPath"
	KeyCStandard                     = "C_Cpp.default.cStandard"
	KeyCppStandard                   = "C_Cpp.default.cppStandard"
	KeyIntelliSenseMode              = "C_Cpp.default.intelliSenseMode"
	KeyConfigurationProvider         = "C_Cpp.default.configurationProvider"
	KeyBrowsePath                    = "C_Cpp.default.browse.path"
	KeyDatabaseFilename              = "C_Cpp.default.browse.databaseFilename"
	KeyLimitSymbolsToIncludedHeaders = "C_Cpp.default.browse.limitSymbolsToIncludedHeaders"
	KeyEnableConfigurationSquiggles  = "C_Cpp.default.enableConfigurationSquiggles"
	KeyPreferredPathSeparator        = "C_Cpp.preferredPathSeparator"
)

// Path separator preferences.
const (
	SeparatorForwardSlash = "Forward Slash"
	SeparatorBackslash    = "Backslash"
)

// Snapshot is the set of external defaults consulted by the default-merge
// and the schema migration. nil means unset.
type Snapshot struct {
	IncludePath                   []string
	Defines                       []string
	MacFrameworkPath              []string
	WindowsSdkVersion             *string
	CompileCommands               *string
	ForcedInclude                 []string
	CompilerPath                  *string
	CStandard                     *string
	CppStandard                   *string
	IntelliSenseMode              *string
	ConfigurationProvider         *string
	BrowsePath                    []string
	DatabaseFilename              *string
	LimitSymbolsToIncludedHeaders *bool
	EnableConfigurationSquiggles  *bool
	PreferredPathSeparator        string
}

// SquigglesEnabled applies the default of true.
func (s *Snapshot) SquigglesEnabled() bool {
	return s.EnableConfigurationSquiggles == nil || *s.EnableConfigurationSquiggles
}

// PathSeparator is the separator written into paths ccprops adds to the
// properties file.
func (s *Snapshot) PathSeparator() string {
	if s.PreferredPathSeparator == SeparatorBackslash {
		return `\`
	}
	return "/"
}

// Settings is a loaded settings source.
type Settings struct {
	Snapshot

	// Source is the file the snapshot was read from, empty when none.
	Source string

	v *viper.Viper
}

// Empty returns settings with nothing set except environment overrides.
func Empty() *Settings {
	s, _ := load(nil, "", "")
	return s
}

// Load reads the settings file at path from fs. JSON files may contain
// comments and trailing commas; YAML and TOML are read by extension.
// An empty path yields Empty().
func Load(fs afero.Fs, path string) (*Settings, error) {
	if path == "" {
		return Empty(), nil
	}

	data, err := fileutil.ReadFileWithLimit(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading settings %s", path)
	}

	kind := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	switch kind {
	case "json", "jsonc", "":
		kind = "json"
		data = jsonc.ToJSON(data)
	case "yaml", "yml", "toml":
	default:
		return nil, errors.Newf("unsupported settings format %q", kind)
	}

	s, err := load(data, kind, path)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing settings %s", path)
	}
	return s, nil
}

// Discover returns the first settings file that exists: the workspace
// settings.json, then the user settings file. It returns "" when neither exists.
func Discover(fs afero.Fs, workspaceRoot string) string {
	for _, p := range []string{paths.SettingsFile(workspaceRoot), paths.UserSettingsFile()} {
		if fileutil.IsFile(fs, p) {
			return p
		}
	}
	return ""
}

func load(data []byte, kind, source string) (*Settings, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetDefault(KeyPreferredPathSeparator, SeparatorForwardSlash)

	if len(bytes.TrimSpace(data)) > 0 {
		v.SetConfigType(kind)
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, err
		}
	}

	s := &Settings{Source: source, v: v}
	s.Snapshot = Snapshot{
		IncludePath:                   stringSlice(v, KeyIncludePath),
		Defines:                       stringSlice(v, KeyDefines),
		MacFrameworkPath:              stringSlice(v, KeyMacFrameworkPath),
		WindowsSdkVersion:             stringValue(v, KeyWindowsSdkVersion),
		CompileCommands:               stringValue(v, KeyCompileCommands),
		ForcedInclude:                 stringSlice(v, KeyForcedInclude),
		CompilerPath:                  stringValue(v, KeyCompilerPath),
		CStandard:                     stringValue(v, KeyCStandard),
		CppStandard:                   stringValue(v, KeyCppStandard),
		IntelliSenseMode:              stringValue(v, KeyIntelliSenseMode),
		ConfigurationProvider:         stringValue(v, KeyConfigurationProvider),
		BrowsePath:                    stringSlice(v, KeyBrowsePath),
		DatabaseFilename:              stringValue(v, KeyDatabaseFilename),
		LimitSymbolsToIncludedHeaders: boolValue(v, KeyLimitSymbolsToIncludedHeaders),
		EnableConfigurationSquiggles:  boolValue(v, KeyEnableConfigurationSquiggles),
		PreferredPathSeparator:        v.GetString(KeyPreferredPathSeparator),
	}
	return s, nil
}

// Lookup returns the setting named key as a string, for ${config:key}.
// List values are joined with ";".
func (s *Settings) Lookup(key string) (string, bool) {
	if s == nil || s.v == nil || !s.v.IsSet(key) {
		return "", false
	}
	switch val := s.v.Get(key).(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case []any:
		parts := make([]string, len(val))
		for i, p := range val {
			parts[i] = fmt.Sprint(p)
		}
		return strings.Join(parts, ";"), true
	case []string:
		return strings.Join(val, ";"), true
	default:
		return fmt.Sprint(val), true
	}
}

func stringValue(v *viper.Viper, key string) *string {
	if !v.IsSet(key) || v.Get(key) == nil {
		return nil
	}
	s := v.GetString(key)
	return &s
}

func stringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) || v.Get(key) == nil {
		return nil
	}
	out := v.GetStringSlice(key)
	if out == nil {
		out = []string{}
	}
	return out
}

func boolValue(v *viper.Viper, key string) *bool {
	if !v.IsSet(key) || v.Get(key) == nil {
		return nil
	}
	b := v.GetBool(key)
	return &b
}
