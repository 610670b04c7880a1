package resolve

import (
	"slices"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

// DefaultIncludePath is the include path of a fabricated configuration.
const DefaultIncludePath = "${workspaceFolder}/**"

// PlatformDefaults bundles what ApplyDefaults reads.
type PlatformDefaults struct {
	Platform platform.Descriptor
	Settings *config.Settings
	// Compiler may be nil while probing is still running.
	Compiler *compiler.Defaults
	// VcpkgIncludes are appended to the include path.
	VcpkgIncludes []string
}

// NewConfiguration fabricates a configuration named name with only the
// name set. ApplyDefaults fills the rest.
func NewConfiguration(name string) properties.Configuration {
	return properties.Configuration{Name: name}
}

// DefaultDocument is the document used when a workspace has no
// properties file: one configuration named after the host.
func DefaultDocument(pd PlatformDefaults) *properties.Document {
	cfg := NewConfiguration(pd.Platform.DefaultConfigurationName())
	ApplyDefaults(&cfg, pd)
	return &properties.Document{
		Configurations: []properties.Configuration{cfg},
		Version:        properties.CurrentVersion,
	}
}

// ApplyDefaults fills a fabricated configuration from platform and
// compiler defaults. A field is only set when the matching external
// setting is unset, so the setting stays in charge through ${default}.
// compilerPath is also skipped when compile commands are in use, since
// compile_commands.json names its own compiler.
func ApplyDefaults(cfg *properties.Configuration, pd PlatformDefaults) {
	s := &config.Empty().Snapshot
	if pd.Settings != nil {
		s = &pd.Settings.Snapshot
	}
	p := pd.Platform
	cd := pd.Compiler

	if s.IncludePath == nil {
		cfg.IncludePath = append([]string{DefaultIncludePath}, pd.VcpkgIncludes...)
	}
	if s.Defines == nil {
		cfg.Defines = p.DefaultDefines()
	}
	if s.MacFrameworkPath == nil && p.IsMac() {
		cfg.MacFrameworkPath = platform.DefaultMacFrameworks()
		if cd != nil && len(cd.Frameworks) > 0 {
			cfg.MacFrameworkPath = slices.Clone(cd.Frameworks)
		}
	}
	if cd == nil {
		if s.IntelliSenseMode == nil {
			cfg.IntelliSenseMode = properties.String(p.IntelliSenseModeFor(cfg.Name))
		}
		return
	}

	if s.WindowsSdkVersion == nil && cd.WindowsSdkVersion != "" && p.IsWindows() {
		cfg.WindowsSdkVersion = properties.String(cd.WindowsSdkVersion)
	}
	if s.CompilerPath == nil && cd.CompilerPath != "" && s.CompileCommands == nil && cfg.CompileCommands == nil {
		cfg.CompilerPath = properties.String(cd.CompilerPath)
	}
	if len(cd.KnownCompilers) > 0 {
		cfg.KnownCompilers = slices.Clone(cd.KnownCompilers)
	}
	if s.CStandard == nil && cd.CStandard != "" {
		cfg.CStandard = properties.String(cd.CStandard)
	}
	if s.CppStandard == nil && cd.CppStandard != "" {
		cfg.CppStandard = properties.String(cd.CppStandard)
	}
	if s.IntelliSenseMode == nil {
		cfg.IntelliSenseMode = properties.String(p.IntelliSenseModeFor(cfg.Name))
	}
}
