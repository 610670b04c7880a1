package properties

import (
	"encoding/json"
	"slices"
)

// CurrentVersion is the schema version written by ccprops.
const CurrentVersion = 4

// DefaultPlaceholder stands for "use the external default here".
const DefaultPlaceholder = "${default}"

// ReservedEnvNames may not be overridden through the document env.
var ReservedEnvNames = []string{"workspaceRoot", "workspaceFolder", "workspaceFolderBasename", "default"}

// Document is the parsed content of c_cpp_properties.json.
//
// Unknown keys at every level are kept in Extra and written back
// untouched.
type Document struct {
	Configurations               []Configuration `json:"configurations"`
	Env                          Environment     `json:"env,omitzero"`
	Version                      int             `json:"version"`
	EnableConfigurationSquiggles *bool           `json:"enableConfigurationSquiggles,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Configuration is one named build configuration.
//
// A nil pointer or nil slice means the key is absent; an empty slice is a
// present but empty list.
type Configuration struct {
	Name                  string          `json:"name"`
	IncludePath           []string        `json:"includePath,omitzero"`
	Defines               []string        `json:"defines,omitzero"`
	MacFrameworkPath      []string        `json:"macFrameworkPath,omitzero"`
	WindowsSdkVersion     *string         `json:"windowsSdkVersion,omitempty"`
	ForcedInclude         []string        `json:"forcedInclude,omitzero"`
	CompileCommands       *string         `json:"compileCommands,omitempty"`
	CompilerPath          *string         `json:"compilerPath,omitempty"`
	CStandard             *string         `json:"cStandard,omitempty"`
	CppStandard           *string         `json:"cppStandard,omitempty"`
	IntelliSenseMode      *string         `json:"intelliSenseMode,omitempty"`
	ConfigurationProvider *string         `json:"configurationProvider,omitempty"`
	KnownCompilers        []KnownCompiler `json:"knownCompilers,omitzero"`
	Browse                *Browse         `json:"browse,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// Browse holds the tag parser settings of a configuration.
type Browse struct {
	Path                          []string `json:"path,omitzero"`
	LimitSymbolsToIncludedHeaders *bool    `json:"limitSymbolsToIncludedHeaders,omitempty"`
	DatabaseFilename              *string  `json:"databaseFilename,omitempty"`

	Extra map[string]json.RawMessage `json:"-"`
}

// KnownCompiler is a compiler found by probing the host. It is derived
// data and never written to disk.
type KnownCompiler struct {
	Path string `json:"path"`
	IsC  bool   `json:"isC"`
}

// String returns a pointer to s, for filling optional fields.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Deref returns *p or "" for nil.
func Deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// Names lists configuration names in document order.
func (d *Document) Names() []string {
	names := make([]string, len(d.Configurations))
	for i, c := range d.Configurations {
		names[i] = c.Name
	}
	return names
}

// IndexOf returns the index of the first configuration named name, or -1.
func (d *Document) IndexOf(name string) int {
	return slices.IndexFunc(d.Configurations, func(c Configuration) bool { return c.Name == name })
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	out := &Document{
		Version:                      d.Version,
		EnableConfigurationSquiggles: cloneBool(d.EnableConfigurationSquiggles),
		Env:                          d.Env.Clone(),
		Extra:                        cloneExtra(d.Extra),
	}
	if d.Configurations != nil {
		out.Configurations = make([]Configuration, len(d.Configurations))
		for i := range d.Configurations {
			out.Configurations[i] = d.Configurations[i].Clone()
		}
	}
	return out
}

// Clone returns a deep copy of c.
func (c Configuration) Clone() Configuration {
	out := Configuration{
		Name:                  c.Name,
		IncludePath:           slices.Clone(c.IncludePath),
		Defines:               slices.Clone(c.Defines),
		MacFrameworkPath:      slices.Clone(c.MacFrameworkPath),
		WindowsSdkVersion:     cloneString(c.WindowsSdkVersion),
		ForcedInclude:         slices.Clone(c.ForcedInclude),
		CompileCommands:       cloneString(c.CompileCommands),
		CompilerPath:          cloneString(c.CompilerPath),
		CStandard:             cloneString(c.CStandard),
		CppStandard:           cloneString(c.CppStandard),
		IntelliSenseMode:      cloneString(c.IntelliSenseMode),
		ConfigurationProvider: cloneString(c.ConfigurationProvider),
		KnownCompilers:        slices.Clone(c.KnownCompilers),
		Extra:                 cloneExtra(c.Extra),
	}
	if c.Browse != nil {
		out.Browse = &Browse{
			Path:                          slices.Clone(c.Browse.Path),
			LimitSymbolsToIncludedHeaders: cloneBool(c.Browse.LimitSymbolsToIncludedHeaders),
			DatabaseFilename:              cloneString(c.Browse.DatabaseFilename),
			Extra:                         cloneExtra(c.Browse.Extra),
		}
	}
	return out
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneBool(p *bool) *bool {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneExtra(m map[string]json.RawMessage) map[string]json.RawMessage {
	if m == nil {
		return nil
	}
	out := make(map[string]json.RawMessage, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
