package resolve

import (
	"path/filepath"
	"regexp"
	"slices"

	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/variables"
)

// Configuration is a configuration after the default-merge: every
// ${default} expanded, every known placeholder substituted, every list
// split on ";". It is never written back to disk.
type Configuration struct {
	Name                  string                     `json:"name" yaml:"name"`
	IncludePath           []string                   `json:"includePath,omitempty" yaml:"includePath,omitempty"`
	Defines               []string                   `json:"defines,omitempty" yaml:"defines,omitempty"`
	MacFrameworkPath      []string                   `json:"macFrameworkPath,omitempty" yaml:"macFrameworkPath,omitempty"`
	WindowsSdkVersion     string                     `json:"windowsSdkVersion,omitempty" yaml:"windowsSdkVersion,omitempty"`
	ForcedInclude         []string                   `json:"forcedInclude,omitempty" yaml:"forcedInclude,omitempty"`
	CompileCommands       string                     `json:"compileCommands,omitempty" yaml:"compileCommands,omitempty"`
	CompilerPath          string                     `json:"compilerPath,omitempty" yaml:"compilerPath,omitempty"`
	CStandard             string                     `json:"cStandard,omitempty" yaml:"cStandard,omitempty"`
	CppStandard           string                     `json:"cppStandard,omitempty" yaml:"cppStandard,omitempty"`
	IntelliSenseMode      string                     `json:"intelliSenseMode,omitempty" yaml:"intelliSenseMode,omitempty"`
	ConfigurationProvider string                     `json:"configurationProvider,omitempty" yaml:"configurationProvider,omitempty"`
	KnownCompilers        []properties.KnownCompiler `json:"knownCompilers,omitempty" yaml:"knownCompilers,omitempty"`
	Browse                Browse                     `json:"browse" yaml:"browse"`
}

// Browse is the resolved browse block.
type Browse struct {
	Path                          []string `json:"path,omitempty" yaml:"path,omitempty"`
	LimitSymbolsToIncludedHeaders *bool    `json:"limitSymbolsToIncludedHeaders,omitempty" yaml:"limitSymbolsToIncludedHeaders,omitempty"`
	DatabaseFilename              string   `json:"databaseFilename,omitempty" yaml:"databaseFilename,omitempty"`
}

// Inputs carries everything the merge reads besides the document.
type Inputs struct {
	Settings      *config.Settings
	WorkspaceRoot string
	LookupEnv     func(string) (string, bool)
	Home          string
}

// workspaceRootToken matches includePath entries that already cover the
// workspace root, such as "${workspaceFolder}" or "${workspaceRoot}/**".
var workspaceRootToken = regexp.MustCompile(`^\$\{(workspaceRoot|workspaceFolder)\}(\\\*{0,2}|/\*{0,2})?$`)

// NewResolver builds the placeholder resolver for doc: the document env
// plus workspaceFolderBasename.
func NewResolver(doc *properties.Document, in Inputs) *variables.Resolver {
	env := properties.Environment{}
	if doc != nil {
		env = doc.Env.Clone()
		if env == nil {
			env = properties.Environment{}
		}
	}
	basename := ""
	if in.WorkspaceRoot != "" {
		basename = filepath.Base(in.WorkspaceRoot)
	}
	env["workspaceFolderBasename"] = properties.StringValue(basename)

	r := &variables.Resolver{Env: env, LookupEnv: in.LookupEnv, Home: in.Home}
	if in.Settings != nil {
		r.LookupConfig = in.Settings.Lookup
	}
	return r
}

// Merge resolves every configuration of doc against the external
// defaults. doc is not modified.
func Merge(doc *properties.Document, in Inputs) []Configuration {
	settings := in.Settings
	if settings == nil {
		settings = config.Empty()
	}
	r := NewResolver(doc, in)

	out := make([]Configuration, len(doc.Configurations))
	for i := range doc.Configurations {
		out[i] = mergeOne(&doc.Configurations[i], &settings.Snapshot, r)
	}
	return out
}

func mergeOne(c *properties.Configuration, s *config.Snapshot, r *variables.Resolver) Configuration {
	res := Configuration{
		Name:                  c.Name,
		IncludePath:           r.ResolveList(c.IncludePath, s.IncludePath),
		Defines:               r.ResolveList(c.Defines, s.Defines),
		MacFrameworkPath:      r.ResolveList(c.MacFrameworkPath, s.MacFrameworkPath),
		WindowsSdkVersion:     properties.Deref(r.ResolveScalar(c.WindowsSdkVersion, s.WindowsSdkVersion)),
		ForcedInclude:         r.ResolveList(c.ForcedInclude, s.ForcedInclude),
		CompileCommands:       properties.Deref(r.ResolveScalar(c.CompileCommands, s.CompileCommands)),
		CompilerPath:          properties.Deref(r.ResolveScalar(c.CompilerPath, s.CompilerPath)),
		CStandard:             properties.Deref(r.ResolveScalar(c.CStandard, s.CStandard)),
		CppStandard:           properties.Deref(r.ResolveScalar(c.CppStandard, s.CppStandard)),
		IntelliSenseMode:      properties.Deref(r.ResolveScalar(c.IntelliSenseMode, s.IntelliSenseMode)),
		ConfigurationProvider: properties.Deref(r.ResolveScalar(c.ConfigurationProvider, s.ConfigurationProvider)),
		KnownCompilers:        slices.Clone(c.KnownCompilers),
	}

	var browse properties.Browse
	if c.Browse != nil {
		browse = *c.Browse
	}

	switch {
	case browse.Path != nil:
		res.Browse.Path = r.ResolveList(browse.Path, s.BrowsePath)
	case s.BrowsePath != nil:
		res.Browse.Path = r.ResolveList(s.BrowsePath, nil)
	case res.IncludePath != nil:
		res.Browse.Path = slices.Clone(res.IncludePath)
		if !slices.ContainsFunc(res.IncludePath, workspaceRootToken.MatchString) {
			res.Browse.Path = append(res.Browse.Path, "${workspaceFolder}")
		}
	}

	res.Browse.LimitSymbolsToIncludedHeaders = variables.ResolveBool(
		browse.LimitSymbolsToIncludedHeaders, s.LimitSymbolsToIncludedHeaders)
	res.Browse.DatabaseFilename = properties.Deref(r.ResolveScalar(browse.DatabaseFilename, s.DatabaseFilename))

	return res
}
