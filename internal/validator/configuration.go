package validator

import (
	"fmt"
	"strings"

	"github.com/thoreinstein/ccprops/internal/resolve"
)

// Field names used in findings, matching the property keys.
const (
	FieldCompilerPath     = "compilerPath"
	FieldIncludePath      = "includePath"
	FieldIntelliSenseMode = "intelliSenseMode"
	FieldMacFrameworkPath = "macFrameworkPath"
	FieldForcedInclude    = "forcedInclude"
	FieldCompileCommands  = "compileCommands"
	FieldBrowsePath       = "browse.path"
	FieldDatabaseFilename = "browse.databaseFilename"
)

// ConfigurationErrors holds the findings for one configuration. An empty
// string means the field is fine. A field may hold several messages
// separated by newlines.
type ConfigurationErrors struct {
	Name             string `json:"name"`
	CompilerPath     string `json:"compilerPath,omitempty"`
	IncludePath      string `json:"includePath,omitempty"`
	IntelliSenseMode string `json:"intelliSenseMode,omitempty"`
	MacFrameworkPath string `json:"macFrameworkPath,omitempty"`
	ForcedInclude    string `json:"forcedInclude,omitempty"`
	CompileCommands  string `json:"compileCommands,omitempty"`
	BrowsePath       string `json:"browsePath,omitempty"`
	DatabaseFilename string `json:"databaseFilename,omitempty"`
}

// Fields returns (field, message) pairs in report order.
func (e ConfigurationErrors) Fields() [][2]string {
	return [][2]string{
		{FieldCompilerPath, e.CompilerPath},
		{FieldIncludePath, e.IncludePath},
		{FieldIntelliSenseMode, e.IntelliSenseMode},
		{FieldMacFrameworkPath, e.MacFrameworkPath},
		{FieldForcedInclude, e.ForcedInclude},
		{FieldCompileCommands, e.CompileCommands},
		{FieldBrowsePath, e.BrowsePath},
		{FieldDatabaseFilename, e.DatabaseFilename},
	}
}

// Empty reports whether no field has a finding.
func (e ConfigurationErrors) Empty() bool {
	for _, f := range e.Fields() {
		if f[1] != "" {
			return false
		}
	}
	return true
}

// Result converts the findings into warnings, one per message line.
func (e ConfigurationErrors) Result() *Result {
	r := &Result{}
	for _, f := range e.Fields() {
		if f[1] == "" {
			continue
		}
		for _, line := range strings.Split(f[1], "\n") {
			r.Add(Issue{
				Severity:      SeverityWarning,
				Configuration: e.Name,
				Field:         f[0],
				Message:       line,
			})
		}
	}
	return r
}

// ValidateConfiguration checks every path-like field of a resolved
// configuration. The IntelliSense mode is only checked on Windows, where
// both MSVC and other compilers are plausible.
func (v *Validator) ValidateConfiguration(c resolve.Configuration) ConfigurationErrors {
	errs := ConfigurationErrors{
		Name:             c.Name,
		CompilerPath:     v.ValidateCompilerPath(c.CompilerPath),
		IncludePath:      v.ValidateList(c.IncludePath, true),
		MacFrameworkPath: v.ValidateList(c.MacFrameworkPath, true),
		ForcedInclude:    v.ValidateList(c.ForcedInclude, false),
		CompileCommands:  v.ValidateOne(c.CompileCommands, false),
		BrowsePath:       v.ValidateList(c.Browse.Path, true),
		DatabaseFilename: v.validateDatabaseFilename(c.Browse.DatabaseFilename),
	}
	if v.platform.IsWindows() && !v.CompilerModeCompatible(c.CompilerPath, c.IntelliSenseMode) {
		errs.IntelliSenseMode = fmt.Sprintf(MsgIncompatibleMode, c.IntelliSenseMode)
	}
	return errs
}
