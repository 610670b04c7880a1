package migrate

import (
	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

// Context is everything a step may consult besides the document.
type Context struct {
	Platform platform.Descriptor
	Settings *config.Settings
	// Compiler is nil when probing has not finished or found nothing.
	Compiler *compiler.Defaults
}

func (c Context) snapshot() *config.Snapshot {
	if c.Settings == nil {
		return &config.Empty().Snapshot
	}
	return &c.Settings.Snapshot
}

// Step upgrades a document from one version to the next.
type Step struct {
	FromVersion int
	ToVersion   int
	Description string

	// Apply mutates doc in place and reports whether any field was set.
	Apply func(doc *properties.Document, ctx Context) bool
}

// StepResult records one applied step.
type StepResult struct {
	FromVersion int
	ToVersion   int
	Description string
	Changed     bool
}

// Result describes a migration run.
type Result struct {
	FromVersion int
	ToVersion   int
	Steps       []StepResult

	// UnknownVersion is set when the source version is outside the known
	// range. The version is stamped to current and nothing else changes.
	UnknownVersion bool
}

// Changed reports whether the migrated document differs from the input.
func (r Result) Changed() bool {
	return r.FromVersion != r.ToVersion || r.UnknownVersion
}

// Applied returns the descriptions of the steps that ran.
func (r Result) Applied() []string {
	out := make([]string, len(r.Steps))
	for i, s := range r.Steps {
		out[i] = s.Description
	}
	return out
}

// steps is keyed by source version. Version 0 is a document without a
// version key; it migrates the same way as version 1.
var steps = map[int]Step{
	0: {FromVersion: 0, ToVersion: 2, Description: "initial version", Apply: toVersion2},
	1: {FromVersion: 1, ToVersion: 2, Description: "initial version", Apply: toVersion2},
	2: {FromVersion: 2, ToVersion: 3, Description: "add macOS framework paths", Apply: toVersion3},
	3: {FromVersion: 3, ToVersion: 4, Description: "add IntelliSense mode and compiler defaults", Apply: toVersion4},
}

// Steps returns the step that upgrades from version, if any.
func Steps(version int) (Step, bool) {
	s, ok := steps[version]
	return s, ok
}

// Migrate returns an upgraded copy of doc. doc itself is not modified.
func Migrate(doc *properties.Document, ctx Context) (*properties.Document, Result) {
	out := doc.Clone()
	res := Result{FromVersion: out.Version, ToVersion: properties.CurrentVersion}

	if out.Version < 0 || out.Version > properties.CurrentVersion {
		res.UnknownVersion = true
		out.Version = properties.CurrentVersion
		return out, res
	}

	for out.Version != properties.CurrentVersion {
		step, ok := steps[out.Version]
		if !ok {
			res.UnknownVersion = true
			out.Version = properties.CurrentVersion
			break
		}
		changed := step.Apply(out, ctx)
		res.Steps = append(res.Steps, StepResult{
			FromVersion: step.FromVersion,
			ToVersion:   step.ToVersion,
			Description: step.Description,
			Changed:     changed,
		})
		out.Version = step.ToVersion
	}
	return out, res
}

// toVersion2 used to fill browse.path from includePath. That is now
// done during the merge instead, so the step only bumps the version.
func toVersion2(*properties.Document, Context) bool {
	return false
}

// toVersion3 adds framework paths to configurations that target macOS:
// one named "Mac", or on a macOS host any name other than the Windows
// and Linux built-ins.
func toVersion3(doc *properties.Document, ctx Context) bool {
	changed := false
	for i := range doc.Configurations {
		c := &doc.Configurations[i]
		isMac := c.Name == platform.ConfigMac ||
			(ctx.Platform.IsMac() && c.Name != platform.ConfigWin32 && c.Name != platform.ConfigLinux)
		if !isMac || c.MacFrameworkPath != nil {
			continue
		}
		c.MacFrameworkPath = platform.DefaultMacFrameworks()
		changed = true
	}
	return changed
}

// toVersion4 fills the IntelliSense mode and the compiler derived
// fields. Each is left alone when the matching external setting is
// set, so the setting keeps applying through the merge.
func toVersion4(doc *properties.Document, ctx Context) bool {
	s := ctx.snapshot()
	cd := ctx.Compiler
	changed := false

	set := func(field **string, setting *string, value string) {
		if *field != nil || setting != nil || value == "" {
			return
		}
		*field = properties.String(value)
		changed = true
	}

	for i := range doc.Configurations {
		c := &doc.Configurations[i]
		set(&c.IntelliSenseMode, s.IntelliSenseMode, ctx.Platform.IntelliSenseModeFor(c.Name))
		if cd == nil {
			continue
		}
		if c.CompileCommands == nil && s.CompileCommands == nil {
			set(&c.CompilerPath, s.CompilerPath, cd.CompilerPath)
		}
		set(&c.CStandard, s.CStandard, cd.CStandard)
		set(&c.CppStandard, s.CppStandard, cd.CppStandard)
	}
	return changed
}
