package validator

import (
	"fmt"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/variables"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// Finding messages. The %s verb receives the resolved path or mode.
const (
	MsgCannotFind          = "Cannot find: %s"
	MsgNotADirectory       = "Path is not a directory: %s"
	MsgNotAFile            = "Path is not a file: %s"
	MsgMissingQuotes       = `Compiler path with spaces and arguments is missing double quotes " around the path.`
	MsgIncompatibleMode    = "IntelliSense mode %s is incompatible with compiler path."
	MsgDatabaseDirNotFound = "Cannot find the directory of the browse database: %s"
)

// wslMount matches /mnt/<drive>/... so it can be mapped to <DRIVE>:/...
var wslMount = regexp.MustCompile(`^/mnt/([a-zA-Z])(/.*)?$`)

// windowsAbs matches drive-letter and UNC paths.
var windowsAbs = regexp.MustCompile(`^([a-zA-Z]:|\\\\)`)

// Validator checks resolved paths against a filesystem.
type Validator struct {
	fs            afero.Fs
	platform      platform.Descriptor
	workspaceRoot string
	vcpkgRoot     string
	rootFS        string
	resolver      *variables.Resolver
}

// Option configures a Validator.
type Option func(*Validator)

// WithVcpkgRoot sets the value of ${vcpkgRoot}.
func WithVcpkgRoot(root string) Option {
	return func(v *Validator) { v.vcpkgRoot = root }
}

// WithRootFS sets the WSL root filesystem prefixed to POSIX paths on a
// Windows host.
func WithRootFS(rootFS string) Option {
	return func(v *Validator) { v.rootFS = rootFS }
}

// WithResolver substitutes placeholders before checking a path.
func WithResolver(r *variables.Resolver) Option {
	return func(v *Validator) { v.resolver = r }
}

// New returns a Validator for a workspace.
func New(fs afero.Fs, p platform.Descriptor, workspaceRoot string, opts ...Option) *Validator {
	v := &Validator{fs: fs, platform: p, workspaceRoot: workspaceRoot}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Platform returns the host the validator checks for.
func (v *Validator) Platform() platform.Descriptor { return v.platform }

// Fs returns the filesystem paths are checked against.
func (v *Validator) Fs() afero.Fs { return v.fs }

// ResolvePath turns a raw property value into a path to check. An empty
// result means the value should not be validated.
func (v *Validator) ResolvePath(raw string, windowsHost bool) string {
	if raw == "" || raw == properties.DefaultPlaceholder {
		return ""
	}

	p := raw
	if v.resolver != nil {
		p = v.resolver.Resolve(p)
	}
	if v.workspaceRoot != "" {
		p = strings.ReplaceAll(p, "${workspaceFolder}", v.workspaceRoot)
		p = strings.ReplaceAll(p, "${workspaceRoot}", v.workspaceRoot)
	}
	if v.vcpkgRoot != "" {
		p = strings.ReplaceAll(p, "${vcpkgRoot}", v.vcpkgRoot)
	}
	p = strings.ReplaceAll(p, "*", "")

	if windowsHost && strings.HasPrefix(p, "/") {
		if m := wslMount.FindStringSubmatch(p); m != nil {
			rest := m[2]
			if rest == "" {
				rest = "/"
			}
			p = strings.ToUpper(m[1]) + ":" + rest
		} else if v.rootFS != "" {
			p = strings.TrimRight(v.rootFS, `/\`) + p
		}
	}
	return p
}

// Locate finds resolved on disk. A relative path is retried against the
// workspace root. For compilers on a Windows host a missing ".exe" is
// also tried. It returns the path that exists, or resolved and false.
func (v *Validator) Locate(resolved string, isCompiler bool) (string, bool) {
	try := func(p string) (string, bool) {
		if fileutil.Exists(v.fs, p) {
			return p, true
		}
		if isCompiler && v.platform.IsWindows() && !strings.HasPrefix(p, "/") &&
			!strings.HasSuffix(strings.ToLower(p), ".exe") {
			if fileutil.Exists(v.fs, p+".exe") {
				return p + ".exe", true
			}
		}
		return "", false
	}

	if p, ok := try(resolved); ok {
		return p, true
	}
	if v.workspaceRoot != "" && !isAbs(resolved) {
		if p, ok := try(strings.TrimRight(v.workspaceRoot, `/\`) + "/" + resolved); ok {
			return p, true
		}
	}
	return resolved, false
}

// ValidateOne checks one path value. It returns "" when the path is fine
// or should not be checked.
func (v *Validator) ValidateOne(raw string, expectDirectory bool) string {
	resolved := v.ResolvePath(raw, v.platform.IsWindows())
	if resolved == "" {
		return ""
	}
	found, ok := v.Locate(resolved, false)
	switch {
	case !ok:
		return fmt.Sprintf(MsgCannotFind, resolved)
	case expectDirectory && !fileutil.IsDir(v.fs, found):
		return fmt.Sprintf(MsgNotADirectory, resolved)
	case !expectDirectory && !fileutil.IsFile(v.fs, found):
		return fmt.Sprintf(MsgNotAFile, resolved)
	}
	return ""
}

// CompilerCheck is the outcome of checking a compilerPath value.
type CompilerCheck struct {
	// Resolved is the executable path after resolution and splitting.
	Resolved string
	// Found is the path that exists on disk, which may carry a retried
	// workspace prefix or ".exe" suffix.
	Found string
	// Exempt is set for cl.exe on Windows, which is never checked.
	Exempt        bool
	MissingQuotes bool
	Exists        bool
	IsFile        bool
}

// Message renders the check as a finding, "" when there is none. A
// missing-quotes finding replaces the existence check because the
// executable cannot be told apart from its arguments.
func (c CompilerCheck) Message() string {
	switch {
	case c.Exempt || c.Resolved == "":
		return ""
	case c.MissingQuotes:
		return MsgMissingQuotes
	case !c.Exists:
		return fmt.Sprintf(MsgCannotFind, c.Resolved)
	case !c.IsFile:
		return fmt.Sprintf(MsgNotAFile, c.Resolved)
	}
	return ""
}

// CheckCompiler resolves and inspects a compilerPath value.
func (v *Validator) CheckCompiler(raw string) CompilerCheck {
	resolved := strings.TrimSpace(v.ResolvePath(raw, v.platform.IsWindows()))
	if resolved == "" {
		return CompilerCheck{}
	}

	split := compiler.Split(v.fs, resolved)
	res := CompilerCheck{Resolved: split.Path}
	if compiler.IsMSVC(split.Name) {
		res.Exempt = true
		return res
	}
	if len(split.Args) > 0 && !strings.HasPrefix(resolved, `"`) && strings.Contains(split.Path, " ") {
		res.MissingQuotes = true
	}

	found, ok := v.Locate(split.Path, true)
	res.Found = found
	res.Exists = ok
	res.IsFile = ok && fileutil.IsFile(v.fs, found)
	return res
}

// ValidateCompilerPath checks a compilerPath value.
func (v *Validator) ValidateCompilerPath(raw string) string {
	return v.CheckCompiler(raw).Message()
}

// ValidateList checks every entry and joins the distinct messages with
// newlines.
func (v *Validator) ValidateList(raws []string, expectDirectory bool) string {
	var msgs []string
	for _, raw := range raws {
		if msg := v.ValidateOne(raw, expectDirectory); msg != "" && !slices.Contains(msgs, msg) {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "\n")
}

// CompilerModeCompatible reports whether a compiler and an IntelliSense
// mode belong together: cl.exe needs the MSVC mode and every other
// compiler needs a non-MSVC one. Unset values are always compatible.
func (v *Validator) CompilerModeCompatible(compilerPath, mode string) bool {
	compilerPath = strings.TrimSpace(compilerPath)
	if compilerPath == "" || compilerPath == properties.DefaultPlaceholder ||
		mode == "" || mode == properties.DefaultPlaceholder {
		return true
	}
	isCl := compiler.IsMSVC(compiler.Split(v.fs, compilerPath).Name)
	return isCl == (mode == platform.ModeMSVC)
}

func (v *Validator) validateDatabaseFilename(raw string) string {
	resolved := v.ResolvePath(raw, v.platform.IsWindows())
	if resolved == "" {
		return ""
	}
	dir := path.Dir(strings.ReplaceAll(resolved, `\`, "/"))
	if dir == "." {
		return ""
	}
	if found, ok := v.Locate(dir, false); !ok || !fileutil.IsDir(v.fs, found) {
		return fmt.Sprintf(MsgDatabaseDirNotFound, dir)
	}
	return ""
}

func isAbs(p string) bool {
	return strings.HasPrefix(p, "/") || strings.HasPrefix(p, `\`) || windowsAbs.MatchString(p)
}
