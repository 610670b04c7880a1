package compiler

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

// ErrNoCompiler is returned by a prober that found nothing usable.
var ErrNoCompiler = errors.New("no compiler found")

// Defaults are the values derived from probing the host compiler. They
// fill fabricated configurations and migrated version 3 documents.
type Defaults struct {
	CompilerPath      string
	KnownCompilers    []properties.KnownCompiler
	CStandard         string
	CppStandard       string
	IntelliSenseMode  string
	WindowsSdkVersion string
	Frameworks        []string

	// RootFS is the WSL root filesystem on Windows, used to map
	// absolute POSIX paths to a Windows location.
	RootFS string
}

// Prober produces compiler defaults for a host.
type Prober interface {
	Probe(ctx context.Context) (*Defaults, error)
}

// PathProber looks for well-known compiler executables on PATH.
type PathProber struct {
	Platform platform.Descriptor

	// LookPath defaults to exec.LookPath.
	LookPath func(string) (string, error)
}

// candidates lists executables per host in preference order. The flag
// marks C compilers.
func candidates(p platform.Descriptor) []struct {
	name string
	isC  bool
} {
	type c = struct {
		name string
		isC  bool
	}
	switch p.OS {
	case platform.OSWindows:
		return []c{{"cl.exe", false}, {"clang.exe", true}, {"gcc.exe", true}, {"clang++.exe", false}, {"g++.exe", false}}
	case platform.OSDarwin:
		return []c{{"clang", true}, {"clang++", false}, {"gcc", true}, {"g++", false}}
	default:
		return []c{{"gcc", true}, {"g++", false}, {"clang", true}, {"clang++", false}, {"cc", true}}
	}
}

// Probe returns the first compiler found as the default, every compiler
// found as KnownCompilers, and standards matching the compiler family.
func (p *PathProber) Probe(ctx context.Context) (*Defaults, error) {
	lookPath := p.LookPath
	if lookPath == nil {
		lookPath = exec.LookPath
	}

	d := &Defaults{}
	for _, cand := range candidates(p.Platform) {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "probing compilers")
		}
		found, err := lookPath(cand.name)
		if err != nil {
			continue
		}
		d.KnownCompilers = append(d.KnownCompilers, properties.KnownCompiler{Path: found, IsC: cand.isC})
		if d.CompilerPath == "" {
			d.CompilerPath = found
		}
	}
	if d.CompilerPath == "" {
		return nil, ErrNoCompiler
	}

	d.IntelliSenseMode = ModeFor(d.CompilerPath, p.Platform)
	if IsMSVC(baseName(d.CompilerPath)) {
		d.CStandard, d.CppStandard = "c11", "c++17"
	} else {
		d.CStandard, d.CppStandard = "gnu11", "gnu++14"
	}
	if p.Platform.IsMac() {
		d.Frameworks = platform.DefaultMacFrameworks()
	}
	return d, nil
}

// ModeFor derives an IntelliSense mode from a compiler path.
func ModeFor(compilerPath string, p platform.Descriptor) string {
	name := strings.ToLower(baseName(compilerPath))
	switch {
	case IsMSVC(name):
		return platform.ModeMSVC
	case strings.Contains(name, "clang"):
		return platform.ModeClang
	case strings.Contains(name, "gcc"), strings.Contains(name, "g++"):
		return platform.ModeGCC
	}
	return p.IntelliSenseModeFor("")
}

// IsMSVC reports whether a compiler file name is cl.exe.
func IsMSVC(name string) bool {
	return strings.EqualFold(name, "cl.exe")
}

// baseName is filepath.Base that also splits on backslashes, so Windows
// paths are handled on any host.
func baseName(p string) string {
	if i := strings.LastIndexAny(p, `/\`); i >= 0 {
		return p[i+1:]
	}
	return filepath.Base(p)
}
