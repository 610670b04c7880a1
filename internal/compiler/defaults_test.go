package compiler

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

func fakeLookPath(found map[string]string) func(string) (string, error) {
	return func(name string) (string, error) {
		if p, ok := found[name]; ok {
			return p, nil
		}
		return "", exec.ErrNotFound
	}
}

func TestPathProber_Linux(t *testing.T) {
	p := &PathProber{
		Platform: platform.Descriptor{OS: platform.OSLinux},
		LookPath: fakeLookPath(map[string]string{"gcc": "/usr/bin/gcc", "clang++": "/usr/bin/clang++"}),
	}

	d, err := p.Probe(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "/usr/bin/gcc", d.CompilerPath)
	assert.Equal(t, []properties.KnownCompiler{
		{Path: "/usr/bin/gcc", IsC: true},
		{Path: "/usr/bin/clang++", IsC: false},
	}, d.KnownCompilers)
	assert.Equal(t, platform.ModeGCC, d.IntelliSenseMode)
	assert.Equal(t, "gnu11", d.CStandard)
	assert.Equal(t, "gnu++14", d.CppStandard)
	assert.Nil(t, d.Frameworks)
}

func TestPathProber_WindowsPrefersMSVC(t *testing.T) {
	p := &PathProber{
		Platform: platform.Descriptor{OS: platform.OSWindows},
		LookPath: fakeLookPath(map[string]string{
			"cl.exe":  `C:\VS\bin\cl.exe`,
			"gcc.exe": `C:\mingw\bin\gcc.exe`,
		}),
	}

	d, err := p.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `C:\VS\bin\cl.exe`, d.CompilerPath)
	assert.Equal(t, platform.ModeMSVC, d.IntelliSenseMode)
	assert.Equal(t, "c++17", d.CppStandard)
}

func TestPathProber_MacFrameworks(t *testing.T) {
	p := &PathProber{
		Platform: platform.Descriptor{OS: platform.OSDarwin},
		LookPath: fakeLookPath(map[string]string{"clang": "/usr/bin/clang"}),
	}

	d, err := p.Probe(context.Background())
	require.NoError(t, err)
	assert.Equal(t, platform.ModeClang, d.IntelliSenseMode)
	assert.Equal(t, platform.DefaultMacFrameworks(), d.Frameworks)
}

func TestPathProber_NothingFound(t *testing.T) {
	p := &PathProber{Platform: platform.Descriptor{OS: platform.OSLinux}, LookPath: fakeLookPath(nil)}

	_, err := p.Probe(context.Background())
	assert.ErrorIs(t, err, ErrNoCompiler)
}

func TestPathProber_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	p := &PathProber{Platform: platform.Descriptor{OS: platform.OSLinux}, LookPath: fakeLookPath(nil)}

	_, err := p.Probe(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestModeFor(t *testing.T) {
	linux := platform.Descriptor{OS: platform.OSLinux}
	win := platform.Descriptor{OS: platform.OSWindows}

	assert.Equal(t, platform.ModeMSVC, ModeFor(`C:\bin\CL.EXE`, linux))
	assert.Equal(t, platform.ModeClang, ModeFor("/usr/bin/clang-17", linux))
	assert.Equal(t, platform.ModeGCC, ModeFor("/usr/bin/arm-none-eabi-g++", win))
	assert.Equal(t, platform.ModeMSVC, ModeFor("/usr/bin/icx", win))
	assert.Equal(t, platform.ModeGCC, ModeFor("/usr/bin/icx", linux))
}
