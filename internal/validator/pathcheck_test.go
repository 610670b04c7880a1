package validator

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
	"github.com/thoreinstein/ccprops/internal/variables"
)

var (
	linuxHost   = platform.Descriptor{OS: platform.OSLinux}
	windowsHost = platform.Descriptor{OS: platform.OSWindows}
)

func testFS(t *testing.T) afero.Fs {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, d := range []string{"/proj/inc", "/usr/include", "/opt/my tools", "C:/tools", "C:/inc"} {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}
	for _, f := range []string{
		"/proj/pch.h",
		"/proj/build/compile_commands.json",
		"/usr/bin/gcc",
		"/opt/my tools/gcc",
		"C:/tools/gcc.exe",
	} {
		require.NoError(t, afero.WriteFile(fs, f, []byte("x"), 0o644))
	}
	return fs
}

func TestValidator_ResolvePath(t *testing.T) {
	r := &variables.Resolver{Env: properties.Environment{"inc": properties.StringValue("/usr/include")}}
	v := New(afero.NewMemMapFs(), linuxHost, "/proj",
		WithVcpkgRoot("/vcpkg"), WithRootFS(`C:\wsl\rootfs\`), WithResolver(r))

	tests := []struct {
		raw     string
		windows bool
		want    string
	}{
		{"", false, ""},
		{"${default}", false, ""},
		{"${workspaceFolder}/inc", false, "/proj/inc"},
		{"${workspaceRoot}/inc", false, "/proj/inc"},
		{"${workspaceFolder}/**", false, "/proj/"},
		{"${vcpkgRoot}/installed", false, "/vcpkg/installed"},
		{"${inc}/sys", false, "/usr/include/sys"},
		{"/mnt/c/foo", false, "/mnt/c/foo"},
		{"/mnt/c/foo", true, "C:/foo"},
		{"/mnt/d", true, "D:/"},
		{"/usr/include", true, `C:\wsl\rootfs/usr/include`},
		{"C:/inc", true, "C:/inc"},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ResolvePath(tt.raw, tt.windows))
		})
	}
}

func TestValidator_ResolvePath_NoRootFS(t *testing.T) {
	v := New(afero.NewMemMapFs(), windowsHost, "C:/proj")
	assert.Equal(t, "/usr/include", v.ResolvePath("/usr/include", true))
}

func TestValidator_ValidateOne(t *testing.T) {
	v := New(testFS(t), linuxHost, "/proj")

	tests := []struct {
		name string
		raw  string
		dir  bool
		want string
	}{
		{"existing directory", "/usr/include", true, ""},
		{"missing", "/nope", true, "Cannot find: /nope"},
		{"relative retry", "inc", true, ""},
		{"relative missing", "missing", true, "Cannot find: missing"},
		{"file where directory expected", "/proj/pch.h", true, "Path is not a directory: /proj/pch.h"},
		{"existing file", "${workspaceFolder}/pch.h", false, ""},
		{"directory where file expected", "/usr/include", false, "Path is not a file: /usr/include"},
		{"default sentinel", "${default}", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, v.ValidateOne(tt.raw, tt.dir))
		})
	}
}

func TestValidator_ValidateCompilerPath(t *testing.T) {
	fs := testFS(t)

	tests := []struct {
		name string
		host platform.Descriptor
		raw  string
		want string
	}{
		{"existing", linuxHost, "/usr/bin/gcc", ""},
		{"existing with args", linuxHost, "/usr/bin/gcc -m32", ""},
		{"missing", linuxHost, "/usr/bin/clang", "Cannot find: /usr/bin/clang"},
		{"directory", linuxHost, "/usr/include", "Path is not a file: /usr/include"},
		{"spaces and args unquoted", linuxHost, "/opt/my tools/gcc -std=c99", MsgMissingQuotes},
		{"spaces and args quoted", linuxHost, `"/opt/my tools/gcc" -std=c99`, ""},
		{"spaces no args", linuxHost, "/opt/my tools/gcc", ""},
		{"exe suffix retry on windows", windowsHost, "C:/tools/gcc", ""},
		{"no exe retry on linux", linuxHost, "C:/tools/gcc", "Cannot find: C:/tools/gcc"},
		{"cl.exe exempt on windows", windowsHost, "C:/missing/cl.exe", ""},
		{"cl.exe exempt on linux", linuxHost, "/opt/msvc/bin/cl.exe", ""},
		{"cl.exe exempt on mac", platform.Descriptor{OS: platform.OSDarwin}, "/opt/msvc/bin/cl.exe", ""},
		{"empty", linuxHost, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(fs, tt.host, "/proj")
			assert.Equal(t, tt.want, v.ValidateCompilerPath(tt.raw))
		})
	}
}

func TestValidator_ValidateList(t *testing.T) {
	v := New(testFS(t), linuxHost, "/proj")

	got := v.ValidateList([]string{"/usr/include", "/a", "/proj/pch.h", "/a", "${default}"}, true)
	assert.Equal(t, "Cannot find: /a\nPath is not a directory: /proj/pch.h", got)
	assert.Empty(t, v.ValidateList(nil, true))
}

func TestValidator_CompilerModeCompatible(t *testing.T) {
	v := New(afero.NewMemMapFs(), windowsHost, "")

	tests := []struct {
		compiler string
		mode     string
		want     bool
	}{
		{`C:\VS\bin\cl.exe`, "gcc-x64", false},
		{`C:\VS\bin\cl.exe`, "msvc-x64", true},
		{"/usr/bin/gcc", "msvc-x64", false},
		{"/usr/bin/gcc", "gcc-x64", true},
		{"/usr/bin/clang", "clang-x64", true},
		{"", "msvc-x64", true},
		{"${default}", "gcc-x64", true},
		{`C:\VS\bin\cl.exe`, "", true},
		{`C:\VS\bin\cl.exe`, "${default}", true},
	}
	for _, tt := range tests {
		t.Run(tt.compiler+"|"+tt.mode, func(t *testing.T) {
			assert.Equal(t, tt.want, v.CompilerModeCompatible(tt.compiler, tt.mode))
		})
	}
}

func TestCompilerCheck_Message(t *testing.T) {
	assert.Empty(t, CompilerCheck{Resolved: "/x", Exempt: true}.Message())
	assert.Equal(t, MsgMissingQuotes, CompilerCheck{Resolved: "/a b", MissingQuotes: true}.Message())
	assert.Equal(t, "Cannot find: /x", CompilerCheck{Resolved: "/x"}.Message())
	assert.Equal(t, "Path is not a file: /x", CompilerCheck{Resolved: "/x", Exists: true}.Message())
	assert.Empty(t, CompilerCheck{Resolved: "/x", Exists: true, IsFile: true}.Message())
}
