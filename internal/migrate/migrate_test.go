package migrate

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

func linuxContext() Context {
	return Context{
		Platform: platform.Descriptor{OS: platform.OSLinux},
		Compiler: &compiler.Defaults{
			CompilerPath: "/usr/bin/gcc",
			CStandard:    "gnu11",
			CppStandard:  "gnu++14",
		},
	}
}

func TestMigrate_FromAbsent(t *testing.T) {
	doc := &properties.Document{Configurations: []properties.Configuration{
		{Name: "Linux", IncludePath: []string{"/inc"}},
		{Name: "Mac"},
	}}

	got, res := Migrate(doc, linuxContext())

	assert.Equal(t, properties.CurrentVersion, got.Version)
	assert.Len(t, res.Steps, 3)
	assert.True(t, res.Changed())
	assert.False(t, res.UnknownVersion)
	assert.Equal(t, []string{"initial version", "add macOS framework paths", "add IntelliSense mode and compiler defaults"}, res.Applied())

	linux := got.Configurations[0]
	assert.Equal(t, []string{"/inc"}, linux.IncludePath)
	assert.Nil(t, linux.MacFrameworkPath)
	assert.Equal(t, platform.ModeGCC, properties.Deref(linux.IntelliSenseMode))
	assert.Equal(t, "/usr/bin/gcc", properties.Deref(linux.CompilerPath))
	assert.Equal(t, "gnu11", properties.Deref(linux.CStandard))
	assert.Equal(t, "gnu++14", properties.Deref(linux.CppStandard))

	mac := got.Configurations[1]
	assert.Equal(t, platform.DefaultMacFrameworks(), mac.MacFrameworkPath)
	assert.Equal(t, platform.ModeClang, properties.Deref(mac.IntelliSenseMode))

	// Input untouched.
	assert.Equal(t, 0, doc.Version)
	assert.Nil(t, doc.Configurations[0].IntelliSenseMode)
}

func TestMigrate_VersionOneTakesThreeSteps(t *testing.T) {
	doc := &properties.Document{Version: 1, Configurations: []properties.Configuration{{Name: "Linux"}}}
	got, res := Migrate(doc, linuxContext())
	assert.Equal(t, properties.CurrentVersion, got.Version)
	assert.Len(t, res.Steps, 3)
	assert.Equal(t, 1, res.Steps[0].FromVersion)
}

func TestMigrate_CurrentIsNoop(t *testing.T) {
	doc := &properties.Document{Version: properties.CurrentVersion, Configurations: []properties.Configuration{{Name: "Linux"}}}
	got, res := Migrate(doc, linuxContext())
	assert.False(t, res.Changed())
	assert.Empty(t, res.Steps)
	assert.Equal(t, doc, got)
}

func TestMigrate_Idempotent(t *testing.T) {
	doc := &properties.Document{Configurations: []properties.Configuration{{Name: "Mac"}, {Name: "custom"}}}
	ctx := linuxContext()
	ctx.Platform = platform.Descriptor{OS: platform.OSDarwin}

	once, _ := Migrate(doc, ctx)
	again := once.Clone()
	again.Version = 2
	twice, res := Migrate(again, ctx)

	for _, s := range res.Steps {
		assert.False(t, s.Changed, s.Description)
	}
	assert.Equal(t, once.Configurations, twice.Configurations)
}

func TestMigrate_MacHeuristic(t *testing.T) {
	names := []string{"Mac", "Win32", "Linux", "custom"}
	doc := &properties.Document{Version: 2}
	for _, n := range names {
		doc.Configurations = append(doc.Configurations, properties.Configuration{Name: n})
	}

	tests := []struct {
		os   string
		want []bool
	}{
		{platform.OSLinux, []bool{true, false, false, false}},
		{platform.OSDarwin, []bool{true, false, false, true}},
	}
	for _, tt := range tests {
		t.Run(tt.os, func(t *testing.T) {
			got, _ := Migrate(doc, Context{Platform: platform.Descriptor{OS: tt.os}})
			for i, want := range tt.want {
				assert.Equal(t, want, got.Configurations[i].MacFrameworkPath != nil, names[i])
			}
		})
	}
}

func TestMigrate_KeepsUserFrameworks(t *testing.T) {
	doc := &properties.Document{Version: 2, Configurations: []properties.Configuration{
		{Name: "Mac", MacFrameworkPath: []string{"/mine"}},
	}}
	got, res := Migrate(doc, Context{Platform: platform.Descriptor{OS: platform.OSDarwin}})
	assert.Equal(t, []string{"/mine"}, got.Configurations[0].MacFrameworkPath)
	assert.False(t, res.Steps[0].Changed)
}

func TestMigrate_SettingsSuppressDefaults(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/s.json", []byte(`{
		"C_Cpp.default.intelliSenseMode": "clang-x64",
		"C_Cpp.default.compilerPath": "/opt/clang",
		"C_Cpp.default.cppStandard": "c++17"
	}`), 0o644))
	settings, err := config.Load(fs, "/s.json")
	require.NoError(t, err)

	ctx := linuxContext()
	ctx.Settings = settings
	doc := &properties.Document{Version: 3, Configurations: []properties.Configuration{{Name: "Linux"}}}

	got, _ := Migrate(doc, ctx)
	c := got.Configurations[0]
	assert.Nil(t, c.IntelliSenseMode)
	assert.Nil(t, c.CompilerPath)
	assert.Nil(t, c.CppStandard)
	assert.Equal(t, "gnu11", properties.Deref(c.CStandard))
}

func TestMigrate_CompileCommandsSkipsCompilerPath(t *testing.T) {
	doc := &properties.Document{Version: 3, Configurations: []properties.Configuration{
		{Name: "Linux", CompileCommands: properties.String("/b/compile_commands.json")},
	}}
	got, _ := Migrate(doc, linuxContext())
	assert.Nil(t, got.Configurations[0].CompilerPath)
	assert.NotNil(t, got.Configurations[0].CStandard)
}

func TestMigrate_WithoutCompilerDefaults(t *testing.T) {
	doc := &properties.Document{Version: 3, Configurations: []properties.Configuration{{Name: "Win32"}}}
	got, res := Migrate(doc, Context{Platform: platform.Descriptor{OS: platform.OSLinux}})
	assert.Equal(t, platform.ModeMSVC, properties.Deref(got.Configurations[0].IntelliSenseMode))
	assert.Nil(t, got.Configurations[0].CompilerPath)
	assert.True(t, res.Steps[0].Changed)
}

func TestMigrate_UnknownVersion(t *testing.T) {
	for _, v := range []int{5, 42, -1} {
		doc := &properties.Document{Version: v, Configurations: []properties.Configuration{{Name: "Linux"}}}
		got, res := Migrate(doc, linuxContext())
		assert.True(t, res.UnknownVersion)
		assert.True(t, res.Changed())
		assert.Empty(t, res.Steps)
		assert.Equal(t, properties.CurrentVersion, got.Version)
		assert.Nil(t, got.Configurations[0].IntelliSenseMode)
	}
}

func TestSteps(t *testing.T) {
	for v := 0; v < properties.CurrentVersion; v++ {
		s, ok := Steps(v)
		require.True(t, ok, "version %d", v)
		assert.Greater(t, s.ToVersion, v)
	}
	_, ok := Steps(properties.CurrentVersion)
	assert.False(t, ok)
}
