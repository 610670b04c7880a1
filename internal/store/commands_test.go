package store

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/properties"
)

const linuxOnly = `{"configurations": [{"name": "Linux"}], "version": 4}`

func openWith(t *testing.T, body string, opts ...Option) *fixture {
	t.Helper()
	fs := workspaceFS(t)
	if body != "" {
		writeProps(t, fs, body)
	}
	f := newFixture(t, fs, opts...)
	require.NoError(t, f.store.Open())
	f.evs.reset()
	return f
}

func loadSettings(t *testing.T, fs afero.Fs, body string) *config.Settings {
	t.Helper()
	require.NoError(t, afero.WriteFile(fs, "/settings.json", []byte(body), 0o644))
	s, err := config.Load(fs, "/settings.json")
	require.NoError(t, err)
	return s
}

func TestAddIncludePath(t *testing.T) {
	f := openWith(t, linuxOnly)

	require.NoError(t, f.store.AddIncludePath("/opt/inc"))
	assert.Equal(t, []string{"${default}", "/opt/inc"}, readProps(t, f.fs).Configurations[0].IncludePath)

	require.NoError(t, f.store.AddIncludePath("/opt/inc"))
	assert.Equal(t, []string{"${default}", "/opt/inc"}, readProps(t, f.fs).Configurations[0].IncludePath)

	cfg, _ := f.store.Current()
	assert.Equal(t, []string{"/opt/inc"}, cfg.IncludePath)
	assert.NotEmpty(t, f.evs.of(ConfigurationsChanged))

	assert.Error(t, f.store.AddIncludePath("  "))
}

func TestAddIncludePath_PreferredSeparator(t *testing.T) {
	f := openWith(t, linuxOnly)
	require.NoError(t, f.store.AddIncludePath(`${workspaceFolder}\third_party\inc`))
	require.NoError(t, f.store.SetCompileCommands(`${workspaceFolder}\build\compile_commands.json`))
	c := readProps(t, f.fs).Configurations[0]
	assert.Equal(t, []string{"${default}", "${workspaceFolder}/third_party/inc"}, c.IncludePath)
	assert.Equal(t, "${workspaceFolder}/build/compile_commands.json", properties.Deref(c.CompileCommands))

	settings := loadSettings(t, f.fs, `{"C_Cpp.preferredPathSeparator": "Backslash"}`)
	b := openWith(t, linuxOnly, WithSettings(settings))
	require.NoError(t, b.store.AddIncludePath("${workspaceFolder}/third_party/inc"))
	assert.Equal(t, []string{"${default}", `${workspaceFolder}\third_party\inc`},
		readProps(t, b.fs).Configurations[0].IncludePath)
}

func TestEdit_StartsFromFile(t *testing.T) {
	f := openWith(t, linuxOnly)

	writeProps(t, f.fs, `{"configurations": [{"name": "Linux", "defines": ["X"], "includePath": ["/a"]}], "version": 4}`)
	require.NoError(t, f.store.AddIncludePath("/b"))

	c := readProps(t, f.fs).Configurations[0]
	assert.Equal(t, []string{"/a", "/b"}, c.IncludePath)
	assert.Equal(t, []string{"X"}, c.Defines)
	assert.Equal(t, []string{"X"}, f.store.Document().Configurations[0].Defines)
}

func TestEdit_CreatesFile(t *testing.T) {
	f := openWith(t, "")
	require.True(t, f.store.Fabricated())

	require.NoError(t, f.store.AddIncludePath("/x"))
	assert.False(t, f.store.Fabricated())
	assert.Equal(t, []string{"${workspaceFolder}/**", "/x"}, readProps(t, f.fs).Configurations[0].IncludePath)
}

func TestEdit_ParseFailureLeavesState(t *testing.T) {
	f := openWith(t, linuxOnly)
	before := f.store.Document()

	writeProps(t, f.fs, `{"configurations": [{"name": "Linux",]}`)
	err := f.store.SetCompilerPath("/usr/bin/gcc")
	require.Error(t, err)
	var pe *properties.ParseError
	assert.ErrorAs(t, err, &pe)

	assert.Equal(t, before, f.store.Document())
	assert.Len(t, f.msgs.errs, 1)
	assert.Empty(t, f.evs.all)
}

func TestSetCompileCommands(t *testing.T) {
	f := openWith(t, linuxOnly)

	require.NoError(t, f.store.SetCompileCommands("${workspaceFolder}/build/compile_commands.json"))
	assert.Equal(t, "${workspaceFolder}/build/compile_commands.json",
		properties.Deref(readProps(t, f.fs).Configurations[0].CompileCommands))

	changed := f.evs.of(CompileCommandsChanged)
	require.Len(t, changed, 1)
	assert.Equal(t, "Linux", changed[0].Name)
	assert.Equal(t, "/proj/build/compile_commands.json", changed[0].CompileCommands)

	require.NoError(t, f.store.Reload())
	require.NoError(t, f.store.LoadText(f.store.Text()))
	assert.Len(t, f.evs.of(CompileCommandsChanged), 1, "unchanged value is not announced again")

	require.NoError(t, f.store.SetCompileCommands(""))
	assert.Nil(t, readProps(t, f.fs).Configurations[0].CompileCommands)
	changed = f.evs.of(CompileCommandsChanged)
	require.Len(t, changed, 2)
	assert.Empty(t, changed[1].CompileCommands)
}

func TestSetConfigurationProvider(t *testing.T) {
	f := openWith(t, linuxOnly)

	tests := []struct {
		in   string
		want *string
	}{
		{"Vector-Of-Bool.CMake-Tools", properties.String("ms-vscode.cmake-tools")},
		{"acme.tools", properties.String("acme.tools")},
		{"", nil},
	}
	for _, tt := range tests {
		require.NoError(t, f.store.SetConfigurationProvider(tt.in))
		assert.Equal(t, tt.want, readProps(t, f.fs).Configurations[0].ConfigurationProvider, "input %q", tt.in)
	}
}

func TestSetCompilerPath(t *testing.T) {
	f := openWith(t, twoConfigs)
	require.NoError(t, f.store.Select(0))

	require.NoError(t, f.store.SetCompilerPath("/usr/bin/gcc"))
	doc := readProps(t, f.fs)
	assert.Equal(t, "/usr/bin/gcc", properties.Deref(doc.Configurations[0].CompilerPath))
	assert.Equal(t, 0, f.store.CurrentIndex())

	cfg, _ := f.store.Current()
	assert.Equal(t, "Mac", cfg.Name)
	assert.Equal(t, "/usr/bin/gcc", cfg.CompilerPath)
}

func TestAddConfiguration(t *testing.T) {
	f := openWith(t, twoConfigs)

	require.NoError(t, f.store.AddConfiguration("Custom"))
	doc := readProps(t, f.fs)
	require.Len(t, doc.Configurations, 3)
	c := doc.Configurations[2]
	assert.Equal(t, "Custom", c.Name)
	assert.Equal(t, platform.ModeGCC, properties.Deref(c.IntelliSenseMode))

	assert.Equal(t, 2, f.store.CurrentIndex())
	sel := f.evs.of(SelectionChanged)
	require.Len(t, sel, 1)
	assert.Equal(t, "Custom", sel[0].Name)

	err := f.store.AddConfiguration("Mac")
	assert.ErrorIs(t, err, ErrConfigurationExists)
	assert.Len(t, readProps(t, f.fs).Configurations, 3)

	assert.Error(t, f.store.AddConfiguration(""))
}

func TestEdit_WriteFailure(t *testing.T) {
	base := workspaceFS(t)
	writeProps(t, base, linuxOnly)
	f := newFixture(t, afero.NewReadOnlyFs(base))
	require.NoError(t, f.store.Open())

	err := f.store.AddIncludePath("/x")
	require.Error(t, err)
	require.Len(t, f.msgs.warns, 1)
	assert.Contains(t, f.msgs.warns[0], "Attempt to update")
	assert.Nil(t, f.store.Document().Configurations[0].IncludePath)
}
