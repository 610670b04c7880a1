package resolve

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/properties"
)

func loadSettings(t *testing.T, body string) *config.Settings {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/settings.json", []byte(body), 0o644))
	s, err := config.Load(fs, "/settings.json")
	require.NoError(t, err)
	return s
}

func TestMerge_DefaultExpansion(t *testing.T) {
	settings := loadSettings(t, `{
		// comments are fine
		"C_Cpp.default.includePath": ["/usr/local/include", "/opt/inc"],
		"C_Cpp.default.compilerPath": "/usr/bin/clang",
		"C_Cpp.default.cppStandard": "c++20",
	}`)

	doc := &properties.Document{
		Env: properties.Environment{"sdk": properties.StringValue("/sdk")},
		Configurations: []properties.Configuration{{
			Name:         "Linux",
			IncludePath:  []string{"${sdk}/include;${sdk}/extra", "${default}"},
			CompilerPath: properties.String("${default}"),
			CStandard:    properties.String("c17"),
		}},
		Version: properties.CurrentVersion,
	}

	got := Merge(doc, Inputs{Settings: settings, WorkspaceRoot: "/proj"})
	require.Len(t, got, 1)
	c := got[0]

	assert.Equal(t, []string{"/sdk/include", "/sdk/extra", "/usr/local/include", "/opt/inc"}, c.IncludePath)
	assert.Equal(t, "/usr/bin/clang", c.CompilerPath)
	assert.Equal(t, "c17", c.CStandard)
	assert.Equal(t, "c++20", c.CppStandard)
	assert.Empty(t, c.IntelliSenseMode)

	// The document keeps its placeholders.
	assert.Equal(t, "${default}", *doc.Configurations[0].CompilerPath)
	assert.Equal(t, "${default}", doc.Configurations[0].IncludePath[1])
}

func TestMerge_WorkspaceFolderBasename(t *testing.T) {
	doc := &properties.Document{
		Configurations: []properties.Configuration{{
			Name:            "Linux",
			CompileCommands: properties.String("/build/${workspaceFolderBasename}/compile_commands.json"),
		}},
	}
	got := Merge(doc, Inputs{WorkspaceRoot: "/src/app"})
	assert.Equal(t, "/build/app/compile_commands.json", got[0].CompileCommands)
}

func TestMerge_BrowsePathFallback(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		cfg      properties.Configuration
		want     []string
	}{
		{
			name: "explicit browse path",
			cfg: properties.Configuration{
				Name:        "a",
				IncludePath: []string{"/inc"},
				Browse:      &properties.Browse{Path: []string{"/browse"}},
			},
			want: []string{"/browse"},
		},
		{
			name:     "browse setting wins over include path",
			settings: `{"C_Cpp.default.browse.path": ["/from/settings"]}`,
			cfg:      properties.Configuration{Name: "a", IncludePath: []string{"/inc"}},
			want:     []string{"/from/settings"},
		},
		{
			name: "include path plus workspace folder",
			cfg:  properties.Configuration{Name: "a", IncludePath: []string{"/inc"}},
			want: []string{"/inc", "${workspaceFolder}"},
		},
		{
			name: "workspace root token already present",
			cfg:  properties.Configuration{Name: "a", IncludePath: []string{"${workspaceFolder}/**", "/inc"}},
			want: []string{"${workspaceFolder}/**", "/inc"},
		},
		{
			name: "legacy workspaceRoot token",
			cfg:  properties.Configuration{Name: "a", IncludePath: []string{`${workspaceRoot}\*`}},
			want: []string{`${workspaceRoot}\*`},
		},
		{
			name: "no include path",
			cfg:  properties.Configuration{Name: "a"},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Inputs{WorkspaceRoot: "/proj"}
			if tt.settings != "" {
				in.Settings = loadSettings(t, tt.settings)
			}
			doc := &properties.Document{Configurations: []properties.Configuration{tt.cfg}}
			got := Merge(doc, in)
			assert.Equal(t, tt.want, got[0].Browse.Path)
		})
	}
}

func TestMerge_BrowseScalars(t *testing.T) {
	settings := loadSettings(t, `{
		"C_Cpp.default.browse.limitSymbolsToIncludedHeaders": false,
		"C_Cpp.default.browse.databaseFilename": "/tmp/browse.db"
	}`)
	doc := &properties.Document{Configurations: []properties.Configuration{
		{Name: "a"},
		{Name: "b", Browse: &properties.Browse{
			LimitSymbolsToIncludedHeaders: properties.Bool(true),
			DatabaseFilename:              properties.String("${default}"),
		}},
	}}

	got := Merge(doc, Inputs{Settings: settings})
	require.NotNil(t, got[0].Browse.LimitSymbolsToIncludedHeaders)
	assert.False(t, *got[0].Browse.LimitSymbolsToIncludedHeaders)
	assert.Equal(t, "/tmp/browse.db", got[0].Browse.DatabaseFilename)

	require.NotNil(t, got[1].Browse.LimitSymbolsToIncludedHeaders)
	assert.True(t, *got[1].Browse.LimitSymbolsToIncludedHeaders)
	assert.Equal(t, "/tmp/browse.db", got[1].Browse.DatabaseFilename)
}

func TestMerge_EmptyDefaultList(t *testing.T) {
	settings := loadSettings(t, `{"C_Cpp.default.defines": []}`)
	doc := &properties.Document{Configurations: []properties.Configuration{
		{Name: "a", Defines: []string{"${default}", "X=1"}},
	}}
	got := Merge(doc, Inputs{Settings: settings})
	assert.Equal(t, []string{"X=1"}, got[0].Defines)
}

func TestNewResolver_ConfigLookup(t *testing.T) {
	settings := loadSettings(t, `{"C_Cpp.default.cStandard": "c11"}`)
	r := NewResolver(&properties.Document{}, Inputs{Settings: settings})
	assert.Equal(t, "std=c11", r.Resolve("std=${config:C_Cpp.default.cStandard}"))
}
