package compiler

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplit(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/usr/bin/gcc", nil, 0o755))
	require.NoError(t, afero.WriteFile(fs, "/opt/my tools/bin/clang", nil, 0o755))

	tests := []struct {
		name  string
		input string
		want  PathAndArgs
	}{
		{"empty", "", PathAndArgs{}},
		{"existing file", "/usr/bin/gcc", PathAndArgs{Path: "/usr/bin/gcc", Name: "gcc"}},
		{
			"existing file with args",
			"/usr/bin/gcc -m32 -std=c99",
			PathAndArgs{Path: "/usr/bin/gcc", Name: "gcc", Args: []string{"-m32", "-std=c99"}},
		},
		{
			"spaces in path with args",
			"/opt/my tools/bin/clang --target=arm",
			PathAndArgs{Path: "/opt/my tools/bin/clang", Name: "clang", Args: []string{"--target=arm"}},
		},
		{
			"quoted path",
			`"C:/Program Files/LLVM/bin/clang.exe" -m64 "-DNAME=a b"`,
			PathAndArgs{Path: "C:/Program Files/LLVM/bin/clang.exe", Name: "clang.exe", Args: []string{"-m64", "-DNAME=a b"}},
		},
		{"unterminated quote", `"C:/x/gcc.exe`, PathAndArgs{Path: `"C:/x/gcc.exe`}},
		{
			"cl.exe taken whole",
			`C:\Program Files (x86)\MSVC\bin\cl.exe`,
			PathAndArgs{Path: `C:\Program Files (x86)\MSVC\bin\cl.exe`, Name: "cl.exe"},
		},
		{"bare cl.exe", "cl.exe", PathAndArgs{Path: "cl.exe", Name: "cl.exe"}},
		{"missing file", "/usr/bin/gcc-14", PathAndArgs{Path: "/usr/bin/gcc-14", Name: "gcc-14"}},
		{"missing file with spaces", "/nope/cc -O2", PathAndArgs{Path: "/nope/cc -O2", Name: "cc -O2"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Split(fs, tt.input))
		})
	}
}

func TestSplitArgs(t *testing.T) {
	assert.Nil(t, splitArgs("   "))
	assert.Equal(t, []string{"-a", "b c", ""}, splitArgs(` -a "b c" ""`))
}
