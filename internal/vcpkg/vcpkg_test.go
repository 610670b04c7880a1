package vcpkg

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thoreinstein/ccprops/internal/platform"
)

func TestDescriptorFile(t *testing.T) {
	assert.Equal(t, "/home/dev/.vcpkg/vcpkg.path.txt",
		DescriptorFile(platform.Descriptor{OS: platform.OSLinux, Home: "/home/dev"}, ""))
	assert.Contains(t,
		DescriptorFile(platform.Descriptor{OS: platform.OSWindows}, "/appdata"), "vcpkg.path.txt")
}

func TestRootAndIncludes(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/home/dev/.vcpkg/vcpkg.path.txt", []byte("/opt/vcpkg\n"), 0o644))
	for _, d := range []string{
		"/opt/vcpkg/installed/x64-linux/include",
		"/opt/vcpkg/installed/arm64-linux/include",
		"/opt/vcpkg/installed/x64-static/lib",
		"/opt/vcpkg/installed/vcpkg/include",
	} {
		require.NoError(t, fs.MkdirAll(d, 0o755))
	}

	root, err := Root(fs, "/home/dev/.vcpkg/vcpkg.path.txt")
	require.NoError(t, err)
	assert.Equal(t, "/opt/vcpkg/installed", root)

	incs, err := Includes(context.Background(), fs, root)
	require.NoError(t, err)
	assert.Equal(t, []string{"${vcpkgRoot}/arm64-linux/include", "${vcpkgRoot}/x64-linux/include"}, incs)
}

func TestRoot_Missing(t *testing.T) {
	fs := afero.NewMemMapFs()
	root, err := Root(fs, "/nope/vcpkg.path.txt")
	require.NoError(t, err)
	assert.Empty(t, root)

	incs, err := Includes(context.Background(), fs, "/opt/none")
	require.NoError(t, err)
	assert.Empty(t, incs)
}

func TestIncludes_Cancelled(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, fs.MkdirAll("/v/installed/x64-linux/include", 0o755))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Includes(ctx, fs, "/v/installed")
	assert.ErrorIs(t, err, context.Canceled)
}
