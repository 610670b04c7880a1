// Package vcpkg finds the include directories of a vcpkg installation so
// fabricated configurations can reference them through ${vcpkgRoot}.
package vcpkg

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/pkg/fileutil"
)

// Placeholder is substituted with the installed directory of vcpkg.
const Placeholder = "${vcpkgRoot}"

// DescriptorFile is the file "vcpkg integrate install" writes with the
// location of the vcpkg checkout. localAppData is only used on Windows.
func DescriptorFile(p platform.Descriptor, localAppData string) string {
	if p.IsWindows() {
		return filepath.Join(localAppData, "vcpkg", "vcpkg.path.txt")
	}
	return filepath.Join(p.Home, ".vcpkg", "vcpkg.path.txt")
}

// Root returns the "installed" directory of the vcpkg checkout named by
// the descriptor file, or "" when there is no descriptor.
func Root(fs afero.Fs, descriptorFile string) (string, error) {
	data, err := fileutil.ReadFileWithLimit(fs, descriptorFile)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", errors.Wrapf(err, "reading %s", descriptorFile)
	}
	root := strings.TrimSpace(string(data))
	if root == "" {
		return "", nil
	}
	return filepath.Join(root, "installed"), nil
}

// Includes lists "${vcpkgRoot}/<triplet>/include" for every triplet
// under root that has an include directory. The vcpkg bookkeeping
// directory is skipped.
func Includes(ctx context.Context, fs afero.Fs, root string) ([]string, error) {
	if root == "" {
		return nil, nil
	}
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "listing %s", root)
	}

	var out []string
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, errors.Wrap(err, "scanning vcpkg")
		}
		if !e.IsDir() || e.Name() == "vcpkg" {
			continue
		}
		if fileutil.IsDir(fs, filepath.Join(root, e.Name(), "include")) {
			out = append(out, Placeholder+"/"+e.Name()+"/include")
		}
	}
	sort.Strings(out)
	return out, nil
}
