package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/compiler"
	"github.com/thoreinstein/ccprops/internal/config"
	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/logging"
	"github.com/thoreinstein/ccprops/internal/paths"
	"github.com/thoreinstein/ccprops/internal/platform"
	"github.com/thoreinstein/ccprops/internal/state"
	"github.com/thoreinstein/ccprops/internal/store"
	"github.com/thoreinstein/ccprops/internal/telemetry"
	"github.com/thoreinstein/ccprops/internal/vcpkg"
)

// appFs is the filesystem every command works on.
var appFs = afero.NewOsFs()

// probeCompiler finds compiler defaults for a host. Tests replace it.
var probeCompiler = func(ctx context.Context, p platform.Descriptor) (*compiler.Defaults, error) {
	prober := &compiler.PathProber{Platform: p}
	return prober.Probe(ctx)
}

// workspaceRoot returns the absolute workspace folder.
func workspaceRoot() (string, error) {
	root := workspaceFlag
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.NewSystemError(err, "cannot determine the current directory")
		}
		root = wd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", errors.NewUserError(err, "check the --workspace path")
	}
	return abs, nil
}

func loadSettings(root string) (*config.Settings, error) {
	path := settingsFlag
	if path == "" {
		path = config.Discover(appFs, root)
	}
	s, err := config.Load(appFs, path)
	if err != nil {
		return nil, errors.NewUserError(err, "check the --settings file")
	}
	return s, nil
}

func selectionStore() state.Selection {
	if stateFileFlag != "" {
		return state.NewFileStore(appFs, stateFileFlag)
	}
	return state.DefaultFileStore(appFs)
}

// compilerDefaults probes synchronously. A host without a compiler gets
// empty defaults so nothing waits on them.
func compilerDefaults(ctx context.Context) *compiler.Defaults {
	d, err := probeCompiler(ctx, host)
	if err != nil {
		logging.FromContext(ctx).Debug("no compiler defaults", "error", err)
		return &compiler.Defaults{}
	}
	return d
}

func vcpkgOptions(ctx context.Context) store.Option {
	logger := logging.FromContext(ctx)
	root, err := vcpkg.Root(appFs, vcpkg.DescriptorFile(host, os.Getenv("LOCALAPPDATA")))
	if err != nil {
		logger.Debug("vcpkg lookup failed", "error", err)
		return store.WithVcpkg("", nil)
	}
	includes, err := vcpkg.Includes(ctx, appFs, root)
	if err != nil {
		logger.Debug("vcpkg scan failed", "error", err)
	}
	return store.WithVcpkg(root, includes)
}

// cliMessenger prints user messages to stderr.
type cliMessenger struct {
	w io.Writer
}

func (m cliMessenger) Warn(msg string) {
	fmt.Fprintf(m.w, "%s %s\n", color.YellowString("warning:"), msg)
}

func (m cliMessenger) Error(msg string) {
	fmt.Fprintf(m.w, "%s %s\n", color.RedString("error:"), msg)
}

// newStore builds a store for the workspace without opening it.
func newStore(cmd *cobra.Command, extra ...store.Option) (*store.Store, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	logger := logging.FromContext(ctx)

	root, err := workspaceRoot()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(root)
	if err != nil {
		return nil, err
	}
	for _, e := range config.Validate(&settings.Snapshot) {
		logger.Warn("ignoring invalid setting", "error", e)
	}

	opts := []store.Option{
		store.WithPlatform(host),
		store.WithSettings(settings),
		store.WithSelection(selectionStore()),
		store.WithMessenger(cliMessenger{w: cmd.ErrOrStderr()}),
		store.WithTelemetry(telemetry.LogSink{Logger: logger}),
		store.WithLogger(logger),
		store.WithLookupEnv(os.LookupEnv),
		vcpkgOptions(ctx),
	}
	return store.New(appFs, root, append(opts, extra...)...), nil
}

// openStore builds and opens the workspace store with compiler defaults
// probed up front.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	s, err := newStore(cmd, store.WithCompilerDefaults(compilerDefaults(ctx)))
	if err != nil {
		return nil, err
	}
	if err := s.Open(); err != nil {
		return nil, errors.NewConfigError(err)
	}
	return s, nil
}

// requireFile fails when the workspace has no properties file.
func requireFile(s *store.Store) error {
	if s.Fabricated() {
		return errors.NewUserError(
			errors.Wrap(errors.ErrNoPropertiesFile, paths.PropertiesFile(s.WorkspaceRoot())),
			"Run: ccprops init")
	}
	return nil
}
