// Package commands implements the CLI commands for ccprops.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/cmd"
	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/logging"
	"github.com/thoreinstein/ccprops/internal/platform"
)

// workspaceFlag holds the value of the --workspace flag.
var workspaceFlag string

// settingsFlag holds the value of the --settings flag.
var settingsFlag string

// hostFlag holds the value of the --host flag.
var hostFlag string

// stateFileFlag overrides where the selection is remembered.
var stateFileFlag string

// verbosity holds the count of -v flags.
var verbosity int

// quiet holds the value of the -q/--quiet flag.
var quiet bool

// logFormat holds the value of the --log-format flag.
var logFormat string

// logFile holds the path to the log file.
var logFile string

// host is the descriptor resolved from --host in PersistentPreRunE.
var host platform.Descriptor

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&workspaceFlag, "workspace", "w", "",
		"workspace folder (default: current directory)")
	flags.StringVar(&settingsFlag, "settings", "",
		"settings file with C_Cpp.default.* values (default: .vscode/settings.json, then the user settings)")
	flags.StringVar(&hostFlag, "host", "",
		"evaluate for another host: windows, mac, linux (default: this machine)")
	flags.StringVar(&stateFileFlag, "state-file", "",
		"file remembering the selected configuration")
	_ = flags.MarkHidden("state-file")
	flags.CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	flags.BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	flags.StringVar(&logFormat, "log-format", "text",
		"log format: text, json")
	flags.StringVar(&logFile, "log-file", "",
		"write logs to file in JSON format")

	rootCmd.Version = cmd.Version
	rootCmd.SetVersionTemplate("ccprops version {{.Version}}\n")

	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "ccprops",
	Short: "Resolve and check c_cpp_properties.json",
	Long: `ccprops loads a workspace's .vscode/c_cpp_properties.json, migrates it to
the current schema, merges it with the C_Cpp.default.* settings and the
platform defaults, and checks every path it names.

Findings are reported per field and, for the selected configuration, as
positioned diagnostics pointing at the offending text.`,
	Example: `  # Create a properties file for this host
  ccprops init

  # Show the configurations and which one is selected
  ccprops list

  # Check the selected configuration
  ccprops validate

  # Print the fully resolved configuration as YAML
  ccprops resolve --format yaml

  # Evaluate as if on Windows
  ccprops validate --host windows`,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if err := setupLogging(cmd); err != nil {
			return err
		}
		return resolveHost()
	},
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return errors.NewUserError(errors.New("--quiet and --verbose conflict"), "use one of --quiet or --verbose")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		v := verbosity
		if v == 0 {
			if val, ok := os.LookupEnv("CCPROPS_DEBUG"); ok {
				switch val {
				case "1", "true":
					v = 2
				case "2":
					v = 3
				}
			}
		}
		level = logging.LevelFromVerbosity(v)
	}

	opts := &slog.HandlerOptions{Level: level}

	var primary slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		primary = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		primary = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	handlers := []slog.Handler{primary}
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return errors.NewUserError(err, "failed to open log file")
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: level}))
	}

	var handler slog.Handler = primary
	if len(handlers) > 1 {
		handler = logging.NewMultiHandler(handlers...)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(logging.NewContext(ctx, logger))
	return nil
}

func resolveHost() error {
	if hostFlag == "" {
		host = platform.Host()
		return nil
	}
	d, err := platform.ParseHost(hostFlag)
	if err != nil {
		return errors.NewUserError(err, "Run 'ccprops --help' to see valid hosts")
	}
	host = d
	return nil
}

// Execute runs the root command.
func Execute() error {
	return errors.Wrap(rootCmd.Execute(), "executing root command")
}
