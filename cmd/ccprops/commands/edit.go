package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/store"
)

func init() {
	rootCmd.AddCommand(addIncludeCmd, setCompileCommandsCmd, setCompilerCmd, setProviderCmd, addConfigCmd)
}

var addIncludeCmd = &cobra.Command{
	Use:   "add-include PATH",
	Short: "Append a path to the include path of the selected configuration",
	Args:  cobra.ExactArgs(1),
	RunE: editCommand(func(s *store.Store, args []string) (string, error) {
		return fmt.Sprintf("Added %s to includePath", args[0]), s.AddIncludePath(args[0])
	}),
}

var setCompileCommandsCmd = &cobra.Command{
	Use:   "set-compile-commands PATH",
	Short: "Set compileCommands of the selected configuration",
	Long:  `Set compileCommands of the selected configuration. An empty PATH removes it.`,
	Args:  cobra.ExactArgs(1),
	RunE: editCommand(func(s *store.Store, args []string) (string, error) {
		return fmt.Sprintf("compileCommands set to %q", args[0]), s.SetCompileCommands(args[0])
	}),
}

var setCompilerCmd = &cobra.Command{
	Use:   "set-compiler PATH",
	Short: "Set compilerPath of the selected configuration",
	Long:  `Set compilerPath of the selected configuration. An empty PATH removes it.`,
	Args:  cobra.ExactArgs(1),
	RunE: editCommand(func(s *store.Store, args []string) (string, error) {
		return fmt.Sprintf("compilerPath set to %q", args[0]), s.SetCompilerPath(args[0])
	}),
}

var setProviderCmd = &cobra.Command{
	Use:   "set-provider [ID]",
	Short: "Set the configuration provider of the selected configuration",
	Long: `Set configurationProvider of the selected configuration. Known provider
ids are stored in their canonical spelling. Without ID the field is removed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: editCommand(func(s *store.Store, args []string) (string, error) {
		if len(args) == 0 {
			return "configurationProvider removed", s.SetConfigurationProvider("")
		}
		return fmt.Sprintf("configurationProvider set to %q", args[0]), s.SetConfigurationProvider(args[0])
	}),
}

var addConfigCmd = &cobra.Command{
	Use:   "add-config NAME",
	Short: "Add a configuration filled with platform defaults and select it",
	Args:  cobra.ExactArgs(1),
	RunE: editCommand(func(s *store.Store, args []string) (string, error) {
		return fmt.Sprintf("Added configuration %q", args[0]), s.AddConfiguration(args[0])
	}),
}

// editCommand opens the store, runs one edit and reports it.
func editCommand(edit func(*store.Store, []string) (string, error)) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		msg, err := edit(s, args)
		if err != nil {
			if errors.Is(err, store.ErrConfigurationExists) {
				return errors.NewUserError(err, "Run: ccprops list")
			}
			return errors.NewConfigError(err)
		}
		if !quiet {
			fmt.Fprintln(cmd.OutOrStdout(), msg)
		}
		return nil
	}
}
