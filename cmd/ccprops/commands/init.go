package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/errors"
)

func init() {
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create c_cpp_properties.json for this host",
	Long: `Create .vscode/c_cpp_properties.json with a single configuration named
after the host (Win32, Mac or Linux), filled from the detected compiler and
the C_Cpp.default.* settings. An existing file is left untouched.`,
	RunE: runInit,
}

func runInit(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	w := cmd.OutOrStdout()
	if !s.Fabricated() {
		if !quiet {
			fmt.Fprintf(w, "%s already exists\n", s.Path())
		}
		return nil
	}
	if err := s.EnsureFile(); err != nil {
		return errors.NewSystemError(err, "check that the workspace is writable")
	}
	if !quiet {
		cfg, _ := s.Current()
		fmt.Fprintf(w, "Created %s with configuration %q\n", s.Path(), cfg.Name)
	}
	return nil
}
