package commands

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/resolve"
	"github.com/thoreinstein/ccprops/internal/store"
)

func init() {
	rootCmd.AddCommand(selectCmd)
}

var selectCmd = &cobra.Command{
	Use:   "select [name|index]",
	Short: "Select the current configuration",
	Long: `Select the configuration that commands such as validate and add-include act
on. The choice is remembered per workspace. A number selects by index, anything
else by name. Without an argument an interactive finder is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSelect,
}

// pickConfiguration chooses a configuration interactively. Tests replace it.
var pickConfiguration = func(configs []resolve.Configuration) (int, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return -1, errors.NewUserError(errors.New("no configuration given"),
			"Run: ccprops select <name|index>")
	}
	idx, err := fuzzyfinder.Find(
		configs,
		func(i int) string { return configs[i].Name },
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i < 0 {
				return ""
			}
			c := configs[i]
			return fmt.Sprintf("Name: %s\nMode: %s\nCompiler: %s\n\nInclude path:\n  %s",
				c.Name, c.IntelliSenseMode, c.CompilerPath, strings.Join(c.IncludePath, "\n  "))
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return -1, nil
		}
		return -1, errors.Wrap(err, "interactive selection failed")
	}
	return idx, nil
}

func runSelect(cmd *cobra.Command, args []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := requireFile(s); err != nil {
		return err
	}
	if err := selectArg(s, args); err != nil {
		return err
	}

	if !quiet {
		cfg, _ := s.Current()
		fmt.Fprintf(cmd.OutOrStdout(), "Selected %q (index %d)\n", cfg.Name, s.CurrentIndex())
	}
	return nil
}

func selectArg(s *store.Store, args []string) error {
	if len(args) == 0 {
		idx, err := pickConfiguration(s.Configurations())
		if err != nil || idx < 0 {
			return err
		}
		return wrapSelectErr(s.Select(idx))
	}

	arg := strings.TrimSpace(args[0])
	if idx, err := strconv.Atoi(arg); err == nil {
		return wrapSelectErr(s.Select(idx))
	}
	return wrapSelectErr(s.SelectByName(arg))
}

func wrapSelectErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, errors.ErrIndexOutOfRange) || errors.Is(err, errors.ErrNotFound) {
		return errors.NewUserError(err, "Run: ccprops list")
	}
	return err
}
