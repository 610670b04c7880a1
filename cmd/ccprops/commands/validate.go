package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/store"
	"github.com/thoreinstein/ccprops/internal/validator"
)

var (
	validateAll    bool
	validateFormat string
	validateStrict bool
)

func init() {
	validateCmd.Flags().BoolVar(&validateAll, "all", false, "check every configuration, not only the selected one")
	validateCmd.Flags().StringVar(&validateFormat, "format", "text", "output format: text, json, yaml")
	validateCmd.Flags().BoolVar(&validateStrict, "strict", false, "exit non-zero when anything is reported")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the paths and modes of the configuration",
	Long: `Resolve the selected configuration (or all of them with --all) and check
that every include path, framework path, forced include, compile commands
file and compiler exists and has the expected kind. On Windows hosts the
IntelliSense mode is checked against the compiler.

In text output the findings of the selected configuration are also shown
at their line and column in c_cpp_properties.json.`,
	Example: `  ccprops validate
  ccprops validate --all --format json
  ccprops validate --strict`,
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, _ []string) error {
	format, err := validator.ParseFormat(validateFormat)
	if err != nil {
		return errors.NewUserError(err, "use --format text, json or yaml")
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	result := s.CurrentErrors()
	if validateAll {
		result = &validator.Result{}
		for _, e := range s.Errors() {
			result.Merge(e.Result())
		}
	}

	w := cmd.OutOrStdout()
	if err := validator.NewReporter(w, format).Report(result); err != nil {
		return errors.Wrap(err, "writing report")
	}
	if format == validator.FormatText {
		writeDiagnostics(w, s)
	}

	if validateStrict && !result.Empty() {
		return errors.NewUserError(
			errors.Wrapf(errors.ErrInvalidConfig, "%d finding(s)", len(result.Issues)),
			"fix the paths above or drop --strict")
	}
	return nil
}

// writeDiagnostics lists the squiggles of the selected configuration.
func writeDiagnostics(w io.Writer, s *store.Store) {
	diags, err := s.Diagnostics()
	if err != nil || len(diags) == 0 {
		return
	}
	text := string(s.Text())
	fmt.Fprintln(w)
	for _, d := range diags {
		start, _ := d.Range(text)
		loc := fmt.Sprintf("%s:%d:%d:", s.Path(), start.Line, start.Column)
		fmt.Fprintf(w, "%s %s %s\n", color.New(color.Bold).Sprint(loc), color.YellowString(string(d.Category)), d.Message)
	}
}
