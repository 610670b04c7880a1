package commands

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/ccprops/internal/errors"
)

var (
	resolveAll    bool
	resolveFormat string
)

func init() {
	resolveCmd.Flags().BoolVar(&resolveAll, "all", false, "print every configuration")
	resolveCmd.Flags().StringVar(&resolveFormat, "format", "json", "output format: json, yaml")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Print the resolved configuration",
	Long: `Print the selected configuration after ${default} expansion, placeholder
substitution and ";" splitting, with browse.path filled in. The file
itself is not changed.`,
	RunE: runResolve,
}

func runResolve(cmd *cobra.Command, _ []string) error {
	if resolveFormat != "json" && resolveFormat != "yaml" {
		return errors.NewUserError(errors.Newf("unknown format %q", resolveFormat), "use --format json or yaml")
	}

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	var out any = s.Configurations()
	if !resolveAll {
		cfg, ok := s.Current()
		if !ok {
			return errors.NewConfigError(errors.ErrIndexOutOfRange)
		}
		out = cfg
	}
	return writeValue(cmd.OutOrStdout(), resolveFormat, out)
}

func writeValue(w io.Writer, format string, v any) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return errors.Wrap(err, "encoding yaml")
		}
		return errors.Wrap(enc.Close(), "encoding yaml")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return errors.Wrap(enc.Encode(v), "encoding json")
}
