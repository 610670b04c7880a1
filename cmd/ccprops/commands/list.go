package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/ccprops/internal/errors"
	"github.com/thoreinstein/ccprops/internal/store"
)

var listJSON bool

func init() {
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List configurations",
	Long: `List the configurations of the properties file in document order. The
selected configuration is marked with '*'.`,
	RunE: runList,
}

// listEntry is one configuration in list output.
type listEntry struct {
	Index            int    `json:"index"`
	Name             string `json:"name"`
	Selected         bool   `json:"selected"`
	CompilerPath     string `json:"compilerPath,omitempty"`
	IntelliSenseMode string `json:"intelliSenseMode,omitempty"`
	Findings         int    `json:"findings"`
}

func runList(cmd *cobra.Command, _ []string) error {
	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()
	return writeList(cmd.OutOrStdout(), s)
}

func writeList(w io.Writer, s *store.Store) error {
	current := s.CurrentIndex()
	errs := s.Errors()
	configs := s.Configurations()

	entries := make([]listEntry, len(configs))
	for i, c := range configs {
		entries[i] = listEntry{
			Index:            i,
			Name:             c.Name,
			Selected:         i == current,
			CompilerPath:     c.CompilerPath,
			IntelliSenseMode: c.IntelliSenseMode,
			Findings:         len(errs[i].Result().Issues),
		}
	}

	if listJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(entries), "encoding list")
	}

	if s.Fabricated() {
		fmt.Fprintln(w, color.New(color.Faint).Sprint("(no c_cpp_properties.json, showing defaults)"))
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\tINDEX\tNAME\tMODE\tCOMPILER\tFINDINGS")
	for _, e := range entries {
		marker := " "
		name := e.Name
		if e.Selected {
			marker = "*"
			name = color.New(color.Bold).Sprint(name)
		}
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%d\n", marker, e.Index, name, e.IntelliSenseMode, e.CompilerPath, e.Findings)
	}
	return errors.Wrap(tw.Flush(), "writing list")
}
