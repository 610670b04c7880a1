package validator

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"gopkg.in/yaml.v3"
)

// Format specifies the output format for validation reports.
type Format string

const (
	// FormatText produces human-readable text output.
	FormatText Format = "text"
	// FormatJSON produces machine-readable JSON output.
	FormatJSON Format = "json"
	// FormatYAML produces YAML output.
	FormatYAML Format = "yaml"
)

// ParseFormat validates a --format flag value.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	}
	return "", errors.Newf("unknown format %q (want text, json or yaml)", s)
}

// Reporter formats and writes validation results.
type Reporter struct {
	out    io.Writer
	format Format
}

// NewReporter creates a new Reporter.
func NewReporter(out io.Writer, format Format) *Reporter {
	return &Reporter{
		out:    out,
		format: format,
	}
}

// Report writes the validation result to the output.
func (r *Reporter) Report(result *Result) error {
	if result == nil {
		result = &Result{}
	}

	switch r.format {
	case FormatJSON:
		return r.reportJSON(result)
	case FormatYAML:
		return r.reportYAML(result)
	default:
		return r.reportText(result)
	}
}

func (r *Reporter) reportJSON(result *Result) error {
	encoder := json.NewEncoder(r.out)
	encoder.SetIndent("", "  ")
	return errors.Wrap(encoder.Encode(result), "encoding JSON report")
}

func (r *Reporter) reportYAML(result *Result) error {
	encoder := yaml.NewEncoder(r.out)
	encoder.SetIndent(2)
	if err := encoder.Encode(result); err != nil {
		return errors.Wrap(err, "encoding YAML report")
	}
	return errors.Wrap(encoder.Close(), "encoding YAML report")
}

// reportText groups issues by configuration, in first-seen order.
func (r *Reporter) reportText(result *Result) error {
	if result.Empty() {
		fmt.Fprintln(r.out, color.GreenString("✓ All paths resolved"))
		return nil
	}

	errs := result.Errors()
	warnings := result.Warnings()

	summary := []string{}
	if len(errs) > 0 {
		summary = append(summary, color.RedString("%d error(s)", len(errs)))
	}
	if len(warnings) > 0 {
		summary = append(summary, color.YellowString("%d warning(s)", len(warnings)))
	}
	if len(summary) > 0 {
		fmt.Fprintf(r.out, "Validation found %s\n\n", strings.Join(summary, ", "))
	}

	var order []string
	groups := map[string][]Issue{}
	for _, i := range result.Issues {
		if _, ok := groups[i.Configuration]; !ok {
			order = append(order, i.Configuration)
		}
		groups[i.Configuration] = append(groups[i.Configuration], i)
	}

	for _, name := range order {
		if name != "" {
			fmt.Fprintf(r.out, "%s:\n", color.New(color.Bold).Sprint(name))
		}
		for _, i := range groups[name] {
			r.printIssue(i)
		}
		fmt.Fprintln(r.out)
	}
	return nil
}

func (r *Reporter) printIssue(i Issue) {
	var c color.Attribute
	switch i.Severity {
	case SeverityError:
		c = color.FgRed
	case SeverityWarning:
		c = color.FgYellow
	default:
		c = color.FgCyan
	}
	printer := color.New(c).SprintFunc()

	// Format:  • field: message [value]
	var sb strings.Builder
	sb.WriteString("  • ")
	if i.Field != "" {
		sb.WriteString(printer(i.Field))
		sb.WriteString(": ")
	}
	sb.WriteString(i.Message)

	if i.Value != "" && !strings.Contains(i.Message, i.Value) {
		val := i.Value
		if len(val) > 50 {
			val = val[:47] + "..."
		}
		sb.WriteString(color.New(color.FgHiBlack).Sprintf(" [%s]", val))
	}

	fmt.Fprintln(r.out, sb.String())
}
