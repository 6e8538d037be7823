package outputproviders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/praetorian-inc/m365/internal/jq"
	"github.com/praetorian-inc/m365/modules/options"
	"github.com/praetorian-inc/m365/pkg/types"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON     = "json"
	FormatText     = "text"
	FormatMarkdown = "md"
	FormatYAML     = "yaml"
)

// ConsoleProvider prints results on stdout in the selected output format.
// json and yaml print the full data, text and md print the summary table.
// A jq query always works on the full data and prints JSON in the summary
// formats.
type ConsoleProvider struct {
	types.OutputProvider
	Format string
	Query  string
	out    io.Writer
}

func NewConsoleProvider(opts []*types.Option) types.OutputProvider {
	format := strings.ToLower(options.Value(options.OutputOpt.Name, opts))
	if format == "" {
		format = FormatText
	}
	return &ConsoleProvider{
		Format: format,
		Query:  options.Value(options.QueryOpt.Name, opts),
		out:    os.Stdout,
	}
}

// Write renders the result to the console.
func (cp *ConsoleProvider) Write(result types.Result) error {
	data := result.Data
	if cp.Query != "" {
		filtered, err := jq.Query(data, cp.Query)
		if err != nil {
			return err
		}
		if cp.Format == FormatYAML {
			return writeYAML(cp.out, filtered)
		}
		return writeJSON(cp.out, filtered)
	}

	switch cp.Format {
	case FormatJSON:
		return writeJSON(cp.out, data)
	case FormatYAML:
		return writeYAML(cp.out, data)
	case FormatMarkdown:
		if result.Summary == nil {
			return writeJSON(cp.out, data)
		}
		_, err := io.WriteString(cp.out, result.Summary.ToString())
		return err
	default:
		if result.Summary == nil {
			if s, ok := data.(string); ok {
				_, err := fmt.Fprintln(cp.out, s)
				return err
			}
			return writeJSON(cp.out, data)
		}
		return writeTable(cp.out, *result.Summary)
	}
}

func writeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	// Go through JSON first so struct json tags decide the key names.
	normalized, err := jq.Normalize(v)
	if err != nil {
		return err
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(normalized); err != nil {
		return err
	}
	return encoder.Close()
}

// writeTable aligns the summary columns with a tabwriter.
func writeTable(w io.Writer, table types.MarkdownTable) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(table.Headers, "\t"))

	dashes := make([]string, len(table.Headers))
	for i, h := range table.Headers {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range table.Rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}

	return tw.Flush()
}
