package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/isajson"
	"github.com/kappe-c/ARCtrl/internal/jtree"
	"github.com/kappe-c/ARCtrl/internal/rocrate"
	"github.com/kappe-c/ARCtrl/internal/sparse"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	From   string
	To     string
	Output string
	Table  string
}

// ValidTargets defines the dialects convert can write.
var ValidTargets = []string{"isajson", "rocrate", "tab"}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <file>",
		Short: "Convert a document between dialects",
		Long: `Convert an investigation document between dialects.

Reads the document in the source dialect and re-encodes it in the
target dialect. The tab target writes the ISA-Tab TSV materialization
of one annotation table; select it with --table when the document
holds more than one. With --table the JSON targets write the table
envelope alone instead of the whole investigation.

Examples:
  arctrl convert -f isajson -t rocrate -o out.arc.json isa.investigation.json
  arctrl convert -f rocrate -t isajson in.arc.json
  arctrl convert -t tab --table Growth -o growth.tsv isa.investigation.json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.From, "from", "f", "isajson", "source dialect (isajson|rocrate)")
	cmd.Flags().StringVarP(&opts.To, "to", "t", "rocrate", "target dialect (isajson|rocrate|tab)")
	cmd.Flags().StringVarP(&opts.Output, "output", "o", "", "output file (default stdout)")
	cmd.Flags().StringVar(&opts.Table, "table", "", "annotation table to convert")

	return cmd
}

func runConvert(opts *ConvertOptions, file string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	from := sourceDialect(cmd, opts.RootOptions, opts.From)
	if !isValidDialect(from) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid source dialect %q: must be one of %v", from, ValidDialects))
	}
	if !isValidTarget(opts.To) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid target dialect %q: must be one of %v", opts.To, ValidTargets))
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read document", err)
	}

	inv, err := decodeInvestigation(data, from)
	if err != nil {
		return WrapExitError(ExitFailure, fmt.Sprintf("failed to decode %s document", from), err)
	}
	formatter.VerboseLog("decoded %s document %s (%d studies)", from, file, len(inv.Studies))

	out, err := encodeTarget(inv, opts)
	if err != nil {
		return err
	}

	if opts.Output != "" {
		if err := os.WriteFile(opts.Output, out, 0644); err != nil {
			return WrapExitError(ExitCommandError, "failed to write output", err)
		}
		formatter.VerboseLog("wrote %d bytes to %s", len(out), opts.Output)
		return nil
	}

	_, err = cmd.OutOrStdout().Write(out)
	return err
}

// decodeInvestigation parses document bytes in the named dialect.
func decodeInvestigation(data []byte, dialect string) (*isa.ArcInvestigation, error) {
	switch dialect {
	case "isajson":
		return isajson.New().UnmarshalInvestigation(data)
	case "rocrate":
		return rocrate.New().UnmarshalInvestigation(data)
	default:
		return nil, fmt.Errorf("unknown dialect %q", dialect)
	}
}

// encodeTarget renders the investigation (or one selected table) in the
// target dialect. The returned bytes end with a newline.
func encodeTarget(inv *isa.ArcInvestigation, opts *ConvertOptions) ([]byte, error) {
	if opts.To == "tab" {
		t, err := selectTable(inv, opts.Table)
		if err != nil {
			return nil, err
		}
		var buf bytes.Buffer
		if err := sparse.WriteTSV(&buf, sparse.TableToRows(t)); err != nil {
			return nil, WrapExitError(ExitFailure, fmt.Sprintf("failed to write table %q", t.Name), err)
		}
		return buf.Bytes(), nil
	}

	if opts.Table != "" {
		t, ok := inv.FindTable(opts.Table)
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("table %q not found in document", opts.Table))
		}
		out, err := jtree.Marshal(codec.EncodeTable(t))
		if err != nil {
			return nil, WrapExitError(ExitFailure, fmt.Sprintf("failed to encode table %q", t.Name), err)
		}
		return append(out, '\n'), nil
	}

	var out []byte
	var err error
	switch opts.To {
	case "isajson":
		out, err = isajson.New().MarshalInvestigation(inv)
	case "rocrate":
		out, err = rocrate.New().MarshalInvestigation(inv)
	}
	if err != nil {
		return nil, WrapExitError(ExitFailure, fmt.Sprintf("failed to encode %s document", opts.To), err)
	}
	return append(out, '\n'), nil
}

// selectTable resolves the table the tab target writes: the named one,
// or the document's only table when no name is given.
func selectTable(inv *isa.ArcInvestigation, name string) (*isa.ArcTable, error) {
	if name != "" {
		t, ok := inv.FindTable(name)
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("table %q not found in document", name))
		}
		return t, nil
	}

	var tables []*isa.ArcTable
	for _, s := range inv.Studies {
		tables = append(tables, s.Tables...)
		for _, a := range s.Assays {
			tables = append(tables, a.Tables...)
		}
	}
	switch len(tables) {
	case 0:
		return nil, NewExitError(ExitCommandError, "document has no annotation tables")
	case 1:
		return tables[0], nil
	default:
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("document has %d annotation tables, select one with --table", len(tables)))
	}
}

// isValidTarget checks if the target dialect is one of the allowed values.
func isValidTarget(target string) bool {
	for _, t := range ValidTargets {
		if t == target {
			return true
		}
	}
	return false
}
