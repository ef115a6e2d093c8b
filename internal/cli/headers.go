package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
	"github.com/kappe-c/ARCtrl/internal/jtree"
)

// HeaderReport holds the classification of one column label.
type HeaderReport struct {
	Label      string          `json:"label"`
	Classified bool            `json:"classified"`
	Header     json.RawMessage `json:"header"`
}

// NewHeadersCommand creates the headers command.
func NewHeadersCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "headers <label>...",
		Short: "Classify ISA-Tab column labels",
		Long: `Classify raw column labels through the header grammar.

Each label is parsed into its column role and payload: term columns
("Parameter [temperature]") carry the term name, IO columns carry the
IO type, comment columns carry the key. Labels the grammar cannot
classify come back as free-text columns.

Examples:
  arctrl headers "Parameter [temperature]" "Input [Source Name]"
  arctrl headers --format json "Comment [Batch]"`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeaders(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runHeaders(opts *RootOptions, labels []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	reports := make([]HeaderReport, 0, len(labels))
	for _, label := range labels {
		h := isa.ParseHeader(label)
		envelope, err := jtree.Marshal(codec.EncodeHeader(h))
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("failed to encode header for %q", label), err)
		}
		_, freeText := h.(isa.FreeTextHeader)
		reports = append(reports, HeaderReport{
			Label:      label,
			Classified: !freeText,
			Header:     json.RawMessage(envelope),
		})
	}

	if formatter.Format == "json" {
		return formatter.Success(reports)
	}

	for _, r := range reports {
		marker := "✓"
		if !r.Classified {
			marker = "✗"
		}
		fmt.Fprintf(formatter.Writer, "%s %s\n", marker, r.Label)
		fmt.Fprintf(formatter.Writer, "  %s\n", r.Header)
	}
	return nil
}
