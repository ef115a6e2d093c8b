package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kappe-c/ARCtrl/internal/codec"
	"github.com/kappe-c/ARCtrl/internal/isa"
)

// ValidationIssue describes one decode failure.
type ValidationIssue struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Entity  string `json:"entity,omitempty"`
	Field   string `json:"field,omitempty"`
}

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid   bool             `json:"valid"`
	Dialect string           `json:"dialect"`
	Studies int              `json:"studies"`
	Assays  int              `json:"assays"`
	Tables  int              `json:"tables"`
	Issue   *ValidationIssue `json:"issue,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := struct {
		From string
	}{}

	cmd := &cobra.Command{
		Use:   "validate <file>",
		Short: "Validate a document against its dialect",
		Long: `Validate an investigation document by strict structural decoding.

The isajson dialect rejects unknown object keys, malformed envelopes
and wrong payload arities; rocrate tolerates linked-data keys but
holds the same payload grammar. Reports the decode failure with its
category, entity and offending field.

Exit codes:
  0 - Document decodes cleanly
  1 - Document is invalid
  2 - Command error (unreadable file, bad dialect)`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			from := sourceDialect(cmd, rootOpts, opts.From)
			return runValidate(rootOpts, from, args[0], cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.From, "from", "f", "isajson", "document dialect (isajson|rocrate)")

	return cmd
}

func runValidate(opts *RootOptions, dialect, file string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	if !isValidDialect(dialect) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid dialect %q: must be one of %v", dialect, ValidDialects))
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to read document", err)
	}
	formatter.VerboseLog("read %d bytes from %s", len(data), file)

	inv, err := decodeInvestigation(data, dialect)
	if err != nil {
		return outputValidationFailure(formatter, dialect, err)
	}

	return outputValidationSuccess(formatter, dialect, inv)
}

// outputValidationSuccess reports a clean decode with document counts.
func outputValidationSuccess(formatter *OutputFormatter, dialect string, inv *isa.ArcInvestigation) error {
	result := ValidationResult{Valid: true, Dialect: dialect}
	for _, s := range inv.Studies {
		result.Studies++
		result.Tables += len(s.Tables)
		for _, a := range s.Assays {
			result.Assays++
			result.Tables += len(a.Tables)
		}
	}

	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintf(formatter.Writer, "✓ Valid %s document\n", dialect)
	fmt.Fprintf(formatter.Writer, "  %d study(ies), %d assay(s), %d annotation table(s)\n",
		result.Studies, result.Assays, result.Tables)
	return nil
}

// outputValidationFailure reports the decode failure, with structured
// detail when the failure is a codec DecodeError.
func outputValidationFailure(formatter *OutputFormatter, dialect string, decodeErr error) error {
	issue := &ValidationIssue{
		Code:    "MALFORMED_JSON",
		Message: decodeErr.Error(),
	}
	if de, ok := codec.AsDecodeError(decodeErr); ok {
		issue = &ValidationIssue{
			Code:    string(de.Code),
			Message: de.Message,
			Entity:  de.Entity,
			Field:   de.Field,
		}
	}

	if formatter.Format == "json" {
		result := ValidationResult{Valid: false, Dialect: dialect, Issue: issue}
		response := CLIResponse{
			Status: "error",
			Data:   result,
			Error: &CLIError{
				Code:    issue.Code,
				Message: issue.Message,
			},
		}
		if err := writeIndentedJSON(formatter.Writer, response); err != nil {
			return err
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)
	fmt.Fprintf(formatter.Writer, "  %s: %s\n", issue.Code, issue.Message)
	if issue.Entity != "" {
		fmt.Fprintf(formatter.Writer, "  entity: %s\n", issue.Entity)
	}
	if issue.Field != "" {
		fmt.Fprintf(formatter.Writer, "  field: %s\n", issue.Field)
	}

	return NewExitError(ExitFailure, "validation failed")
}
