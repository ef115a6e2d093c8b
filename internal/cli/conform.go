package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kappe-c/ARCtrl/internal/harness"
)

// NewConformCommand creates the conform command.
func NewConformCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "conform <pattern>",
		Short: "Run round-trip conformance scenarios",
		Long: `Run YAML conformance scenarios matching a glob pattern.

Each scenario decodes a document, pushes it through a flow of dialect
bounces and asserts on the result. The pattern uses doublestar syntax,
so 'scenarios/**/*.yaml' descends into nested directories. Document
paths inside a scenario resolve relative to the scenario file.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (bad pattern)

Examples:
  arctrl conform 'scenarios/*.yaml'
  arctrl conform 'scenarios/**/*.yaml' --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConform(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runConform(opts *RootOptions, pattern string, cmd *cobra.Command) error {
	suite, err := harness.RunSuite(pattern)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to run scenarios", err)
	}

	if opts.Format == "json" {
		return outputConformJSON(cmd, suite)
	}

	return outputConformText(cmd, suite)
}

// outputConformJSON outputs the suite result as JSON.
func outputConformJSON(cmd *cobra.Command, suite *harness.SuiteResult) error {
	status := "ok"
	if suite.Failed > 0 {
		status = "error"
	}

	response := CLIResponse{
		Status: status,
		Data:   suite,
	}
	if suite.Failed > 0 {
		response.Error = &CLIError{
			Code:    "E_CONFORM_FAILED",
			Message: fmt.Sprintf("%d scenario(s) failed", suite.Failed),
		}
	}

	if err := writeIndentedJSON(cmd.OutOrStdout(), response); err != nil {
		return err
	}

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
	}
	return nil
}

// outputConformText outputs the suite result as text.
func outputConformText(cmd *cobra.Command, suite *harness.SuiteResult) error {
	w := cmd.OutOrStdout()

	if suite.TotalScenarios == 0 {
		fmt.Fprintln(w, "No scenarios found.")
		return nil
	}

	for _, failure := range suite.Failures {
		fmt.Fprintf(w, "✗ %s\n", failure.ScenarioPath)
		fmt.Fprintf(w, "  %s\n", failure.Error)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "Conformance: %d passed, %d failed, %d total\n",
		suite.Passed, suite.Failed, suite.TotalScenarios)

	if suite.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", suite.Failed))
	}

	fmt.Fprintln(w, "✓ All scenarios passed")
	return nil
}
