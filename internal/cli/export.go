package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/cobra"

	"github.com/kappe-c/ARCtrl/internal/store"
)

// ExportOptions holds flags for the export sqlite command.
type ExportOptions struct {
	*RootOptions
	Database string
	Glob     string
	From     string
}

// ExportResult summarizes a batch export.
type ExportResult struct {
	Database       string   `json:"database"`
	Files          int      `json:"files"`
	Investigations []string `json:"investigations"`
}

// NewExportCommand creates the export command group.
func NewExportCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export documents to external storage",
	}

	cmd.AddCommand(newExportSQLiteCommand(rootOpts))

	return cmd
}

func newExportSQLiteCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ExportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sqlite [files...]",
		Short: "Flatten investigations into a SQLite snapshot",
		Long: `Flatten investigation documents into a queryable SQLite snapshot.

Each document is decoded and decomposed into investigation, study,
assay, table and cell rows, stored as canonical JSON so repeated
exports of the same document produce byte-identical rows. Exporting
an investigation that is already in the database replaces its
snapshot.

Files come from the arguments, from --glob, or both. The glob uses
doublestar syntax, so patterns like 'assays/**/isa.assay.json'
descend into nested layouts.

Examples:
  arctrl export sqlite --db arc.db isa.investigation.json
  arctrl export sqlite --db arc.db --glob 'studies/**/*.json'
  arctrl export sqlite --db arc.db -f rocrate in.arc.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExportSQLite(opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Glob, "glob", "", "doublestar pattern selecting additional files")
	cmd.Flags().StringVarP(&opts.From, "from", "f", "isajson", "document dialect (isajson|rocrate)")

	return cmd
}

func runExportSQLite(opts *ExportOptions, args []string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	dialect := sourceDialect(cmd, opts.RootOptions, opts.From)
	if !isValidDialect(dialect) {
		return NewExitError(ExitCommandError, fmt.Sprintf("invalid dialect %q: must be one of %v", dialect, ValidDialects))
	}

	files, err := collectExportFiles(args, opts.Glob)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return NewExitError(ExitCommandError, "no input files: pass files or --glob")
	}

	slog.Info("opening database", "path", opts.Database)
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer func() {
		if closeErr := st.Close(); closeErr != nil {
			slog.Error("error closing database", "error", closeErr)
		}
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	result := ExportResult{Database: opts.Database, Files: len(files)}
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to read %s", file), err)
		}

		inv, err := decodeInvestigation(data, dialect)
		if err != nil {
			return WrapExitError(ExitFailure, fmt.Sprintf("failed to decode %s", file), err)
		}
		slog.Debug("document decoded", "file", file, "identifier", inv.Identifier, "studies", len(inv.Studies))

		if err := st.SaveInvestigation(ctx, inv); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to export %s", file), err)
		}
		slog.Info("investigation exported", "identifier", inv.Identifier, "file", file)
		result.Investigations = append(result.Investigations, inv.Identifier)
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(result)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d investigation(s) from %d file(s) to %s\n",
		len(result.Investigations), result.Files, opts.Database)
	return nil
}

// collectExportFiles merges explicit files with glob matches, sorted
// and deduplicated so batch exports run in a deterministic order.
func collectExportFiles(args []string, pattern string) ([]string, error) {
	files := append([]string{}, args...)
	if pattern != "" {
		matches, err := doublestar.FilepathGlob(pattern)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, fmt.Sprintf("failed to expand glob %q", pattern), err)
		}
		files = append(files, matches...)
	}
	sort.Strings(files)

	deduped := files[:0]
	var prev string
	for i, f := range files {
		if i > 0 && f == prev {
			continue
		}
		deduped = append(deduped, f)
		prev = f
	}
	return deduped, nil
}
