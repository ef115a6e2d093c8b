package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose    bool
	Format     string // "json" | "text"
	ConfigPath string // project config file, empty means ./.arctrl.yaml if present

	// Config holds the loaded project defaults. Populated before any
	// command runs.
	Config *Config
}

// ValidFormats defines the allowed output formats.
var ValidFormats = []string{"text", "json"}

// ValidDialects defines the document dialects commands can read.
var ValidDialects = []string{"isajson", "rocrate"}

// NewRootCommand creates the root command for the arctrl CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "arctrl",
		Short: "ARC metadata round-trip toolkit",
		Long: "Convert, validate and export ISA investigation metadata between the\n" +
			"strict ISA-JSON dialect, RO-Crate JSON-LD and the tabular ISA-Tab form.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Layer config under flags: explicit flags always win.
			path := opts.ConfigPath
			explicit := path != ""
			if !explicit {
				path = DefaultConfigFile
			}
			cfg, err := LoadConfig(path, explicit)
			if err != nil {
				return err
			}
			opts.Config = cfg

			if cfg.Format != "" && !cmd.Root().PersistentFlags().Changed("format") {
				opts.Format = cfg.Format
			}

			if !isValidFormat(opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, ValidFormats)
			}
			return nil
		},
	}

	// Global flags
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (json|text)")
	cmd.PersistentFlags().StringVar(&opts.ConfigPath, "config", "", "project config file (default .arctrl.yaml)")

	// Add subcommands
	cmd.AddCommand(NewConvertCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))
	cmd.AddCommand(NewHeadersCommand(opts))
	cmd.AddCommand(NewExportCommand(opts))
	cmd.AddCommand(NewConformCommand(opts))

	return cmd
}

// isValidFormat checks if the format is one of the allowed values.
func isValidFormat(format string) bool {
	for _, f := range ValidFormats {
		if f == format {
			return true
		}
	}
	return false
}

// isValidDialect checks if the dialect is one of the allowed values.
func isValidDialect(dialect string) bool {
	for _, d := range ValidDialects {
		if d == dialect {
			return true
		}
	}
	return false
}

// sourceDialect resolves a command's source dialect: the flag when
// changed, else the config default, else the flag's built-in default.
func sourceDialect(cmd *cobra.Command, opts *RootOptions, flagValue string) string {
	if cmd.Flags().Changed("from") {
		return flagValue
	}
	if opts.Config != nil && opts.Config.Dialect != "" {
		return opts.Config.Dialect
	}
	return flagValue
}
