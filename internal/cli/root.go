package cli

import (
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/catalogkit/annolint/internal/platform"
)

type RootOptions struct {
	CatalogPath string
	SchemaDir   string
	JSONOutput  bool
	LogLevel    string
	LogFormat   string
}

func newRootCmd() *cobra.Command {
	opts := &RootOptions{
		LogLevel:  envDefault("ANNOLINT_LOG_LEVEL", "info"),
		LogFormat: envDefault("ANNOLINT_LOG_FORMAT", "text"),
		SchemaDir: envDefault("ANNOLINT_SCHEMA_DIR", ""),
	}
	cmd := &cobra.Command{
		Use:           "annolint",
		Short:         "Catalog annotation validation CLI",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			_, err := platform.ConfigureLogger(opts.LogLevel, opts.LogFormat, cmd.ErrOrStderr())
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&opts.CatalogPath, "catalog", "", "Path to the catalog schema document")
	cmd.PersistentFlags().StringVar(&opts.SchemaDir, "schema-dir", opts.SchemaDir, "Directory of annotation schema documents (defaults to the bundled set)")
	cmd.PersistentFlags().BoolVar(&opts.JSONOutput, "json", false, "Emit JSON output")
	cmd.PersistentFlags().StringVar(&opts.LogLevel, "log-level", opts.LogLevel, "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.LogFormat, "log-format", opts.LogFormat, "Log format (text, json)")

	cmd.AddCommand(
		newValidateCmd(opts),
		newTagsCmd(opts),
	)
	return cmd
}

func envDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
