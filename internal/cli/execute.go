package cli

import (
	"errors"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute runs the annolint command tree and returns the process exit code.
func Execute() int {
	cmd := newRootCmd()
	err := cmd.Execute()
	if err == nil || errors.Is(err, pflag.ErrHelp) {
		return 0
	}
	exitErr := NormalizeError(err)
	_ = writeCLIError(cmd.ErrOrStderr(), exitErr, jsonOutputRequested(cmd))
	return exitErr.Code
}

// jsonOutputRequested reads the persistent --json flag off the root command,
// so error rendering follows the requested output mode even when a
// subcommand failed.
func jsonOutputRequested(root *cobra.Command) bool {
	flags := root.PersistentFlags()
	if flags.Lookup("json") == nil {
		return false
	}
	value, err := flags.GetBool("json")
	return err == nil && value
}
