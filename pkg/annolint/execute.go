package annolint

import "github.com/catalogkit/annolint/internal/cli"

// Execute runs the annolint CLI entrypoint.
func Execute() int {
	return cli.Execute()
}
