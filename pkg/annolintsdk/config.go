package annolintsdk

import (
	"log/slog"
	"strings"
)

// Config controls how a Client resolves schema documents and logs.
type Config struct {
	// SchemaDir overrides the bundled annotation schema documents with
	// <abbrev>.schema.json files from a local directory.
	SchemaDir string

	// Logger receives validation diagnostics. Defaults to slog.Default().
	Logger *slog.Logger
}

func normalizeConfig(cfg Config) Config {
	cfg.SchemaDir = strings.TrimSpace(cfg.SchemaDir)
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}
