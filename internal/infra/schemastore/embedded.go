package schemastore

import (
	"context"
	"embed"
	"fmt"
)

//go:embed schemas/*.schema.json
var embedded embed.FS

// EmbeddedSource serves the schema documents bundled with the binary.
// Missing documents surface as errors wrapping fs.ErrNotExist.
type EmbeddedSource struct{}

func (EmbeddedSource) ReadSchema(ctx context.Context, abbrev string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := embedded.ReadFile("schemas/" + abbrev + ".schema.json")
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", abbrev, err)
	}
	return data, nil
}
