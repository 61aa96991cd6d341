package schemastore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DirSource reads schema documents named <abbrev>.schema.json from a local
// directory, overriding the bundled set.
type DirSource struct {
	Dir string
}

func (s DirSource) ReadSchema(ctx context.Context, abbrev string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, abbrev+".schema.json"))
	if err != nil {
		return nil, fmt.Errorf("read schema %s: %w", abbrev, err)
	}
	return data, nil
}
