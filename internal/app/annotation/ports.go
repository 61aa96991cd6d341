package annotation

import "context"

// SchemaSource reads the raw schema document registered under a tag
// abbreviation. Implementations report missing documents with an error
// wrapping fs.ErrNotExist.
type SchemaSource interface {
	ReadSchema(ctx context.Context, abbrev string) ([]byte, error)
}
