package annotation

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"github.com/go-json-experiment/json"

	"github.com/catalogkit/annolint/internal/domain"
)

// referenceTags lists the schema documents that other documents reference by
// $id. They are pre-registered with the compiler on every validation so $ref
// resolution never reaches back into the lazy-load path.
var referenceTags = []domain.Tag{domain.TagExport, domain.TagSourceDefinitions}

// Document is a parsed schema document cached by tag.
type Document struct {
	Tag    domain.Tag
	Abbrev string
	ID     string
	Raw    []byte
}

// Repository lazily loads schema documents from a SchemaSource and caches
// them for the process lifetime. The cache is guarded so concurrent
// validations cannot race the load-then-insert sequence.
type Repository struct {
	source SchemaSource

	mu    sync.Mutex
	cache map[domain.Tag]*Document
	refs  map[string][]byte
}

func NewRepository(source SchemaSource) *Repository {
	return &Repository{
		source: source,
		cache:  map[domain.Tag]*Document{},
	}
}

// Get returns the schema document for tag, loading it on first access.
// Unregistered tags fail with ErrUnknownTag; registered tags whose document
// does not exist fail with ErrSchemaNotFound.
func (r *Repository) Get(ctx context.Context, tag domain.Tag) (*Document, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.getLocked(ctx, tag)
}

func (r *Repository) getLocked(ctx context.Context, tag domain.Tag) (*Document, error) {
	if doc, ok := r.cache[tag]; ok {
		return doc, nil
	}

	abbrev, ok := domain.Abbreviation(tag)
	if !ok {
		return nil, fmt.Errorf("tag %q: %w", string(tag), ErrUnknownTag)
	}

	raw, err := r.source.ReadSchema(ctx, abbrev)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("tag %q (%s.schema.json): %w", string(tag), abbrev, ErrSchemaNotFound)
		}
		return nil, err
	}

	var header struct {
		ID string `json:"$id"`
	}
	if err := json.Unmarshal(raw, &header); err != nil {
		return nil, fmt.Errorf("parse schema document %s.schema.json: %w", abbrev, err)
	}

	doc := &Document{Tag: tag, Abbrev: abbrev, ID: header.ID, Raw: raw}
	r.cache[tag] = doc
	return doc, nil
}

// References returns the fixed $id-keyed store of schemas that are $ref
// targets of other schemas. Built once, then reused.
func (r *Repository) References(ctx context.Context) (map[string][]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs != nil {
		return r.refs, nil
	}

	refs := make(map[string][]byte, len(referenceTags))
	for _, tag := range referenceTags {
		doc, err := r.getLocked(ctx, tag)
		if err != nil {
			return nil, err
		}
		if doc.ID == "" {
			return nil, fmt.Errorf("reference schema %s.schema.json declares no $id", doc.Abbrev)
		}
		refs[doc.ID] = doc.Raw
	}
	r.refs = refs
	return refs, nil
}

// Reset clears the cache. It exists for test isolation only.
func (r *Repository) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = map[domain.Tag]*Document{}
	r.refs = nil
}
