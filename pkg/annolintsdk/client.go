package annolintsdk

import (
	"context"

	annotationapp "github.com/catalogkit/annolint/internal/app/annotation"
	"github.com/catalogkit/annolint/internal/domain"
	"github.com/catalogkit/annolint/internal/infra/catalogfile"
	"github.com/catalogkit/annolint/internal/infra/schemastore"
)

// Re-exported model types so SDK users can build or traverse model trees
// without importing internal packages.
type (
	Tag             = domain.Tag
	Annotations     = domain.Annotations
	ConstraintName  = domain.ConstraintName
	Model           = domain.Model
	Schema          = domain.Schema
	Table           = domain.Table
	Column          = domain.Column
	Key             = domain.Key
	ForeignKey      = domain.ForeignKey
	AnnotatedObject = domain.AnnotatedObject
	ValidationError = annotationapp.ValidationError
)

// Client validates catalog annotations using a process-lifetime schema
// document cache.
type Client struct {
	cfg     Config
	repo    *annotationapp.Repository
	service *annotationapp.Service
}

func New(cfg Config) *Client {
	cfg = normalizeConfig(cfg)

	var source annotationapp.SchemaSource = schemastore.EmbeddedSource{}
	if cfg.SchemaDir != "" {
		source = schemastore.DirSource{Dir: cfg.SchemaDir}
	}
	repo := annotationapp.NewRepository(source)

	return &Client{
		cfg:     cfg,
		repo:    repo,
		service: annotationapp.NewService(repo, cfg.Logger),
	}
}

// Validate checks obj's annotations, all of them or only the given tags.
// Validation outcomes are data; the error covers context cancellation and
// broken schema resources only.
func (c *Client) Validate(ctx context.Context, obj AnnotatedObject, tags ...Tag) ([]ValidationError, error) {
	return c.service.Validate(ctx, obj, tags...)
}

// LoadCatalog parses a catalog schema document from a local file into a
// model tree.
func (c *Client) LoadCatalog(path string) (*Model, error) {
	return catalogfile.Load(path)
}

// ResetSchemaCache clears the cached schema documents. Intended for tests.
func (c *Client) ResetSchemaCache() {
	c.repo.Reset()
}

// KnownTags lists the registered annotation tags in stable order.
func KnownTags() []Tag {
	return domain.KnownTags()
}

// Equivalent reports structural equivalence of two JSON-compatible
// documents, ignoring object member order.
func Equivalent(a, b any) (bool, error) {
	return domain.Equivalent(a, b)
}
