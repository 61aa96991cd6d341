package annotation

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/catalogkit/annolint/internal/domain"
)

// Service validates model object annotations against their schema
// documents, extended with the semantic keywords.
type Service struct {
	repo   *Repository
	logger *slog.Logger
}

func NewService(repo *Repository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{repo: repo, logger: logger}
}

// Validate checks obj's annotations. With no tags, every annotation present
// on the object is validated; otherwise only the named tags. Validation
// outcomes are returned as data, never raised; the error return covers
// context cancellation and broken schema resources only.
func (s *Service) Validate(ctx context.Context, obj domain.AnnotatedObject, tags ...domain.Tag) ([]ValidationError, error) {
	if len(tags) == 0 {
		tags = presentTags(obj)
	}

	var found []ValidationError
	for _, tag := range tags {
		result, err := s.validateTag(ctx, obj, tag)
		if err != nil {
			return found, err
		}
		found = append(found, result...)
	}
	return found, nil
}

// presentTags returns the tags annotated on obj in a stable order.
func presentTags(obj domain.AnnotatedObject) []domain.Tag {
	annotations := obj.Annotations()
	tags := make([]domain.Tag, 0, len(annotations))
	for tag := range annotations {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i] < tags[j] })
	return tags
}

func (s *Service) validateTag(ctx context.Context, obj domain.AnnotatedObject, tag domain.Tag) ([]ValidationError, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("validating annotation", "tag", string(tag))

	value, present := obj.Annotations()[tag]
	if !present {
		// validating a tag that is not there is a no-op, not a failure
		return nil, nil
	}

	doc, err := s.repo.Get(ctx, tag)
	switch {
	case errors.Is(err, ErrUnknownTag):
		msg := fmt.Sprintf("unknown annotation tag name %q", string(tag))
		s.logger.Error(msg)
		return []ValidationError{{Tag: tag, Message: msg, Cause: err}}, nil
	case errors.Is(err, ErrSchemaNotFound):
		// some tags legitimately have no schema yet
		s.logger.Warn("no schema document found", "tag", string(tag))
		return nil, nil
	case err != nil:
		return nil, err
	}

	schema, err := s.compile(ctx, obj, doc)
	if err != nil {
		return nil, err
	}

	if verr := schema.Validate(value); verr != nil {
		finding := reduceEngineError(tag, value, verr)
		s.logger.Error("annotation validation failed", "tag", string(tag), "error", finding.Message)
		return []ValidationError{finding}, nil
	}
	return nil, nil
}

// compile builds a draft-07 validator for doc with the semantic keywords
// bound to obj and the reference store registered for $ref resolution.
func (s *Service) compile(ctx context.Context, obj domain.AnnotatedObject, doc *Document) (*jsonschema.Schema, error) {
	refs, err := s.repo.References(ctx)
	if err != nil {
		return nil, err
	}

	url := doc.ID
	if url == "" {
		url = doc.Abbrev + ".schema.json"
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	for id, raw := range refs {
		if id == url {
			continue
		}
		if err := compiler.AddResource(id, bytes.NewReader(raw)); err != nil {
			return nil, fmt.Errorf("load reference schema %s: %w", id, err)
		}
	}
	if err := compiler.AddResource(url, bytes.NewReader(doc.Raw)); err != nil {
		return nil, fmt.Errorf("load schema %s: %w", doc.Abbrev, err)
	}
	for name, ext := range keywordExtensions(obj) {
		compiler.RegisterExtension(name, keywordMetas[name], ext)
	}

	schema, err := compiler.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %s: %w", doc.Abbrev, err)
	}
	return schema, nil
}

// reduceEngineError collapses the engine's error tree into one finding. The
// engine stops at the first failing branch, so a single error is reported
// per (object, tag) pair. Semantic keyword failures are preferred over
// structural ones when both appear in the tree.
func reduceEngineError(tag domain.Tag, instance any, err error) ValidationError {
	finding := ValidationError{Tag: tag, Message: err.Error(), Instance: instance, Cause: err}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return finding
	}

	leaves := leafErrors(verr)
	if len(leaves) == 0 {
		return finding
	}
	chosen := leaves[0]
	for _, leaf := range leaves {
		if isSemanticKeyword(leaf.KeywordLocation) {
			chosen = leaf
			break
		}
	}

	msg := chosen.Message
	if chosen.InstanceLocation != "" {
		msg = fmt.Sprintf("%s: %s", chosen.InstanceLocation, msg)
	}
	finding.Message = msg
	return finding
}

func leafErrors(verr *jsonschema.ValidationError) []*jsonschema.ValidationError {
	if len(verr.Causes) == 0 {
		return []*jsonschema.ValidationError{verr}
	}
	var leaves []*jsonschema.ValidationError
	for _, cause := range verr.Causes {
		leaves = append(leaves, leafErrors(cause)...)
	}
	return leaves
}

func isSemanticKeyword(keywordLocation string) bool {
	for _, name := range []string{
		keywordValidColumns,
		keywordValidSortKey,
		keywordValidSourceKey,
		keywordValidForeignKeys,
		keywordValidSourceEntry,
	} {
		if strings.HasSuffix(keywordLocation, "/"+name) {
			return true
		}
	}
	return false
}
