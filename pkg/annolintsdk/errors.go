package annolintsdk

import (
	annotationapp "github.com/catalogkit/annolint/internal/app/annotation"
	"github.com/catalogkit/annolint/internal/domain"
)

var (
	ErrUnknownTag         = annotationapp.ErrUnknownTag
	ErrSchemaNotFound     = annotationapp.ErrSchemaNotFound
	ErrConstraintNotFound = domain.ErrConstraintNotFound
)
