package domain

import "errors"

var ErrConstraintNotFound = errors.New("constraint not found in model")
var ErrSchemaNotFound = errors.New("schema not found in model")
var ErrTableNotFound = errors.New("table not found in model")
