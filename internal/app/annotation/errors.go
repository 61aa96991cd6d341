package annotation

import "errors"

var ErrUnknownTag = errors.New("unknown annotation tag name")
var ErrSchemaNotFound = errors.New("no schema document found")
