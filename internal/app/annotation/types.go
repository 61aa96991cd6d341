package annotation

import (
	"fmt"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/catalogkit/annolint/internal/domain"
)

// ValidationError describes one annotation validation failure. Failures are
// returned as data rather than raised; the type still implements error so
// callers can wrap or log it directly.
type ValidationError struct {
	Tag      domain.Tag
	Message  string
	Instance any
	Cause    error
}

func (e ValidationError) Error() string {
	if e.Tag == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", string(e.Tag), e.Message)
}

func (e ValidationError) Unwrap() error { return e.Cause }

// renderInstance formats a JSON value for an error message in canonical
// form, so repeated runs over the same model produce identical messages.
func renderInstance(v any) string {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	value := jsontext.Value(raw)
	if err := value.Canonicalize(); err == nil {
		raw = []byte(value)
	}
	return string(raw)
}
