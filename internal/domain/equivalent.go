package domain

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch/v5"
	"github.com/go-json-experiment/json"
)

// Equivalent reports whether two JSON-compatible documents are structurally
// equivalent: object member order is ignored, array order is significant.
// Useful for deciding whether an annotation value already matches a desired
// configuration.
func Equivalent(a, b any) (bool, error) {
	rawA, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}
	rawB, err := json.Marshal(b)
	if err != nil {
		return false, fmt.Errorf("marshal document: %w", err)
	}
	return jsonpatch.Equal(rawA, rawB), nil
}
