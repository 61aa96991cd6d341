package ident

import (
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestNewIDParses(t *testing.T) {
	gen := NewRunIDGenerator()
	id, err := gen.NewID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := ulid.Parse(id); err != nil {
		t.Fatalf("expected a valid ULID, got %q: %v", id, err)
	}
}

func TestNewIDMonotonic(t *testing.T) {
	gen := NewRunIDGenerator()
	prev, err := gen.NewID()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i := 0; i < 10; i++ {
		id, err := gen.NewID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if id <= prev {
			t.Fatalf("expected ascending ids, got %q after %q", id, prev)
		}
		prev = id
	}
}
