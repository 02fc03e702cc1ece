package uuid

import (
	"testing"

	googleuuid "github.com/google/uuid"
)

func TestNewIDIsValidUUID(t *testing.T) {
	t.Parallel()

	gen := New()
	id, err := gen.NewID()
	if err != nil {
		t.Fatalf("NewID() error = %v", err)
	}

	parsed, err := googleuuid.Parse(id)
	if err != nil {
		t.Fatalf("expected a parseable UUID, got %q: %v", id, err)
	}
	if parsed.Version() != 7 {
		t.Fatalf("expected UUID version 7, got %d", parsed.Version())
	}
}

func TestNewIDIsUnique(t *testing.T) {
	t.Parallel()

	gen := New()
	seen := make(map[string]struct{})
	for range 100 {
		id, err := gen.NewID()
		if err != nil {
			t.Fatalf("NewID() error = %v", err)
		}
		if _, dup := seen[id]; dup {
			t.Fatalf("duplicate id generated: %s", id)
		}
		seen[id] = struct{}{}
	}
}
