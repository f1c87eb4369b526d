package source

import "testing"

func TestInternerBasics(t *testing.T) {
	interner := NewInterner()

	if s, ok := interner.Lookup(NoStringID); !ok || s != "" {
		t.Errorf("NoStringID should resolve to the empty string, got %q, ok=%v", s, ok)
	}

	id1 := interner.Intern("hello")
	if id1 == NoStringID {
		t.Error("Intern of a non-empty string must not return NoStringID")
	}

	id2 := interner.Intern("hello")
	if id1 != id2 {
		t.Errorf("Intern should return the same ID for the same string: %d != %d", id1, id2)
	}

	if s, ok := interner.Lookup(id1); !ok || s != "hello" {
		t.Errorf("Lookup returned the wrong string: %q, ok=%v", s, ok)
	}

	id3 := interner.Intern("world")
	if id3 == id1 {
		t.Error("distinct strings must get distinct IDs")
	}

	if interner.Len() != 3 {
		t.Errorf("expected Len() == 3, got %d", interner.Len())
	}
}

func TestInternerInternBytes(t *testing.T) {
	interner := NewInterner()
	id1 := interner.Intern("bytes")
	id2 := interner.InternBytes([]byte("bytes"))
	if id1 != id2 {
		t.Errorf("InternBytes and Intern should agree on the same content: %d != %d", id1, id2)
	}
}

func TestInternerHas(t *testing.T) {
	interner := NewInterner()
	if !interner.Has(NoStringID) {
		t.Error("Has should be true for NoStringID")
	}
	id := interner.Intern("x")
	if !interner.Has(id) {
		t.Error("Has should be true for a valid ID")
	}
	if interner.Has(StringID(999)) {
		t.Error("Has should be false for an unknown ID")
	}
}

func TestInternerMustLookupPanicsOnInvalidID(t *testing.T) {
	interner := NewInterner()
	defer func() {
		if recover() == nil {
			t.Error("MustLookup should panic on an invalid ID")
		}
	}()
	interner.MustLookup(StringID(999))
}

func TestInternerSnapshot(t *testing.T) {
	interner := NewInterner()
	interner.Intern("a")
	interner.Intern("b")
	snap := interner.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("expected snapshot of length 3, got %d", len(snap))
	}
	if snap[1] != "a" || snap[2] != "b" {
		t.Errorf("unexpected snapshot contents: %#v", snap)
	}
	snap[1] = "mutated"
	if v, _ := interner.Lookup(StringID(1)); v == "mutated" {
		t.Error("Snapshot must return a copy, not an alias")
	}
}
