package meta

import "testing"

func TestHandleMoveInvalidatesSource(t *testing.T) {
	r := NewRegistry()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)

	h := Construct(r, id, SpanEmpty(r))
	moved := h.Move()

	if h.Valid() {
		t.Fatalf("source handle should be invalid after Move")
	}
	if !moved.Valid() {
		t.Fatalf("moved-to handle should be valid")
	}
	moved.Release()
	if destroyed != 1 {
		t.Fatalf("expected exactly one destructor call, got %d", destroyed)
	}
}

func TestHandleFromViewIsNonOwning(t *testing.T) {
	r := NewRegistry()
	id := r.Register("Widget", 4)
	var x int32 = 7
	v := NewView(r, &x, id, Reference)
	h := HandleFromView(r, v)

	if h.Slot() != InvalidSlot {
		t.Fatalf("view-only handle must not own a pool slot")
	}
	h.Release() // should not panic or touch any pool
}
