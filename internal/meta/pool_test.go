package meta

import "testing"

type counter struct {
	n int
}

func registerCountedType(t *testing.T, r *Registry, destroyed *int) TypeID {
	t.Helper()
	id := RegisterGoType[counter](r, "counter")
	sig, err := PackSignature(nil)
	if err != nil {
		t.Fatalf("PackSignature: %v", err)
	}
	r.AddConstructor(id, sig, func(out View, args Span) {
		*Raw[counter](out) = counter{}
	})
	r.AddDestructor(id, func(self View) {
		*destroyed = *destroyed + 1
	})
	return id
}

func TestPoolSlotReuseIsLIFO(t *testing.T) {
	r := NewRegistry()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)
	pool := r.poolFor(id)
	args := SpanEmpty(r)

	s1 := pool.Alloc(args)
	s2 := pool.Alloc(args)
	pool.Deref(s2)
	pool.Deref(s1)
	s3 := pool.Alloc(args)
	s4 := pool.Alloc(args)

	if s3 != s1 || s4 != s2 {
		t.Fatalf("expected LIFO reuse s3=%v==s1=%v, s4=%v==s2=%v", s3, s1, s4, s2)
	}
}

func TestPoolRefcountRoundTrip(t *testing.T) {
	r := NewRegistry()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)
	pool := r.poolFor(id)
	args := SpanEmpty(r)

	h := Construct(r, id, args)
	clone := h.Clone()
	clone.Release()
	if !pool.IsValid(h.Slot()) {
		t.Fatalf("original handle's slot should still be live after dropping the clone")
	}
	slot := h.Slot()
	h.Release()
	if destroyed != 1 {
		t.Fatalf("expected the destructor to run exactly once, ran %d times", destroyed)
	}
	if pool.IsValid(slot) {
		t.Fatalf("slot should be freed after the last reference drops")
	}
}

func TestPoolAcquireSlotPanicsAtCeiling(t *testing.T) {
	r := NewRegistry()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)
	pool := r.poolFor(id)

	// Simulate having reached the ceiling without actually allocating
	// maxPoolSlots live entries.
	pool.slots = make([]any, maxPoolSlots)

	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic once the pool's slot ceiling is reached")
		}
	}()
	pool.acquireSlot()
}
