package meta

import "testing"

func registerPODInt(t *testing.T, r *Registry, name string) TypeID {
	t.Helper()
	id := RegisterGoType[int32](r, name)
	sig, err := PackSignature(nil)
	if err != nil {
		t.Fatalf("PackSignature: %v", err)
	}
	r.AddConstructor(id, sig, func(out View, args Span) {})
	return id
}

func TestHeapBestFitReuse(t *testing.T) {
	r := NewRegistry()
	id := registerPODInt(t, r, "Widget")
	h := r.heapFor(id)
	args := SpanEmpty(r)

	a := h.Alloc(1, args)
	b := h.Alloc(4, args)
	c := h.Alloc(2, args)

	h.Free(a)
	h.Free(b)
	h.Free(c)

	got := h.Alloc(3, args)
	if got.Start != b.Start || got.Len() != 3 {
		t.Fatalf("expected alloc(3) to reuse the former size-4 range's prefix, got %+v (size-4 was %+v)", got, b)
	}
}

func TestHeapFragmentationTolerated(t *testing.T) {
	r := NewRegistry()
	id := registerPODInt(t, r, "Widget")
	h := r.heapFor(id)
	args := SpanEmpty(r)

	a := h.Alloc(2, args)
	_ = h.Alloc(3, args)
	c := h.Alloc(2, args)

	h.Free(a)
	h.Free(c)

	reused := h.Alloc(2, args)
	if reused.Len() != 2 {
		t.Fatalf("expected a 2-element range, got %+v", reused)
	}
}
