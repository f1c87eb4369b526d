package meta

import "testing"

func TestPrimitivePODDefaultConstructsZero(t *testing.T) {
	r := Default()
	i32, _ := r.Find("i32")
	h := Construct(r, i32, SpanEmpty(r))
	defer h.Release()
	if got := As2[int32](h); got != 0 {
		t.Fatalf("expected a default-constructed i32 to be zero, got %d", got)
	}
}

func TestPrimitivePODCopyConstructsValue(t *testing.T) {
	r := Default()
	i32, _ := r.Find("i32")
	var src int32 = 42
	srcHandle := HandleFromPointer(r, &src, i32, Const)
	h := Construct(r, i32, SpanWith(r, srcHandle))
	defer h.Release()
	if got := As2[int32](h); got != 42 {
		t.Fatalf("expected the copy constructor to produce 42, got %d", got)
	}
}

func TestPrimitivePODMoveConstructsValue(t *testing.T) {
	r := Default()
	i32, _ := r.Find("i32")
	srcHandle := HandleI32(r, 7) // Temporary-qualified, matches the move signature
	h := Construct(r, i32, SpanWith(r, srcHandle))
	defer h.Release()
	if got := As2[int32](h); got != 7 {
		t.Fatalf("expected the move constructor to produce 7, got %d", got)
	}
}

func TestHandlePODCopyClonesAndIncrementsRefcount(t *testing.T) {
	r := NewRegistry()
	r.bootstrapPrimitives() // installs Handle's POD bundle, isolated from the shared Default()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)
	inner := Construct(r, id, SpanEmpty(r))

	handleType, _ := r.Find("Handle")
	copySig := unarySigQual(handleType, Const)
	ctor := r.GetConstructor(handleType, copySig)

	var out Handle
	outView := NewView(r, &out, handleType, Reference)
	srcView := NewView(r, &inner, handleType, Const)
	args := SpanWith(r, HandleFromView(r, srcView))
	ctor(outView, args)

	inner.Release()
	if destroyed != 0 {
		t.Fatalf("cloning should keep the original alive, but it was destroyed")
	}
	out.Release()
	if destroyed != 1 {
		t.Fatalf("expected exactly one destructor call after both owners released, got %d", destroyed)
	}
}

func TestHandlePODMoveTransfersOwnershipAndInvalidatesSource(t *testing.T) {
	r := NewRegistry()
	r.bootstrapPrimitives()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)
	inner := Construct(r, id, SpanEmpty(r))

	handleType, _ := r.Find("Handle")
	moveSig := unarySigQual(handleType, Temporary)
	ctor := r.GetConstructor(handleType, moveSig)

	var out Handle
	outView := NewView(r, &out, handleType, Reference)
	srcView := NewView(r, &inner, handleType, Temporary)
	args := SpanWith(r, HandleFromView(r, srcView))
	ctor(outView, args)

	if inner.Valid() {
		t.Fatalf("move constructor should invalidate the source handle")
	}
	out.Release()
	if destroyed != 1 {
		t.Fatalf("expected exactly one destructor call, got %d", destroyed)
	}
}

func TestViewPODCopyConstructsEquivalentView(t *testing.T) {
	r := Default()
	viewType, ok := r.Find("View")
	if !ok {
		t.Fatalf("View should be registered by bootstrap")
	}
	i32, _ := r.Find("i32")
	var x int32 = 5
	inner := NewView(r, &x, i32, Reference)

	copySig := unarySigQual(viewType, Const)
	ctor := r.GetConstructor(viewType, copySig)

	var out View
	outView := NewView(r, &out, viewType, Reference)
	srcView := NewView(r, &inner, viewType, Const)
	args := SpanWith(r, HandleFromView(r, srcView))
	ctor(outView, args)

	if got := As[int32](out); got != 5 {
		t.Fatalf("copy-constructed View should read through to 5, got %d", got)
	}
}
