package meta

import "testing"

func TestScenarioPrimitiveEcho(t *testing.T) {
	r := Default()
	h := HandleI32(r, 34)
	if !h.Is(r.primitiveTypeID(PrimitiveI32), Temporary) {
		t.Fatalf("expected h.is<i32>()")
	}
	if got := As2[int32](h); got != 34 {
		t.Fatalf("expected primitive<i32>() == 34, got %d", got)
	}
	if h.Slot() != InvalidSlot {
		t.Fatalf("inline handle must not own a pool slot")
	}
}

func TestScenarioOperatorDispatch(t *testing.T) {
	r := Default()
	i32 := r.primitiveTypeID(PrimitiveI32)
	sig := binarySig(i32)

	add := r.GetBinaryOp(i32, OpAdd, sig)
	result := add(InlineI32(r, 3), InlineI32(r, 4))
	if got := As2[int32](result); got != 7 {
		t.Fatalf("3 + 4 = %d, want 7", got)
	}
}

func TestScenarioReflectiveMethodCall(t *testing.T) {
	r := Default()
	emptySig, _ := PackSignature(nil)

	valid := HandleI32(r, 1)
	validMethod := r.GetMethod(r.handleTypeID, "valid", emptySig)

	ptr := &valid
	self := NewView(r, ptr, r.handleTypeID, Reference)
	out := validMethod(self, SpanEmpty(r))
	if got := As2[bool](out); !got {
		t.Fatalf("valid handle's valid() should report true")
	}

	empty := EmptyHandle(r)
	self2 := NewView(r, &empty, r.handleTypeID, Reference)
	out2 := validMethod(self2, SpanEmpty(r))
	if got := As2[bool](out2); got {
		t.Fatalf("empty handle's valid() should report false")
	}
}

func TestScenarioRefcountDestruction(t *testing.T) {
	r := NewRegistry()
	destroyed := 0
	id := registerCountedType(t, r, &destroyed)

	h := Construct(r, id, SpanEmpty(r))
	clone := h.Clone()
	h.Release()
	clone.Release()

	if destroyed != 1 {
		t.Fatalf("expected the destructor to run exactly once, ran %d times", destroyed)
	}
}
