package meta

import "testing"

func TestSpanWithPacksInlinePrimitives(t *testing.T) {
	r := Default()
	s := SpanWith(r,
		HandleBool(r, true),
		HandleI32(r, 34),
		HandleF64(r, 3.14),
	)
	defer s.Release()

	if s.Len() != 3 {
		t.Fatalf("expected span length 3, got %d", s.Len())
	}
	if got := As[bool](s.At(0).Peek()); got != true {
		t.Fatalf("element 0 = %v, want true", got)
	}
	if got := As[int32](s.At(1).Peek()); got != 34 {
		t.Fatalf("element 1 = %d, want 34", got)
	}
	if got := As[float64](s.At(2).Peek()); got != 3.14 {
		t.Fatalf("element 2 = %v, want 3.14", got)
	}
}

func TestSpanAtPanicsOutOfBounds(t *testing.T) {
	r := Default()
	s := SpanWith(r, HandleI32(r, 1))
	defer s.Release()
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for an out-of-bounds span index")
		}
	}()
	s.At(5)
}

func TestSpanSignatureDeterministic(t *testing.T) {
	r := Default()
	s := SpanWith(r, HandleI32(r, 1), HandleBool(r, false))
	defer s.Release()

	sig1, err := s.Signature()
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	sig2, err := s.Signature()
	if err != nil {
		t.Fatalf("Signature: %v", err)
	}
	if sig1 != sig2 {
		t.Fatalf("signature should be deterministic across repeated calls")
	}
}
