package meta

import "testing"

func TestRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	id1 := r.Register("Widget", 16)
	id2 := r.Register("Widget", 16)
	if id1 != id2 {
		t.Fatalf("expected idempotent registration, got %v and %v", id1, id2)
	}
	if len(r.infos) != 1 {
		t.Fatalf("expected exactly one TypeInfo row, got %d", len(r.infos))
	}
}

func TestAddInheritanceIsTransitive(t *testing.T) {
	r := NewRegistry()
	a := r.Register("A", 4)
	b := r.Register("B", 4)
	d := r.Register("D", 4)

	if !r.AddInheritance(b, []TypeID{a}) {
		t.Fatalf("AddInheritance(B, [A]) should succeed")
	}
	if !r.AddInheritance(d, []TypeID{b}) {
		t.Fatalf("AddInheritance(D, [B]) should succeed")
	}

	if !r.Get(d).HasBase(a) {
		t.Fatalf("D should transitively have base A")
	}
	if r.Get(d).HasBase(d) {
		t.Fatalf("D must not be its own base")
	}
}

func TestAddInheritanceRejectsInvalidParent(t *testing.T) {
	r := NewRegistry()
	d := r.Register("D", 4)
	if r.AddInheritance(d, []TypeID{TypeID(999)}) {
		t.Fatalf("AddInheritance should fail for an unregistered parent")
	}
}

func TestConstructorFirstWriterWins(t *testing.T) {
	r := NewRegistry()
	id := r.Register("Widget", 4)
	sig, _ := PackSignature(nil)

	calls := 0
	if !r.AddConstructor(id, sig, func(out View, args Span) { calls++ }) {
		t.Fatalf("first AddConstructor should succeed")
	}
	if r.AddConstructor(id, sig, func(out View, args Span) { calls += 100 }) {
		t.Fatalf("second AddConstructor for the same signature should fail")
	}
	r.GetConstructor(id, sig)(InvalidView(), SpanEmpty(r))
	if calls != 1 {
		t.Fatalf("expected the first-registered constructor to win, calls=%d", calls)
	}
}

func TestGetConstructorPanicsWhenMissing(t *testing.T) {
	r := NewRegistry()
	id := r.Register("Widget", 4)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic for a missing constructor")
		}
	}()
	sig, _ := PackSignature(nil)
	r.GetConstructor(id, sig)
}
