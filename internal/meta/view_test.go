package meta

import "testing"

func TestInlinePrimitiveRoundTrip(t *testing.T) {
	r := Default()
	v := InlineI32(r, 34)
	if !v.Valid() {
		t.Fatalf("inline view should be valid")
	}
	if got := As[int32](v); got != 34 {
		t.Fatalf("As[int32] = %d, want 34", got)
	}
	if !v.Is(r.primitiveTypeID(PrimitiveI32), Temporary) {
		t.Fatalf("inline i32 view should satisfy is<i32>()")
	}
}

func TestViewWideningAcrossBases(t *testing.T) {
	r := NewRegistry()
	type foo struct{ x int32 }
	type bar struct {
		foo
		y int32
	}
	fooID := RegisterGoType[foo](r, "Foo")
	barID := RegisterGoType[bar](r, "Bar")
	r.AddInheritance(barID, []TypeID{fooID})

	b := &bar{foo: foo{x: 2}, y: 3}
	v := NewView(r, b, barID, Reference)

	if !v.Is(barID, Reference) {
		t.Fatalf("Bar view should answer is<Bar&>()")
	}
	if !v.Is(fooID, Reference) {
		t.Fatalf("Bar view should answer is<Foo&>() via its base set")
	}
}

func TestAsRawWidenToEmbeddedBase(t *testing.T) {
	r := NewRegistry()
	type foo struct{ x int32 }
	type bar struct {
		foo
		y int32
	}
	fooID := RegisterGoType[foo](r, "Foo")
	barID := RegisterGoType[bar](r, "Bar")
	r.AddInheritance(barID, []TypeID{fooID})

	b := &bar{foo: foo{x: 2}, y: 3}
	v := NewView(r, b, barID, Const|Reference)

	if got := As[foo](v).x; got != 2 {
		t.Fatalf("As[Foo] on a Bar view should read the embedded base, got x=%d", got)
	}
	p := Raw[foo](v)
	p.x = 9
	if b.x != 9 {
		t.Fatalf("Raw[Foo] should alias the Bar's embedded storage, got x=%d", b.x)
	}
}

func TestAsWidensThroughMultipleInheritanceLevels(t *testing.T) {
	r := NewRegistry()
	type base struct{ x int32 }
	type mid struct {
		base
		y int32
	}
	type derived struct {
		mid
		z int32
	}
	baseID := RegisterGoType[base](r, "Base")
	midID := RegisterGoType[mid](r, "Mid")
	derivedID := RegisterGoType[derived](r, "Derived")
	r.AddInheritance(midID, []TypeID{baseID})
	r.AddInheritance(derivedID, []TypeID{midID})

	d := &derived{mid: mid{base: base{x: 7}, y: 8}, z: 9}
	v := NewView(r, d, derivedID, Reference)

	if got := As[base](v).x; got != 7 {
		t.Fatalf("As[Base] on a Derived view should reach through Mid, got x=%d", got)
	}
}

func TestConstViewRejectsMutableRequest(t *testing.T) {
	r := NewRegistry()
	id := r.Register("Widget", 4)
	v := NewView(r, new(int32), id, Const|Reference)
	if v.Is(id, 0) {
		t.Fatalf("a const view must not satisfy a non-const request")
	}
	if !v.Is(id, Const) {
		t.Fatalf("a const view should satisfy a const request")
	}
}
