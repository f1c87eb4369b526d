package meta

import "testing"

func TestMapToPrefersConverterOverCaster(t *testing.T) {
	r := NewRegistry()
	type source struct{ n int32 }
	type dest struct{ n int32 }
	srcID := RegisterGoType[source](r, "Source")
	dstID := RegisterGoType[dest](r, "Dest")

	sig, _ := PackSignature(nil)
	r.AddConstructor(srcID, sig, func(out View, args Span) {})
	r.AddConstructor(dstID, sig, func(out View, args Span) {})

	viaConverter := false
	r.AddConverter(srcID, dstID, func(self View) Handle {
		viaConverter = true
		d := &dest{n: Raw[source](self).n}
		return HandleFromView(r, NewView(r, d, dstID, Reference))
	})
	r.AddCaster(srcID, dstID, func(self View) View {
		t.Fatalf("caster should not be used when a converter is registered")
		return View{}
	})

	h := Construct(r, srcID, SpanEmpty(r))
	out := MapTo[dest](r, h)
	if !viaConverter {
		t.Fatalf("expected MapTo to prefer the registered converter")
	}
	if !out.Valid() {
		t.Fatalf("converted handle should be valid")
	}
}

func TestMapToIsIdentityForExactType(t *testing.T) {
	r := Default()
	h := HandleI32(r, 9)
	out := MapTo[int32](r, h)
	if out.TypeID() != h.TypeID() {
		t.Fatalf("MapTo to the exact type should be identity")
	}
}
