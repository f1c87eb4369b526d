package meta

// Span is a contiguous run of Handles, backed by a Range carved out of the
// registry's Handle-typed Heap. It is the argument bundle every
// constructor, assigner, caster, converter, and operator call receives, and
// the vehicle through which Signature matching picks an overload.
type Span struct {
	reg  *Registry
	heap *Heap
	r    Range
}

// handleHeap returns the shared Heap of Handle-typed elements, registering
// the Handle pseudo-type on first use.
func (r *Registry) handleHeap() *Heap {
	if r.handleTypeID == Invalid {
		r.handleTypeID = r.Register("Handle", 0)
	}
	return r.heapFor(r.handleTypeID)
}

// SpanEmpty returns a zero-length Span, the argument bundle for nullary
// constructors and operators.
func SpanEmpty(reg *Registry) Span {
	h := reg.handleHeap()
	r := h.allocRaw(0)
	return Span{reg: reg, heap: h, r: r}
}

// SpanReserve allocates a Span of n empty slots for callers that fill
// elements in afterward via Set.
func SpanReserve(reg *Registry, n int) Span {
	h := reg.handleHeap()
	r := h.allocRaw(n)
	return Span{reg: reg, heap: h, r: r}
}

// SpanWith packs args into a freshly allocated Span, in order.
func SpanWith(reg *Registry, args ...Handle) Span {
	s := SpanReserve(reg, len(args))
	for i, a := range args {
		s.Set(i, a)
	}
	return s
}

// Len returns the number of Handles in the span.
func (s Span) Len() int { return s.r.Len() }

// Empty reports whether the span holds zero elements.
func (s Span) Empty() bool { return s.Len() == 0 }

// At returns the i'th Handle, panicking via raiser.spanOutOfBounds if i is
// out of range.
func (s Span) At(i int) Handle {
	if i < 0 || i >= s.Len() {
		panic(raiser.spanOutOfBounds(i, s.Len()))
	}
	slot := s.r.Start + i
	v := s.heap.Get(slot)
	if v == nil {
		return EmptyHandle(s.reg)
	}
	return *(v.(*Handle))
}

// Set overwrites the i'th Handle.
func (s Span) Set(i int, h Handle) {
	if i < 0 || i >= s.Len() {
		panic(raiser.spanOutOfBounds(i, s.Len()))
	}
	stored := h
	s.heap.setRaw(s.r.Start+i, &stored)
}

// Release frees the span's backing range, including every live Handle it
// still owns.
func (s Span) Release() {
	for i := 0; i < s.Len(); i++ {
		if h, ok := s.heap.Get(s.r.Start + i).(*Handle); ok {
			h.Release()
		}
	}
	s.heap.Free(s.r)
}

// Signature builds the Signature a Span's arguments present to overload
// resolution: each element's effective type id paired with its current
// qualifiers, packed in order.
func (s Span) Signature() (Signature, error) {
	params := make([]Parameter, s.Len())
	for i := 0; i < s.Len(); i++ {
		v := s.At(i).Peek()
		params[i] = Parameter{Type: v.EffectiveTypeID(), Qualifiers: v.Qualifiers()}
	}
	return PackSignature(params)
}
