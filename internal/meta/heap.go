package meta

import (
	"container/heap"

	"metareflect/internal/trace"
)

// Range is a contiguous half-open interval [Start, End) of a Heap's slots.
type Range struct {
	Start int
	End   int
}

// Len returns the number of slots the range covers.
func (r Range) Len() int { return r.End - r.Start }

// freeRanges is a container/heap.Interface ordered by size, descending, so
// the largest free range is always at index 0 -- the "max-heap" in §4.5.
type freeRanges []Range

func (f freeRanges) Len() int            { return len(f) }
func (f freeRanges) Less(i, j int) bool  { return f[i].Len() > f[j].Len() }
func (f freeRanges) Swap(i, j int)       { f[i], f[j] = f[j], f[i] }
func (f *freeRanges) Push(x any)         { *f = append(*f, x.(Range)) }
func (f *freeRanges) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// Heap is the per-type size-class range allocator backing Spans. It never
// coalesces adjacent free ranges; repeated alloc/free cycles are expected to
// fragment, and callers must tolerate that per §4.5.
type Heap struct {
	reg    *Registry
	typeID TypeID

	elems []any
	inUse []bool
	free  freeRanges
}

func newHeap(reg *Registry, id TypeID) *Heap {
	return &Heap{reg: reg, typeID: id}
}

// heapFor lazily creates the Heap for id on first use.
func (r *Registry) heapFor(id TypeID) *Heap {
	if h, ok := r.heaps[id]; ok {
		return h
	}
	h := newHeap(r, id)
	r.heaps[id] = h
	return h
}

func (h *Heap) markUsed(r Range) {
	for i := r.Start; i < r.End; i++ {
		h.inUse[i] = true
	}
}

func (h *Heap) constructRange(r Range, args Span) {
	sig, err := args.Signature()
	if err != nil {
		panic(err)
	}
	ctor := h.reg.GetConstructor(h.typeID, sig)
	for i := r.Start; i < r.End; i++ {
		ptr := h.reg.newZero(h.typeID)
		h.elems[i] = ptr
		ctor(NewView(h.reg, ptr, h.typeID, Reference), args)
	}
}

// allocRaw reserves a Range of n slots using the same largest-fit reuse
// policy as Alloc, but leaves the elements nil instead of invoking a
// constructor. Span uses this to back its own storage, since a Span is
// itself the argument bundle a constructor call receives and can't depend
// on one existing yet.
func (h *Heap) allocRaw(n int) Range {
	if len(h.free) > 0 && h.free[0].Len() >= n {
		top := heap.Pop(&h.free).(Range)
		used := Range{Start: top.Start, End: top.Start + n}
		if top.Len() > n {
			heap.Push(&h.free, Range{Start: top.Start + n, End: top.End})
		}
		h.markUsed(used)
		return used
	}
	start := len(h.elems)
	for i := 0; i < n; i++ {
		h.elems = append(h.elems, nil)
		h.inUse = append(h.inUse, false)
	}
	used := Range{Start: start, End: start + n}
	h.markUsed(used)
	return used
}

// setRaw overwrites the element at slot, which must lie within a Range this
// Heap currently considers in use.
func (h *Heap) setRaw(slot int, v any) { h.elems[slot] = v }

// Alloc returns a Range of n freshly constructed elements, reusing the
// largest free range that fits if one exists, otherwise growing the backing
// store by n.
func (h *Heap) Alloc(n int, args Span) Range {
	if len(h.free) > 0 && h.free[0].Len() >= n {
		top := heap.Pop(&h.free).(Range)
		used := Range{Start: top.Start, End: top.Start + n}
		if top.Len() > n {
			heap.Push(&h.free, Range{Start: top.Start + n, End: top.End})
		}
		h.markUsed(used)
		h.constructRange(used, args)
		return used
	}

	start := len(h.elems)
	for i := 0; i < n; i++ {
		h.elems = append(h.elems, nil)
		h.inUse = append(h.inUse, false)
	}
	used := Range{Start: start, End: start + n}
	h.markUsed(used)
	h.constructRange(used, args)

	if h.reg.tracer != nil && h.reg.tracer.Enabled() {
		span := trace.Begin(h.reg.tracer, trace.ScopeMemory, "heap:grow", 0)
		span.End(h.typeID.String())
	}
	return used
}

// Free destroys every element in r, clears its in_use bits, and returns the
// range to the free max-heap without coalescing.
func (h *Heap) Free(r Range) {
	dtor := h.reg.table(h.typeID).dtor
	for i := r.Start; i < r.End; i++ {
		if dtor != nil {
			dtor(NewView(h.reg, h.elems[i], h.typeID, Reference))
		}
		h.elems[i] = nil
		h.inUse[i] = false
	}
	heap.Push(&h.free, r)

	if h.reg.tracer != nil && h.reg.tracer.Enabled() {
		span := trace.Begin(h.reg.tracer, trace.ScopeMemory, "heap:free", 0)
		span.End(h.typeID.String())
	}
}

// Get returns the slot's boxed pointer iff its in_use bit is set.
func (h *Heap) Get(slot int) any {
	if slot < 0 || slot >= len(h.elems) || !h.inUse[slot] {
		return nil
	}
	return h.elems[slot]
}
