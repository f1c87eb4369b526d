package meta

import "metareflect/internal/trace"

// SlotIndex identifies a slot within a Pool. It is stable for the slot's
// lifetime: the pool never moves a live slot, even when the backing storage
// grows.
type SlotIndex int32

// InvalidSlot marks the absence of a pool slot.
const InvalidSlot SlotIndex = -1

// maxPoolSlots is the implementation-defined slot-count ceiling; alloc
// panics with MemPoolExhausted once it would be exceeded.
const maxPoolSlots = 1 << 24

// Pool is the per-type slot recycler backing owning Handles. Live slots hold
// a Go pointer to a heap-allocated value of the pool's type (boxed as any,
// since the pool itself is type-erased); free slots form a LIFO chain
// through nextFree.
type Pool struct {
	reg    *Registry
	typeID TypeID

	slots    []any
	refs     []uint32
	nextFree []SlotIndex
	freeHead SlotIndex
	freeTail SlotIndex
	liveCount int
}

func newPool(reg *Registry, id TypeID) *Pool {
	return &Pool{reg: reg, typeID: id, freeHead: InvalidSlot, freeTail: InvalidSlot}
}

// poolFor lazily creates the Pool for id on first use.
func (r *Registry) poolFor(id TypeID) *Pool {
	if p, ok := r.pools[id]; ok {
		return p
	}
	p := newPool(r, id)
	r.pools[id] = p
	return p
}

func (p *Pool) acquireSlot() SlotIndex {
	if p.freeHead != InvalidSlot {
		slot := p.freeHead
		p.freeHead = p.nextFree[slot]
		if p.freeHead == InvalidSlot {
			p.freeTail = InvalidSlot
		}
		return slot
	}
	if len(p.slots) >= maxPoolSlots {
		panic(raiser.poolExhausted(p.typeID))
	}
	p.slots = append(p.slots, nil)
	p.refs = append(p.refs, 0)
	p.nextFree = append(p.nextFree, InvalidSlot)
	return SlotIndex(len(p.slots) - 1)
}

// Alloc reserves a slot, sets its refcount to 1, and invokes the
// constructor matching args' signature, per §4.4.
func (p *Pool) Alloc(args Span) SlotIndex {
	slot := p.acquireSlot()
	ptr := p.reg.newZero(p.typeID)
	p.slots[slot] = ptr
	p.refs[slot] = 1
	p.liveCount++

	out := NewView(p.reg, ptr, p.typeID, Reference)
	sig, err := args.Signature()
	if err != nil {
		panic(err)
	}
	ctor := p.reg.GetConstructor(p.typeID, sig)
	ctor(out, args)

	if p.reg.tracer != nil && p.reg.tracer.Enabled() {
		span := trace.Begin(p.reg.tracer, trace.ScopeMemory, "pool:alloc", 0)
		span.End(p.typeID.String())
	}
	return slot
}

// Ref increments the refcount of a live slot; it is a no-op on a deleted
// slot, matching §4.4's "ref is a no-op on deleted slots".
func (p *Pool) Ref(slot SlotIndex) {
	if !p.IsValid(slot) {
		return
	}
	p.refs[slot]++
}

// Deref decrements the refcount of a live slot; at refcount zero it invokes
// the destructor, zero-fills the slot, and returns it to the free LIFO.
func (p *Pool) Deref(slot SlotIndex) {
	if !p.IsValid(slot) {
		return
	}
	p.refs[slot]--
	if p.refs[slot] > 0 {
		return
	}
	view := NewView(p.reg, p.slots[slot], p.typeID, Reference)
	if dtor := p.reg.table(p.typeID).dtor; dtor != nil {
		dtor(view)
	}
	p.slots[slot] = nil
	// The newly freed slot becomes the new head; the previous head chains
	// off of it so LIFO reuse pops the most recently freed slot first.
	p.nextFree[slot] = p.freeHead
	p.freeHead = slot
	if p.freeTail == InvalidSlot {
		p.freeTail = slot
	}
	p.liveCount--

	if p.reg.tracer != nil && p.reg.tracer.Enabled() {
		span := trace.Begin(p.reg.tracer, trace.ScopeMemory, "pool:free", 0)
		span.End(p.typeID.String())
	}
}

// Get returns the slot's boxed pointer, or nil if the index is out of range
// or the slot is currently free.
func (p *Pool) Get(slot SlotIndex) any {
	if !p.IsValid(slot) {
		return nil
	}
	return p.slots[slot]
}

// IsValid reports whether slot is a live, in-range index.
func (p *Pool) IsValid(slot SlotIndex) bool {
	return slot >= 0 && int(slot) < len(p.slots) && p.slots[slot] != nil
}

// IsDeleted is the complement of IsValid.
func (p *Pool) IsDeleted(slot SlotIndex) bool {
	return !p.IsValid(slot)
}

// LiveCount returns the number of currently allocated slots.
func (p *Pool) LiveCount() int { return p.liveCount }
