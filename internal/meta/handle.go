package meta

// Handle is an owning, reference-counted wrapper around a value allocated
// from a per-type Pool. Go has no destructors, so ownership here is
// explicit: callers must call Release when a Handle goes out of scope,
// exactly as they would call Deref on the underlying pool slot by hand.
type Handle struct {
	reg  *Registry
	view View
	slot SlotIndex
	pool *Pool // nil for inline-primitive and view-only handles
}

// EmptyHandle returns an invalid Handle.
func EmptyHandle(reg *Registry) Handle {
	return Handle{reg: reg, view: InvalidView(), slot: InvalidSlot}
}

// HandleFromView wraps an existing View without taking ownership.
func HandleFromView(reg *Registry, v View) Handle {
	return Handle{reg: reg, view: v, slot: InvalidSlot}
}

// HandleFromPointer wraps a pointer to externally owned storage.
func HandleFromPointer(reg *Registry, ptr any, id TypeID, quals Qualifier) Handle {
	return HandleFromView(reg, NewView(reg, ptr, id, quals))
}

// Construct allocates a Pool slot for id, invokes the constructor matching
// args' signature, and returns an owning Handle with refcount 1.
func Construct(reg *Registry, id TypeID, args Span) Handle {
	pool := reg.poolFor(id)
	slot := pool.Alloc(args)
	view := NewView(reg, pool.Get(slot), id, Reference)
	return Handle{reg: reg, view: view, slot: slot, pool: pool}
}

func inlineHandle(reg *Registry, v View) Handle {
	return Handle{reg: reg, view: v, slot: InvalidSlot}
}

// HandleU8, HandleU16, ... HandleBool wrap an inline primitive value, one
// constructor per primitive kind, each over the matching InlineXxx View.
func HandleU8(reg *Registry, x uint8) Handle     { return inlineHandle(reg, InlineU8(reg, x)) }
func HandleU16(reg *Registry, x uint16) Handle   { return inlineHandle(reg, InlineU16(reg, x)) }
func HandleU32(reg *Registry, x uint32) Handle   { return inlineHandle(reg, InlineU32(reg, x)) }
func HandleU64(reg *Registry, x uint64) Handle   { return inlineHandle(reg, InlineU64(reg, x)) }
func HandleI8(reg *Registry, x int8) Handle      { return inlineHandle(reg, InlineI8(reg, x)) }
func HandleI16(reg *Registry, x int16) Handle    { return inlineHandle(reg, InlineI16(reg, x)) }
func HandleI32(reg *Registry, x int32) Handle    { return inlineHandle(reg, InlineI32(reg, x)) }
func HandleI64(reg *Registry, x int64) Handle    { return inlineHandle(reg, InlineI64(reg, x)) }
func HandleF32(reg *Registry, x float32) Handle  { return inlineHandle(reg, InlineF32(reg, x)) }
func HandleF64(reg *Registry, x float64) Handle  { return inlineHandle(reg, InlineF64(reg, x)) }
func HandleBool(reg *Registry, x bool) Handle    { return inlineHandle(reg, InlineBool(reg, x)) }

// Valid reports whether the Handle refers to anything.
func (h Handle) Valid() bool { return h.view.Valid() }

// Peek returns the Handle's underlying View without affecting ownership.
func (h Handle) Peek() View { return h.view }

// TypeID returns the declared type id of the wrapped value.
func (h Handle) TypeID() TypeID { return h.view.TypeID() }

// Slot exposes the backing pool slot, or InvalidSlot for non-pool-owned
// handles. Mostly useful for tests asserting LIFO reuse.
func (h Handle) Slot() SlotIndex { return h.slot }

// Is delegates to the underlying View's type check.
func (h Handle) Is(target TypeID, want Qualifier) bool { return h.view.Is(target, want) }

// Clone increments the pool refcount (for owning handles) and returns a
// Handle sharing the same slot; inline and view-only handles clone for free.
func (h Handle) Clone() Handle {
	if h.pool != nil {
		h.pool.Ref(h.slot)
	}
	return h
}

// Move transfers ownership out of *h, leaving it empty. Go assignment alone
// would copy the refcount-owning Handle without incrementing the refcount,
// silently double-freeing on the second drop; Move makes the transfer
// explicit, mirroring the C++ source's move constructor.
func (h *Handle) Move() Handle {
	out := *h
	*h = EmptyHandle(h.reg)
	return out
}

// Release drops one reference. For a pool-owned Handle at refcount zero,
// this invokes the destructor and frees the slot back to the pool's LIFO.
// Inline and view-only handles release without touching any pool.
func (h *Handle) Release() {
	if h.pool != nil && h.slot != InvalidSlot {
		h.pool.Deref(h.slot)
	}
	h.view = InvalidView()
	h.slot = InvalidSlot
	h.pool = nil
}

// As2 returns the wrapped value as T, per As on the Handle's View.
func As2[T any](h Handle) T { return As[T](h.view) }

// IsConvertibleTo reports whether ConvertTo(target) would succeed.
func (h Handle) IsConvertibleTo(target TypeID) bool { return h.view.IsConvertibleTo(target) }

// ConvertTo materializes a new owning Handle of the destination type.
func (h Handle) ConvertTo(target TypeID) Handle { return h.view.ConvertTo(target) }
