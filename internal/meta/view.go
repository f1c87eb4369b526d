package meta

import (
	"math"
	"reflect"
)

// View is a fixed-shape, non-owning reference to a value of any registered
// type. It either carries an inline primitive by value, or a pointer to an
// object owned elsewhere (typically a Pool slot), distinguished by the sign
// of typeID: inline tags are negative, registered ids are non-negative.
type View struct {
	reg    *Registry
	typeID TypeID
	quals  Qualifier
	prim   [8]byte // inline primitive payload, meaningful iff IsInline(typeID)
	obj    any      // pointer to the referent, meaningful iff !IsInline(typeID)
}

// InvalidView returns a View with no referent.
func InvalidView() View {
	return View{typeID: Invalid}
}

// NewView wraps an externally owned object. ptr must be a pointer (the
// result of a Pool's slot storage or any addressable Go value the caller
// keeps alive).
func NewView(reg *Registry, ptr any, id TypeID, quals Qualifier) View {
	return View{reg: reg, obj: ptr, typeID: id, quals: quals}
}

func newInline(reg *Registry, kind PrimitiveKind, bits uint64) View {
	v := View{reg: reg, typeID: InlineTag(kind), quals: Temporary}
	for i := 0; i < 8; i++ {
		v.prim[i] = byte(bits >> (8 * i))
	}
	return v
}

func (v View) bits() uint64 {
	var bits uint64
	for i := 0; i < 8; i++ {
		bits |= uint64(v.prim[i]) << (8 * i)
	}
	return bits
}

// InlineU8, InlineU16, ... construct an inline-primitive View holding a copy
// of the given value with Temporary qualifiers, per §4.2.
func InlineU8(reg *Registry, x uint8) View   { return newInline(reg, PrimitiveU8, uint64(x)) }
func InlineU16(reg *Registry, x uint16) View { return newInline(reg, PrimitiveU16, uint64(x)) }
func InlineU32(reg *Registry, x uint32) View { return newInline(reg, PrimitiveU32, uint64(x)) }
func InlineU64(reg *Registry, x uint64) View { return newInline(reg, PrimitiveU64, x) }
func InlineI8(reg *Registry, x int8) View    { return newInline(reg, PrimitiveI8, uint64(uint8(x))) }
func InlineI16(reg *Registry, x int16) View  { return newInline(reg, PrimitiveI16, uint64(uint16(x))) }
func InlineI32(reg *Registry, x int32) View  { return newInline(reg, PrimitiveI32, uint64(uint32(x))) }
func InlineI64(reg *Registry, x int64) View  { return newInline(reg, PrimitiveI64, uint64(x)) }
func InlineF32(reg *Registry, x float32) View {
	return newInline(reg, PrimitiveF32, uint64(math.Float32bits(x)))
}
func InlineF64(reg *Registry, x float64) View {
	return newInline(reg, PrimitiveF64, math.Float64bits(x))
}
func InlineBool(reg *Registry, x bool) View {
	var b uint64
	if x {
		b = 1
	}
	return newInline(reg, PrimitiveBool, b)
}

// Valid reports whether the View refers to anything: either an inline
// primitive, or a non-nil pointer at a registered type.
func (v View) Valid() bool {
	if IsInline(v.typeID) {
		return true
	}
	return v.typeID != Invalid && v.obj != nil
}

// TypeID returns the View's declared type id (possibly an inline tag).
func (v View) TypeID() TypeID { return v.typeID }

// Qualifiers returns the View's qualifier mask.
func (v View) Qualifiers() Qualifier { return v.quals }

// EffectiveTypeID normalizes inline tags and registered ids to a single
// dense id space, per §9's "effective_type_id() normalizes both arms".
func (v View) EffectiveTypeID() TypeID {
	if kind, ok := KindOf(v.typeID); ok {
		return v.reg.primitiveTypeID(kind)
	}
	return v.typeID
}

// Is reports whether the View can answer a request for `target` under
// `want` qualifiers: qualifier compatibility per Qualifier.satisfies, and
// either an exact type match or target present in the effective type's base
// set. Inline primitives only ever match exactly.
func (v View) Is(target TypeID, want Qualifier) bool {
	if !v.Valid() {
		return false
	}
	if !v.quals.satisfies(want) {
		return false
	}
	eff := v.EffectiveTypeID()
	if eff == target {
		return true
	}
	if IsInline(v.typeID) {
		return false
	}
	info := v.reg.Get(eff)
	return info.bases.test(target)
}

// Raw returns the pointer backing the View, panicking if the View is
// invalid. For inline primitives, it returns a pointer to the decoded value;
// callers use As for a typed result.
func (v View) Raw() any {
	if !v.Valid() {
		panic(raiser.nullView())
	}
	if IsInline(v.typeID) {
		decoded := reflect.ValueOf(decodePrimitive(v))
		ptr := reflect.New(decoded.Type())
		ptr.Elem().Set(decoded)
		return ptr.Interface()
	}
	return v.obj
}

// CastTo produces a View of the same underlying referent under a different
// declared type id, used to narrow/widen across a registered base
// relationship or an explicitly installed caster pair.
func (v View) CastTo(target TypeID) View {
	if !v.Valid() {
		panic(raiser.nullView())
	}
	eff := v.EffectiveTypeID()
	if eff == target {
		cp := v
		cp.typeID = target
		return cp
	}
	info := v.reg.Get(eff)
	if info.bases.test(target) {
		cp := v
		cp.typeID = target
		return cp
	}
	table := v.reg.table(eff)
	if fn, ok := table.casters[target]; ok {
		return fn(v)
	}
	panic(raiser.noConversionPath(eff, target))
}

// IsCastableTo reports whether CastTo(target) would succeed.
func (v View) IsCastableTo(target TypeID) bool {
	if !v.Valid() {
		return false
	}
	eff := v.EffectiveTypeID()
	if eff == target || v.reg.Get(eff).bases.test(target) {
		return true
	}
	_, ok := v.reg.table(eff).casters[target]
	return ok
}

// ConvertTo materializes a new Handle of the destination type via a
// registered converter.
func (v View) ConvertTo(target TypeID) Handle {
	eff := v.EffectiveTypeID()
	fn, ok := v.reg.table(eff).converters[target]
	if !ok {
		panic(raiser.noConversionPath(eff, target))
	}
	return fn(v)
}

// IsConvertibleTo reports whether ConvertTo(target) would succeed.
func (v View) IsConvertibleTo(target TypeID) bool {
	if !v.Valid() {
		return false
	}
	_, ok := v.reg.table(v.EffectiveTypeID()).converters[target]
	return ok
}
