package meta

import (
	"math"
	"reflect"
)

// decodePrimitive returns the Go-native value boxed inside an inline View,
// using its PrimitiveKind to pick the right width and signedness.
func decodePrimitive(v View) any {
	kind, ok := KindOf(v.typeID)
	if !ok {
		panic(raiser.nullView())
	}
	bits := v.bits()
	switch kind {
	case PrimitiveU8:
		return uint8(bits)
	case PrimitiveU16:
		return uint16(bits)
	case PrimitiveU32:
		return uint32(bits)
	case PrimitiveU64:
		return bits
	case PrimitiveI8:
		return int8(bits)
	case PrimitiveI16:
		return int16(bits)
	case PrimitiveI32:
		return int32(bits)
	case PrimitiveI64:
		return int64(bits)
	case PrimitiveF32:
		return math.Float32frombits(uint32(bits))
	case PrimitiveF64:
		return math.Float64frombits(bits)
	case PrimitiveBool:
		return bits != 0
	default:
		panic(raiser.nullView())
	}
}

// As returns the View's referent as T, following the qualifier semantics in
// §4.2: a reference request yields a value bound to the same storage (Go
// already does this implicitly through obj's pointer identity), a temporary
// request may consume inline storage, and a by-value request copies.
func As[T any](v View) T {
	return *Raw[T](v)
}

// Raw returns a pointer to the View's underlying storage as *T, panicking if
// the View does not hold a T-typed referent. If the View's boxed value is a
// derived type and T is one of its registered bases (per §8's "View type
// check under widening" invariant), Raw locates T as an embedded field of
// the derived struct instead of failing the direct assertion, the same
// widening View.Is already grants for membership checks.
func Raw[T any](v View) *T {
	if !v.Valid() {
		panic(raiser.nullView())
	}
	if IsInline(v.typeID) {
		boxed := decodePrimitive(v)
		typed, ok := boxed.(T)
		if !ok {
			panic(raiser.typeMismatch(v.typeID, v.typeID))
		}
		return &typed
	}
	if ptr, ok := v.obj.(*T); ok {
		return ptr
	}
	if ptr, ok := embeddedBase[T](v); ok {
		return ptr
	}
	panic(raiser.typeMismatch(Invalid, v.typeID))
}

// embeddedBase handles the downcast-to-base case Raw's direct type assertion
// can't: v.obj points at a derived Go struct that embeds T by value as one of
// its anonymous fields, and the registry's base set agrees T is a registered
// base of v's effective type. It walks the struct (recursively through
// nested embeds, mirroring multi-level C++ inheritance) to find that field
// and returns its address, so a widened View still reads and writes through
// the original storage rather than a detached copy.
func embeddedBase[T any](v View) (*T, bool) {
	baseID, ok := goTypeIDOf[T](v.reg)
	if !ok {
		return nil, false
	}
	if !v.reg.Get(v.EffectiveTypeID()).bases.test(baseID) {
		return nil, false
	}
	rv := reflect.ValueOf(v.obj)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return nil, false
	}
	want := reflect.TypeOf((*T)(nil)).Elem()
	field, ok := findEmbedded(rv.Elem(), want)
	if !ok {
		return nil, false
	}
	return field.Addr().Interface().(*T), true
}

// findEmbedded searches v's anonymous (embedded) fields, depth-first, for one
// of type want.
func findEmbedded(v reflect.Value, want reflect.Type) (reflect.Value, bool) {
	if v.Kind() != reflect.Struct {
		return reflect.Value{}, false
	}
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if !field.Anonymous {
			continue
		}
		fv := v.Field(i)
		if field.Type == want {
			return fv, true
		}
		if found, ok := findEmbedded(fv, want); ok {
			return found, true
		}
	}
	return reflect.Value{}, false
}

// InlineOf constructs an inline View for any of the eleven primitive Go
// types, dispatching to the concrete InlineXxx constructor by dynamic type.
func InlineOf[T any](reg *Registry, x T) View {
	switch v := any(x).(type) {
	case uint8:
		return InlineU8(reg, v)
	case uint16:
		return InlineU16(reg, v)
	case uint32:
		return InlineU32(reg, v)
	case uint64:
		return InlineU64(reg, v)
	case int8:
		return InlineI8(reg, v)
	case int16:
		return InlineI16(reg, v)
	case int32:
		return InlineI32(reg, v)
	case int64:
		return InlineI64(reg, v)
	case float32:
		return InlineF32(reg, v)
	case float64:
		return InlineF64(reg, v)
	case bool:
		return InlineBool(reg, v)
	default:
		panic(raiser.typeMismatch(Invalid, Invalid))
	}
}

// IsType reports whether v holds a value of exactly T, without consulting
// the registry's base sets (a narrower check than View.Is, useful for
// inline-primitive round trips).
func IsType[T any](v View) bool {
	if !v.Valid() {
		return false
	}
	if IsInline(v.typeID) {
		_, ok := decodePrimitive(v).(T)
		return ok
	}
	_, ok := v.obj.(*T)
	return ok
}
