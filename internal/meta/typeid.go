// Package meta implements the dynamic-value core: a runtime type registry,
// type-erased View/Handle values, per-type Pool/Heap memory backends, and the
// Span/Signature machinery used to dispatch reflected constructors, methods,
// and operators.
package meta

import "fmt"

// TypeID is a dense, signed integer identifying a registered type. Zero and
// positive values index the registry's per-type tables; a reserved negative
// range encodes the eleven inline primitives so that a primitive value can be
// carried inside a View without ever touching a Pool.
type TypeID int32

// Invalid is the type ID of an unregistered or absent type.
const Invalid TypeID = -1

// PrimitiveKind enumerates the eleven types that get inline-primitive
// treatment in a View, in the order their inline tags are assigned.
type PrimitiveKind uint8

const (
	PrimitiveU8 PrimitiveKind = iota
	PrimitiveU16
	PrimitiveU32
	PrimitiveU64
	PrimitiveI8
	PrimitiveI16
	PrimitiveI32
	PrimitiveI64
	PrimitiveF32
	PrimitiveF64
	PrimitiveBool

	numPrimitiveKinds = int(PrimitiveBool) + 1
)

// primitiveNames mirrors PrimitiveKind's order; bootstrapPrimitives walks it,
// calling Register for each, to create the eleven primitive TypeInfo records.
var primitiveNames = [numPrimitiveKinds]string{
	"u8", "u16", "u32", "u64",
	"i8", "i16", "i32", "i64",
	"f32", "f64", "bool",
}

// primitiveSizes gives the byte size the registry records for each primitive.
var primitiveSizes = [numPrimitiveKinds]uint32{
	1, 2, 4, 8,
	1, 2, 4, 8,
	4, 8, 1,
}

// InlineTag returns the reserved negative TypeID that carries kind by value
// inside a View, per the layout INVALID-1 ... INVALID-11.
func InlineTag(kind PrimitiveKind) TypeID {
	return Invalid - 1 - TypeID(kind)
}

// IsInline reports whether id is one of the eleven reserved inline-primitive
// tags (as opposed to Invalid itself or a dense registered id).
func IsInline(id TypeID) bool {
	return id <= Invalid-1 && id >= Invalid-TypeID(numPrimitiveKinds)
}

// KindOf recovers the PrimitiveKind encoded by an inline tag.
func KindOf(id TypeID) (PrimitiveKind, bool) {
	if !IsInline(id) {
		return 0, false
	}
	return PrimitiveKind(Invalid - 1 - id), true
}

// Qualifier is a four-bit mask describing how a View or Handle refers to its
// underlying value.
type Qualifier uint8

const (
	// Temporary marks an rvalue-like, about-to-expire value.
	Temporary Qualifier = 1 << 0
	// Const marks a read-only reference.
	Const Qualifier = 1 << 1
	// Volatile marks a value that may change outside program order.
	Volatile Qualifier = 1 << 2
	// Reference marks a value with stable, externally owned storage.
	Reference Qualifier = 1 << 3
)

func (q Qualifier) String() string {
	if q == 0 {
		return "none"
	}
	s := ""
	for _, pair := range [...]struct {
		bit  Qualifier
		name string
	}{
		{Temporary, "temporary"},
		{Const, "const"},
		{Volatile, "volatile"},
		{Reference, "reference"},
	} {
		if q&pair.bit != 0 {
			if s != "" {
				s += "|"
			}
			s += pair.name
		}
	}
	return s
}

// satisfies reports whether a value carrying Qualifier `have` may answer a
// request for Qualifier `want`, per the widening rules in the type registry's
// View.is contract: a non-const source may answer a const request; a
// reference source may answer a temporary request; a const source may never
// answer a non-const request; a temporary source may never answer a
// reference request.
func (have Qualifier) satisfies(want Qualifier) bool {
	// A const source can never answer a request for mutable (non-const) access.
	if want&Const == 0 && have&Const != 0 {
		return false
	}
	// A temporary source can never answer a request that needs stable reference storage.
	if want&Reference != 0 && have&Reference == 0 && have&Temporary != 0 {
		return false
	}
	return true
}

func (id TypeID) String() string {
	if id == Invalid {
		return "<invalid>"
	}
	if kind, ok := KindOf(id); ok {
		return primitiveNames[kind]
	}
	return fmt.Sprintf("#%d", int32(id))
}
