package meta

import "reflect"

// RegisterGoType binds a concrete Go type T to a freshly registered type id,
// so Pool and Heap can manufacture zero values for it without the rest of
// the package ever naming T directly. This is the one seam where the
// runtime's type erasure meets Go's own static type system; reflect is the
// host language's own reflection capability, not a concern any serialization
// or storage library in the stack could stand in for.
func RegisterGoType[T any](reg *Registry, name string) TypeID {
	var zero T
	goType := reflect.TypeOf(zero)
	size := uint32(0)
	if goType != nil {
		size = uint32(goType.Size())
	}
	id := reg.Register(name, size)
	reg.goTypes[goType] = id
	reg.goTypeByID[id] = goType
	return id
}

// bindGoType associates an already-registered id with T's reflect.Type,
// for the primitive and View/Handle pseudo-types whose id is assigned
// during bootstrap rather than through RegisterGoType itself.
func bindGoType[T any](r *Registry, id TypeID) {
	var zero T
	goType := reflect.TypeOf(zero)
	r.goTypes[goType] = id
	r.goTypeByID[id] = goType
}

// newZero allocates a fresh *T (boxed as any) for id's registered Go type,
// for Pool.Alloc and Heap.constructRange to hand to a constructor.
func (r *Registry) newZero(id TypeID) any {
	goType, ok := r.goTypeByID[id]
	if !ok || goType == nil {
		panic(raiser.unknownType(id))
	}
	return reflect.New(goType).Interface()
}

// goTypeIDOf looks up the type id bound to T via RegisterGoType, if any.
func goTypeIDOf[T any](reg *Registry) (TypeID, bool) {
	var zero T
	id, ok := reg.goTypes[reflect.TypeOf(zero)]
	return id, ok
}
