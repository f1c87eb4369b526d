package meta

// targetTypeID resolves U to a registered type id: the eleven primitive Go
// types map to their bootstrap id directly, everything else goes through
// the RegisterGoType binding.
func targetTypeID[U any](reg *Registry) (TypeID, bool) {
	var zero U
	switch any(zero).(type) {
	case uint8:
		return reg.primitiveIDs[PrimitiveU8], true
	case uint16:
		return reg.primitiveIDs[PrimitiveU16], true
	case uint32:
		return reg.primitiveIDs[PrimitiveU32], true
	case uint64:
		return reg.primitiveIDs[PrimitiveU64], true
	case int8:
		return reg.primitiveIDs[PrimitiveI8], true
	case int16:
		return reg.primitiveIDs[PrimitiveI16], true
	case int32:
		return reg.primitiveIDs[PrimitiveI32], true
	case int64:
		return reg.primitiveIDs[PrimitiveI64], true
	case float32:
		return reg.primitiveIDs[PrimitiveF32], true
	case float64:
		return reg.primitiveIDs[PrimitiveF64], true
	case bool:
		return reg.primitiveIDs[PrimitiveBool], true
	}
	return goTypeIDOf[U](reg)
}

// MapTo coerces h to U, trying, in order: an exact type match, a registered
// converter, then a registered caster. It panics with noConversionPath if
// none apply, matching the core's "exact, then converter, then caster, then
// fail" resolution order.
func MapTo[U any](reg *Registry, h Handle) Handle {
	target, ok := targetTypeID[U](reg)
	if !ok {
		panic(raiser.unknownType(Invalid))
	}
	v := h.Peek()
	eff := v.EffectiveTypeID()

	if eff == target {
		return h.Clone()
	}
	if v.IsConvertibleTo(target) {
		return v.ConvertTo(target)
	}
	if v.IsCastableTo(target) {
		return HandleFromView(reg, v.CastTo(target))
	}
	panic(raiser.noConversionPath(eff, target))
}
