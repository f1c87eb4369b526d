package meta

// integral is the constraint shared by the eight fixed-width integer
// primitives: arithmetic, bitwise, and comparison operators are all defined
// on every member.
type integral interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~int8 | ~int16 | ~int32 | ~int64
}

// floating is the constraint shared by the two IEEE float primitives: no
// bitwise or modulo operators, per isBitwiseOrMod.
type floating interface {
	~float32 | ~float64
}

// primitiveGo is every concrete Go type backing one of the eleven inline
// primitives; addPOD's ctor/dtor/assigner bundle is generic over this set.
type primitiveGo interface {
	integral | floating | ~bool
}

func unarySig(id TypeID) Signature {
	return unarySigQual(id, Temporary)
}

func unarySigQual(id TypeID, q Qualifier) Signature {
	sig, err := PackSignature([]Parameter{{Type: id, Qualifiers: q}})
	if err != nil {
		panic(err)
	}
	return sig
}

func binarySig(id TypeID) Signature {
	sig, err := PackSignature([]Parameter{
		{Type: id, Qualifiers: Temporary},
		{Type: id, Qualifiers: Temporary},
	})
	if err != nil {
		panic(err)
	}
	return sig
}

// addNumericUnary installs unary plus (OpPositive) and negation (OpNegative)
// for both integral and floating kinds; bitwise-not is added separately for
// integrals. The pre/post increment and decrement operators are not
// installed for any primitive.
func addNumericUnary[T integral | floating](r *Registry, id TypeID) {
	usig := unarySig(id)
	r.AddUnaryOp(id, OpPositive, usig, func(a View) Handle {
		return inlineHandle(r, InlineOf(r, +As[T](a)))
	})
	r.AddUnaryOp(id, OpNegative, usig, func(a View) Handle {
		return inlineHandle(r, InlineOf(r, -As[T](a)))
	})
}

// addIntegralOps installs the full integral bundle: arithmetic, bitwise,
// shifts, their in-place variants, comparisons, and bitwise-not.
func addIntegralOps[T integral](r *Registry, id TypeID) {
	addNumericUnary[T](r, id)
	usig := unarySig(id)
	bsig := binarySig(id)

	r.AddUnaryOp(id, OpBitNot, usig, func(a View) Handle {
		return inlineHandle(r, InlineOf(r, ^As[T](a)))
	})

	type binOp struct {
		op BinaryOp
		fn func(a, b T) T
	}
	for _, bo := range []binOp{
		{OpAdd, func(a, b T) T { return a + b }},
		{OpAddAssign, func(a, b T) T { return a + b }},
		{OpSub, func(a, b T) T { return a - b }},
		{OpSubAssign, func(a, b T) T { return a - b }},
		{OpMul, func(a, b T) T { return a * b }},
		{OpMulAssign, func(a, b T) T { return a * b }},
		{OpDiv, func(a, b T) T { return a / b }},
		{OpDivAssign, func(a, b T) T { return a / b }},
		{OpMod, func(a, b T) T { return a % b }},
		{OpModAssign, func(a, b T) T { return a % b }},
		{OpBitAnd, func(a, b T) T { return a & b }},
		{OpBitAndAssign, func(a, b T) T { return a & b }},
		{OpBitOr, func(a, b T) T { return a | b }},
		{OpBitOrAssign, func(a, b T) T { return a | b }},
		{OpBitXor, func(a, b T) T { return a ^ b }},
		{OpBitXorAssign, func(a, b T) T { return a ^ b }},
		{OpShl, func(a, b T) T { return a << b }},
		{OpShlAssign, func(a, b T) T { return a << b }},
		{OpShr, func(a, b T) T { return a >> b }},
		{OpShrAssign, func(a, b T) T { return a >> b }},
	} {
		fn := bo.fn
		r.AddBinaryOp(id, bo.op, bsig, func(a, b View) Handle {
			return inlineHandle(r, InlineOf(r, fn(As[T](a), As[T](b))))
		})
	}
	addComparisons[T](r, id, bsig)
}

// addFloatOps installs the float bundle: arithmetic, their in-place
// variants, and comparisons, skipping the integral-only bitwise/mod family.
func addFloatOps[T floating](r *Registry, id TypeID) {
	addNumericUnary[T](r, id)
	bsig := binarySig(id)

	type binOp struct {
		op BinaryOp
		fn func(a, b T) T
	}
	for _, bo := range []binOp{
		{OpAdd, func(a, b T) T { return a + b }},
		{OpAddAssign, func(a, b T) T { return a + b }},
		{OpSub, func(a, b T) T { return a - b }},
		{OpSubAssign, func(a, b T) T { return a - b }},
		{OpMul, func(a, b T) T { return a * b }},
		{OpMulAssign, func(a, b T) T { return a * b }},
		{OpDiv, func(a, b T) T { return a / b }},
		{OpDivAssign, func(a, b T) T { return a / b }},
	} {
		fn := bo.fn
		r.AddBinaryOp(id, bo.op, bsig, func(a, b View) Handle {
			return inlineHandle(r, InlineOf(r, fn(As[T](a), As[T](b))))
		})
	}
	addComparisons[T](r, id, bsig)
}

func addComparisons[T integral | floating](r *Registry, id TypeID, bsig Signature) {
	type cmp struct {
		op BinaryOp
		fn func(a, b T) bool
	}
	for _, c := range []cmp{
		{OpEqual, func(a, b T) bool { return a == b }},
		{OpNotEqual, func(a, b T) bool { return a != b }},
		{OpLess, func(a, b T) bool { return a < b }},
		{OpLessEqual, func(a, b T) bool { return a <= b }},
		{OpGreater, func(a, b T) bool { return a > b }},
		{OpGreaterEqual, func(a, b T) bool { return a >= b }},
	} {
		fn := c.fn
		r.AddBinaryOp(id, c.op, bsig, func(a, b View) Handle {
			return inlineHandle(r, InlineBool(r, fn(As[T](a), As[T](b))))
		})
	}
}

func addBoolOps(r *Registry, id TypeID) {
	usig := unarySig(id)
	bsig := binarySig(id)
	r.AddUnaryOp(id, OpLogicalNot, usig, func(a View) Handle {
		return inlineHandle(r, InlineBool(r, !As[bool](a)))
	})
	r.AddBinaryOp(id, OpLogicalAnd, bsig, func(a, b View) Handle {
		return inlineHandle(r, InlineBool(r, As[bool](a) && As[bool](b)))
	})
	r.AddBinaryOp(id, OpLogicalOr, bsig, func(a, b View) Handle {
		return inlineHandle(r, InlineBool(r, As[bool](a) || As[bool](b)))
	})
	r.AddBinaryOp(id, OpEqual, bsig, func(a, b View) Handle {
		return inlineHandle(r, InlineBool(r, As[bool](a) == As[bool](b)))
	})
	r.AddBinaryOp(id, OpNotEqual, bsig, func(a, b View) Handle {
		return inlineHandle(r, InlineBool(r, As[bool](a) != As[bool](b)))
	})
}

// addPOD installs the default/copy/move constructors, destructor, and
// copy/move assigners for a primitive Go type, per §4.1's "ctor-default,
// ctor-copy, ctor-move, dtor, assign-copy, assign-move" bootstrap bundle.
// The copy forms key on a Const argument, the move forms on a Temporary
// one, so a caller's Qualifier choice at the call site selects which
// overload runs. id must already have been registered; this only wires the
// op tables and binds T as id's Go type for Pool-backed construction.
func addPOD[T primitiveGo](r *Registry, id TypeID) {
	bindGoType[T](r, id)

	emptySig, err := PackSignature(nil)
	if err != nil {
		panic(err)
	}
	copySig := unarySigQual(id, Const)
	moveSig := unarySigQual(id, Temporary)

	r.AddConstructor(id, emptySig, func(out View, args Span) {
		var zero T
		*Raw[T](out) = zero
	})
	r.AddConstructor(id, copySig, func(out View, args Span) {
		*Raw[T](out) = As2[T](args.At(0))
	})
	r.AddConstructor(id, moveSig, func(out View, args Span) {
		*Raw[T](out) = As2[T](args.At(0))
	})
	r.AddDestructor(id, func(View) {})
	r.AddAssigner(id, copySig, func(self View, args Span) View {
		*Raw[T](self) = As2[T](args.At(0))
		return self
	})
	r.AddAssigner(id, moveSig, func(self View, args Span) View {
		*Raw[T](self) = As2[T](args.At(0))
		return self
	})
}

// bootstrapPrimitives registers the eleven inline primitives and the View
// and Handle pseudo-types, installs the full "POD" bundle (ctor-default,
// ctor-copy, ctor-move, dtor, assign-copy, assign-move) on all thirteen,
// then layers the integral/float/bool operator bundles on top: the integral
// family gets arithmetic, bitwise, shifts, and comparisons; the float family
// gets arithmetic and comparisons; bool gets the logical family. Every
// bundle is installed under the registry's dense id for the kind, never the
// inline tag, since View.EffectiveTypeID is what operator dispatch actually
// keys on. Per §4.1, failure of any bootstrap step is fatal, so every
// installer here panics rather than returning an error.
func (r *Registry) bootstrapPrimitives() {
	if r.bootstrapped {
		return
	}
	for kind := PrimitiveKind(0); int(kind) < numPrimitiveKinds; kind++ {
		id := r.Register(primitiveNames[kind], primitiveSizes[kind])
		r.primitiveIDs[kind] = id
	}

	addPOD[uint8](r, r.primitiveIDs[PrimitiveU8])
	addPOD[uint16](r, r.primitiveIDs[PrimitiveU16])
	addPOD[uint32](r, r.primitiveIDs[PrimitiveU32])
	addPOD[uint64](r, r.primitiveIDs[PrimitiveU64])
	addPOD[int8](r, r.primitiveIDs[PrimitiveI8])
	addPOD[int16](r, r.primitiveIDs[PrimitiveI16])
	addPOD[int32](r, r.primitiveIDs[PrimitiveI32])
	addPOD[int64](r, r.primitiveIDs[PrimitiveI64])
	addPOD[float32](r, r.primitiveIDs[PrimitiveF32])
	addPOD[float64](r, r.primitiveIDs[PrimitiveF64])
	addPOD[bool](r, r.primitiveIDs[PrimitiveBool])

	addIntegralOps[uint8](r, r.primitiveIDs[PrimitiveU8])
	addIntegralOps[uint16](r, r.primitiveIDs[PrimitiveU16])
	addIntegralOps[uint32](r, r.primitiveIDs[PrimitiveU32])
	addIntegralOps[uint64](r, r.primitiveIDs[PrimitiveU64])
	addIntegralOps[int8](r, r.primitiveIDs[PrimitiveI8])
	addIntegralOps[int16](r, r.primitiveIDs[PrimitiveI16])
	addIntegralOps[int32](r, r.primitiveIDs[PrimitiveI32])
	addIntegralOps[int64](r, r.primitiveIDs[PrimitiveI64])
	addFloatOps[float32](r, r.primitiveIDs[PrimitiveF32])
	addFloatOps[float64](r, r.primitiveIDs[PrimitiveF64])
	addBoolOps(r, r.primitiveIDs[PrimitiveBool])

	r.bootstrapViewHandlePOD()
	r.registerHandleReflection()

	r.bootstrapped = true
}
