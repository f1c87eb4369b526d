package meta

// bootstrapViewHandlePOD registers the View pseudo-type (Handle is already
// registered lazily by handleHeap) and installs the same ctor/dtor/assigner
// bundle addPOD gives the eleven primitives, per §4.1's "the View and
// Handle records themselves" clause. Neither type ever goes through
// RegisterGoType, so each binds its own Go type here instead.
func (r *Registry) bootstrapViewHandlePOD() {
	r.handleHeap() // ensures handleTypeID is assigned
	if r.viewTypeID == Invalid {
		r.viewTypeID = r.Register("View", 0)
	}
	addViewPOD(r, r.viewTypeID)
	addHandlePOD(r, r.handleTypeID)
}

// addViewPOD installs View's POD bundle. A View is non-owning, so copy and
// move are identical value copies and the destructor is a no-op.
func addViewPOD(r *Registry, id TypeID) {
	bindGoType[View](r, id)

	emptySig, err := PackSignature(nil)
	if err != nil {
		panic(err)
	}
	copySig := unarySigQual(id, Const)
	moveSig := unarySigQual(id, Temporary)

	r.AddConstructor(id, emptySig, func(out View, args Span) {
		*Raw[View](out) = InvalidView()
	})
	r.AddConstructor(id, copySig, func(out View, args Span) {
		*Raw[View](out) = As2[View](args.At(0))
	})
	r.AddConstructor(id, moveSig, func(out View, args Span) {
		*Raw[View](out) = As2[View](args.At(0))
	})
	r.AddDestructor(id, func(View) {})
	r.AddAssigner(id, copySig, func(self View, args Span) View {
		*Raw[View](self) = As2[View](args.At(0))
		return self
	})
	r.AddAssigner(id, moveSig, func(self View, args Span) View {
		*Raw[View](self) = As2[View](args.At(0))
		return self
	})
}

// addHandlePOD installs Handle's POD bundle. Unlike a primitive or a View,
// a Handle owns a pool reference: copy clones it (incrementing the
// refcount), move transfers it and empties the source in place, and the
// destructor releases it, mirroring Handle.Clone/Move/Release exactly.
func addHandlePOD(r *Registry, id TypeID) {
	bindGoType[Handle](r, id)

	emptySig, err := PackSignature(nil)
	if err != nil {
		panic(err)
	}
	copySig := unarySigQual(id, Const)
	moveSig := unarySigQual(id, Temporary)

	r.AddConstructor(id, emptySig, func(out View, args Span) {
		*Raw[Handle](out) = EmptyHandle(r)
	})
	r.AddConstructor(id, copySig, func(out View, args Span) {
		src := Raw[Handle](args.At(0).Peek())
		*Raw[Handle](out) = src.Clone()
	})
	r.AddConstructor(id, moveSig, func(out View, args Span) {
		src := Raw[Handle](args.At(0).Peek())
		*Raw[Handle](out) = *src
		*src = EmptyHandle(r)
	})
	r.AddDestructor(id, func(self View) {
		Raw[Handle](self).Release()
	})
	r.AddAssigner(id, copySig, func(self View, args Span) View {
		dst := Raw[Handle](self)
		dst.Release()
		src := Raw[Handle](args.At(0).Peek())
		*dst = src.Clone()
		return self
	})
	r.AddAssigner(id, moveSig, func(self View, args Span) View {
		dst := Raw[Handle](self)
		dst.Release()
		src := Raw[Handle](args.At(0).Peek())
		*dst = *src
		*src = EmptyHandle(r)
		return self
	})
}
