package meta

// registerHandleReflection installs the Handle pseudo-type's own reflective
// surface, so a MethodFn lookup on Handle itself is meaningful -- the
// "reflective method call" scenario registry users exercise when they want
// to check validity without importing the meta package's Go types directly.
func (r *Registry) registerHandleReflection() {
	r.handleHeap() // ensures handleTypeID is assigned before we register against it

	emptySig, err := PackSignature(nil)
	if err != nil {
		panic(err)
	}
	r.AddMethod(r.handleTypeID, "valid", emptySig, func(self View, args Span) Handle {
		h := *Raw[Handle](self)
		return inlineHandle(r, InlineBool(r, h.Valid()))
	})
}
