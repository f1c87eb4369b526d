package meta

import (
	"reflect"

	"metareflect/internal/trace"
)

// TypeInfo is the per-type metadata record the registry owns: id, name,
// byte size, and the type's transitive base set.
type TypeInfo struct {
	ID    TypeID
	Name  string
	Size  uint32
	bases baseSet
}

// HasBase reports whether id is a transitive base of this type.
func (ti *TypeInfo) HasBase(id TypeID) bool { return ti.bases.test(id) }

// NumBases returns the size of the transitive base set.
func (ti *TypeInfo) NumBases() int { return ti.bases.popcount() }

// Bases returns every transitive base id, ascending.
func (ti *TypeInfo) Bases() []TypeID { return ti.bases.members() }

// opTable holds every operation the registry knows about for one type id.
type opTable struct {
	ctors      map[Signature]ConstructorFn
	dtor       DestructorFn
	assigners  map[Signature]AssignerFn
	unary      [UnaryOpCount]map[Signature]UnaryFn
	binary     [BinaryOpCount]map[Signature]BinaryFn
	casters    map[TypeID]CasterFn
	converters map[TypeID]ConverterFn
	members    map[string]MemberFn
	methods    map[string]map[Signature]MethodFn
	functions  map[string]map[Signature]FunctionFn
}

func newOpTable() *opTable {
	t := &opTable{
		ctors:      make(map[Signature]ConstructorFn),
		assigners:  make(map[Signature]AssignerFn),
		casters:    make(map[TypeID]CasterFn),
		converters: make(map[TypeID]ConverterFn),
		members:    make(map[string]MemberFn),
		methods:    make(map[string]map[Signature]MethodFn),
		functions:  make(map[string]map[Signature]FunctionFn),
	}
	for i := range t.unary {
		t.unary[i] = make(map[Signature]UnaryFn)
	}
	for i := range t.binary {
		t.binary[i] = make(map[Signature]BinaryFn)
	}
	return t
}

// Registry is the process-wide (or, for tests, a freshly constructed) home
// for type metadata and operation tables. Per §5, the registry provides no
// internal locking: callers are responsible for external mutual exclusion
// during concurrent mutation, and read-after-steady-state is the only
// concurrent access pattern the core itself assumes is safe.
type Registry struct {
	names []string // id -> name is names[id]; names kept here for DumpInfo
	byID  map[string]TypeID
	infos []TypeInfo
	ops   []*opTable

	pools map[TypeID]*Pool
	heaps map[TypeID]*Heap

	primitiveIDs [numPrimitiveKinds]TypeID
	bootstrapped bool

	handleTypeID TypeID
	viewTypeID   TypeID

	goTypes    map[reflect.Type]TypeID
	goTypeByID map[TypeID]reflect.Type

	tracer trace.Tracer
}

// NewRegistry returns an empty registry. Callers almost always want
// Default() instead unless they are isolating a test.
func NewRegistry() *Registry {
	r := &Registry{
		byID:         make(map[string]TypeID),
		pools:        make(map[TypeID]*Pool),
		heaps:        make(map[TypeID]*Heap),
		handleTypeID: Invalid,
		viewTypeID:   Invalid,
		goTypes:      make(map[reflect.Type]TypeID),
		goTypeByID:   make(map[TypeID]reflect.Type),
	}
	for i := range r.primitiveIDs {
		r.primitiveIDs[i] = Invalid
	}
	return r
}

var defaultRegistry = bootstrapDefault()

func bootstrapDefault() *Registry {
	r := NewRegistry()
	r.bootstrapPrimitives()
	return r
}

// Default returns the process-wide registry, already bootstrapped with the
// eleven primitives, View/Handle POD scaffolding, and integer/float operator
// bundles per §4.1's primitive bootstrap rule.
func Default() *Registry { return defaultRegistry }

// SetTracer attaches a tracer that receives ScopeRegistry/ScopeMemory events.
func (r *Registry) SetTracer(t trace.Tracer) { r.tracer = t }

// Register assigns a dense type id to name, or returns the existing one.
// Idempotent: a second call with the same name returns the prior record
// unchanged, never duplicating operation-table rows.
func (r *Registry) Register(name string, size uint32) TypeID {
	if id, ok := r.byID[name]; ok {
		return id
	}
	id := TypeID(len(r.infos))
	r.infos = append(r.infos, TypeInfo{ID: id, Name: name, Size: size})
	r.ops = append(r.ops, newOpTable())
	r.names = append(r.names, name)
	r.byID[name] = id
	if r.tracer != nil && r.tracer.Enabled() {
		span := trace.Begin(r.tracer, trace.ScopeRegistry, "register:"+name, 0)
		span.End("")
	}
	return id
}

// Find performs a non-mutating name lookup.
func (r *Registry) Find(name string) (TypeID, bool) {
	id, ok := r.byID[name]
	return id, ok
}

// Get returns the TypeInfo for id, panicking on an out-of-range id.
func (r *Registry) Get(id TypeID) *TypeInfo {
	if !r.Valid(id) {
		panic(raiser.unknownType(id))
	}
	return &r.infos[id]
}

// Valid reports whether id names a registered type.
func (r *Registry) Valid(id TypeID) bool {
	return id >= 0 && int(id) < len(r.infos)
}

func (r *Registry) table(id TypeID) *opTable {
	if !r.Valid(id) {
		panic(raiser.unknownType(id))
	}
	return r.ops[id]
}

// AddInheritance records direct bases for derived, then folds each parent's
// own transitive base set in, so the result is always the full transitive
// closure. A parent equal to derived is skipped (structural cycle guard); an
// already-set base is simply re-walked, which is idempotent. Returns false
// if any listed parent id is invalid.
func (r *Registry) AddInheritance(derived TypeID, directBases []TypeID) bool {
	info := r.Get(derived)
	for _, parent := range directBases {
		if !r.Valid(parent) {
			return false
		}
	}
	for _, parent := range directBases {
		if parent == derived {
			continue
		}
		info.bases.set(parent)
		for _, transitive := range r.Get(parent).bases.members() {
			if transitive != derived {
				info.bases.set(transitive)
			}
		}
	}
	// Propagate to every type that already lists derived as a base.
	for i := range r.infos {
		other := &r.infos[i]
		if TypeID(i) == derived || !other.bases.test(derived) {
			continue
		}
		for _, b := range info.bases.members() {
			if TypeID(i) != b {
				other.bases.set(b)
			}
		}
	}
	return true
}

// AddConstructor installs fn for sig, first-writer-wins.
func (r *Registry) AddConstructor(id TypeID, sig Signature, fn ConstructorFn) bool {
	t := r.table(id)
	if _, exists := t.ctors[sig]; exists {
		return false
	}
	t.ctors[sig] = fn
	return true
}

// GetConstructor panics if no constructor is registered for sig.
func (r *Registry) GetConstructor(id TypeID, sig Signature) ConstructorFn {
	fn, ok := r.table(id).ctors[sig]
	if !ok {
		panic(raiser.missingConstructor(id, sig))
	}
	return fn
}

// AddDestructor overwrites any previously installed destructor.
func (r *Registry) AddDestructor(id TypeID, fn DestructorFn) {
	r.table(id).dtor = fn
}

// GetDestructor panics if no destructor is registered.
func (r *Registry) GetDestructor(id TypeID) DestructorFn {
	fn := r.table(id).dtor
	if fn == nil {
		panic(raiser.missingDestructor(id))
	}
	return fn
}

// AddAssigner installs fn for sig, first-writer-wins.
func (r *Registry) AddAssigner(id TypeID, sig Signature, fn AssignerFn) bool {
	t := r.table(id)
	if _, exists := t.assigners[sig]; exists {
		return false
	}
	t.assigners[sig] = fn
	return true
}

// GetAssigner panics if no assigner is registered for sig.
func (r *Registry) GetAssigner(id TypeID, sig Signature) AssignerFn {
	fn, ok := r.table(id).assigners[sig]
	if !ok {
		panic(raiser.missingAssigner(id, sig))
	}
	return fn
}

// AddUnaryOp installs fn for (op, sig), first-writer-wins.
func (r *Registry) AddUnaryOp(id TypeID, op UnaryOp, sig Signature, fn UnaryFn) bool {
	t := r.table(id)
	if _, exists := t.unary[op][sig]; exists {
		return false
	}
	t.unary[op][sig] = fn
	return true
}

// GetUnaryOp panics if no handler is registered.
func (r *Registry) GetUnaryOp(id TypeID, op UnaryOp, sig Signature) UnaryFn {
	fn, ok := r.table(id).unary[op][sig]
	if !ok {
		panic(raiser.unsupportedOperator(id, op.String()))
	}
	return fn
}

// AddBinaryOp installs fn for (op, sig), first-writer-wins.
func (r *Registry) AddBinaryOp(id TypeID, op BinaryOp, sig Signature, fn BinaryFn) bool {
	t := r.table(id)
	if _, exists := t.binary[op][sig]; exists {
		return false
	}
	t.binary[op][sig] = fn
	return true
}

// GetBinaryOp panics if no handler is registered.
func (r *Registry) GetBinaryOp(id TypeID, op BinaryOp, sig Signature) BinaryFn {
	fn, ok := r.table(id).binary[op][sig]
	if !ok {
		panic(raiser.unsupportedOperator(id, op.String()))
	}
	return fn
}

// AddCaster installs a one-directional reinterpretation from a to b.
func (r *Registry) AddCaster(a, b TypeID, fn CasterFn) {
	r.table(a).casters[b] = fn
}

// AddTwoWayCast installs fn in both directions; the reverse direction must
// be supplied separately since a cast is not generally its own inverse.
func (r *Registry) AddTwoWayCast(a, b TypeID, forward, backward CasterFn) {
	r.AddCaster(a, b, forward)
	r.AddCaster(b, a, backward)
}

// GetCaster panics if no caster from a to b is registered.
func (r *Registry) GetCaster(a, b TypeID) CasterFn {
	fn, ok := r.table(a).casters[b]
	if !ok {
		panic(raiser.noConversionPath(a, b))
	}
	return fn
}

// IsCastableTo reports whether a registered caster reaches b from a.
func (r *Registry) IsCastableTo(a, b TypeID) bool {
	_, ok := r.table(a).casters[b]
	return ok
}

// AddConverter installs a value-materializing conversion from a to b.
func (r *Registry) AddConverter(a, b TypeID, fn ConverterFn) {
	r.table(a).converters[b] = fn
}

// GetConverter panics if no converter from a to b is registered.
func (r *Registry) GetConverter(a, b TypeID) ConverterFn {
	fn, ok := r.table(a).converters[b]
	if !ok {
		panic(raiser.noConversionPath(a, b))
	}
	return fn
}

// IsConvertibleTo reports whether a registered converter reaches b from a.
func (r *Registry) IsConvertibleTo(a, b TypeID) bool {
	_, ok := r.table(a).converters[b]
	return ok
}

// primitiveTypeID returns the dense id assigned to a primitive kind during
// bootstrap.
func (r *Registry) primitiveTypeID(kind PrimitiveKind) TypeID {
	return r.primitiveIDs[kind]
}

// AddMember installs a field accessor under name, first-writer-wins.
func (r *Registry) AddMember(id TypeID, name string, fn MemberFn) bool {
	t := r.table(id)
	if _, exists := t.members[name]; exists {
		return false
	}
	t.members[name] = fn
	return true
}

// GetMember panics if no member named name is registered.
func (r *Registry) GetMember(id TypeID, name string) MemberFn {
	fn, ok := r.table(id).members[name]
	if !ok {
		panic(raiser.unsupportedOperator(id, name))
	}
	return fn
}

// AddMethod installs fn under (name, sig), first-writer-wins, supporting
// overload sets keyed by argument signature.
func (r *Registry) AddMethod(id TypeID, name string, sig Signature, fn MethodFn) bool {
	t := r.table(id)
	bucket, ok := t.methods[name]
	if !ok {
		bucket = make(map[Signature]MethodFn)
		t.methods[name] = bucket
	}
	if _, exists := bucket[sig]; exists {
		return false
	}
	bucket[sig] = fn
	return true
}

// GetMethod resolves (name, sig) to a reflective call target, panicking on a
// miss either in the method name or the overload signature.
func (r *Registry) GetMethod(id TypeID, name string, sig Signature) MethodFn {
	bucket, ok := r.table(id).methods[name]
	if !ok {
		panic(raiser.unsupportedOperator(id, name))
	}
	fn, ok := bucket[sig]
	if !ok {
		panic(raiser.arityMismatch(id, sig.Arity(), sig.Arity()))
	}
	return fn
}

// AddFunction installs a free function under (name, sig), not bound to any
// receiver type id; it is filed under id purely to share the per-type table.
func (r *Registry) AddFunction(id TypeID, name string, sig Signature, fn FunctionFn) bool {
	t := r.table(id)
	bucket, ok := t.functions[name]
	if !ok {
		bucket = make(map[Signature]FunctionFn)
		t.functions[name] = bucket
	}
	if _, exists := bucket[sig]; exists {
		return false
	}
	bucket[sig] = fn
	return true
}

// GetFunction panics on a miss in either the function name or the overload
// signature.
func (r *Registry) GetFunction(id TypeID, name string, sig Signature) FunctionFn {
	bucket, ok := r.table(id).functions[name]
	if !ok {
		panic(raiser.unsupportedOperator(id, name))
	}
	fn, ok := bucket[sig]
	if !ok {
		panic(raiser.arityMismatch(id, sig.Arity(), sig.Arity()))
	}
	return fn
}

// DumpInfo writes a human-readable listing of every registered type to sink,
// in registration order. It is the registry's only diagnostic surface,
// matching §6's "dump_info(sink)".
func (r *Registry) DumpInfo(sink func(line string)) {
	for _, info := range r.infos {
		bases := info.bases.members()
		sink(info.String(bases))
	}
}

func (ti *TypeInfo) String(bases []TypeID) string {
	s := ti.Name
	if len(bases) == 0 {
		return s
	}
	s += " : "
	for i, b := range bases {
		if i > 0 {
			s += ", "
		}
		s += b.String()
	}
	return s
}
