package engine

import "sync"

// maxPrototypeDepth bounds prototype-chain and outer-set walks so that
// a prototype cycle (which only host code can create, via SetPrototype)
// cannot hang the evaluator (spec's prototype-chain invariant: walks
// must terminate). A walk that reaches the bound is not reported as an
// error: Get treats it as a miss, and OuterSet writes on the last
// object it visited.
const maxPrototypeDepth = 2000

// objectRecord is the mutable object described by the data model:
// a property map, a prototype handle, and an optional callable
// extension that marks the object as callable.
type objectRecord struct {
	mu         sync.RWMutex
	properties map[string]Value
	prototype  ObjectHandle
	extension  *Callable
}

// ObjectHandle is a shared, interior-mutable handle to an objectRecord,
// or the Null sentinel (the zero value). Handles compare equal with ==
// iff they reference the same record, since the only field is the
// pointer to it.
type ObjectHandle struct {
	rec *objectRecord
}

// Null is the sentinel handle referencing no record.
var Null = ObjectHandle{}

// IsNull reports whether h is the Null sentinel.
func (h ObjectHandle) IsNull() bool { return h.rec == nil }

// NewObject allocates a fresh object record with the given prototype.
func NewObject(prototype ObjectHandle) ObjectHandle {
	return ObjectHandle{rec: &objectRecord{
		properties: make(map[string]Value),
		prototype:  prototype,
	}}
}

// NewCallableObject allocates a fresh object record that is callable
// via ext, with the given prototype (conventionally function_prototype).
func NewCallableObject(prototype ObjectHandle, ext *Callable) ObjectHandle {
	return ObjectHandle{rec: &objectRecord{
		properties: make(map[string]Value),
		prototype:  prototype,
		extension:  ext,
	}}
}

// Prototype returns h's prototype handle. Calling it on Null returns Null.
func (h ObjectHandle) Prototype() ObjectHandle {
	if h.IsNull() {
		return Null
	}
	h.rec.mu.RLock()
	defer h.rec.mu.RUnlock()
	return h.rec.prototype
}

// SetPrototype rewrites h's prototype handle directly. It is host API
// only: Object.create and activation records set their prototype
// through NewObject instead.
func (h ObjectHandle) SetPrototype(proto ObjectHandle) {
	if h.IsNull() {
		return
	}
	h.rec.mu.Lock()
	h.rec.prototype = proto
	h.rec.mu.Unlock()
}

// Extension returns h's callable extension, or nil if h is not callable.
func (h ObjectHandle) Extension() *Callable {
	if h.IsNull() {
		return nil
	}
	h.rec.mu.RLock()
	defer h.rec.mu.RUnlock()
	return h.rec.extension
}

// SetExtension installs ext as h's callable extension.
func (h ObjectHandle) SetExtension(ext *Callable) {
	if h.IsNull() {
		return
	}
	h.rec.mu.Lock()
	h.rec.extension = ext
	h.rec.mu.Unlock()
}

// OwnGet reads key directly off h's property map, without walking the
// prototype chain. Used by Get's and OuterSet's per-step lookups and by
// the intrinsic lookups of global.<Name>.prototype.
func (h ObjectHandle) OwnGet(key string) (Value, bool) {
	if h.IsNull() {
		return Undefined, false
	}
	h.rec.mu.RLock()
	v, ok := h.rec.properties[key]
	h.rec.mu.RUnlock()
	return v, ok
}

// OwnSet always writes key on the receiver h itself, never the
// prototype, per the data model's property-write invariant.
func (h ObjectHandle) OwnSet(key string, v Value) {
	if h.IsNull() {
		return
	}
	h.rec.mu.Lock()
	h.rec.properties[key] = v
	h.rec.mu.Unlock()
}

// Get walks the prototype chain from h until key is found or the
// chain hits Null, dereferencing each step freshly so a native
// callback that rewrites an ancestor mid-walk cannot be observed as a
// stale pointer. Returns (Undefined, false) on a clean miss.
func (h ObjectHandle) Get(key string) (Value, bool) {
	cur := h
	for depth := 0; depth < maxPrototypeDepth; depth++ {
		if cur.IsNull() {
			return Undefined, false
		}
		if v, ok := cur.OwnGet(key); ok {
			return v, true
		}
		cur = cur.Prototype()
	}
	return Undefined, false
}

// OuterSet walks the chain starting at h looking for an existing
// binding of key; if found, it rewrites that binding in place. If no
// binding exists anywhere in the chain, it creates one on the chain's
// final non-null link. For a scope chain that link is object_prototype
// (the global object's own prototype), so identifier assignment in
// evalAssignment creates missing bindings on the global object itself
// rather than calling OuterSet for them.
func (h ObjectHandle) OuterSet(key string, v Value) {
	if h.IsNull() {
		return
	}
	cur := h
	var last ObjectHandle
	for depth := 0; depth < maxPrototypeDepth; depth++ {
		if cur.IsNull() {
			break
		}
		if _, ok := cur.OwnGet(key); ok {
			cur.OwnSet(key, v)
			return
		}
		last = cur
		cur = cur.Prototype()
	}
	if !last.IsNull() {
		last.OwnSet(key, v)
	}
}
