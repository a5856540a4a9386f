package engine

import "minijs/internal/ast"

// CallableKind distinguishes a host-provided Native callable from a
// script-defined User callable.
type CallableKind uint8

const (
	CallableNative CallableKind = iota
	CallableUser
)

// NativeFunc is the native callable ABI: a Go closure over an argument
// vector and the caller's Context, returning an expression-style
// Outcome. This is the only contract native code needs to satisfy;
// the macro-based argument destructuring some teacher builtins use is
// a convenience, not part of this contract.
type NativeFunc func(args []Value, ctx Context) Outcome

// Callable is the extension that marks an object callable, per the
// data model: either Native (host-supplied) or User (script-defined,
// closing over the scope it was evaluated in).
type Callable struct {
	Kind CallableKind
	Name string

	// Native
	Fn NativeFunc

	// User
	Parameters []string
	Body       ast.InnerBlock
	Closure    ObjectHandle
	Source     string
}
