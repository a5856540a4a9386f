package engine

import (
	"io"
	"os"

	"minijs/internal/parser"
)

// Result is the outcome of Engine.Eval: exactly one of Value or Err is
// meaningful.
type Result struct {
	Value Value
	Err   Value
	IsErr bool

	// Trace is a best-effort call-stack trace captured when a thrown
	// value first left a user function on its way to the host
	// boundary, innermost frame first. Empty when IsErr is false, or when nothing was on the
	// call stack (a throw at the top level). Purely informative —
	// never required for a thrown value's identity or equality.
	Trace string
}

func ok(v Value) Result { return Result{Value: v} }
func fail(v Value, trace string) Result {
	return Result{Err: v, IsErr: true, Trace: trace}
}

// Engine bundles a global object and the Context every top-level
// evaluation runs against: this = local = global = the same object.
type Engine struct {
	ctx Context
}

// New constructs the initial global object and wraps it in a
// Context with this = local = global = the fresh global.
func New() *Engine {
	global := newGlobal()
	frames := &CallStack{}
	return &Engine{ctx: Context{This: Object(global), Local: global, Global: global, Frames: frames, Out: os.Stdout}}
}

// Global exposes the engine's global object, for host code that wants
// to install additional native functions before running scripts.
func (e *Engine) Global() ObjectHandle {
	return e.ctx.Global
}

// SetOut redirects console.log output. A nil writer discards it.
func (e *Engine) SetOut(w io.Writer) {
	e.ctx.Out = w
}

// Eval parses source with the external parser and evaluates the
// resulting top-level Block against the engine's stored Context. A
// parse failure yields Err(String("SyntaxError: ...")); evaluation
// completions map Continue/Return -> Ok, Throw -> Err.
func (e *Engine) Eval(source string) Result {
	block, err := parser.Parse(source)
	if err != nil {
		return fail(String("SyntaxError: "+err.Error()), "")
	}
	completion := evalBlock(block, e.ctx)
	switch completion.Kind {
	case Continue, ReturnCompletion:
		return ok(completion.Value)
	default:
		return fail(completion.Value, e.ctx.Frames.TakeCaptured())
	}
}
