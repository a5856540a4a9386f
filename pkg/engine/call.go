package engine

import "io"

// Context is the value-typed triple threaded through every evaluator
// call: the current `this`, the local activation record, and the
// global object. It is cheap to copy — local and global are handles
// that alias live state, so copying Context never loses visibility of
// mutations made through any other copy.
type Context struct {
	This   Value
	Local  ObjectHandle
	Global ObjectHandle

	// Frames is the shared call-stack handle for this Eval call. It is
	// nil in contexts built without one (bare unit tests), which
	// CallStack's nil-receiver methods tolerate.
	Frames *CallStack

	// Out is where console.log writes. Nil discards script output,
	// which is what a bare unit-test Context wants.
	Out io.Writer
}

// applyValue implements Value::apply(args, ctx): it succeeds only if
// callee is an Object whose extension is a Callable.
func applyValue(callee Value, args []Value, ctx Context) Outcome {
	if callee.Kind != KindObject || callee.Handle.Extension() == nil {
		return throwError("%s is not a function", debugString(callee))
	}
	return invokeCallable(callee.Handle.Extension(), args, ctx)
}

// invokeCallable dispatches to the Native host function or builds a
// fresh activation record and evaluates the User function's body.
func invokeCallable(c *Callable, args []Value, ctx Context) Outcome {
	switch c.Kind {
	case CallableNative:
		return c.Fn(args, ctx)
	case CallableUser:
		return invokeUserCallable(c, args, ctx)
	default:
		return throwError("not a function")
	}
}

func invokeUserCallable(c *Callable, args []Value, ctx Context) Outcome {
	activation := NewObject(c.Closure)
	for i, name := range c.Parameters {
		if i < len(args) {
			activation.OwnSet(name, args[i])
		} else {
			activation.OwnSet(name, Undefined)
		}
	}

	name := c.Name
	if name == "" {
		name = "<anonymous>"
	}
	ctx.Frames.Push(name)
	defer ctx.Frames.Pop()

	bodyCtx := Context{This: ctx.This, Local: activation, Global: ctx.Global, Frames: ctx.Frames, Out: ctx.Out}
	completion := evalInnerBlock(c.Body, bodyCtx)
	if completion.Kind == ThrowCompletion {
		ctx.Frames.CaptureIfEmpty()
	}

	switch completion.Kind {
	case Continue, ReturnCompletion:
		return Ok(completion.Value)
	default:
		return Thrown(completion.Value)
	}
}
