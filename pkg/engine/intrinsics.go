package engine

import (
	"fmt"
	"io"
	"strings"

	"minijs/internal/parser"
)

// newGlobal builds the initial global object and its intrinsic graph.
// Bootstrapping order matters: function_prototype must exist before
// any native function value (including its own toString) can be
// wrapped, so it is allocated first with a nil extension and wired up
// with a circular handle once its own toString is ready.
func newGlobal() ObjectHandle {
	objectProto := NewObject(Null)
	functionProto := NewObject(objectProto)
	global := NewObject(objectProto)

	objectProto.OwnSet("toString", nativeValue(functionProto, "toString", func(args []Value, ctx Context) Outcome {
		return Ok(String("[object Object]"))
	}))

	functionProto.OwnSet("toString", nativeValue(functionProto, "toString", funcToString))

	object := NewObject(objectProto)
	object.OwnSet("prototype", Object(objectProto))
	object.OwnSet("create", nativeValue(functionProto, "create", objectCreate))
	global.OwnSet("Object", Object(object))

	numberCtor := NewObject(objectProto)
	numberProto := NewObject(objectProto)
	numberProto.OwnSet("toString", nativeValue(functionProto, "toString", numberToStringNative))
	numberCtor.OwnSet("prototype", Object(numberProto))
	global.OwnSet("Number", Object(numberCtor))

	stringCtor := NewObject(objectProto)
	stringProto := NewObject(objectProto)
	stringProto.OwnSet("toString", nativeValue(functionProto, "toString", stringToStringNative))
	stringCtor.OwnSet("prototype", Object(stringProto))
	global.OwnSet("String", Object(stringCtor))

	// Boolean.prototype isn't one of the commonly-named intrinsics,
	// but a primitive's property lookup delegating to
	// global.<TypeName>.prototype implies one must exist for
	// (true).toString() to work at all; installed minimally alongside
	// Number/String.
	booleanCtor := NewObject(objectProto)
	booleanProto := NewObject(objectProto)
	booleanProto.OwnSet("toString", nativeValue(functionProto, "toString", booleanToStringNative))
	booleanCtor.OwnSet("prototype", Object(booleanProto))
	global.OwnSet("Boolean", Object(booleanCtor))

	functionCtor := NewObject(objectProto)
	functionCtor.OwnSet("prototype", Object(functionProto))
	global.OwnSet("Function", Object(functionCtor))

	console := NewObject(objectProto)
	console.OwnSet("log", nativeValue(functionProto, "log", consoleLog))
	global.OwnSet("console", Object(console))

	global.OwnSet("eval", nativeValue(functionProto, "eval", evalIntrinsic))

	return global
}

// nativeValue wraps fn as a Value: an object whose extension is the
// Native callable and whose prototype is proto (function_prototype
// for every native).
func nativeValue(proto ObjectHandle, name string, fn NativeFunc) Value {
	callable := &Callable{Kind: CallableNative, Name: name, Fn: fn}
	return Object(NewCallableObject(proto, callable))
}

func arg(args []Value, i int) Value {
	if i < len(args) {
		return args[i]
	}
	return Undefined
}

// funcToString implements function_prototype.toString: the source
// text for a User function, or "function <name>() { [native code] }"
// for a Native one. Fails on a non-function receiver.
func funcToString(args []Value, ctx Context) Outcome {
	if ctx.This.Kind != KindObject || ctx.This.Handle.Extension() == nil {
		return throwError("%s is not a function", debugString(ctx.This))
	}
	c := ctx.This.Handle.Extension()
	if c.Kind == CallableUser {
		return Ok(String(c.Source))
	}
	return Ok(String(fmt.Sprintf("function %s() { [native code] }", c.Name)))
}

// objectCreate implements Object.create(proto): a fresh object whose
// prototype is proto. When proto is Null, subsequent own-property
// misses on the new object fall straight through to Undefined — no
// object ever falls back to a global type prototype the way a
// primitive receiver does.
func objectCreate(args []Value, ctx Context) Outcome {
	protoArg := arg(args, 0)
	var proto ObjectHandle
	if protoArg.Kind == KindObject {
		proto = protoArg.Handle
	}
	return Ok(Object(NewObject(proto)))
}

func numberToStringNative(args []Value, ctx Context) Outcome {
	if ctx.This.Kind != KindNumber {
		return throwError("%s is not a Number", debugString(ctx.This))
	}
	return Ok(String(numberToString(ctx.This.Num)))
}

func stringToStringNative(args []Value, ctx Context) Outcome {
	if ctx.This.Kind != KindString {
		return throwError("%s is not a String", debugString(ctx.This))
	}
	return Ok(ctx.This)
}

func booleanToStringNative(args []Value, ctx Context) Outcome {
	if ctx.This.Kind != KindBoolean {
		return throwError("%s is not a Boolean", debugString(ctx.This))
	}
	if ctx.This.Bool {
		return Ok(String("true"))
	}
	return Ok(String("false"))
}

// consoleLog prints the debug-string form of each argument separated
// by spaces, followed by a newline, and yields Undefined. Writes go
// to ctx.Out rather than directly to os.Stdout, so an embedding host
// can capture or redirect script output.
func consoleLog(args []Value, ctx Context) Outcome {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = debugString(a)
	}
	out := ctx.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintln(out, strings.Join(parts, " "))
	return Ok(Undefined)
}

// evalIntrinsic parses its single String argument and evaluates it in
// the caller's Context, reentering the same global object — the only
// form of reentrancy the evaluator supports.
func evalIntrinsic(args []Value, ctx Context) Outcome {
	srcArg := arg(args, 0)
	if srcArg.Kind != KindString {
		return throwError("eval expects a String argument")
	}
	block, err := parser.Parse(srcArg.Str)
	if err != nil {
		return throwError("SyntaxError: %s", err.Error())
	}
	completion := evalBlock(block, ctx)
	switch completion.Kind {
	case Continue, ReturnCompletion:
		return Ok(completion.Value)
	default:
		return Thrown(completion.Value)
	}
}
