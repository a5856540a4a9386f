package engine

import (
	"math"

	"minijs/internal/ast"
)

// evalExpression is the recursive expression evaluator, contract per
// variant. It always returns an Outcome:
// Ok(value) or Thrown(value) — Return cannot arise here.
func evalExpression(expr ast.Expression, ctx Context) Outcome {
	switch e := expr.(type) {
	case *ast.NumberLiteral:
		return Ok(Number(e.Value))
	case *ast.StringLiteral:
		return Ok(String(e.Value))
	case *ast.BooleanLiteral:
		return Ok(Boolean(e.Value))
	case *ast.UndefinedLiteral:
		return Ok(Undefined)
	case *ast.NullLiteral:
		return Ok(Object(Null))
	case *ast.ThisExpression:
		return Ok(ctx.This)
	case *ast.Identifier:
		return evalIdentifier(e, ctx)
	case *ast.MemberExpression:
		return evalMember(e, ctx)
	case *ast.AssignmentExpression:
		return evalAssignment(e, ctx)
	case *ast.UnaryExpression:
		return evalUnary(e, ctx)
	case *ast.BinaryExpression:
		return evalBinary(e, ctx)
	case *ast.TernaryExpression:
		return evalTernary(e, ctx)
	case *ast.ObjectLiteral:
		return evalObjectLiteral(e, ctx)
	case *ast.FunctionLiteral:
		return evalFunctionLiteral(e, ctx)
	case *ast.CallExpression:
		return evalCallExpression(e, ctx)
	default:
		return throwError("unsupported expression node %T", expr)
	}
}

func evalIdentifier(e *ast.Identifier, ctx Context) Outcome {
	v, ok := ctx.Local.Get(e.Name)
	if !ok {
		return throwError("%s is not defined", e.Name)
	}
	return Ok(v)
}

// resolveMemberKey evaluates a MemberExpression's accessor: a static
// name, or a computed expression coerced via toString.
func resolveMemberKey(e *ast.MemberExpression, ctx Context) (string, Outcome) {
	if !e.Computed {
		return e.Name, Ok(Undefined)
	}
	keyOut := evalExpression(e.Property, ctx)
	if keyOut.IsThrow {
		return "", keyOut
	}
	key, strOut := jsToString(keyOut.Value, ctx)
	if strOut.IsThrow {
		return "", strOut
	}
	return key, Ok(Undefined)
}

func evalMember(e *ast.MemberExpression, ctx Context) Outcome {
	objOut := evalExpression(e.Object, ctx)
	if objOut.IsThrow {
		return objOut
	}
	key, keyOut := resolveMemberKey(e, ctx)
	if keyOut.IsThrow {
		return keyOut
	}
	return getProperty(objOut.Value, key, ctx.Global)
}

func evalAssignment(e *ast.AssignmentExpression, ctx Context) Outcome {
	rhsOut := evalExpression(e.Value, ctx)
	if rhsOut.IsThrow {
		return rhsOut
	}
	val := rhsOut.Value

	switch target := e.Target.(type) {
	case *ast.Identifier:
		// An existing binding anywhere on the scope chain is rewritten in
		// place; a miss creates the binding on the global object itself
		// (not on object_prototype, the chain's last link above global).
		if _, found := ctx.Local.Get(target.Name); found {
			ctx.Local.OuterSet(target.Name, val)
		} else {
			ctx.Global.OwnSet(target.Name, val)
		}
		return Ok(val)
	case *ast.MemberExpression:
		objOut := evalExpression(target.Object, ctx)
		if objOut.IsThrow {
			return objOut
		}
		key, keyOut := resolveMemberKey(target, ctx)
		if keyOut.IsThrow {
			return keyOut
		}
		return setProperty(objOut.Value, key, val)
	default:
		return throwError("invalid assignment target")
	}
}

func evalUnary(e *ast.UnaryExpression, ctx Context) Outcome {
	operandOut := evalExpression(e.Operand, ctx)
	if operandOut.IsThrow {
		return operandOut
	}
	switch e.Operator {
	case "+":
		return Ok(Number(ToNumber(operandOut.Value)))
	case "-":
		return Ok(Number(-ToNumber(operandOut.Value)))
	case "!":
		return Ok(Boolean(!ToBoolean(operandOut.Value)))
	default:
		return throwError("unsupported unary operator %q", e.Operator)
	}
}

func evalBinary(e *ast.BinaryExpression, ctx Context) Outcome {
	switch e.Operator {
	case "&&":
		return evalLogicalAnd(e, ctx)
	case "||":
		return evalLogicalOr(e, ctx)
	}

	leftOut := evalExpression(e.Left, ctx)
	if leftOut.IsThrow {
		return leftOut
	}
	rightOut := evalExpression(e.Right, ctx)
	if rightOut.IsThrow {
		return rightOut
	}
	left, right := leftOut.Value, rightOut.Value

	switch e.Operator {
	case "+":
		return evalAdd(left, right, ctx)
	case "-":
		return Ok(Number(ToNumber(left) - ToNumber(right)))
	case "*":
		return Ok(Number(ToNumber(left) * ToNumber(right)))
	case "/":
		return Ok(Number(ToNumber(left) / ToNumber(right)))
	case "==":
		return Ok(Boolean(StrictEquals(left, right)))
	case "!=":
		return Ok(Boolean(!StrictEquals(left, right)))
	case "<":
		return Ok(Boolean(ToNumber(left) < ToNumber(right)))
	case ">":
		return Ok(Boolean(ToNumber(left) > ToNumber(right)))
	case "<=":
		return Ok(Boolean(ToNumber(left) <= ToNumber(right)))
	case ">=":
		return Ok(Boolean(ToNumber(left) >= ToNumber(right)))
	default:
		return throwError("unsupported binary operator %q", e.Operator)
	}
}

// evalAdd implements Binary(+, l, r): string concatenation whenever
// either operand is already a String, falling back to numeric
// addition only when both to_numbers are finite. Two NaN-producing
// operands fall back to string concatenation rather than yielding
// NaN, matching this language's own prior behavior over strict JS.
func evalAdd(left, right Value, ctx Context) Outcome {
	if left.Kind == KindString || right.Kind == KindString {
		return concatStrings(left, right, ctx)
	}
	ln, rn := ToNumber(left), ToNumber(right)
	if isFinite(ln) && isFinite(rn) {
		return Ok(Number(ln + rn))
	}
	return concatStrings(left, right, ctx)
}

func concatStrings(left, right Value, ctx Context) Outcome {
	ls, out := jsToString(left, ctx)
	if out.IsThrow {
		return out
	}
	rs, out := jsToString(right, ctx)
	if out.IsThrow {
		return out
	}
	return Ok(String(ls + rs))
}

func isFinite(n float64) bool {
	return !math.IsNaN(n) && !math.IsInf(n, 0)
}

func evalLogicalAnd(e *ast.BinaryExpression, ctx Context) Outcome {
	leftOut := evalExpression(e.Left, ctx)
	if leftOut.IsThrow {
		return leftOut
	}
	if !ToBoolean(leftOut.Value) {
		return Ok(Boolean(false))
	}
	rightOut := evalExpression(e.Right, ctx)
	if rightOut.IsThrow {
		return rightOut
	}
	if ToBoolean(rightOut.Value) {
		return Ok(rightOut.Value)
	}
	return Ok(Boolean(false))
}

func evalLogicalOr(e *ast.BinaryExpression, ctx Context) Outcome {
	leftOut := evalExpression(e.Left, ctx)
	if leftOut.IsThrow {
		return leftOut
	}
	if ToBoolean(leftOut.Value) {
		return Ok(leftOut.Value)
	}
	rightOut := evalExpression(e.Right, ctx)
	if rightOut.IsThrow {
		return rightOut
	}
	if ToBoolean(rightOut.Value) {
		return Ok(rightOut.Value)
	}
	return Ok(Boolean(false))
}

func evalTernary(e *ast.TernaryExpression, ctx Context) Outcome {
	condOut := evalExpression(e.Cond, ctx)
	if condOut.IsThrow {
		return condOut
	}
	if ToBoolean(condOut.Value) {
		return evalExpression(e.Then, ctx)
	}
	return evalExpression(e.Else, ctx)
}

// evalObjectLiteral builds a fresh object for `{ ... }`. Its prototype
// is object_prototype (reached via the global object's own prototype,
// since global is itself built with prototype = object_prototype) so
// that a toString-less literal still resolves one via the chain —
// giving it a Null prototype instead would make an expression like
// `"a" + {}` throw instead of yielding `"a[object Object]"`, since
// `{}.toString` would have nothing to resolve to.
func evalObjectLiteral(e *ast.ObjectLiteral, ctx Context) Outcome {
	obj := NewObject(ctx.Global.Prototype())
	for _, prop := range e.Properties {
		valOut := evalExpression(prop.Value, ctx)
		if valOut.IsThrow {
			return valOut
		}
		obj.OwnSet(prop.Key, valOut.Value) // last write wins on duplicate keys
	}
	return Ok(Object(obj))
}

// evalFunctionLiteral implements Expression::Function(fn_ast): the
// closure captures the current local scope, and the new function
// value's prototype anchors on global.Function.prototype.
func evalFunctionLiteral(e *ast.FunctionLiteral, ctx Context) Outcome {
	proto, ok := functionPrototype(ctx.Global)
	if !ok {
		return throwError("Function.prototype must be an object")
	}
	params := make([]string, len(e.Parameters))
	for i, p := range e.Parameters {
		params[i] = p.Name
	}
	callable := &Callable{
		Kind:       CallableUser,
		Name:       e.Name,
		Parameters: params,
		Body:       e.Body,
		Closure:    ctx.Local,
		Source:     e.Source,
	}
	handle := NewCallableObject(proto, callable)
	return Ok(Object(handle))
}

// functionPrototype resolves global.Function.prototype.
func functionPrototype(global ObjectHandle) (ObjectHandle, bool) {
	fnVal, ok := global.OwnGet("Function")
	if !ok || fnVal.Kind != KindObject {
		return Null, false
	}
	protoVal, ok := fnVal.Handle.OwnGet("prototype")
	if !ok || protoVal.Kind != KindObject {
		return Null, false
	}
	return protoVal.Handle, true
}

func evalCallExpression(e *ast.CallExpression, ctx Context) Outcome {
	calleeOut := evalExpression(e.Callee, ctx)
	if calleeOut.IsThrow {
		return calleeOut
	}
	fn := calleeOut.Value

	args := make([]Value, 0, len(e.Args))
	for _, argExpr := range e.Args {
		argOut := evalExpression(argExpr, ctx)
		if argOut.IsThrow {
			return argOut
		}
		args = append(args, argOut.Value)
	}

	var thisVal Value
	if member, ok := e.Callee.(*ast.MemberExpression); ok {
		// The receiver is evaluated twice: once above as part of
		// evaluating e.Callee, once here to compute `this`. Side
		// effects in the receiver expression are observably run
		// twice; this double evaluation is deliberate, not a bug.
		recvOut := evalExpression(member.Object, ctx)
		if recvOut.IsThrow {
			return recvOut
		}
		thisVal = recvOut.Value
	} else {
		thisVal = Object(ctx.Global)
	}

	callCtx := Context{This: thisVal, Local: ctx.Local, Global: ctx.Global, Frames: ctx.Frames, Out: ctx.Out}
	return applyValue(fn, args, callCtx)
}
