package engine

import "minijs/internal/ast"

// evalBlock implements Block evaluation: hoist declarations, then
// execute statements in order; the first non-Continue completion
// short-circuits the block, otherwise the block yields
// Continue(last_value_or_Undefined).
func evalBlock(block ast.Block, ctx Context) Completion {
	hoist(block, ctx)

	last := Undefined
	for _, stmt := range block {
		c := evalStatement(stmt, ctx)
		if c.Kind != Continue {
			return c
		}
		last = c.Value
	}
	return ContinueWith(last)
}

// hoist implements the per-block pre-pass: every var declaration in
// this block (not nested blocks) binds Undefined on the current
// scope, and every function declaration binds a freshly constructed
// closure — both unconditionally, per the Open Question decision to
// rebind on the current scope rather than skip when an enclosing
// scope already has the name.
func hoist(block ast.Block, ctx Context) {
	for _, stmt := range block {
		switch s := stmt.(type) {
		case *ast.VarStatement:
			ctx.Local.OwnSet(s.Name.Name, Undefined)
		case *ast.FunctionDeclaration:
			ctx.Local.OwnSet(s.Name.Name, makeUserFunctionValue(s.Fn, ctx))
		}
	}
}

// evalInnerBlock runs block's statements and, if they complete
// normally, evaluates the trailing return expression (if any) into a
// Return completion; with no trailing expression it yields
// Continue(Undefined) — the block's own last statement value is never
// surfaced as the function's result.
func evalInnerBlock(block ast.InnerBlock, ctx Context) Completion {
	c := evalBlock(block.Statements, ctx)
	if c.Kind != Continue {
		return c
	}
	if block.ReturnExpr == nil {
		return ContinueWith(Undefined)
	}
	out := evalExpression(block.ReturnExpr, ctx)
	if out.IsThrow {
		return ThrowWith(out.Value)
	}
	return ReturnWith(out.Value)
}

func evalStatement(stmt ast.Statement, ctx Context) Completion {
	switch s := stmt.(type) {
	case *ast.ExpressionStatement:
		return fromOutcome(evalExpression(s.Expr, ctx))
	case *ast.VarStatement:
		return evalVarStatement(s, ctx)
	case *ast.FunctionDeclaration:
		return ContinueWith(Undefined) // already hoisted
	case *ast.ThrowStatement:
		out := evalExpression(s.Expr, ctx)
		return ThrowWith(out.Value)
	case *ast.ReturnStatement:
		out := evalExpression(s.Expr, ctx)
		if out.IsThrow {
			return ThrowWith(out.Value)
		}
		return ReturnWith(out.Value)
	case *ast.IfStatement:
		return evalIfStatement(s, ctx)
	case *ast.EmptyStatement:
		return ContinueWith(Undefined)
	default:
		return ThrowWith(newError("unsupported statement node %T", stmt))
	}
}

func evalVarStatement(s *ast.VarStatement, ctx Context) Completion {
	if s.Value == nil {
		return ContinueWith(Undefined)
	}
	out := evalExpression(s.Value, ctx)
	if out.IsThrow {
		return ThrowWith(out.Value)
	}
	ctx.Local.OwnSet(s.Name.Name, out.Value) // plain set, not outer_set
	return ContinueWith(Undefined)
}

func evalIfStatement(s *ast.IfStatement, ctx Context) Completion {
	condOut := evalExpression(s.Condition, ctx)
	if condOut.IsThrow {
		return ThrowWith(condOut.Value)
	}
	if ToBoolean(condOut.Value) {
		return evalInnerBlock(s.Then, ctx)
	}
	if s.Else != nil {
		return evalInnerBlock(*s.Else, ctx)
	}
	return ContinueWith(Undefined)
}

// makeUserFunctionValue builds a user function value the way both
// hoisting (function declarations) and Function-literal expressions
// do: closure = ctx.Local, prototype anchored on
// global.Function.prototype. Hoisting runs only after intrinsics are
// bootstrapped, so Function.prototype is always present by then.
func makeUserFunctionValue(fn *ast.FunctionLiteral, ctx Context) Value {
	return evalFunctionLiteral(fn, ctx).Value
}
