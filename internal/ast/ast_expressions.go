package ast

import "minijs/internal/token"

// Identifier is a bare name reference, resolved against the current
// scope chain.
type Identifier struct {
	Token token.Token
	Name  string
}

func (e *Identifier) GetToken() token.Token { return e.Token }
func (e *Identifier) expressionNode()       {}

// ThisExpression is the bare `this` keyword.
type ThisExpression struct {
	Token token.Token
}

func (e *ThisExpression) GetToken() token.Token { return e.Token }
func (e *ThisExpression) expressionNode()       {}

// MemberExpression is `object.name` (Computed == false, Name set) or
// `object[expr]` (Computed == true, Property set).
type MemberExpression struct {
	Token    token.Token
	Object   Expression
	Computed bool
	Name     string     // static accessor, used when !Computed
	Property Expression // computed accessor, used when Computed
}

func (e *MemberExpression) GetToken() token.Token { return e.Token }
func (e *MemberExpression) expressionNode()       {}

// AssignmentExpression is `lhs = rhs`. Target is either an Identifier
// (outer-set) or a MemberExpression (property set).
type AssignmentExpression struct {
	Token  token.Token
	Target Expression
	Value  Expression
}

func (e *AssignmentExpression) GetToken() token.Token { return e.Token }
func (e *AssignmentExpression) expressionNode()       {}

// CallExpression is `callee(args...)`.
type CallExpression struct {
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (e *CallExpression) GetToken() token.Token { return e.Token }
func (e *CallExpression) expressionNode()       {}

// NumberLiteral is a numeric literal, already parsed to float64.
type NumberLiteral struct {
	Token token.Token
	Value float64
}

func (e *NumberLiteral) GetToken() token.Token { return e.Token }
func (e *NumberLiteral) expressionNode()       {}

// StringLiteral is a quoted string literal, already unescaped.
type StringLiteral struct {
	Token token.Token
	Value string
}

func (e *StringLiteral) GetToken() token.Token { return e.Token }
func (e *StringLiteral) expressionNode()       {}

// BooleanLiteral is `true` or `false`.
type BooleanLiteral struct {
	Token token.Token
	Value bool
}

func (e *BooleanLiteral) GetToken() token.Token { return e.Token }
func (e *BooleanLiteral) expressionNode()       {}

// UndefinedLiteral is the bare `undefined` keyword.
type UndefinedLiteral struct {
	Token token.Token
}

func (e *UndefinedLiteral) GetToken() token.Token { return e.Token }
func (e *UndefinedLiteral) expressionNode()       {}

// NullLiteral is the bare `null` keyword, evaluating to the Null
// object handle.
type NullLiteral struct {
	Token token.Token
}

func (e *NullLiteral) GetToken() token.Token { return e.Token }
func (e *NullLiteral) expressionNode()       {}

// FunctionLiteral is `function name?(params) { statements... expr? }`,
// used both as an expression and as the payload of a
// FunctionDeclaration. Source holds the verbatim source text of the
// literal, used by Function.prototype.toString.
type FunctionLiteral struct {
	Token      token.Token
	Name       string // empty for an anonymous function expression
	Parameters []*Identifier
	Body       InnerBlock
	Source     string
}

func (e *FunctionLiteral) GetToken() token.Token { return e.Token }
func (e *FunctionLiteral) expressionNode()       {}

// UnaryExpression is `+e`, `-e`, or `!e`.
type UnaryExpression struct {
	Token    token.Token
	Operator string
	Operand  Expression
}

func (e *UnaryExpression) GetToken() token.Token { return e.Token }
func (e *UnaryExpression) expressionNode()       {}

// BinaryExpression is `l op r` for any of +, -, *, /, &&, ||, ==, !=,
// <, >, <=, >=.
type BinaryExpression struct {
	Token    token.Token
	Operator string
	Left     Expression
	Right    Expression
}

func (e *BinaryExpression) GetToken() token.Token { return e.Token }
func (e *BinaryExpression) expressionNode()       {}

// TernaryExpression is `cond ? then : else`.
type TernaryExpression struct {
	Token token.Token
	Cond  Expression
	Then  Expression
	Else  Expression
}

func (e *TernaryExpression) GetToken() token.Token { return e.Token }
func (e *TernaryExpression) expressionNode()       {}

// ObjectProperty is one `key: value` entry of an ObjectLiteral.
type ObjectProperty struct {
	Key   string
	Value Expression
}

// ObjectLiteral is `{ key: value, ... }`. Duplicate keys are kept in
// order; evaluation applies last-write-wins.
type ObjectLiteral struct {
	Token      token.Token
	Properties []ObjectProperty
}

func (e *ObjectLiteral) GetToken() token.Token { return e.Token }
func (e *ObjectLiteral) expressionNode()       {}
