// Package ast defines the node types produced by internal/parser and
// consumed by pkg/engine. The shapes here are exactly the ones named
// in the language specification's data model: a Program is a Block, a
// Block is a list of Statements, and an InnerBlock additionally
// carries a trailing expression that becomes that block's Return
// completion.
package ast

import "minijs/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	GetToken() token.Token
}

// Statement is a Node that can appear directly inside a Block.
type Statement interface {
	Node
	statementNode()
}

// Expression is a Node that produces a Value when evaluated.
type Expression interface {
	Node
	expressionNode()
}

// Block is an ordered list of statements, evaluated in sequence.
type Block []Statement

// InnerBlock is a Block plus an optional trailing expression. The
// trailing expression, when present, is evaluated after the block's
// statements complete normally and its value becomes a Return
// completion.
type InnerBlock struct {
	Statements Block
	ReturnExpr Expression // nil when there is no trailing expression
}

// Program is the root node produced by the parser for a whole source
// file or REPL entry.
type Program struct {
	Token      token.Token
	Statements Block
}

func (p *Program) GetToken() token.Token { return p.Token }
