package ast

import "minijs/internal/token"

// ExpressionStatement wraps a bare expression used as a statement.
type ExpressionStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ExpressionStatement) GetToken() token.Token { return s.Token }
func (s *ExpressionStatement) statementNode()        {}

// VarStatement is `var id;` or `var id = value;`. Value is nil when
// there is no initializer.
type VarStatement struct {
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (s *VarStatement) GetToken() token.Token { return s.Token }
func (s *VarStatement) statementNode()        {}

// FunctionDeclaration is `function name(params) { ... }` used as a
// statement. It hoists rather than executing in place.
type FunctionDeclaration struct {
	Token token.Token
	Name  *Identifier
	Fn    *FunctionLiteral
}

func (s *FunctionDeclaration) GetToken() token.Token { return s.Token }
func (s *FunctionDeclaration) statementNode()        {}

// ThrowStatement is `throw expr;`.
type ThrowStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ThrowStatement) GetToken() token.Token { return s.Token }
func (s *ThrowStatement) statementNode()        {}

// ReturnStatement is `return expr;`, an explicit early return. It
// exists alongside InnerBlock's implicit trailing-expression return
// and short-circuits its enclosing block the same way Throw does,
// just with a Return completion instead.
type ReturnStatement struct {
	Token token.Token
	Expr  Expression
}

func (s *ReturnStatement) GetToken() token.Token { return s.Token }
func (s *ReturnStatement) statementNode()        {}

// IfStatement is `if (cond) { ... } else { ... }`; Else is nil when
// there is no else clause.
type IfStatement struct {
	Token     token.Token
	Condition Expression
	Then      InnerBlock
	Else      *InnerBlock
}

func (s *IfStatement) GetToken() token.Token { return s.Token }
func (s *IfStatement) statementNode()        {}

// EmptyStatement is a bare `;`.
type EmptyStatement struct {
	Token token.Token
}

func (s *EmptyStatement) GetToken() token.Token { return s.Token }
func (s *EmptyStatement) statementNode()        {}
