// Package parser implements the recursive-descent, precedence-climbing
// parser that turns a token stream from internal/lexer into the AST
// node types in internal/ast. It is an external collaborator to the
// evaluator: pkg/engine only calls Parse, and pkg/cli's REPL calls
// IsComplete.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"minijs/internal/ast"
	"minijs/internal/lexer"
	"minijs/internal/token"
)

// ParseError is returned by Parse on a syntax error. It implements
// error so callers can use it like any other Go error, and also
// exposes Line/Column for callers that want source position.
type ParseError struct {
	Message string
	Line    int
	Column  int
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (line %d, column %d)", e.Message, e.Line, e.Column)
}

// precedence levels, lowest to highest.
const (
	_ int = iota
	lowest
	assignP
	ternaryP
	orP
	andP
	equalsP
	relationalP
	sumP
	productP
	unaryP
	callP
	memberP
)

var precedences = map[token.Type]int{
	token.ASSIGN:   assignP,
	token.QUESTION: ternaryP,
	token.OR:       orP,
	token.AND:      andP,
	token.EQ:       equalsP,
	token.NE:       equalsP,
	token.LT:       relationalP,
	token.GT:       relationalP,
	token.LE:       relationalP,
	token.GE:       relationalP,
	token.PLUS:     sumP,
	token.MINUS:    sumP,
	token.ASTERISK: productP,
	token.SLASH:    productP,
	token.LPAREN:   callP,
	token.DOT:      memberP,
	token.LBRACKET: memberP,
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Parser consumes a token stream and builds an AST.
type Parser struct {
	l      *lexer.Lexer
	source string

	cur  token.Token
	peek token.Token

	errors []*ParseError

	prefixFns map[token.Type]prefixParseFn
	infixFns  map[token.Type]infixParseFn
}

// New creates a Parser over source.
func New(source string) *Parser {
	p := &Parser{l: lexer.New(source), source: source}

	p.prefixFns = map[token.Type]prefixParseFn{
		token.IDENT:     p.parseIdentifier,
		token.NUMBER:    p.parseNumberLiteral,
		token.STRING:    p.parseStringLiteral,
		token.TRUE:      p.parseBooleanLiteral,
		token.FALSE:     p.parseBooleanLiteral,
		token.UNDEFINED: p.parseUndefinedLiteral,
		token.NULL:      p.parseNullLiteral,
		token.THIS:      p.parseThisExpression,
		token.BANG:      p.parseUnaryExpression,
		token.MINUS:     p.parseUnaryExpression,
		token.PLUS:      p.parseUnaryExpression,
		token.LPAREN:    p.parseGroupedExpression,
		token.LBRACE:    p.parseObjectLiteral,
		token.FUNCTION:  p.parseFunctionLiteral,
	}

	p.infixFns = map[token.Type]infixParseFn{
		token.ASSIGN:   p.parseAssignment,
		token.PLUS:     p.parseBinaryExpression,
		token.MINUS:    p.parseBinaryExpression,
		token.ASTERISK: p.parseBinaryExpression,
		token.SLASH:    p.parseBinaryExpression,
		token.EQ:       p.parseBinaryExpression,
		token.NE:       p.parseBinaryExpression,
		token.LT:       p.parseBinaryExpression,
		token.GT:       p.parseBinaryExpression,
		token.LE:       p.parseBinaryExpression,
		token.GE:       p.parseBinaryExpression,
		token.AND:      p.parseBinaryExpression,
		token.OR:       p.parseBinaryExpression,
		token.QUESTION: p.parseTernaryExpression,
		token.LPAREN:   p.parseCallExpression,
		token.DOT:      p.parseMemberExpression,
		token.LBRACKET: p.parseIndexExpression,
	}

	p.nextToken()
	p.nextToken()
	return p
}

// Errors returns all syntax errors collected while parsing.
func (p *Parser) Errors() []*ParseError { return p.errors }

func (p *Parser) nextToken() {
	p.cur = p.peek
	p.peek = p.l.NextToken()
}

func (p *Parser) addError(format string, a ...interface{}) {
	p.errors = append(p.errors, &ParseError{
		Message: fmt.Sprintf(format, a...),
		Line:    p.cur.Line,
		Column:  p.cur.Column,
	})
}

func (p *Parser) curIs(t token.Type) bool  { return p.cur.Type == t }
func (p *Parser) peekIs(t token.Type) bool { return p.peek.Type == t }

func (p *Parser) expect(t token.Type) bool {
	if p.peekIs(t) {
		p.nextToken()
		return true
	}
	p.addError("expected next token to be %s, got %s (%q)", t, p.peek.Type, p.peek.Lexeme)
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Type]; ok {
		return pr
	}
	return lowest
}

func (p *Parser) curPrecedence() int {
	if pr, ok := precedences[p.cur.Type]; ok {
		return pr
	}
	return lowest
}

// Parse parses a complete program and returns its AST, or the first
// syntax error encountered (matching the parser interface consumed by
// pkg/engine: Parse(source) -> (Block, error)).
func Parse(source string) (ast.Block, error) {
	p := New(source)
	prog := p.ParseProgram()
	if len(p.errors) > 0 {
		return nil, p.errors[0]
	}
	return prog.Statements, nil
}

// ParseProgram parses the whole token stream into a Program node.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{Token: p.cur}
	for !p.curIs(token.EOF) {
		stmt, trailing := p.parseBlockMember()
		if trailing {
			// A trailing expression at top level is just a normal
			// expression statement; the program has no implicit return.
		}
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
		p.nextToken()
	}
	return prog
}

// parseBlockMember parses one member of a block (statement or,
// immediately before a closing brace / EOF, a trailing expression).
// trailing is true when stmt's expression should be treated as the
// enclosing InnerBlock's ReturnExpr rather than an ordinary statement.
func (p *Parser) parseBlockMember() (ast.Statement, bool) {
	switch p.cur.Type {
	case token.VAR:
		return p.parseVarStatement(), false
	case token.FUNCTION:
		return p.parseFunctionDeclaration(), false
	case token.THROW:
		return p.parseThrowStatement(), false
	case token.RETURN:
		return p.parseReturnStatement(), false
	case token.IF:
		return p.parseIfStatement(), false
	case token.SEMICOLON:
		return &ast.EmptyStatement{Token: p.cur}, false
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.cur}
	if !p.expect(token.IDENT) {
		return stmt
	}
	stmt.Name = &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}

	if p.peekIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		stmt.Value = p.parseExpression(lowest)
	}

	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseFunctionDeclaration() ast.Statement {
	tok := p.cur
	fn := p.parseFunctionLiteralNode(true)
	return &ast.FunctionDeclaration{Token: tok, Name: &ast.Identifier{Token: tok, Name: fn.Name}, Fn: fn}
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.cur}
	p.nextToken()
	stmt.Expr = p.parseExpression(lowest)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.cur}
	p.nextToken()
	stmt.Expr = p.parseExpression(lowest)
	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
	}
	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.cur}
	if !p.expect(token.LPAREN) {
		return stmt
	}
	p.nextToken()
	stmt.Condition = p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return stmt
	}
	if !p.expect(token.LBRACE) {
		return stmt
	}
	stmt.Then = p.parseInnerBlock()

	if p.peekIs(token.ELSE) {
		p.nextToken()
		if p.peekIs(token.IF) {
			p.nextToken()
			nested := p.parseIfStatement()
			stmt.Else = &ast.InnerBlock{Statements: ast.Block{nested}}
			return stmt
		}
		if !p.expect(token.LBRACE) {
			return stmt
		}
		block := p.parseInnerBlock()
		stmt.Else = &block
	}
	return stmt
}

// parseInnerBlock parses the body of a `{ ... }` whose final bare
// expression (no trailing semicolon) becomes ReturnExpr. p.cur must be
// the opening '{' on entry; p.cur is the closing '}' on return.
func (p *Parser) parseInnerBlock() ast.InnerBlock {
	block := ast.InnerBlock{}
	p.nextToken()

	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		stmt, trailing := p.parseBlockMember()
		if trailing {
			// parseExpressionStatement already advanced cur onto '}'.
			if es, ok := stmt.(*ast.ExpressionStatement); ok {
				block.ReturnExpr = es.Expr
			}
			break
		}
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.errors) > 0 {
			break
		}
		p.nextToken()
	}

	if !p.curIs(token.RBRACE) {
		p.addError("expected '}' to close block, got %s", p.cur.Type)
	}
	return block
}

func (p *Parser) parseExpressionStatement() (ast.Statement, bool) {
	tok := p.cur
	expr := p.parseExpression(lowest)
	stmt := &ast.ExpressionStatement{Token: tok, Expr: expr}

	if p.peekIs(token.SEMICOLON) {
		p.nextToken()
		return stmt, false
	}
	// No semicolon: if what follows ends the enclosing block, this is
	// a trailing expression, becoming the block's implicit return value.
	if p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		p.nextToken()
		return stmt, true
	}
	return stmt, false
}

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix, ok := p.prefixFns[p.cur.Type]
	if !ok {
		p.addError("no prefix parse function for %s found (%q)", p.cur.Type, p.cur.Lexeme)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.SEMICOLON) && precedence < p.peekPrecedence() {
		infix, ok := p.infixFns[p.peek.Type]
		if !ok {
			return left
		}
		p.nextToken()
		left = infix(left)
	}
	return left
}

func (p *Parser) parseIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme}
}

func (p *Parser) parseThisExpression() ast.Expression {
	return &ast.ThisExpression{Token: p.cur}
}

func (p *Parser) parseNumberLiteral() ast.Expression {
	v, err := strconv.ParseFloat(p.cur.Lexeme, 64)
	if err != nil {
		p.addError("invalid number literal %q", p.cur.Lexeme)
		return nil
	}
	return &ast.NumberLiteral{Token: p.cur, Value: v}
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.cur, Value: p.cur.Lexeme}
}

func (p *Parser) parseBooleanLiteral() ast.Expression {
	return &ast.BooleanLiteral{Token: p.cur, Value: p.curIs(token.TRUE)}
}

func (p *Parser) parseUndefinedLiteral() ast.Expression {
	return &ast.UndefinedLiteral{Token: p.cur}
}

func (p *Parser) parseNullLiteral() ast.Expression {
	return &ast.NullLiteral{Token: p.cur}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{Token: p.cur, Operator: p.cur.Lexeme}
	p.nextToken()
	expr.Operand = p.parseExpression(unaryP)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{Token: p.cur, Operator: p.cur.Lexeme, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseTernaryExpression(cond ast.Expression) ast.Expression {
	expr := &ast.TernaryExpression{Token: p.cur, Cond: cond}
	p.nextToken()
	expr.Then = p.parseExpression(lowest)
	if !p.expect(token.COLON) {
		return expr
	}
	p.nextToken()
	expr.Else = p.parseExpression(ternaryP)
	return expr
}

func (p *Parser) parseGroupedExpression() ast.Expression {
	p.nextToken()
	expr := p.parseExpression(lowest)
	if !p.expect(token.RPAREN) {
		return expr
	}
	return expr
}

func (p *Parser) parseAssignment(target ast.Expression) ast.Expression {
	expr := &ast.AssignmentExpression{Token: p.cur, Target: target}
	p.nextToken()
	expr.Value = p.parseExpression(lowest)
	return expr
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	expr := &ast.CallExpression{Token: p.cur, Callee: callee}
	expr.Args = p.parseExpressionList(token.RPAREN)
	return expr
}

func (p *Parser) parseExpressionList(end token.Type) []ast.Expression {
	var list []ast.Expression
	if p.peekIs(end) {
		p.nextToken()
		return list
	}
	p.nextToken()
	list = append(list, p.parseExpression(lowest))
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(lowest))
	}
	if !p.expect(end) {
		return list
	}
	return list
}

func (p *Parser) parseMemberExpression(object ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.cur, Object: object}
	if !p.expect(token.IDENT) {
		return expr
	}
	expr.Name = p.cur.Lexeme
	return expr
}

func (p *Parser) parseIndexExpression(object ast.Expression) ast.Expression {
	expr := &ast.MemberExpression{Token: p.cur, Object: object, Computed: true}
	p.nextToken()
	expr.Property = p.parseExpression(lowest)
	if !p.expect(token.RBRACKET) {
		return expr
	}
	return expr
}

func (p *Parser) parseObjectLiteral() ast.Expression {
	lit := &ast.ObjectLiteral{Token: p.cur}
	for !p.peekIs(token.RBRACE) {
		p.nextToken()
		if p.curIs(token.RBRACE) {
			break
		}
		var key string
		switch p.cur.Type {
		case token.IDENT, token.STRING:
			key = p.cur.Lexeme
		default:
			p.addError("expected property key, got %s", p.cur.Type)
			return lit
		}
		if !p.expect(token.COLON) {
			return lit
		}
		p.nextToken()
		value := p.parseExpression(lowest)
		lit.Properties = append(lit.Properties, ast.ObjectProperty{Key: key, Value: value})

		if p.peekIs(token.COMMA) {
			p.nextToken()
		} else {
			break
		}
	}
	if !p.expect(token.RBRACE) {
		return lit
	}
	return lit
}

func (p *Parser) parseFunctionLiteral() ast.Expression {
	return p.parseFunctionLiteralNode(false)
}

// parseFunctionLiteralNode parses `function name?(params) { body }`.
// requireName is true when called from a FunctionDeclaration, which
// always names the function; a function expression may stay anonymous.
func (p *Parser) parseFunctionLiteralNode(requireName bool) *ast.FunctionLiteral {
	tok := p.cur
	startLine, startCol := tok.Line, tok.Column
	fn := &ast.FunctionLiteral{Token: tok}

	if p.peekIs(token.IDENT) {
		p.nextToken()
		fn.Name = p.cur.Lexeme
	} else if requireName {
		p.addError("expected function name, got %s", p.peek.Type)
	}

	if !p.expect(token.LPAREN) {
		return fn
	}
	fn.Parameters = p.parseParameterList()

	if !p.expect(token.LBRACE) {
		return fn
	}
	fn.Body = p.parseInnerBlock()
	fn.Source = sliceSource(p.source, startLine, startCol, p.cur.Line, p.cur.Column)
	return fn
}

func (p *Parser) parseParameterList() []*ast.Identifier {
	var params []*ast.Identifier
	if p.peekIs(token.RPAREN) {
		p.nextToken()
		return params
	}
	p.nextToken()
	params = append(params, &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme})
	for p.peekIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		params = append(params, &ast.Identifier{Token: p.cur, Name: p.cur.Lexeme})
	}
	if !p.expect(token.RPAREN) {
		return params
	}
	return params
}

// sliceSource returns a best-effort source-text reconstruction for a
// function literal, used by Function.prototype.toString. Since the
// parser does not track byte offsets (only line/column), this walks
// lines rather than slicing a single byte range.
func sliceSource(source string, startLine, startCol, endLine, endCol int) string {
	lines := strings.Split(source, "\n")
	if startLine < 1 || startLine > len(lines) || endLine < 1 || endLine > len(lines) {
		return "function () { [source unavailable] }"
	}
	if startLine == endLine {
		line := lines[startLine-1]
		from := clampIndex(startCol-1, line)
		to := clampIndex(endCol, line)
		if from > to {
			from, to = to, from
		}
		return line[from:to]
	}
	var sb strings.Builder
	first := lines[startLine-1]
	sb.WriteString(first[clampIndex(startCol-1, first):])
	for i := startLine; i < endLine-1; i++ {
		sb.WriteString("\n")
		sb.WriteString(lines[i])
	}
	sb.WriteString("\n")
	last := lines[endLine-1]
	sb.WriteString(last[:clampIndex(endCol, last)])
	return sb.String()
}

func clampIndex(i int, s string) int {
	if i < 0 {
		return 0
	}
	if i > len(s) {
		return len(s)
	}
	return i
}
