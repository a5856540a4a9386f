package lexer

import (
	"testing"

	"minijs/internal/token"
)

func TestNextTokenBasics(t *testing.T) {
	input := `var x = 40 + 2;
function f(a, b) { return a && b || !a; }
"hi\n" == 'there'`

	tests := []struct {
		wantType   token.Type
		wantLexeme string
	}{
		{token.VAR, "var"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.NUMBER, "40"},
		{token.PLUS, "+"},
		{token.NUMBER, "2"},
		{token.SEMICOLON, ";"},
		{token.FUNCTION, "function"},
		{token.IDENT, "f"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.COMMA, ","},
		{token.IDENT, "b"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "a"},
		{token.AND, "&&"},
		{token.IDENT, "b"},
		{token.OR, "||"},
		{token.BANG, "!"},
		{token.IDENT, "a"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.STRING, "hi\n"},
		{token.EQ, "=="},
		{token.STRING, "there"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.wantType {
			t.Fatalf("test %d: type mismatch: want %q got %q (lexeme %q)", i, tt.wantType, tok.Type, tok.Lexeme)
		}
		if tok.Lexeme != tt.wantLexeme {
			t.Fatalf("test %d: lexeme mismatch: want %q got %q", i, tt.wantLexeme, tok.Lexeme)
		}
	}
}

func TestNextTokenComments(t *testing.T) {
	input := "1 // line comment\n+ /* block\ncomment */ 2"
	l := New(input)

	want := []token.Type{token.NUMBER, token.PLUS, token.NUMBER, token.EOF}
	for i, wt := range want {
		tok := l.NextToken()
		if tok.Type != wt {
			t.Fatalf("test %d: want %q got %q", i, wt, tok.Type)
		}
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"never closes`)
	tok := l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("want ILLEGAL, got %q", tok.Type)
	}
}
