package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tabular/internal/expr/token"
)

func collect(src string) []token.Token {
	l := New(src)
	var toks []token.Token
	for {
		tok := l.NextToken()
		toks = append(toks, tok)
		if tok.Type == token.EOF {
			return toks
		}
	}
}

func types(toks []token.Token) []token.Type {
	out := make([]token.Type, len(toks))
	for i, t := range toks {
		out[i] = t.Type
	}
	return out
}

func TestNextTokenSinglePunctuationAndOperators(t *testing.T) {
	toks := collect("( ) [ ] , ? : + - * / ^")
	assert.Equal(t, []token.Type{
		token.LPAREN, token.RPAREN, token.LBRACKET, token.RBRACKET, token.COMMA,
		token.QUESTION, token.COLON, token.PLUS, token.MINUS, token.STAR, token.SLASH,
		token.CARET, token.EOF,
	}, types(toks))
}

func TestNextTokenDistinguishesNotFromNotEqual(t *testing.T) {
	toks := collect("! !=")
	assert.Equal(t, []token.Type{token.NOT, token.NEQ, token.EOF}, types(toks))
	assert.Equal(t, "!=", toks[1].Literal)
}

func TestNextTokenAndOr(t *testing.T) {
	toks := collect("&& ||")
	assert.Equal(t, []token.Type{token.AND, token.OR, token.EOF}, types(toks))
}

func TestNextTokenSingleAmpersandOrPipeIsIllegal(t *testing.T) {
	toks := collect("& |")
	assert.Equal(t, []token.Type{token.ILLEGAL, token.ILLEGAL, token.EOF}, types(toks))
}

func TestNextTokenComparisonOperators(t *testing.T) {
	toks := collect("= < >")
	assert.Equal(t, []token.Type{token.EQ, token.LT, token.GT, token.EOF}, types(toks))
}

func TestNextTokenIntegerAndRealLiterals(t *testing.T) {
	toks := collect("42 1.50 0.5")
	require := []token.Type{token.INT, token.REAL, token.REAL, token.EOF}
	assert.Equal(t, require, types(toks))
	assert.Equal(t, "42", toks[0].Literal)
	assert.Equal(t, "1.50", toks[1].Literal)
}

func TestNextTokenDotNotFollowedByDigitIsNotConsumed(t *testing.T) {
	toks := collect("5.")
	assert.Equal(t, token.INT, toks[0].Type)
	assert.Equal(t, "5", toks[0].Literal)
}

func TestNextTokenStringLiteral(t *testing.T) {
	toks := collect("'hello world'")
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "hello world", toks[0].Literal)
}

func TestNextTokenUnterminatedStringLiteralReadsToEOF(t *testing.T) {
	toks := collect("'unterminated")
	assert.Equal(t, token.STRING, toks[0].Type)
	assert.Equal(t, "unterminated", toks[0].Literal)
	assert.Equal(t, token.EOF, toks[1].Type)
}

func TestNextTokenIdentifiers(t *testing.T) {
	toks := collect("Amount _private Col1")
	assert.Equal(t, []token.Type{token.IDENT, token.IDENT, token.IDENT, token.EOF}, types(toks))
	assert.Equal(t, "Amount", toks[0].Literal)
	assert.Equal(t, "_private", toks[1].Literal)
	assert.Equal(t, "Col1", toks[2].Literal)
}

func TestNextTokenSkipsWhitespaceIncludingNewlines(t *testing.T) {
	toks := collect("  Amount \t\n  + 1  ")
	assert.Equal(t, []token.Type{token.IDENT, token.PLUS, token.INT, token.EOF}, types(toks))
}

func TestNextTokenIllegalCharacter(t *testing.T) {
	toks := collect("@")
	assert.Equal(t, token.ILLEGAL, toks[0].Type)
	assert.Equal(t, "@", toks[0].Literal)
}

func TestTypeStringRendersEveryType(t *testing.T) {
	assert.Equal(t, "!=", token.NEQ.String())
	assert.Equal(t, "EOF", token.EOF.String())
	assert.Equal(t, "ILLEGAL", token.Type(999).String())
}
