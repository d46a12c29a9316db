package scanner_test

import (
	"testing"

	"github.com/anthony-major/rlox/lang/scanner"
	"github.com/anthony-major/rlox/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanLexemeRoundTrip(t *testing.T) {
	// every displayable spelling scans back to exactly that kind, then EOF.
	cases := map[string]token.Kind{
		"(": token.LPAREN, ")": token.RPAREN, "{": token.LBRACE, "}": token.RBRACE,
		",": token.COMMA, ".": token.DOT, "-": token.MINUS, "+": token.PLUS,
		";": token.SEMICOLON, "/": token.SLASH, "*": token.STAR,
		"!": token.BANG, "!=": token.BANG_EQUAL, "=": token.EQUAL, "==": token.EQUAL_EQUAL,
		">": token.GREATER, ">=": token.GREATER_EQUAL, "<": token.LESS, "<=": token.LESS_EQUAL,
		"and": token.AND, "class": token.CLASS, "else": token.ELSE, "false": token.FALSE,
		"fun": token.FUN, "for": token.FOR, "if": token.IF, "nil": token.NIL, "or": token.OR,
		"print": token.PRINT, "return": token.RETURN, "super": token.SUPER, "this": token.THIS,
		"true": token.TRUE, "var": token.VAR, "while": token.WHILE,
	}
	for src, want := range cases {
		toks, err := scanner.ScanAll(src)
		require.NoError(t, err)
		require.Len(t, toks, 2)
		assert.Equalf(t, want, toks[0].Kind, "scanning %q", src)
		assert.Equal(t, token.EOF, toks[1].Kind)
	}
}

func TestScanGreedyTwoCharOperators(t *testing.T) {
	toks, err := scanner.ScanAll("!= = == <= < >= >")
	require.NoError(t, err)
	kinds := make([]token.Kind, 0, len(toks))
	for _, tk := range toks {
		kinds = append(kinds, tk.Kind)
	}
	assert.Equal(t, []token.Kind{
		token.BANG_EQUAL, token.EQUAL, token.EQUAL_EQUAL, token.LESS_EQUAL,
		token.LESS, token.GREATER_EQUAL, token.GREATER, token.EOF,
	}, kinds)
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	toks, err := scanner.ScanAll("  // a comment\n\tprint 1; // trailing\n")
	require.NoError(t, err)
	require.Len(t, toks, 4)
	assert.Equal(t, token.PRINT, toks[0].Kind)
	assert.Equal(t, 2, toks[0].Line)
	assert.Equal(t, token.NUMBER, toks[1].Kind)
	assert.Equal(t, token.SEMICOLON, toks[2].Kind)
	assert.Equal(t, token.EOF, toks[3].Kind)
}

func TestScanNumberRequiresDigitAfterDot(t *testing.T) {
	toks, err := scanner.ScanAll("1.")
	require.NoError(t, err)
	// the '.' is not consumed, since it is not followed by a digit
	require.Len(t, toks, 3)
	assert.Equal(t, token.NUMBER, toks[0].Kind)
	assert.Equal(t, 1.0, toks[0].Num)
	assert.Equal(t, token.DOT, toks[1].Kind)
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.ScanAll(`"abc`)
	require.Error(t, err)
	el, ok := err.(scanner.ErrorList)
	require.True(t, ok)
	require.Len(t, el, 1)
	assert.Contains(t, el[0].Error(), "Unterminated string.")
}

func TestScanInvalidCharacter(t *testing.T) {
	_, err := scanner.ScanAll("@")
	require.Error(t, err)
	el, ok := err.(scanner.ErrorList)
	require.True(t, ok)
	assert.Contains(t, el[0].Msg, "Unexpected character")
}

func TestScanIdentifierVsKeyword(t *testing.T) {
	toks, err := scanner.ScanAll("forest for")
	require.NoError(t, err)
	require.Len(t, toks, 3)
	assert.Equal(t, token.IDENT, toks[0].Kind)
	assert.Equal(t, "forest", toks[0].Lexeme)
	assert.Equal(t, token.FOR, toks[1].Kind)
}

func TestScanEofIsSticky(t *testing.T) {
	var s scanner.Scanner
	s.Init("")
	for i := 0; i < 3; i++ {
		tok := s.Scan()
		assert.Equal(t, token.EOF, tok.Kind)
	}
}
