package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanSingleCharacterTokens(t *testing.T) {
	testCases := []struct {
		src  string
		toks []*Token
	}{
		{"(", []*Token{NewToken(LEFT_PAREN, "(", nil, 1), tokEOF(1)}},
		{")", []*Token{NewToken(RIGHT_PAREN, ")", nil, 1), tokEOF(1)}},
		{"{", []*Token{NewToken(LEFT_BRACE, "{", nil, 1), tokEOF(1)}},
		{"}", []*Token{NewToken(RIGHT_BRACE, "}", nil, 1), tokEOF(1)}},
		{",", []*Token{NewToken(COMMA, ",", nil, 1), tokEOF(1)}},
		{".", []*Token{NewToken(DOT, ".", nil, 1), tokEOF(1)}},
		{"-", []*Token{NewToken(MINUS, "-", nil, 1), tokEOF(1)}},
		{"+", []*Token{NewToken(PLUS, "+", nil, 1), tokEOF(1)}},
		{"?", []*Token{NewToken(QUESTION, "?", nil, 1), tokEOF(1)}},
		{":", []*Token{NewToken(COLON, ":", nil, 1), tokEOF(1)}},
		{";", []*Token{NewToken(SEMICOLON, ";", nil, 1), tokEOF(1)}},
		{"*", []*Token{NewToken(STAR, "*", nil, 1), tokEOF(1)}},
		{"/", []*Token{NewToken(SLASH, "/", nil, 1), tokEOF(1)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		toks := scanner.Scan()

		assert.False(reporter.HadError())
		assert.Equal(tc.toks, toks)
	}
}

func TestScanOperators(t *testing.T) {
	testCases := []struct {
		src  string
		toks []*Token
	}{
		{"!", []*Token{NewToken(BANG, "!", nil, 1), tokEOF(1)}},
		{"!=", []*Token{NewToken(BANG_EQUAL, "!=", nil, 1), tokEOF(1)}},
		{"=", []*Token{NewToken(EQUAL, "=", nil, 1), tokEOF(1)}},
		{"==", []*Token{NewToken(EQUAL_EQUAL, "==", nil, 1), tokEOF(1)}},
		{"<", []*Token{NewToken(LESS, "<", nil, 1), tokEOF(1)}},
		{"<=", []*Token{NewToken(LESS_EQUAL, "<=", nil, 1), tokEOF(1)}},
		{">", []*Token{NewToken(GREATER, ">", nil, 1), tokEOF(1)}},
		{">=", []*Token{NewToken(GREATER_EQUAL, ">=", nil, 1), tokEOF(1)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		toks := scanner.Scan()

		assert.False(reporter.HadError())
		assert.Equal(tc.toks, toks)
	}
}

func TestScanLiterals(t *testing.T) {
	testCases := []struct {
		src  string
		toks []*Token
	}{
		{"3.14", []*Token{NewToken(NUMBER, "3.14", 3.14, 1), tokEOF(1)}},
		{"42", []*Token{NewToken(NUMBER, "42", 42.0, 1), tokEOF(1)}},
		{"\"a string\"", []*Token{NewToken(STRING, "\"a string\"", "a string", 1), tokEOF(1)}},
		{"\"two\nlines\"", []*Token{NewToken(STRING, "\"two\nlines\"", "two\nlines", 2), tokEOF(2)}},
		{"answer", []*Token{NewToken(IDENTIFIER, "answer", nil, 1), tokEOF(1)}},
		{"_private", []*Token{NewToken(IDENTIFIER, "_private", nil, 1), tokEOF(1)}},
		{"num_beans", []*Token{NewToken(IDENTIFIER, "num_beans", nil, 1), tokEOF(1)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		toks := scanner.Scan()

		assert.False(reporter.HadError())
		assert.Equal(tc.toks, toks)
	}
}

func TestScanKeywords(t *testing.T) {
	testCases := []struct {
		src string
		typ TokenType
	}{
		{"and", AND},
		{"break", BREAK},
		{"class", CLASS},
		{"else", ELSE},
		{"false", FALSE},
		{"fun", FUN},
		{"for", FOR},
		{"if", IF},
		{"nil", NIL},
		{"or", OR},
		{"print", PRINT},
		{"return", RETURN},
		{"this", THIS},
		{"true", TRUE},
		{"var", VAR},
		{"while", WHILE},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		toks := scanner.Scan()

		assert.False(reporter.HadError())
		assert.Equal([]*Token{NewToken(tc.typ, tc.src, nil, 1), tokEOF(1)}, toks)
	}
}

func TestScanSkipsCommentsAndWhitespace(t *testing.T) {
	testCases := []struct {
		src  string
		toks []*Token
	}{
		{"// a comment\nvar", []*Token{NewToken(VAR, "var", nil, 2), tokEOF(2)}},
		{"/* block\ncomment */var", []*Token{NewToken(VAR, "var", nil, 2), tokEOF(2)}},
		{"  \t\r\n var", []*Token{NewToken(VAR, "var", nil, 2), tokEOF(2)}},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		toks := scanner.Scan()

		assert.False(reporter.HadError())
		assert.Equal(tc.toks, toks)
	}
}

func TestScanTernaryExpression(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	scanner := NewScanner([]rune("ready ? 1 : 2"), reporter)
	toks := scanner.Scan()

	assert.False(reporter.HadError())
	assert.Equal([]*Token{
		NewToken(IDENTIFIER, "ready", nil, 1),
		NewToken(QUESTION, "?", nil, 1),
		NewToken(NUMBER, "1", 1.0, 1),
		NewToken(COLON, ":", nil, 1),
		NewToken(NUMBER, "2", 2.0, 1),
		tokEOF(1),
	}, toks)
}

func TestScanReportsLines(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	scanner := NewScanner([]rune("var a;\nvar b;\nb"), reporter)
	toks := scanner.Scan()

	assert.False(reporter.HadError())
	lines := make([]int, 0, len(toks))
	for _, tok := range toks {
		lines = append(lines, tok.Line)
	}
	assert.Equal([]int{1, 1, 1, 2, 2, 2, 3, 3}, lines)
}

func TestScanErrors(t *testing.T) {
	testCases := []struct {
		src string
		msg string
	}{
		{"@", "[line 1] Error: Unexpected character."},
		{"\"unterminated", "[line 1] Error: Unterminated string."},
		{"/* unterminated", "[line 1] Error: Unterminated multiline comment."},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		scanner := NewScanner([]rune(tc.src), reporter)
		scanner.Scan()

		assert.True(reporter.HadError())
		assert.Equal(tc.msg, reporter.errors[0].Error())
	}
}
