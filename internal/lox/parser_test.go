package lox

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrimary(t *testing.T) {
	testCases := []struct {
		toks []*Token
		expr Expr
	}{
		{[]*Token{
			NewToken(NUMBER, "3.14", 3.14, 1),
			tokEOF(1),
		},
			NewLiteralExpr(3.14)},

		{[]*Token{
			NewToken(STRING, "\"a string\"", "a string", 1),
			tokEOF(1),
		},
			NewLiteralExpr("a string")},

		{[]*Token{
			NewToken(TRUE, "true", nil, 1),
			tokEOF(1),
		},
			NewLiteralExpr(true)},

		{[]*Token{
			NewToken(FALSE, "false", nil, 1),
			tokEOF(1),
		},
			NewLiteralExpr(false)},

		{[]*Token{
			NewToken(NIL, "nil", nil, 1),
			tokEOF(1),
		},
			NewLiteralExpr(nil)},

		{[]*Token{
			NewToken(IDENTIFIER, "answer", nil, 1),
			tokEOF(1),
		},
			NewVarExpr(NewToken(IDENTIFIER, "answer", nil, 1))},

		{[]*Token{
			NewToken(LEFT_PAREN, "(", nil, 1),
			NewToken(NUMBER, "3.14", 3.14, 1),
			NewToken(RIGHT_PAREN, ")", nil, 1),
			tokEOF(1),
		},
			NewGroupExpr(NewLiteralExpr(3.14))},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		parser := NewParser(tc.toks, reporter)
		expr := parser.ParseExpr()

		assert.False(reporter.HadError())
		assert.Equal(tc.expr, expr)
	}
}

func TestParseUnary(t *testing.T) {
	testCases := []struct {
		toks []*Token
		expr Expr
	}{
		{[]*Token{
			NewToken(MINUS, "-", nil, 1),
			NewToken(NUMBER, "3.14", 3.14, 1),
			tokEOF(1),
		},
			NewUnaryExpr(
				NewToken(MINUS, "-", nil, 1),
				NewLiteralExpr(3.14)),
		},
		{[]*Token{
			NewToken(BANG, "!", nil, 1),
			NewToken(TRUE, "true", nil, 1),
			tokEOF(1),
		},
			NewUnaryExpr(
				NewToken(BANG, "!", nil, 1),
				NewLiteralExpr(true)),
		},
		{[]*Token{
			NewToken(MINUS, "-", nil, 1),
			NewToken(MINUS, "-", nil, 1),
			NewToken(NUMBER, "3.14", 3.14, 1),
			tokEOF(1),
		},
			NewUnaryExpr(
				NewToken(MINUS, "-", nil, 1),
				NewUnaryExpr(
					NewToken(MINUS, "-", nil, 1),
					NewLiteralExpr(3.14))),
		},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		parser := NewParser(tc.toks, reporter)
		expr := parser.ParseExpr()

		assert.False(reporter.HadError())
		assert.Equal(tc.expr, expr)
	}
}

func TestParseBinaryLeftAssociative(t *testing.T) {
	// a chain of same-precedence operators folds to the left:
	// 2 - 2 - 2 parses as (2 - 2) - 2
	toks := []*Token{
		NewToken(NUMBER, "2", 2.0, 1),
		NewToken(MINUS, "-", nil, 1),
		NewToken(NUMBER, "2", 2.0, 1),
		NewToken(MINUS, "-", nil, 1),
		NewToken(NUMBER, "2", 2.0, 1),
		tokEOF(1),
	}
	expected := NewBinaryExpr(
		NewToken(MINUS, "-", nil, 1),
		NewBinaryExpr(
			NewToken(MINUS, "-", nil, 1),
			NewLiteralExpr(2.0),
			NewLiteralExpr(2.0)),
		NewLiteralExpr(2.0))

	assert := assert.New(t)
	reporter := newMockReporter()
	parser := NewParser(toks, reporter)
	expr := parser.ParseExpr()

	assert.False(reporter.HadError())
	assert.Equal(expected, expr)
}

func TestParseBinaryPrecedence(t *testing.T) {
	// 1 + 2 * 3 parses as 1 + (2 * 3)
	toks := []*Token{
		NewToken(NUMBER, "1", 1.0, 1),
		NewToken(PLUS, "+", nil, 1),
		NewToken(NUMBER, "2", 2.0, 1),
		NewToken(STAR, "*", nil, 1),
		NewToken(NUMBER, "3", 3.0, 1),
		tokEOF(1),
	}
	expected := NewBinaryExpr(
		NewToken(PLUS, "+", nil, 1),
		NewLiteralExpr(1.0),
		NewBinaryExpr(
			NewToken(STAR, "*", nil, 1),
			NewLiteralExpr(2.0),
			NewLiteralExpr(3.0)))

	assert := assert.New(t)
	reporter := newMockReporter()
	parser := NewParser(toks, reporter)
	expr := parser.ParseExpr()

	assert.False(reporter.HadError())
	assert.Equal(expected, expr)
}

func TestParseTernary(t *testing.T) {
	// cond ? 1 : 2
	toks := []*Token{
		NewToken(IDENTIFIER, "cond", nil, 1),
		NewToken(QUESTION, "?", nil, 1),
		NewToken(NUMBER, "1", 1.0, 1),
		NewToken(COLON, ":", nil, 1),
		NewToken(NUMBER, "2", 2.0, 1),
		tokEOF(1),
	}
	expected := NewTernaryExpr(
		NewToken(QUESTION, "?", nil, 1),
		NewVarExpr(NewToken(IDENTIFIER, "cond", nil, 1)),
		NewLiteralExpr(1.0),
		NewLiteralExpr(2.0))

	assert := assert.New(t)
	reporter := newMockReporter()
	parser := NewParser(toks, reporter)
	expr := parser.ParseExpr()

	assert.False(reporter.HadError())
	assert.Equal(expected, expr)
}

func TestParseTernaryRightAssociative(t *testing.T) {
	// x ? y : z ? z1 : z2 parses as x ? y : (z ? z1 : z2),
	// never as (x ? y : z) ? z1 : z2
	ident := func(name string) *Token {
		return NewToken(IDENTIFIER, name, nil, 1)
	}
	toks := []*Token{
		ident("x"),
		NewToken(QUESTION, "?", nil, 1),
		ident("y"),
		NewToken(COLON, ":", nil, 1),
		ident("z"),
		NewToken(QUESTION, "?", nil, 1),
		ident("z1"),
		NewToken(COLON, ":", nil, 1),
		ident("z2"),
		tokEOF(1),
	}
	expected := NewTernaryExpr(
		NewToken(QUESTION, "?", nil, 1),
		NewVarExpr(ident("x")),
		NewVarExpr(ident("y")),
		NewTernaryExpr(
			NewToken(QUESTION, "?", nil, 1),
			NewVarExpr(ident("z")),
			NewVarExpr(ident("z1")),
			NewVarExpr(ident("z2"))))

	assert := assert.New(t)
	reporter := newMockReporter()
	parser := NewParser(toks, reporter)
	expr := parser.ParseExpr()

	assert.False(reporter.HadError())
	assert.Equal(expected, expr)
}

func TestParseTernaryBindsLooserThanEquality(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	expr := parseExprSource("a == b ? 1 : 2", reporter)

	assert.False(reporter.HadError())
	ternary, ok := expr.(*TernaryExpr)
	assert.True(ok)
	assert.IsType(&BinaryExpr{}, ternary.Cond)
}

func TestParseTernaryMissingColon(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	parseExprSource("a ? 1 2", reporter)

	assert.True(reporter.HadError())
	assert.Equal(
		"[line 1] Error at '2': Expect ':' after then branch of ternary expression.",
		reporter.errors[0].Error())
}

func TestParseCallAndGetChain(t *testing.T) {
	// a.b.c() parses as nested get expressions wrapped in a call
	toks := []*Token{
		NewToken(IDENTIFIER, "a", nil, 1),
		NewToken(DOT, ".", nil, 1),
		NewToken(IDENTIFIER, "b", nil, 1),
		NewToken(DOT, ".", nil, 1),
		NewToken(IDENTIFIER, "c", nil, 1),
		NewToken(LEFT_PAREN, "(", nil, 1),
		NewToken(RIGHT_PAREN, ")", nil, 1),
		tokEOF(1),
	}
	expected := NewCallExpr(
		NewGetExpr(
			NewGetExpr(
				NewVarExpr(NewToken(IDENTIFIER, "a", nil, 1)),
				NewToken(IDENTIFIER, "b", nil, 1)),
			NewToken(IDENTIFIER, "c", nil, 1)),
		NewToken(RIGHT_PAREN, ")", nil, 1),
		[]Expr{})

	assert := assert.New(t)
	reporter := newMockReporter()
	parser := NewParser(toks, reporter)
	expr := parser.ParseExpr()

	assert.False(reporter.HadError())
	assert.Equal(expected, expr)
}

func TestParseAssignment(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	expr := parseExprSource("a = b = 1", reporter)

	assert.False(reporter.HadError())
	// assignment chains to the right
	outer, ok := expr.(*AssignExpr)
	assert.True(ok)
	assert.Equal("a", outer.Name.Lexeme)
	inner, ok := outer.Val.(*AssignExpr)
	assert.True(ok)
	assert.Equal("b", inner.Name.Lexeme)
}

func TestParseSetExpression(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	expr := parseExprSource("obj.field = 1", reporter)

	assert.False(reporter.HadError())
	set, ok := expr.(*SetExpr)
	assert.True(ok)
	assert.Equal("field", set.Name.Lexeme)
	assert.IsType(&VarExpr{}, set.Obj)
}

func TestParseInvalidAssignmentTarget(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	parseExprSource("1 = 2", reporter)

	assert.True(reporter.HadError())
	assert.Equal(
		"[line 1] Error at '=': Invalid assignment target.",
		reporter.errors[0].Error())
}

func TestParseVarDeclaration(t *testing.T) {
	testCases := []struct {
		src  string
		stmt Stmt
	}{
		{
			"var answer;",
			NewVarStmt(NewToken(IDENTIFIER, "answer", nil, 1), nil),
		},
		{
			"var answer = 42;",
			NewVarStmt(
				NewToken(IDENTIFIER, "answer", nil, 1),
				NewLiteralExpr(42.0)),
		},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		tokens := NewScanner([]rune(tc.src), reporter).Scan()
		statements := NewParser(tokens, reporter).Parse()

		assert.False(reporter.HadError())
		assert.Equal([]Stmt{tc.stmt}, statements)
	}
}

func TestParsePrintStatement(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	tokens := NewScanner([]rune("print \"hello\";"), reporter).Scan()
	statements := NewParser(tokens, reporter).Parse()

	assert.False(reporter.HadError())
	assert.Equal([]Stmt{NewPrintStmt(NewLiteralExpr("hello"))}, statements)
}

func TestParseClassDeclaration(t *testing.T) {
	assert := assert.New(t)

	src := `class Bacon {
	eat() {
		print "Crunch crunch crunch!";
	}
}`
	reporter := newMockReporter()
	tokens := NewScanner([]rune(src), reporter).Scan()
	statements := NewParser(tokens, reporter).Parse()

	assert.False(reporter.HadError())
	assert.Len(statements, 1)

	class, ok := statements[0].(*ClassStmt)
	assert.True(ok)
	assert.Equal("Bacon", class.Name.Lexeme)
	assert.Len(class.Methods, 1)
	assert.Equal("eat", class.Methods[0].Name.Lexeme)
	assert.Empty(class.Methods[0].Params)
	assert.Equal(
		[]Stmt{NewPrintStmt(NewLiteralExpr("Crunch crunch crunch!"))},
		class.Methods[0].Body)
}

func TestParseClassMethodWithParams(t *testing.T) {
	assert := assert.New(t)

	src := `class Beans {
	init(num_beans) {
		this.num_beans = num_beans;
	}
}`
	reporter := newMockReporter()
	tokens := NewScanner([]rune(src), reporter).Scan()
	statements := NewParser(tokens, reporter).Parse()

	assert.False(reporter.HadError())
	assert.Len(statements, 1)

	class, ok := statements[0].(*ClassStmt)
	assert.True(ok)
	assert.Len(class.Methods, 1)
	init := class.Methods[0]
	assert.Equal("init", init.Name.Lexeme)
	assert.Len(init.Params, 1)
	assert.Equal("num_beans", init.Params[0].Lexeme)
}

func TestParseStatementErrors(t *testing.T) {
	testCases := []struct {
		src string
		msg string
	}{
		{"var answer = 42", "[line 1] Error at end: Expect ';' after variable declaration."},
		{"var = 42;", "[line 1] Error at '=': Expect variable name."},
		{"print 42", "[line 1] Error at end: Expect ';' after value."},
		{"(42;", "[line 1] Error at ';': Expect ')' after expression."},
		{"class {}", "[line 1] Error at '{': Expect class name."},
		{"class Foo { eat() }", "[line 1] Error at '}': Expect '{' before method body."},
		{"break;", "[line 1] Error at 'break': Expect 'break' to appear inside a loop."},
		{"return;", "[line 1] Error at 'return': Can't return from top-level code."},
		{"return 42;", "[line 1] Error at 'return': Can't return from top-level code."},
		{"print this;", "[line 1] Error at 'this': Can't use 'this' outside of a class."},
		{"fun f() { print this; }", "[line 1] Error at 'this': Can't use 'this' outside of a class."},
		{"+42;", "[line 1] Error at '+': Unary '+' expressions are not supported."},
	}

	assert := assert.New(t)
	for _, tc := range testCases {
		reporter := newMockReporter()
		tokens := NewScanner([]rune(tc.src), reporter).Scan()
		NewParser(tokens, reporter).Parse()

		assert.True(reporter.HadError())
		assert.Equal(tc.msg, reporter.errors[0].Error())
	}
}

func TestParseReturnAllowedInsideFunctions(t *testing.T) {
	testCases := []string{
		"fun f() { return 1; }",
		"fun f() { return; }",
		"class Beans { init(n) { if (n < 10) return; this.n = n; } }",
		"fun outer() { fun inner() { return 1; } return inner; }",
	}

	assert := assert.New(t)
	for _, src := range testCases {
		reporter := newMockReporter()
		tokens := NewScanner([]rune(src), reporter).Scan()
		NewParser(tokens, reporter).Parse()

		assert.False(reporter.HadError())
	}
}

func TestParseThisAllowedInsideClassBody(t *testing.T) {
	assert := assert.New(t)

	src := `class Cake {
	taste() {
		print this.flavor;
	}
}
print this;`
	reporter := newMockReporter()
	tokens := NewScanner([]rune(src), reporter).Scan()
	NewParser(tokens, reporter).Parse()

	// the method body is fine, only the use after the class body is rejected
	assert.True(reporter.HadError())
	assert.Len(reporter.errors, 1)
	assert.Equal(
		"[line 6] Error at 'this': Can't use 'this' outside of a class.",
		reporter.errors[0].Error())
}

func TestParseSynchronizesAfterError(t *testing.T) {
	assert := assert.New(t)

	// the bad first declaration must not swallow the good second one
	src := "var 1 = 2;\nvar answer = 42;"
	reporter := newMockReporter()
	tokens := NewScanner([]rune(src), reporter).Scan()
	statements := NewParser(tokens, reporter).Parse()

	assert.True(reporter.HadError())
	assert.Len(statements, 1)
	assert.Equal(
		NewVarStmt(
			NewToken(IDENTIFIER, "answer", nil, 2),
			NewLiteralExpr(42.0)),
		statements[0])
}

func TestParseForDesugarsToWhile(t *testing.T) {
	assert := assert.New(t)

	reporter := newMockReporter()
	tokens := NewScanner(
		[]rune("for (var i = 0; i < 3; i = i + 1) print i;"), reporter,
	).Scan()
	statements := NewParser(tokens, reporter).Parse()

	assert.False(reporter.HadError())
	assert.Len(statements, 1)

	block, ok := statements[0].(*BlockStmt)
	assert.True(ok)
	assert.Len(block.Stmts, 2)
	assert.IsType(&VarStmt{}, block.Stmts[0])

	while, ok := block.Stmts[1].(*WhileStmt)
	assert.True(ok)
	body, ok := while.Body.(*BlockStmt)
	assert.True(ok)
	assert.Len(body.Stmts, 2)
	assert.IsType(&PrintStmt{}, body.Stmts[0])
	assert.IsType(&ExprStmt{}, body.Stmts[1])
}
