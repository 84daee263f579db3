package lox

import "strings"

type mockReporter struct {
	errors        []error
	hadErr        bool
	hadRuntimeErr bool
}

func newMockReporter() *mockReporter {
	return &mockReporter{make([]error, 0), false, false}
}

func (reporter *mockReporter) Report(err error) {
	reporter.errors = append(reporter.errors, err)
	if _, isRuntimeErr := err.(*RuntimeError); isRuntimeErr {
		reporter.hadRuntimeErr = true
	} else {
		reporter.hadErr = true
	}
}

func (reporter *mockReporter) Reset() {
	reporter.hadErr = false
	reporter.hadRuntimeErr = false
}

func (reporter *mockReporter) HadError() bool {
	return reporter.hadErr
}

func (reporter *mockReporter) HadRuntimeError() bool {
	return reporter.hadRuntimeErr
}

func tokEOF(line int) *Token {
	return NewToken(EOF, "", nil, line)
}

// runScript scans, parses, and interprets the source, returning everything the
// script printed. Errors from any stage end up in the given reporter.
func runScript(src string, reporter Reporter) string {
	var out strings.Builder
	interpreter := NewInterpreter(&out, reporter, false)
	tokens := NewScanner([]rune(src), reporter).Scan()
	statements := NewParser(tokens, reporter).Parse()
	if !reporter.HadError() {
		interpreter.Interpret(statements)
	}
	return out.String()
}

// parseExprSource scans and parses a single expression from the source.
func parseExprSource(src string, reporter Reporter) Expr {
	tokens := NewScanner([]rune(src), reporter).Scan()
	return NewParser(tokens, reporter).ParseExpr()
}
