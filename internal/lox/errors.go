package lox

import "fmt"

// ScanError wraps an error found while scanning the source with the line where
// it occured.
type ScanError struct {
	line    int
	message string
}

func newScanError(line int, message string) error {
	return &ScanError{line, message}
}

// Line returns the source line where the error occured.
func (err *ScanError) Line() int {
	return err.line
}

func (err *ScanError) Error() string {
	return fmt.Sprintf(
		"[line %d] Error: %s",
		err.line,
		err.message,
	)
}

// ParseError wraps a grammar violation with the token where the parser got
// stuck.
type ParseError struct {
	token   *Token
	message string
}

// NewParseError creates a new parser error
func NewParseError(token *Token, message string) error {
	return &ParseError{token, message}
}

// Line returns the source line where the error occured.
func (err *ParseError) Line() int {
	return err.token.Line
}

func (err *ParseError) Error() string {
	if err.token.Typ == EOF {
		return fmt.Sprintf(
			"[line %d] Error at end: %s",
			err.token.Line,
			err.message,
		)
	}
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.token.Line,
		err.token.Lexeme,
		err.message,
	)
}

// RuntimeError wraps the error message returned by the interpreter with the
// token of the expression that failed to evaluate.
type RuntimeError struct {
	token   *Token
	message string
}

// NewRuntimeError creates a new interpreter error
func NewRuntimeError(token *Token, message string) error {
	return &RuntimeError{token, message}
}

// Line returns the source line where the error occured.
func (err *RuntimeError) Line() int {
	return err.token.Line
}

func (err *RuntimeError) Error() string {
	return fmt.Sprintf(
		"[line %d] Error at '%s': %s",
		err.token.Line,
		err.token.Lexeme,
		err.message,
	)
}
