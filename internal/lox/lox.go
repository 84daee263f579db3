package lox

import (
	"fmt"
	"strconv"
	"time"
	"unicode"
)

// loxReturn unwinds the interpreter out of a function body when a return
// statement executes. It is passed through the error channel so every visitor
// along the way stops naturally.
type loxReturn struct {
	val interface{}
}

func newLoxReturn(val interface{}) *loxReturn {
	r := new(loxReturn)
	r.val = val
	return r
}

func (r *loxReturn) Error() string {
	return fmt.Sprintf("return %v", stringify(r.val))
}

// loxBreak unwinds the interpreter out of the nearest enclosing loop, using the
// same mechanism as loxReturn.
type loxBreak struct{}

func (b *loxBreak) Error() string {
	return "break"
}

// loxCallable is implemented by Lox's objects that can be called.
type loxCallable interface {
	arity() int
	call(in *Interpreter, args []interface{}) (interface{}, error)
}

type loxNativeFnClock struct{}

func (fn *loxNativeFnClock) arity() int {
	return 0
}

func (fn *loxNativeFnClock) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	return time.Since(time.Unix(0, 0)).Seconds(), nil
}

func (fn *loxNativeFnClock) String() string {
	return "<native fn clock/0>"
}

// loxFn represents a lox function that can be called
type loxFn struct {
	decl    *FunctionStmt
	closure *Environment
	isInit  bool
}

func newLoxFn(decl *FunctionStmt, closure *Environment, isInit bool) *loxFn {
	fn := new(loxFn)
	fn.decl = decl
	fn.closure = closure
	fn.isInit = isInit
	return fn
}

func (fn *loxFn) arity() int {
	return len(fn.decl.Params)
}

func (fn *loxFn) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	/*
		A function encapsulates its parameters, which means each function gets its
		own environment where it stores the encapsulated variables. Each function
		call dynamically creates a new environment, otherwise, recursion would break.
		If there are multiple calls to the same function in play at the same time,
		each needs its own environment, even though they are all calls to the same
		function.
	*/
	env := NewEnvironment(fn.closure)
	for i, param := range fn.decl.Params {
		env.Define(param.Lexeme, args[i])
	}

	if err := in.execBlock(fn.decl.Body, env); err != nil {
		if ret, ok := err.(*loxReturn); ok {
			if fn.isInit {
				return fn.boundThis(), nil
			}
			return ret.val, nil
		}
		return nil, err
	}
	if fn.isInit {
		return fn.boundThis(), nil
	}
	return nil, nil
}

// bind layers a one-entry environment holding `this` between the method's
// closure and its body, producing a method bound to the given instance.
func (fn *loxFn) bind(instance *loxInstance) *loxFn {
	env := NewEnvironment(fn.closure)
	env.Define("this", instance)
	return newLoxFn(fn.decl, env, fn.isInit)
}

// boundThis reads the receiver the method was bound to. An initializer always
// evaluates to its instance, even when it returns early.
func (fn *loxFn) boundThis() interface{} {
	this, _ := fn.closure.Lookup("this")
	return this
}

func (fn *loxFn) String() string {
	return fmt.Sprintf("<fn %s/%d>", fn.decl.Name.Lexeme, fn.arity())
}

func stringify(v interface{}) string {
	switch v := v.(type) {
	case nil:
		return "nil"
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

func isTruthy(value interface{}) bool {
	if value == nil {
		return false
	}
	if v, ok := value.(bool); ok {
		return v
	}
	return true
}

func isAlphanumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isBeginIdent(r rune) bool {
	return unicode.IsLetter(r) || r == '_'
}
