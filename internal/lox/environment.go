package lox

import "fmt"

// Environment maps variable names to their values within a lexical scope.
// Environments form a singly-linked chain from the innermost scope out to the
// global scope; lookups walk the chain until a name matches or the chain ends.
type Environment struct {
	enclosing *Environment
	values    map[string]interface{}
}

func NewEnvironment(enclosing *Environment) *Environment {
	return &Environment{enclosing, make(map[string]interface{})}
}

// Define binds the name to the value in this scope, shadowing any binding of
// the same name in an enclosing scope.
func (env *Environment) Define(name string, value interface{}) {
	env.values[name] = value
}

// Assign updates the innermost existing binding for the name. Assigning to a
// name that was never defined is a runtime error.
func (env *Environment) Assign(name *Token, value interface{}) error {
	if _, ok := env.values[name.Lexeme]; ok {
		env.values[name.Lexeme] = value
		return nil
	}
	if env.enclosing != nil {
		return env.enclosing.Assign(name, value)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return NewRuntimeError(name, msg)
}

// Lookup reads the innermost binding for a bare name, for callers that have no
// source token at hand. The second result reports whether the name is bound.
func (env *Environment) Lookup(name string) (interface{}, bool) {
	if value, ok := env.values[name]; ok {
		return value, true
	}
	if env.enclosing != nil {
		return env.enclosing.Lookup(name)
	}
	return nil, false
}

// Get reads the innermost binding for the name.
func (env *Environment) Get(name *Token) (interface{}, error) {
	if value, ok := env.values[name.Lexeme]; ok {
		return value, nil
	}
	if env.enclosing != nil {
		return env.enclosing.Get(name)
	}
	msg := fmt.Sprintf("Undefined variable '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}
