package lox

import "fmt"

// loxClass is a named, immutable method table shared by all of its instances.
// Calling the class constructs a new instance.
type loxClass struct {
	name    string
	methods map[string]*loxFn
}

func newLoxClass(name string, methods map[string]*loxFn) *loxClass {
	class := new(loxClass)
	class.name = name
	class.methods = methods
	return class
}

func (class *loxClass) findMethod(name string) *loxFn {
	if method, ok := class.methods[name]; ok {
		return method
	}
	return nil
}

func (class *loxClass) arity() int {
	if init := class.findMethod("init"); init != nil {
		return init.arity()
	}
	return 0
}

// call constructs a new instance of the class. When the class declares an
// `init` method, it runs bound to the new instance with the call's arguments.
// The call always evaluates to the instance, no matter what `init` returns.
func (class *loxClass) call(
	in *Interpreter,
	args []interface{},
) (interface{}, error) {
	instance := newLoxInstance(class)
	if init := class.findMethod("init"); init != nil {
		if _, err := init.bind(instance).call(in, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

func (class *loxClass) String() string {
	return class.name
}

// loxInstance holds the per-instance state of a class. Fields live in an open
// map; any name can be written at runtime, declared or not.
type loxInstance struct {
	class  *loxClass
	fields map[string]interface{}
}

func newLoxInstance(class *loxClass) *loxInstance {
	instance := new(loxInstance)
	instance.class = class
	instance.fields = make(map[string]interface{})
	return instance
}

// get reads a property. Fields shadow methods; a method access binds `this` to
// this instance.
func (instance *loxInstance) get(name *Token) (interface{}, error) {
	if field, ok := instance.fields[name.Lexeme]; ok {
		return field, nil
	}
	if method := instance.class.findMethod(name.Lexeme); method != nil {
		return method.bind(instance), nil
	}
	msg := fmt.Sprintf("Undefined property '%s'.", name.Lexeme)
	return nil, NewRuntimeError(name, msg)
}

// set writes a field, creating it when absent.
func (instance *loxInstance) set(name *Token, value interface{}) {
	instance.fields[name.Lexeme] = value
}

func (instance *loxInstance) String() string {
	return instance.class.name + " instance"
}
