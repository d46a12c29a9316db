package interp

import (
	"github.com/anthony-major/rlox/lang/ast"
	"github.com/dolthub/swiss"
)

// Callable is implemented by every value that can appear as the callee of a
// Call expression: user functions, native functions, and classes
// (instantiation is calling the class).
type Callable interface {
	Arity() int
	Call(interp *Interp, args []Value) (Value, error)
}

// Function is a user-defined function or method value, closing over the
// environment active at its declaration site.
type Function struct {
	Decl          *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Arity() int { return len(f.Decl.Params) }

// Call executes f's body in a fresh environment enclosing its closure, with
// parameters bound to args. Return statements unwind via returnSignal; a
// normal fall-through (or a bare "return;") yields Nil, unless f is a class
// initializer, in which case the bound "this" is always returned.
func (f *Function) Call(it *Interp, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, p := range f.Decl.Params {
		env.Define(p, args[i])
	}

	err := it.executeBlock(f.Decl.Body, env)
	if ret, ok := err.(returnSignal); ok {
		if f.IsInitializer {
			return f.Closure.GetAt(0, "this"), nil
		}
		return ret.value, nil
	}
	if err != nil {
		return nil, err
	}
	if f.IsInitializer {
		return f.Closure.GetAt(0, "this"), nil
	}
	return Nil{}, nil
}

// bind produces a copy of f whose closure additionally binds "this" to
// instance, for use when a method is looked up off an Instance.
func (f *Function) bind(instance *Instance) *Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Decl: f.Decl, Closure: env, IsInitializer: f.IsInitializer}
}

// NativeFunction wraps a Go function as a callable rlox value, e.g. clock().
type NativeFunction struct {
	Name string
	Arty int
	Fn   func(it *Interp, args []Value) (Value, error)
}

func (n *NativeFunction) Arity() int { return n.Arty }
func (n *NativeFunction) Call(it *Interp, args []Value) (Value, error) {
	return n.Fn(it, args)
}

// Class is a runtime class value: a name, an optional superclass, and its
// declared methods, shared by every Instance created from it.
type Class struct {
	Name       string
	Superclass *Class
	Methods    *swiss.Map[string, *Function]
}

// NewClass builds a Class value from its declared methods.
func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	m := swiss.NewMap[string, *Function](uint32(len(methods)))
	for k, v := range methods {
		m.Put(k, v)
	}
	return &Class{Name: name, Superclass: superclass, Methods: m}
}

// findMethod looks up name on c, then its superclass chain.
func (c *Class) findMethod(name string) (*Function, bool) {
	if m, ok := c.Methods.Get(name); ok {
		return m, true
	}
	if c.Superclass != nil {
		return c.Superclass.findMethod(name)
	}
	return nil, false
}

// Arity is the initializer's arity, or 0 if the class has no "init" method.
func (c *Class) Arity() int {
	if init, ok := c.findMethod("init"); ok {
		return init.Arity()
	}
	return 0
}

// Call instantiates c: constructs a fresh Instance and, if c (or a
// superclass) declares "init", invokes it bound to the new instance.
func (c *Class) Call(it *Interp, args []Value) (Value, error) {
	instance := &Instance{Class: c, fields: swiss.NewMap[string, Value](4)}
	if init, ok := c.findMethod("init"); ok {
		if _, err := init.bind(instance).Call(it, args); err != nil {
			return nil, err
		}
	}
	return instance, nil
}

// Instance is a runtime object: a reference to its class plus a
// shared-mutable field table. Aliases of the same Instance observe each
// other's field writes, as required for "this.x = ..." inside methods to be
// visible to the rest of the program.
type Instance struct {
	Class  *Class
	fields *swiss.Map[string, Value]
}

// Get looks up a property: an instance field first, then a bound method
// from the class chain. ok is false if neither exists.
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.fields.Get(name); ok {
		return v, true
	}
	if m, ok := i.Class.findMethod(name); ok {
		return m.bind(i), true
	}
	return nil, false
}

// Set stores value into instance field name, creating it if absent.
func (i *Instance) Set(name string, value Value) {
	i.fields.Put(name, value)
}
