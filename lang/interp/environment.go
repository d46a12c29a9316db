package interp

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// Environment is a lexical scope: a binding table plus a pointer to the
// enclosing scope. Environments are shared-mutable and form a strict tree
// via Enclosing (never a cycle), so closures, class scopes and method
// bindings can all hold a reference to the same Environment and observe
// each other's writes.
type Environment struct {
	Enclosing *Environment
	vars      *swiss.Map[string, Value]
}

// NewEnvironment creates a scope enclosed by parent. parent is nil for the
// global environment.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{Enclosing: parent, vars: swiss.NewMap[string, Value](8)}
}

// Define binds name to value in e, shadowing any binding of the same name
// in an enclosing scope (but not redefining an existing binding as an
// error: the resolver is what rejects illegal redeclarations).
func (e *Environment) Define(name string, value Value) {
	e.vars.Put(name, value)
}

// Get looks up name starting at e and walking outward. ok is false if no
// enclosing environment defines it.
func (e *Environment) Get(name string) (Value, bool) {
	for env := e; env != nil; env = env.Enclosing {
		if v, ok := env.vars.Get(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Assign stores value into the nearest enclosing environment (starting at
// e) that already binds name. ok is false if no such environment exists.
func (e *Environment) Assign(name string, value Value) bool {
	for env := e; env != nil; env = env.Enclosing {
		if _, ok := env.vars.Get(name); ok {
			env.vars.Put(name, value)
			return true
		}
	}
	return false
}

// ancestor walks distance environments outward from e.
func (e *Environment) ancestor(distance int) *Environment {
	env := e
	for i := 0; i < distance; i++ {
		if env.Enclosing == nil {
			panic(fmt.Sprintf("interp: environment chain shorter than resolved distance %d", distance))
		}
		env = env.Enclosing
	}
	return env
}

// GetAt reads name from exactly the distance-th enclosing environment, per
// the resolver's recorded scope distance.
func (e *Environment) GetAt(distance int, name string) Value {
	v, _ := e.ancestor(distance).vars.Get(name)
	return v
}

// AssignAt stores value into exactly the distance-th enclosing environment.
func (e *Environment) AssignAt(distance int, name string, value Value) {
	e.ancestor(distance).vars.Put(name, value)
}
