// Package interp implements the tree-walking evaluator: runtime values,
// environments, functions, classes and the statement/expression evaluation
// rules that drive a parsed and resolved program.
package interp

import (
	"fmt"
	"math"
	"strconv"
)

// Value is any rlox runtime value: Nil, a bool, a float64 (Number), a
// string (String), *Function, *NativeFunction, *Class or *Instance.
type Value interface{}

// Nil is the single rlox nil value.
type Nil struct{}

func (Nil) String() string { return "nil" }

// display renders v the way "print" emits it to stdout.
func display(v Value) string {
	switch v := v.(type) {
	case Nil:
		return "nil"
	case nil:
		return "nil"
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return formatNumber(v)
	case string:
		return v
	case *Function:
		return "<fn " + v.Decl.Name + ">"
	case *NativeFunction:
		return "<native fn " + v.Name + ">"
	case *Class:
		return v.Name
	case *Instance:
		return v.Class.Name + " instance"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// formatNumber matches the reference interpreter's rendering of numbers: an
// integral value prints without a decimal point, the rest uses Go's
// shortest round-tripping representation.
func formatNumber(f float64) string {
	if f == math.Trunc(f) && !math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// truthy implements rlox's truthiness rule: everything is truthy except nil
// and the boolean false.
func truthy(v Value) bool {
	switch v := v.(type) {
	case Nil:
		return false
	case nil:
		return false
	case bool:
		return v
	default:
		return true
	}
}

// valuesEqual implements rlox's "==" semantics: cross-type comparisons are
// always false, same-type comparisons use Go's native equality (so NaN !=
// NaN for Number, matching IEEE-754).
func valuesEqual(a, b Value) bool {
	if isNil(a) && isNil(b) {
		return true
	}
	if isNil(a) || isNil(b) {
		return false
	}
	switch a := a.(type) {
	case bool:
		b, ok := b.(bool)
		return ok && a == b
	case float64:
		b, ok := b.(float64)
		return ok && a == b
	case string:
		b, ok := b.(string)
		return ok && a == b
	default:
		return a == b
	}
}

func isNil(v Value) bool {
	if v == nil {
		return true
	}
	_, ok := v.(Nil)
	return ok
}
