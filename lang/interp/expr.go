package interp

import (
	"fmt"

	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/token"
)

func (it *Interp) eval(expr ast.Expr) (Value, error) {
	switch e := expr.(type) {
	case *ast.Literal:
		if e.Value == nil {
			return Nil{}, nil
		}
		return e.Value, nil
	case *ast.Grouping:
		return it.eval(e.Expression)
	case *ast.Unary:
		return it.evalUnary(e)
	case *ast.Binary:
		return it.evalBinary(e)
	case *ast.Logical:
		return it.evalLogical(e)
	case *ast.Variable:
		return it.lookUpVariable(e.Name, e, e.Line)
	case *ast.Assign:
		return it.evalAssign(e)
	case *ast.Call:
		return it.evalCall(e)
	case *ast.Get:
		return it.evalGet(e)
	case *ast.Set:
		return it.evalSet(e)
	case *ast.This:
		return it.lookUpVariable("this", e, e.Line)
	case *ast.Super:
		return it.evalSuper(e)
	default:
		panic(fmt.Sprintf("interp: unhandled expression type %T", expr))
	}
}

// lookUpVariable implements look_up_variable: if the resolver recorded a
// distance for expr, read from exactly that many enclosing environments;
// otherwise fall back to globals.
func (it *Interp) lookUpVariable(name string, expr ast.Expr, line int) (Value, error) {
	if dist, ok := it.locals[expr]; ok {
		return it.env.GetAt(dist, name), nil
	}
	if v, ok := it.Globals.Get(name); ok {
		return v, nil
	}
	return nil, &RuntimeError{Line: line, Token: name, Msg: "Undefined variable '" + name + "'."}
}

func (it *Interp) evalAssign(e *ast.Assign) (Value, error) {
	v, err := it.eval(e.Value)
	if err != nil {
		return nil, err
	}
	if dist, ok := it.locals[e]; ok {
		it.env.AssignAt(dist, e.Name, v)
		return v, nil
	}
	if it.Globals.Assign(e.Name, v) {
		return v, nil
	}
	return nil, &RuntimeError{Line: e.Line, Token: e.Name, Msg: "Undefined variable '" + e.Name + "'."}
}

func (it *Interp) evalUnary(e *ast.Unary) (Value, error) {
	v, err := it.eval(e.Operand)
	if err != nil {
		return nil, err
	}
	switch e.Op {
	case token.MINUS:
		n, ok := v.(float64)
		if !ok {
			return nil, &RuntimeError{Line: e.Line, Token: e.Op.String(), Msg: "Operand must be a number."}
		}
		return -n, nil
	case token.BANG:
		return !truthy(v), nil
	default:
		panic(fmt.Sprintf("interp: unhandled unary operator %v", e.Op))
	}
}

func (it *Interp) evalLogical(e *ast.Logical) (Value, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return nil, err
	}
	if e.Op == token.OR {
		if truthy(left) {
			return left, nil
		}
	} else { // token.AND
		if !truthy(left) {
			return left, nil
		}
	}
	return it.eval(e.Right)
}

func (it *Interp) evalBinary(e *ast.Binary) (Value, error) {
	left, err := it.eval(e.Left)
	if err != nil {
		return nil, err
	}
	right, err := it.eval(e.Right)
	if err != nil {
		return nil, err
	}

	switch e.Op {
	case token.EQUAL_EQUAL:
		return valuesEqual(left, right), nil
	case token.BANG_EQUAL:
		return !valuesEqual(left, right), nil
	case token.PLUS:
		if ln, ok := left.(float64); ok {
			if rn, ok := right.(float64); ok {
				return ln + rn, nil
			}
		}
		if ls, ok := left.(string); ok {
			if rs, ok := right.(string); ok {
				return ls + rs, nil
			}
		}
		return nil, &RuntimeError{Line: e.Line, Token: e.Op.String(), Msg: "Operands must be two numbers or two strings."}
	case token.MINUS, token.SLASH, token.STAR, token.GREATER, token.GREATER_EQUAL, token.LESS, token.LESS_EQUAL:
		ln, lok := left.(float64)
		rn, rok := right.(float64)
		if !lok || !rok {
			return nil, &RuntimeError{Line: e.Line, Token: e.Op.String(), Msg: "Operands must be numbers."}
		}
		switch e.Op {
		case token.MINUS:
			return ln - rn, nil
		case token.SLASH:
			return ln / rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.GREATER:
			return ln > rn, nil
		case token.GREATER_EQUAL:
			return ln >= rn, nil
		case token.LESS:
			return ln < rn, nil
		case token.LESS_EQUAL:
			return ln <= rn, nil
		}
	}
	panic(fmt.Sprintf("interp: unhandled binary operator %v", e.Op))
}

func (it *Interp) evalCall(e *ast.Call) (Value, error) {
	callee, err := it.eval(e.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Value, len(e.Args))
	for i, a := range e.Args {
		v, err := it.eval(a)
		if err != nil {
			return nil, err
		}
		args[i] = v
	}

	fn, ok := callee.(Callable)
	if !ok {
		return nil, &RuntimeError{Line: e.Line, Token: e.ClosingParen, Msg: "Can only call functions and classes."}
	}
	if len(args) != fn.Arity() {
		return nil, &RuntimeError{Line: e.Line, Token: e.ClosingParen, Msg: fmt.Sprintf("Expected %d arguments but got %d.", fn.Arity(), len(args))}
	}
	return fn.Call(it, args)
}

func (it *Interp) evalGet(e *ast.Get) (Value, error) {
	obj, err := it.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Line: e.Line, Token: e.Name, Msg: "Only instances have properties."}
	}
	v, ok := inst.Get(e.Name)
	if !ok {
		return nil, &RuntimeError{Line: e.Line, Token: e.Name, Msg: "Undefined property '" + e.Name + "'."}
	}
	return v, nil
}

func (it *Interp) evalSet(e *ast.Set) (Value, error) {
	obj, err := it.eval(e.Object)
	if err != nil {
		return nil, err
	}
	inst, ok := obj.(*Instance)
	if !ok {
		return nil, &RuntimeError{Line: e.Line, Token: e.Name, Msg: "Only instances have fields."}
	}
	v, err := it.eval(e.Value)
	if err != nil {
		return nil, err
	}
	inst.Set(e.Name, v)
	return v, nil
}

// evalSuper reads the distance recorded for e to find "super" at that depth
// and "this" one level shallower (the instance the method chain is bound
// relative to), then looks up and binds the named method off the
// superclass.
func (it *Interp) evalSuper(e *ast.Super) (Value, error) {
	dist := it.locals[e]
	superVal := it.env.GetAt(dist, "super")
	super, ok := superVal.(*Class)
	if !ok {
		panic("interp: 'super' resolved to a non-Class value")
	}
	instVal := it.env.GetAt(dist-1, "this")
	inst, ok := instVal.(*Instance)
	if !ok {
		panic("interp: 'this' resolved to a non-Instance value")
	}

	method, ok := super.findMethod(e.Method)
	if !ok {
		return nil, &RuntimeError{Line: e.Line, Token: e.Method, Msg: "Undefined property '" + e.Method + "'."}
	}
	return method.bind(inst), nil
}
