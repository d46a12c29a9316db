// Package resolver implements the static scope-resolution pass that runs
// between parsing and evaluation. It binds every variable reference to a
// scope distance, recorded in a side-table keyed on expression identity, so
// the interpreter never has to search the environment chain at run time.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/anthony-major/rlox/lang/ast"
)

// Error is a single resolver diagnostic. Token is the name the diagnostic
// is attributed to; it is always present for resolver errors.
type Error struct {
	Line  int
	Token string
	Msg   string
}

func (e Error) Error() string {
	return fmt.Sprintf("Line %d at '%s': %s", e.Line, e.Token, e.Msg)
}

// ErrorList collects resolver diagnostics across a full resolve.
type ErrorList []Error

func (el *ErrorList) add(line int, tok, format string, args ...interface{}) {
	*el = append(*el, Error{Line: line, Token: tok, Msg: fmt.Sprintf(format, args...)})
}

func (el ErrorList) Len() int      { return len(el) }
func (el ErrorList) Swap(i, j int) { el[i], el[j] = el[j], el[i] }
func (el ErrorList) Less(i, j int) bool {
	return el[i].Line < el[j].Line
}

// Sort orders the list by source line, ascending.
func (el ErrorList) Sort() { sort.Sort(el) }

func (el ErrorList) Error() string {
	var sb strings.Builder
	for i, e := range el {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(e.Error())
	}
	return sb.String()
}

func (el ErrorList) Err() error {
	if len(el) == 0 {
		return nil
	}
	return el
}

// functionKind tracks what kind of function body the resolver is currently
// inside, so "return" can be validated by context.
type functionKind int

const (
	fnNone functionKind = iota
	fnFunction
	fnInitializer
	fnMethod
)

// classKind tracks whether the resolver is currently inside a class body.
type classKind int

const (
	classNone classKind = iota
	classInClass
	classInSubclass
)

// Locals is the side-table mapping a variable reference or This/Super node
// to its scope distance: the number of enclosing environments to walk, at
// evaluation time, to find the environment that binds it. Absence of an
// entry means the name is a global.
//
// It is keyed on the expression's concrete pointer, wrapped in the ast.Expr
// interface; two distinct occurrences of the same variable name never
// collide because they are two distinct *ast.Variable values, even though
// they compare equal structurally.
type Locals map[ast.Expr]int

type scope map[string]bool

type resolver struct {
	scopes  []scope
	locals  Locals
	errs    ErrorList
	curFn   functionKind
	curCls  classKind
}

// Resolve statically resolves every statement in program, returning the
// locals side-table and any diagnostics. The table is populated on a
// best-effort basis even when errors are reported: a caller may still choose
// to run the program, per the host's error-recovery policy, though the
// typical driver skips execution when resolver errors are present.
func Resolve(program []ast.Stmt) (Locals, error) {
	r := &resolver{locals: make(Locals)}
	r.resolveStmts(program)
	r.errs.Sort()
	return r.locals, r.errs.Err()
}

func (r *resolver) pushScope() { r.scopes = append(r.scopes, scope{}) }
func (r *resolver) popScope()  { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *resolver) peekScope() scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

func (r *resolver) declare(line int, name string) {
	s := r.peekScope()
	if s == nil {
		return
	}
	if _, ok := s[name]; ok {
		r.errs.add(line, name, "Already a variable with this name in this scope.")
	}
	s[name] = false
}

func (r *resolver) define(name string) {
	if s := r.peekScope(); s != nil {
		s[name] = true
	}
}

func (r *resolver) resolveLocal(expr ast.Expr, name string) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
	// not found in any scope: treated as a global, no table entry
}

func (r *resolver) resolveStmts(stmts []ast.Stmt) {
	for _, s := range stmts {
		r.resolveStmt(s)
	}
}

func (r *resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.pushScope()
		r.resolveStmts(s.Statements)
		r.popScope()
	case *ast.Var:
		r.declare(s.Line, s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.Function:
		r.declare(s.Line, s.Name)
		r.define(s.Name)
		r.resolveFunction(s, fnFunction)
	case *ast.ExprStmt:
		r.resolveExpr(s.Expression)
	case *ast.Print:
		r.resolveExpr(s.Expression)
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Then)
		if s.Else != nil {
			r.resolveStmt(s.Else)
		}
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	case *ast.Return:
		if r.curFn == fnNone {
			r.errs.add(s.Line, "return", "Can't return from top-level code.")
		}
		if s.Value != nil {
			if r.curFn == fnInitializer {
				r.errs.add(s.Line, "return", "Can't return a value from an initializer.")
			}
			r.resolveExpr(s.Value)
		}
	case *ast.Class:
		r.resolveClass(s)
	default:
		panic(fmt.Sprintf("resolver: unhandled statement type %T", stmt))
	}
}

func (r *resolver) resolveFunction(fn *ast.Function, kind functionKind) {
	enclosingFn := r.curFn
	r.curFn = kind
	r.pushScope()
	for _, p := range fn.Params {
		r.declare(fn.Line, p)
		r.define(p)
	}
	r.resolveStmts(fn.Body)
	r.popScope()
	r.curFn = enclosingFn
}

func (r *resolver) resolveClass(c *ast.Class) {
	enclosingCls := r.curCls
	r.curCls = classInClass

	r.declare(c.Line, c.Name)
	r.define(c.Name)

	if c.Superclass != nil {
		if c.Superclass.Name == c.Name {
			r.errs.add(c.Superclass.Line, c.Superclass.Name, "A class can't inherit from itself.")
		}
		r.curCls = classInSubclass
		r.resolveExpr(c.Superclass)

		r.pushScope()
		r.peekScope()["super"] = true
	}

	r.pushScope()
	r.peekScope()["this"] = true

	for _, m := range c.Methods {
		kind := fnMethod
		if m.Name == "init" {
			kind = fnInitializer
		}
		r.resolveFunction(m, kind)
	}

	r.popScope() // this
	if c.Superclass != nil {
		r.popScope() // super
	}

	r.curCls = enclosingCls
}

func (r *resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Literal:
		// nothing to resolve
	case *ast.Grouping:
		r.resolveExpr(e.Expression)
	case *ast.Unary:
		r.resolveExpr(e.Operand)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if s := r.peekScope(); s != nil {
			if defined, ok := s[e.Name]; ok && !defined {
				r.errs.add(e.Line, e.Name, "Can't read local variable in its own initializer.")
			}
		}
		r.resolveLocal(e, e.Name)
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, a := range e.Args {
			r.resolveExpr(a)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.This:
		if r.curCls == classNone {
			r.errs.add(e.Line, "this", "Can't use 'this' outside of a class.")
			return
		}
		r.resolveLocal(e, "this")
	case *ast.Super:
		switch r.curCls {
		case classNone:
			r.errs.add(e.Line, "super", "Can't use 'super' outside of a class.")
			return
		case classInClass:
			r.errs.add(e.Line, "super", "Can't use 'super' in a class with no superclass.")
			return
		}
		r.resolveLocal(e, "super")
	default:
		panic(fmt.Sprintf("resolver: unhandled expression type %T", expr))
	}
}
