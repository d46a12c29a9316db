package interp

import (
	"fmt"
	"io"
	"time"

	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/resolver"
)

// RuntimeError is reported by the evaluator; it halts the program currently
// running (but not, in REPL mode, the host's read loop). Token is the
// lexeme, if any, the diagnostic is attributed to; an empty Token omits the
// "at '...'" clause.
type RuntimeError struct {
	Line  int
	Token string
	Msg   string
}

func (e *RuntimeError) Error() string {
	if e.Token == "" {
		return fmt.Sprintf("Line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("Line %d at '%s': %s", e.Line, e.Token, e.Msg)
}

// returnSignal is the distinguished control-flow signal used to unwind a
// "return" statement up to the enclosing function call. It implements
// error only so it can travel through the same Go return-value channel as
// a RuntimeError without being confused for one: callers type-assert for
// returnSignal explicitly rather than checking err != nil and stopping.
type returnSignal struct{ value Value }

func (returnSignal) Error() string { return "return outside of function" }

// Interp holds the mutable state of a single evaluating program: the
// outermost ("globals") environment, the current environment (the head of
// the active scope chain), and the locals side-table produced by the
// resolver.
type Interp struct {
	Globals *Environment
	env     *Environment
	locals  resolver.Locals
	stdout  io.Writer
}

// New creates an interpreter with native functions installed in a fresh
// globals environment. stdout receives the output of "print" statements.
func New(stdout io.Writer) *Interp {
	globals := NewEnvironment(nil)
	it := &Interp{Globals: globals, env: globals, stdout: stdout}
	it.defineNatives()
	return it
}

func (it *Interp) defineNatives() {
	it.Globals.Define("clock", &NativeFunction{
		Name: "clock",
		Arty: 0,
		Fn: func(_ *Interp, _ []Value) (Value, error) {
			return float64(time.Now().UnixNano()) / 1e9, nil
		},
	})
}

// Run executes program (a parsed and resolved statement list) against it's
// persistent state, using locals to resolve variable references. It
// returns the first RuntimeError encountered, if any; earlier statements'
// side effects (including prior "print" output) are not rolled back, per
// the single-threaded, last-write-wins execution model.
func (it *Interp) Run(program []ast.Stmt, locals resolver.Locals) error {
	it.locals = locals
	for _, stmt := range program {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) execute(stmt ast.Stmt) error {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		_, err := it.eval(s.Expression)
		return err
	case *ast.Print:
		v, err := it.eval(s.Expression)
		if err != nil {
			return err
		}
		fmt.Fprintln(it.stdout, display(v))
		return nil
	case *ast.Var:
		var v Value = Nil{}
		if s.Initializer != nil {
			var err error
			v, err = it.eval(s.Initializer)
			if err != nil {
				return err
			}
		}
		it.env.Define(s.Name, v)
		return nil
	case *ast.Block:
		return it.executeBlock(s.Statements, NewEnvironment(it.env))
	case *ast.If:
		cond, err := it.eval(s.Condition)
		if err != nil {
			return err
		}
		if truthy(cond) {
			return it.execute(s.Then)
		} else if s.Else != nil {
			return it.execute(s.Else)
		}
		return nil
	case *ast.While:
		for {
			cond, err := it.eval(s.Condition)
			if err != nil {
				return err
			}
			if !truthy(cond) {
				return nil
			}
			if err := it.execute(s.Body); err != nil {
				return err
			}
		}
	case *ast.Function:
		fn := &Function{Decl: s, Closure: it.env}
		it.env.Define(s.Name, fn)
		return nil
	case *ast.Return:
		var v Value = Nil{}
		if s.Value != nil {
			var err error
			v, err = it.eval(s.Value)
			if err != nil {
				return err
			}
		}
		return returnSignal{value: v}
	case *ast.Class:
		return it.executeClass(s)
	default:
		panic(fmt.Sprintf("interp: unhandled statement type %T", stmt))
	}
}

// executeBlock runs stmts with env as the current environment, restoring
// the previous environment on every exit path: normal completion, a
// returnSignal unwind, or a RuntimeError.
func (it *Interp) executeBlock(stmts []ast.Stmt, env *Environment) error {
	prev := it.env
	it.env = env
	defer func() { it.env = prev }()

	for _, stmt := range stmts {
		if err := it.execute(stmt); err != nil {
			return err
		}
	}
	return nil
}

func (it *Interp) executeClass(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		v, err := it.eval(s.Superclass)
		if err != nil {
			return err
		}
		sc, ok := v.(*Class)
		if !ok {
			return &RuntimeError{Line: s.Superclass.Line, Token: s.Superclass.Name, Msg: "Superclass must be a class."}
		}
		superclass = sc
	}

	it.env.Define(s.Name, Nil{})

	env := it.env
	if s.Superclass != nil {
		env = NewEnvironment(it.env)
		env.Define("super", superclass)
	}

	methods := make(map[string]*Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name] = &Function{Decl: m, Closure: env, IsInitializer: m.Name == "init"}
	}

	class := NewClass(s.Name, superclass, methods)
	it.env.Assign(s.Name, class)
	return nil
}
