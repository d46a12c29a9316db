// Package ast defines the expression and statement node types produced by
// the parser and consumed by the resolver and interpreter.
package ast

import "github.com/anthony-major/rlox/lang/token"

// Node is the common interface implemented by every AST node.
type Node interface {
	node()
}

// Expr is implemented by every expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is implemented by every statement node.
type Stmt interface {
	Node
	stmtNode()
}

// Every concrete node is a distinct pointer type, so that a map keyed by
// Expr (an interface holding a pointer) compares by node identity rather
// than by structural value equality - the resolver's locals side-table
// relies on this.

type (
	// Literal is a literal value: number, string, true, false or nil.
	Literal struct {
		Value interface{} // float64, string, bool, or nil
		Line  int
	}

	// Grouping is a parenthesized expression.
	Grouping struct {
		Expression Expr
		Line       int
	}

	// Unary is a prefix unary operator application: "-" or "!".
	Unary struct {
		Op      token.Kind
		Operand Expr
		Line    int
	}

	// Binary is an infix binary operator application.
	Binary struct {
		Left  Expr
		Op    token.Kind
		Right Expr
		Line  int
	}

	// Logical is "and"/"or", kept distinct from Binary because it short-circuits.
	Logical struct {
		Left  Expr
		Op    token.Kind
		Right Expr
		Line  int
	}

	// Variable is a reference to a named variable.
	Variable struct {
		Name string
		Line int
	}

	// Assign is an assignment to a named variable.
	Assign struct {
		Name  string
		Value Expr
		Line  int
	}

	// Call is a function or method call. ClosingParen is the lexeme of the
	// ")" that closes the argument list, kept for error attribution.
	Call struct {
		Callee       Expr
		Args         []Expr
		ClosingParen string
		Line         int
	}

	// Get is a property access on an instance: expr.Name.
	Get struct {
		Object Expr
		Name   string
		Line   int
	}

	// Set is a property assignment on an instance: expr.Name = value.
	Set struct {
		Object Expr
		Name   string
		Value  Expr
		Line   int
	}

	// This is a reference to the implicit receiver inside a method.
	This struct {
		Line int
	}

	// Super is a reference to a superclass method: super.Method.
	Super struct {
		Method string
		Line   int
	}
)

func (*Literal) node()  {}
func (*Grouping) node() {}
func (*Unary) node()    {}
func (*Binary) node()   {}
func (*Logical) node()  {}
func (*Variable) node() {}
func (*Assign) node()   {}
func (*Call) node()     {}
func (*Get) node()      {}
func (*Set) node()      {}
func (*This) node()     {}
func (*Super) node()    {}

func (*Literal) exprNode()  {}
func (*Grouping) exprNode() {}
func (*Unary) exprNode()    {}
func (*Binary) exprNode()   {}
func (*Logical) exprNode()  {}
func (*Variable) exprNode() {}
func (*Assign) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Set) exprNode()      {}
func (*This) exprNode()     {}
func (*Super) exprNode()    {}

// ExprLine returns the source line an expression node starts on, regardless
// of its concrete type. Useful for diagnostics that only have an Expr in
// hand (e.g. a resolver error on an assignment target).
func ExprLine(e Expr) int {
	switch e := e.(type) {
	case *Literal:
		return e.Line
	case *Grouping:
		return e.Line
	case *Unary:
		return e.Line
	case *Binary:
		return e.Line
	case *Logical:
		return e.Line
	case *Variable:
		return e.Line
	case *Assign:
		return e.Line
	case *Call:
		return e.Line
	case *Get:
		return e.Line
	case *Set:
		return e.Line
	case *This:
		return e.Line
	case *Super:
		return e.Line
	default:
		return 0
	}
}
