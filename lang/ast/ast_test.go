package ast_test

import (
	"testing"

	"github.com/anthony-major/rlox/lang/ast"
	"github.com/stretchr/testify/assert"
)

func TestDistinctNodesAreDistinctMapKeys(t *testing.T) {
	// two syntactically identical Variable nodes must never collide when used
	// as map keys, since the resolver's locals side-table relies on identity.
	a := &ast.Variable{Name: "x", Line: 1}
	b := &ast.Variable{Name: "x", Line: 1}

	m := map[ast.Expr]int{a: 1}
	_, ok := m[b]
	assert.False(t, ok)

	m[b] = 2
	assert.Equal(t, 1, m[a])
	assert.Equal(t, 2, m[b])
}

func TestExprLine(t *testing.T) {
	assert.Equal(t, 7, ast.ExprLine(&ast.Binary{Line: 7}))
	assert.Equal(t, 3, ast.ExprLine(&ast.Super{Line: 3}))
}
