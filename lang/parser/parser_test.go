package parser_test

import (
	"testing"

	"github.com/anthony-major/rlox/lang/ast"
	"github.com/anthony-major/rlox/lang/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePrecedence(t *testing.T) {
	stmts, err := parser.Parse("print 1 + 2 * 3;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	es := stmts[0].(*ast.Print)
	bin := es.Expression.(*ast.Binary)
	assert.IsType(t, &ast.Literal{}, bin.Left)
	rhs := bin.Right.(*ast.Binary)
	assert.Equal(t, 2.0, rhs.Left.(*ast.Literal).Value)
	assert.Equal(t, 3.0, rhs.Right.(*ast.Literal).Value)
}

func TestParseIsDeterministic(t *testing.T) {
	const src = `class A < B { init(x) { this.x = x; } m() { return super.m() + 1; } }`
	first, err := parser.Parse(src)
	require.NoError(t, err)
	second, err := parser.Parse(src)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseAssignmentRewritesVariableAndGet(t *testing.T) {
	stmts, err := parser.Parse("a = 1; a.b = 2;")
	require.NoError(t, err)
	require.Len(t, stmts, 2)

	assign := stmts[0].(*ast.ExprStmt).Expression.(*ast.Assign)
	assert.Equal(t, "a", assign.Name)

	set := stmts[1].(*ast.ExprStmt).Expression.(*ast.Set)
	assert.Equal(t, "b", set.Name)
}

func TestParseInvalidAssignmentTargetIsNonFatal(t *testing.T) {
	stmts, err := parser.Parse("1 = 2; print 3;")
	require.Error(t, err)
	// parsing continues past the bad assignment target
	require.Len(t, stmts, 2)
	assert.IsType(t, &ast.Print{}, stmts[1])
}

func TestParseForLoopDesugars(t *testing.T) {
	stmts, err := parser.Parse("for (var i = 0; i < 3; i = i + 1) print i;")
	require.NoError(t, err)
	require.Len(t, stmts, 1)

	block := stmts[0].(*ast.Block)
	require.Len(t, block.Statements, 2)
	assert.IsType(t, &ast.Var{}, block.Statements[0])

	loop := block.Statements[1].(*ast.While)
	assert.NotNil(t, loop.Condition)
	body := loop.Body.(*ast.Block)
	require.Len(t, body.Statements, 2)
	assert.IsType(t, &ast.Print{}, body.Statements[0])
	assert.IsType(t, &ast.ExprStmt{}, body.Statements[1])
}

func TestParseForLoopMissingClausesDefaultsToTrue(t *testing.T) {
	stmts, err := parser.Parse("for (;;) print 1;")
	require.NoError(t, err)
	loop := stmts[0].(*ast.While)
	lit := loop.Condition.(*ast.Literal)
	assert.Equal(t, true, lit.Value)
}

func TestParseCallArgumentLimitIsNonFatal(t *testing.T) {
	args := make([]byte, 0, 256*2)
	for i := 0; i < 256; i++ {
		if i > 0 {
			args = append(args, ',')
		}
		args = append(args, '1')
	}
	src := "f(" + string(args) + ");"
	stmts, err := parser.Parse(src)
	require.Error(t, err)
	require.Len(t, stmts, 1)
}

func TestParseErrorRecoverySynchronizes(t *testing.T) {
	stmts, err := parser.Parse("var ; print 1;")
	require.Error(t, err)
	// the first (broken) declaration is discarded, the second one still parses
	require.Len(t, stmts, 1)
	assert.IsType(t, &ast.Print{}, stmts[0])
}

func TestParseThis(t *testing.T) {
	stmts, err := parser.Parse(`class A { m() { return this; } } `)
	require.NoError(t, err)
	class := stmts[0].(*ast.Class)
	ret := class.Methods[0].Body[0].(*ast.Return)
	assert.IsType(t, &ast.This{}, ret.Value)
}
