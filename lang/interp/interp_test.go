package interp_test

import (
	"bytes"
	"testing"

	"github.com/anthony-major/rlox/lang/interp"
	"github.com/anthony-major/rlox/lang/parser"
	"github.com/anthony-major/rlox/lang/resolver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runProgram(t *testing.T, src string) string {
	t.Helper()
	stmts, err := parser.Parse(src)
	require.NoError(t, err)
	locals, err := resolver.Resolve(stmts)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New(&buf)
	require.NoError(t, it.Run(stmts, locals))
	return buf.String()
}

func TestEndToEndScenarios(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"print basics", `print "one"; print true; print 2 + 1;`, "one\ntrue\n3\n"},
		{"var add", `var a = 1; var b = 2; print a + b;`, "3\n"},
		{"shadow in nested scope", `var a = "global"; { fun show() { print a; } show(); var a = "local"; show(); }`, "global\nglobal\n"},
		{"fibonacci", `fun fib(n) { if (n < 2) return n; return fib(n-1) + fib(n-2); } print fib(10);`, "55\n"},
		{"method call", `class Bacon { eat() { print "Crunch!"; } } Bacon().eat();`, "Crunch!\n"},
		{"super call", `class A { m() { print "A"; } } class B < A { m() { super.m(); print "B"; } } B().m();`, "A\nB\n"},
		{"initializer field", `class Foo { init(x) { this.x = x; } } var f = Foo(7); print f.x;`, "7\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, runProgram(t, tc.src))
		})
	}
}

func TestTruthiness(t *testing.T) {
	out := runProgram(t, `
		if (nil) print "t"; else print "f";
		if (false) print "t"; else print "f";
		if (0) print "t"; else print "f";
		if ("") print "t"; else print "f";
	`)
	assert.Equal(t, "f\nf\nt\nt\n", out)
}

func TestShortCircuitOr(t *testing.T) {
	out := runProgram(t, `
		fun sideEffect() { print "called"; return true; }
		true or sideEffect();
	`)
	assert.Equal(t, "", out)
}

func TestShortCircuitAnd(t *testing.T) {
	out := runProgram(t, `
		fun sideEffect() { print "called"; return true; }
		false and sideEffect();
	`)
	assert.Equal(t, "", out)
}

func TestMethodBindingProducesDistinctBoundFunctions(t *testing.T) {
	out := runProgram(t, `
		class Counter {
			init() { this.n = 0; }
			bump() { this.n = this.n + 1; return this.n; }
		}
		var c = Counter();
		var a = c.bump;
		var b = c.bump;
		print a();
		print b();
	`)
	assert.Equal(t, "1\n2\n", out)
}

func TestClosureCaptureIsIndependentPerCall(t *testing.T) {
	out := runProgram(t, `
		fun makeCounter() { var i = 0; fun count() { i = i + 1; return i; } return count; }
		var counterA = makeCounter();
		var counterB = makeCounter();
		print counterA();
		print counterA();
		print counterB();
	`)
	assert.Equal(t, "1\n2\n1\n", out)
}

func TestRuntimeErrorOnBadPlusOperands(t *testing.T) {
	stmts, err := parser.Parse(`1 + "a";`)
	require.NoError(t, err)
	locals, err := resolver.Resolve(stmts)
	require.NoError(t, err)

	var buf bytes.Buffer
	it := interp.New(&buf)
	err = it.Run(stmts, locals)
	require.Error(t, err)
	assert.Equal(t, "Line 1 at '+': Operands must be two numbers or two strings.", err.Error())
}

func TestNaNInequality(t *testing.T) {
	out := runProgram(t, `
		var nan = 0.0 / 0.0;
		print nan == nan;
	`)
	assert.Equal(t, "false\n", out)
}

func TestNumberDisplayStripsTrailingZero(t *testing.T) {
	out := runProgram(t, `print 3.0; print 3.5;`)
	assert.Equal(t, "3\n3.5\n", out)
}
