/*
File    : cmm/eval/eval_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"bytes"
	"strings"
	"testing"

	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/stretchr/testify/require"
)

func runSource(t *testing.T, src string, args ...string) (string, int) {
	t.Helper()
	sm := sourcemgr.NewFromBytes("<test>", []byte(src), true)
	p := parser.New(sm)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())

	var out bytes.Buffer
	ev := New(prog, &out, strings.NewReader(""))
	code, fatal := ev.Run(args)
	if fatal != nil {
		return out.String(), -1
	}
	return out.String(), code
}

func TestEval_PrintConstantFoldedArithmetic(t *testing.T) {
	out, code := runSource(t, `int x = 2 + 3 * 4; print(x);`)
	require.Equal(t, 0, code)
	require.Equal(t, "14 ", out)
}

func TestEval_FactorialRecursion(t *testing.T) {
	out, code := runSource(t, `
		int fact(int n) {
			if (n <= 1) { return 1; }
			return n * fact(n - 1);
		}
		print(fact(5));
	`)
	require.Equal(t, 0, code)
	require.Equal(t, "120 ", out)
}

func TestEval_WhileLoopAndBreak(t *testing.T) {
	out, code := runSource(t, `
		int i = 0;
		int sum = 0;
		while (true) {
			if (i >= 5) { break; }
			sum = sum + i;
			i = i + 1;
		}
		print(sum);
	`)
	require.Equal(t, 0, code)
	require.Equal(t, "10 ", out)
}

func TestEval_ArrayIndexAssignment(t *testing.T) {
	out, code := runSource(t, `
		int a[3];
		a[0] = 10;
		a[1] = a[0] + 5;
		print(a[1]);
	`)
	require.Equal(t, 0, code)
	require.Equal(t, "15 ", out)
}

func TestEval_ArrayAggregateAssignmentRejected(t *testing.T) {
	_, code := runSource(t, `
		int a[2];
		int b[2];
		a = b;
	`)
	require.Equal(t, -1, code)
}

func TestEval_IntDivisionByZeroIsFatal(t *testing.T) {
	_, code := runSource(t, `int x = 1 / 0;`)
	require.Equal(t, -1, code)
}

func TestEval_DoubleDivisionByZeroIsInf(t *testing.T) {
	out, code := runSource(t, `double x = 1.0 / 0.0; print(x);`)
	require.Equal(t, 0, code)
	require.Equal(t, "+Inf ", out)
}

func TestEval_TopLevelReturnBecomesExitCode(t *testing.T) {
	_, code := runSource(t, `return 7;`)
	require.Equal(t, 7, code)
}

func TestEval_MainCalledWithArgv(t *testing.T) {
	out, code := runSource(t, `
		int main(string argv[]) {
			print(len(argv));
			return 0;
		}
	`, "a", "b", "c")
	require.Equal(t, 0, code)
	require.Equal(t, "3 ", out)
}

func TestEval_DynamicBoundCallSeesCallerFrame(t *testing.T) {
	out, code := runSource(t, `
		int helper() {
			return x + 1;
		}
		int caller() {
			int x = 41;
			return @helper();
		}
		print(caller());
	`)
	require.Equal(t, 0, code)
	require.Equal(t, "42 ", out)
}

func TestEval_OrdinaryCallCannotSeeCallerLocals(t *testing.T) {
	_, code := runSource(t, `
		int helper() {
			return x + 1;
		}
		int caller() {
			int x = 41;
			return helper();
		}
		print(caller());
	`)
	require.Equal(t, -1, code)
}

func TestEval_InfixOperatorDefinition(t *testing.T) {
	out, code := runSource(t, `
		infix a ** b = { return a * a + b; }
		print(2 ** 3);
	`)
	require.Equal(t, 0, code)
	require.Equal(t, "7 ", out)
}

func TestEval_MissingReturnIsRuntimeError(t *testing.T) {
	_, code := runSource(t, `
		int f() {
			int x = 1;
		}
		print(f());
	`)
	require.Equal(t, -1, code)
}

func TestEval_StringConcatCoercesNonString(t *testing.T) {
	out, code := runSource(t, `print("n=" + 42);`)
	require.Equal(t, 0, code)
	require.Equal(t, "n=42 ", out)
}
