/*
File    : cmm/eval/eval.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
// Package eval implements CMM's tree-walking evaluator: the environment
// chain, statement execution with Normal/Return/Break/Continue control
// flow, expression evaluation, call dispatch, and lvalue resolution (spec
// §4.5-§4.8). It is grounded in the teacher's eval/evaluator.go (the
// Evaluator struct wiring a writer/reader and a scope chain together,
// RegisterFunction/CallFunction/InvokeBuiltin dispatch order) adapted to
// CMM's own control-flow and type-coercion rules.
package eval

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/akashmaji946/cmm/env"
	"github.com/akashmaji946/cmm/natives"
	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/value"
)

// Evaluator walks a parser.Program's AST. It implements natives.Runtime so
// native callbacks can write to the same stream CMM's own print/println do
// and read from the same stream read/readln/readint do.
type Evaluator struct {
	Prog    *parser.Program
	Natives *natives.Registry
	Top     *env.Env

	out io.Writer
	in  *bufio.Reader
}

// New builds an Evaluator over prog, writing to out and reading from in.
func New(prog *parser.Program, out io.Writer, in io.Reader) *Evaluator {
	return &Evaluator{
		Prog:    prog,
		Natives: natives.NewRegistry(),
		Top:     env.New(nil),
		out:     out,
		in:      bufio.NewReader(in),
	}
}

func (e *Evaluator) Stdout() io.Writer     { return e.out }
func (e *Evaluator) Stdin() *bufio.Reader { return e.in }

// Fatal is returned by Run to signal the interpreter should print
// "CMM Runtime Error: MSG" and exit non-zero (spec §4.8). It carries no
// source location, unlike a lex/parse diagnostic.
type Fatal struct{ Msg string }

func (f *Fatal) Error() string { return f.Msg }

func asFatal(err error) *Fatal {
	if err == nil {
		return nil
	}
	if f, ok := err.(*Fatal); ok {
		return f
	}
	return &Fatal{Msg: err.Error()}
}

// Run executes the program per spec §4.7: every top-level statement runs
// first; a top-level `return` of an int value becomes the exit code
// immediately (no `main` call follows). Otherwise, if a function named
// `main` exists, it is called with either no arguments or a single
// string-array argument of argv, and its result, coerced to int, becomes
// the exit code. With no top-level return and no `main`, the exit code is 0.
func (e *Evaluator) Run(argv []string) (exitCode int, fatalErr *Fatal) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fatal); ok {
				fatalErr = f
				return
			}
			panic(r)
		}
	}()

	// Top-level statements execute directly in e.Top itself, not in a fresh
	// child frame: declarations made here must be visible as globals to
	// every ordinary (non-dynamic-bound) function call, which parents its
	// own frame at e.Top (spec §4.6/§4.7).
	result, err := e.execBody(e.Prog.TopLevel, e.Top)
	if err != nil {
		return 1, asFatal(err)
	}

	switch result.Kind {
	case Return:
		if result.Value.Type != value.Int {
			return 1, &Fatal{Msg: fmt.Sprintf("top-level return must be int, got %s", result.Value.Type)}
		}
		return int(result.Value.I), nil
	case Break, Continue:
		return 1, &Fatal{Msg: "unbound break/continue"}
	}

	main, ok := e.Prog.Funcs["main"]
	if !ok {
		return 0, nil
	}

	var args []value.Value
	switch len(main.Params) {
	case 0:
		args = nil
	case 1:
		items := make([]value.Value, len(argv))
		for i, a := range argv {
			items[i] = value.StringVal(a)
		}
		args = []value.Value{value.ArrayVal(&value.ArrayData{ElemType: value.String, Rank: 1, Items: items})}
	default:
		return 1, &Fatal{Msg: "main must take zero or one parameters"}
	}

	mainResult, err := e.callUserFunction(main, args, e.Top)
	if err != nil {
		return 1, asFatal(err)
	}
	return int(mainResult.ToInt()), nil
}

// EvalLine executes a single top-level statement against e's persistent
// top-level frame and reports the value an expression statement produced
// (VoidVal for every other statement kind), so a REPL can print results
// line by line without re-running the whole program each time. A `return`
// reaching here is an error (unlike Run, where a top-level int return
// becomes the exit code); `break`/`continue` are errors here, as in Run.
func (e *Evaluator) EvalLine(s parser.Stmt) (value.Value, error) {
	if es, ok := s.(*parser.ExprStmt); ok {
		return e.evalExpr(es.X, e.Top)
	}
	res, err := e.execStmt(s, e.Top)
	if err != nil {
		return value.Value{}, err
	}
	switch res.Kind {
	case Return:
		return value.Value{}, runtimeErrorf("unbound return")
	case Break, Continue:
		return value.Value{}, runtimeErrorf("unbound break/continue")
	}
	return value.VoidVal(), nil
}

// MergeDefinitions folds a freshly parsed fragment's function and infix
// tables into e.Prog so that later REPL lines can call what an earlier
// line defined.
func (e *Evaluator) MergeDefinitions(prog *parser.Program) {
	for name, fn := range prog.Funcs {
		e.Prog.Funcs[name] = fn
	}
	for sym, def := range prog.Infixes {
		e.Prog.Infixes[sym] = def
	}
}

// runtimeErrorf builds the message-only error spec §7/§4.8 mandates for
// every runtime failure.
func runtimeErrorf(format string, args ...any) error {
	return &value.RuntimeError{Msg: fmt.Sprintf(format, args...)}
}

// PrintFatal writes a runtime error the way spec §4.8 requires:
// "CMM Runtime Error: MSG", no location.
func PrintFatal(w io.Writer, f *Fatal) {
	fmt.Fprintf(w, "CMM Runtime Error: %s\n", f.Msg)
}

// Main is the convenience entry point cmd/cmm uses: evaluate prog, print
// any fatal runtime error to stderr, and return the process exit code.
func Main(prog *parser.Program, argv []string) int {
	ev := New(prog, os.Stdout, os.Stdin)
	code, fatal := ev.Run(argv)
	if fatal != nil {
		PrintFatal(os.Stderr, fatal)
		return 1
	}
	return code
}
