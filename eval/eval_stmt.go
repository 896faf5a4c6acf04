/*
File    : cmm/eval/eval_stmt.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/cmm/env"
	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/value"
)

// ResultKind tags how a statement's execution left its enclosing block:
// fell through normally, or is unwinding for a return/break/continue (spec
// §4.5, GLOSSARY "ExecutionResult"). This is grounded in the teacher's
// eval_controls.go sentinel-error style for break/continue, reworked into
// an explicit result value since CMM's evaluator does not use panics for
// intra-function control flow.
type ResultKind int

const (
	Normal ResultKind = iota
	Return
	Break
	Continue
)

// ExecResult is what executing a statement (or a block of them) produces.
// Value is only meaningful when Kind is Return.
type ExecResult struct {
	Kind  ResultKind
	Value value.Value
}

var normalResult = ExecResult{Kind: Normal}

// execBlock runs stmts in order within e's own fresh child frame, stopping
// at the first non-Normal result (spec §4.5: return/break/continue unwind
// through enclosing blocks until a loop or call boundary absorbs them).
func (e *Evaluator) execBlock(b *parser.BlockStmt, parent *env.Env) (ExecResult, error) {
	frame := env.New(parent)
	for _, s := range b.Stmts {
		res, err := e.execStmt(s, frame)
		if err != nil {
			return ExecResult{}, err
		}
		if res.Kind != Normal {
			return res, nil
		}
	}
	return normalResult, nil
}

func (e *Evaluator) execStmt(s parser.Stmt, fr *env.Env) (ExecResult, error) {
	switch n := s.(type) {
	case *parser.ExprStmt:
		_, err := e.evalExpr(n.X, fr)
		return normalResult, err

	case *parser.BlockStmt:
		return e.execBlock(n, fr)

	case *parser.DeclList:
		return normalResult, e.execDeclList(n, fr)

	case *parser.IfStmt:
		cond, err := e.evalExpr(n.Cond, fr)
		if err != nil {
			return ExecResult{}, err
		}
		if cond.ToBool() {
			return e.execStmt(n.Then, fr)
		}
		if n.Else != nil {
			return e.execStmt(n.Else, fr)
		}
		return normalResult, nil

	case *parser.WhileStmt:
		return e.execWhile(n, fr)

	case *parser.ForStmt:
		return e.execFor(n, fr)

	case *parser.ReturnStmt:
		if n.Value == nil {
			return ExecResult{Kind: Return, Value: value.VoidVal()}, nil
		}
		v, err := e.evalExpr(n.Value, fr)
		if err != nil {
			return ExecResult{}, err
		}
		return ExecResult{Kind: Return, Value: v}, nil

	case *parser.BreakStmt:
		return ExecResult{Kind: Break}, nil

	case *parser.ContinueStmt:
		return ExecResult{Kind: Continue}, nil

	default:
		return ExecResult{}, runtimeErrorf("unhandled statement type %T", s)
	}
}

// execWhile implements spec §4.5's loop semantics: Break stops the loop and
// is absorbed here (does not propagate further); Continue is absorbed here
// too, just short-circuiting to the next condition check; Return propagates
// out to the caller.
func (e *Evaluator) execWhile(n *parser.WhileStmt, fr *env.Env) (ExecResult, error) {
	for {
		if n.Cond != nil {
			cond, err := e.evalExpr(n.Cond, fr)
			if err != nil {
				return ExecResult{}, err
			}
			if !cond.ToBool() {
				return normalResult, nil
			}
		}
		res, err := e.execStmt(n.Body, fr)
		if err != nil {
			return ExecResult{}, err
		}
		switch res.Kind {
		case Break:
			return normalResult, nil
		case Return:
			return res, nil
		}
	}
}

func (e *Evaluator) execFor(n *parser.ForStmt, fr *env.Env) (ExecResult, error) {
	loopFrame := env.New(fr)
	if n.Init != nil {
		if _, err := e.execStmt(n.Init, loopFrame); err != nil {
			return ExecResult{}, err
		}
	}
	for {
		if n.Cond != nil {
			cond, err := e.evalExpr(n.Cond, loopFrame)
			if err != nil {
				return ExecResult{}, err
			}
			if !cond.ToBool() {
				return normalResult, nil
			}
		}
		res, err := e.execStmt(n.Body, loopFrame)
		if err != nil {
			return ExecResult{}, err
		}
		switch res.Kind {
		case Break:
			return normalResult, nil
		case Return:
			return res, nil
		}
		if n.Post != nil {
			if _, err := e.evalExpr(n.Post, loopFrame); err != nil {
				return ExecResult{}, err
			}
		}
	}
}

// execDeclList binds every declaration in n within fr, rejecting
// redeclaration in the same frame (spec §3.5). An array declaration's
// dimensions are evaluated left to right and must each be a positive int
// (spec §4.6); a scalar declaration either evaluates its initializer
// (coercing int to double as needed) or takes the type's default value.
func (e *Evaluator) execDeclList(n *parser.DeclList, fr *env.Env) error {
	for _, d := range n.Decls {
		var v value.Value
		switch {
		case len(d.Dims) > 0:
			dims := make([]int, len(d.Dims))
			for i, dimExpr := range d.Dims {
				dv, err := e.evalExpr(dimExpr, fr)
				if err != nil {
					return err
				}
				if dv.Type != value.Int {
					return runtimeErrorf("array dimension must be int, got %s", dv.Type)
				}
				if dv.I <= 0 {
					return runtimeErrorf("array dimension must be positive, got %d", dv.I)
				}
				dims[i] = int(dv.I)
			}
			v = buildArray(n.BaseType, dims)
		case d.Init != nil:
			iv, err := e.evalExpr(d.Init, fr)
			if err != nil {
				return err
			}
			if !value.AssignableTo(iv.Type, n.BaseType) {
				return runtimeErrorf("cannot initialize %s variable %q with a %s value", n.BaseType, d.Name, iv.Type)
			}
			v = value.CoerceAssign(iv, n.BaseType)
		default:
			v = value.Default(n.BaseType)
		}
		if fr.Bind(d.Name, v) {
			return runtimeErrorf("%q is already declared in this scope", d.Name)
		}
	}
	return nil
}

// buildArray constructs a (possibly nested) array of the given base type
// and dimensions, every leaf at its type's default value (spec §3.3, §4.6).
// A single dims entry yields a rank-1 array of base; more entries nest a
// rank-1 array of (rank-1)-arrays at each level.
func buildArray(base value.Type, dims []int) value.Value {
	if len(dims) == 1 {
		items := make([]value.Value, dims[0])
		for i := range items {
			items[i] = value.Default(base)
		}
		return value.ArrayVal(&value.ArrayData{ElemType: base, Rank: 1, Items: items})
	}
	items := make([]value.Value, dims[0])
	for i := range items {
		items[i] = buildArray(base, dims[1:])
	}
	return value.ArrayVal(&value.ArrayData{ElemType: base, Rank: len(dims), Items: items})
}
