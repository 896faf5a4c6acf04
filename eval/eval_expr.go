/*
File    : cmm/eval/eval_expr.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"github.com/akashmaji946/cmm/env"
	"github.com/akashmaji946/cmm/parser"
	"github.com/akashmaji946/cmm/value"
)

func (e *Evaluator) evalExpr(x parser.Expr, fr *env.Env) (value.Value, error) {
	switch n := x.(type) {
	case *parser.IntLit:
		return value.IntVal(n.Value), nil
	case *parser.DoubleLit:
		return value.DoubleVal(n.Value), nil
	case *parser.BoolLit:
		return value.BoolVal(n.Value), nil
	case *parser.StringLit:
		return value.StringVal(n.Value), nil

	case *parser.Identifier:
		v, ok := fr.Lookup(n.Name)
		if !ok {
			return value.Value{}, runtimeErrorf("undefined variable %q", n.Name)
		}
		return v, nil

	case *parser.UnaryExpr:
		operand, err := e.evalExpr(n.Operand, fr)
		if err != nil {
			return value.Value{}, err
		}
		return value.EvalUnary(n.Op, operand)

	case *parser.BinaryExpr:
		// Short-circuit && and ||: the right operand must not be evaluated
		// at all when the left already decides the result (spec §4.4).
		left, err := e.evalExpr(n.Left, fr)
		if err != nil {
			return value.Value{}, err
		}
		if n.Op == value.LAnd && !left.ToBool() {
			return value.BoolVal(false), nil
		}
		if n.Op == value.LOr && left.ToBool() {
			return value.BoolVal(true), nil
		}
		right, err := e.evalExpr(n.Right, fr)
		if err != nil {
			return value.Value{}, err
		}
		return value.EvalBinary(n.Op, left, right)

	case *parser.InfixExpr:
		return e.evalInfix(n, fr)

	case *parser.IndexExpr:
		arr, idx, err := e.evalArrayIndex(n, fr)
		if err != nil {
			return value.Value{}, err
		}
		return arr.Arr.Items[idx], nil

	case *parser.AssignExpr:
		return e.evalAssign(n, fr)

	case *parser.CallExpr:
		return e.evalCall(n, fr)

	default:
		return value.Value{}, runtimeErrorf("unhandled expression type %T", x)
	}
}

// evalArrayIndex evaluates the array and index subexpressions of an
// IndexExpr, checks both (array-typed, in-bounds int index), and returns
// the array value plus the resolved element position -- shared by both
// the read path (evalExpr) and the write path (evalAssign), spec §4.4/§4.6.
func (e *Evaluator) evalArrayIndex(n *parser.IndexExpr, fr *env.Env) (value.Value, int, error) {
	arr, err := e.evalExpr(n.Array, fr)
	if err != nil {
		return value.Value{}, 0, err
	}
	if arr.Type != value.Array || arr.Arr == nil {
		return value.Value{}, 0, runtimeErrorf("cannot index a %s value", arr.Type)
	}
	idxVal, err := e.evalExpr(n.Index, fr)
	if err != nil {
		return value.Value{}, 0, err
	}
	if idxVal.Type != value.Int {
		return value.Value{}, 0, runtimeErrorf("array index must be int, got %s", idxVal.Type)
	}
	idx := int(idxVal.I)
	if idx < 0 || idx >= len(arr.Arr.Items) {
		return value.Value{}, 0, runtimeErrorf("array index %d out of range [0, %d)", idx, len(arr.Arr.Items))
	}
	return arr, idx, nil
}

// evalAssign resolves n.Target as an lvalue -- an Identifier or an
// IndexExpr, spec §4.4 -- and stores the coerced value of n.Value into it.
// Assigning directly to a variable or element that currently holds an
// array is rejected: only an array's scalar elements are assignable, never
// the aggregate itself (Open Question, see DESIGN.md).
func (e *Evaluator) evalAssign(n *parser.AssignExpr, fr *env.Env) (value.Value, error) {
	rhs, err := e.evalExpr(n.Value, fr)
	if err != nil {
		return value.Value{}, err
	}

	switch target := n.Target.(type) {
	case *parser.Identifier:
		cur, ok := fr.Lookup(target.Name)
		if !ok {
			return value.Value{}, runtimeErrorf("undefined variable %q", target.Name)
		}
		if cur.Type == value.Array {
			return value.Value{}, runtimeErrorf("cannot assign to array %q as a whole", target.Name)
		}
		if !value.AssignableTo(rhs.Type, cur.Type) {
			return value.Value{}, runtimeErrorf("cannot assign a %s value to %q of type %s", rhs.Type, target.Name, cur.Type)
		}
		coerced := value.CoerceAssign(rhs, cur.Type)
		fr.Assign(target.Name, coerced)
		return coerced, nil

	case *parser.IndexExpr:
		arr, idx, err := e.evalArrayIndex(target, fr)
		if err != nil {
			return value.Value{}, err
		}
		elem := arr.Arr.Items[idx]
		if elem.Type == value.Array {
			return value.Value{}, runtimeErrorf("cannot assign to array element %d as a whole", idx)
		}
		if !value.AssignableTo(rhs.Type, elem.Type) {
			return value.Value{}, runtimeErrorf("cannot assign a %s value to an element of type %s", rhs.Type, elem.Type)
		}
		coerced := value.CoerceAssign(rhs, elem.Type)
		arr.Arr.Items[idx] = coerced
		return coerced, nil

	default:
		return value.Value{}, runtimeErrorf("invalid assignment target %T", n.Target)
	}
}

// evalCall dispatches a call per spec §4.6: the user function table first,
// then the native registry, else an undefined-function error. Arguments
// are always evaluated left to right in the caller's own frame before any
// frame switch happens.
func (e *Evaluator) evalCall(n *parser.CallExpr, fr *env.Env) (value.Value, error) {
	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		v, err := e.evalExpr(a, fr)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = v
	}

	if fn, ok := e.Prog.Funcs[n.Callee]; ok {
		parent := e.Top
		if n.DynamicBound {
			parent = fr
		}
		return e.callUserFunction(fn, args, parent)
	}

	if native, ok := e.Natives.Lookup(n.Callee); ok {
		if n.DynamicBound {
			return value.Value{}, runtimeErrorf("native function %q cannot be called dynamic-bound", n.Callee)
		}
		return native(e, args)
	}

	return value.Value{}, runtimeErrorf("undefined function %q", n.Callee)
}

// callUserFunction binds args to fn's parameters (coercing int to double
// per declared parameter type) in a fresh frame parented at parent, runs
// the body, and checks the result against fn's declared return type (spec
// §4.6). A non-void function whose body falls off the end without a
// `return` is a runtime error (Open Question, see DESIGN.md); a void
// function may fall off the end freely.
func (e *Evaluator) callUserFunction(fn *parser.FunctionDefinition, args []value.Value, parent *env.Env) (value.Value, error) {
	if len(args) != len(fn.Params) {
		return value.Value{}, runtimeErrorf("%q expects %d argument(s), got %d", fn.Name, len(fn.Params), len(args))
	}

	frame := env.New(parent)
	for i, p := range fn.Params {
		if !value.AssignableTo(args[i].Type, p.Type) {
			return value.Value{}, runtimeErrorf("%q parameter %q expects %s, got %s", fn.Name, p.Name, p.Type, args[i].Type)
		}
		if p.Name != "" {
			frame.Bind(p.Name, value.CoerceAssign(args[i], p.Type))
		}
	}

	res, err := e.execBody(fn.Body, frame)
	if err != nil {
		return value.Value{}, err
	}

	switch res.Kind {
	case Return:
		if fn.ReturnType == value.Void {
			return value.VoidVal(), nil
		}
		if !value.AssignableTo(res.Value.Type, fn.ReturnType) {
			return value.Value{}, runtimeErrorf("%q must return %s, got %s", fn.Name, fn.ReturnType, res.Value.Type)
		}
		return value.CoerceAssign(res.Value, fn.ReturnType), nil
	case Break, Continue:
		return value.Value{}, runtimeErrorf("unbound break/continue in %q", fn.Name)
	default:
		if fn.ReturnType != value.Void {
			return value.Value{}, runtimeErrorf("%q must return a value of type %s", fn.Name, fn.ReturnType)
		}
		return value.VoidVal(), nil
	}
}

// evalInfix evaluates both operands (left to right, no short-circuiting --
// CMM gives user-defined infix operators no way to express that), then
// calls the operator's body in a fresh frame parented at the top level
// (infix operators are never dynamic-bound). The operand names are bound
// with whatever type the evaluated operand already carries: unlike a
// function parameter, an infix operand has no declared type to coerce
// against (spec §3.4 gives InfixOpDefinition no parameter types).
func (e *Evaluator) evalInfix(n *parser.InfixExpr, fr *env.Env) (value.Value, error) {
	def, ok := e.Prog.Infixes[n.Symbol]
	if !ok {
		return value.Value{}, runtimeErrorf("undefined infix operator %q", n.Symbol)
	}
	left, err := e.evalExpr(n.Left, fr)
	if err != nil {
		return value.Value{}, err
	}
	right, err := e.evalExpr(n.Right, fr)
	if err != nil {
		return value.Value{}, err
	}

	frame := env.New(e.Top)
	if def.LeftName != "" {
		frame.Bind(def.LeftName, left)
	}
	if def.RightName != "" {
		frame.Bind(def.RightName, right)
	}

	res, err := e.execBody(def.Body, frame)
	if err != nil {
		return value.Value{}, err
	}
	switch res.Kind {
	case Return:
		if res.Value.Type == value.Void {
			return value.Value{}, runtimeErrorf("infix operator %q returned void", n.Symbol)
		}
		return res.Value, nil
	case Break, Continue:
		return value.Value{}, runtimeErrorf("unbound break/continue in infix operator %q", n.Symbol)
	default:
		return value.Value{}, runtimeErrorf("infix operator %q fell through without a return", n.Symbol)
	}
}

// execBody runs a function or infix-operator body, which is always a
// BlockStmt, directly against frame rather than through execBlock --
// frame already holds the bound parameters and must not be shadowed by
// another fresh frame layered on top of it.
func (e *Evaluator) execBody(body parser.Stmt, frame *env.Env) (ExecResult, error) {
	block, ok := body.(*parser.BlockStmt)
	if !ok {
		return e.execStmt(body, frame)
	}
	for _, s := range block.Stmts {
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
