/*
File    : cmm/parser/astprint.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"fmt"
	"io"
)

// indentSize is the number of spaces per nesting level in Dump's output,
// matching the teacher's PrintingVisitor convention in main/print_visitor.go.
const indentSize = 2

// Dump writes prog's AST as an indented tree to w -- the `-p|--parse` CLI
// mode (spec §6.2). Unlike the teacher's PrintingVisitor, which walks nodes
// through a NodeVisitor's Visit* methods, this is a plain recursive
// function over the same type switch the evaluator and constant folder
// use (see the package doc comment in ast.go).
func Dump(w io.Writer, prog *Program) {
	fmt.Fprintln(w, "Program")
	for _, s := range prog.TopLevel.Stmts {
		dumpStmt(w, s, 1)
	}
	for _, fn := range prog.Funcs {
		fmt.Fprintf(w, "Function %s -> %s\n", fn.Name, fn.ReturnType)
		for _, p := range fn.Params {
			pad(w, 1)
			fmt.Fprintf(w, "Param %s %s\n", p.Type, p.Name)
		}
		dumpStmt(w, fn.Body, 1)
	}
	for _, def := range prog.Infixes {
		fmt.Fprintf(w, "Infix %s(%s, %s)\n", def.Symbol, def.LeftName, def.RightName)
		dumpStmt(w, def.Body, 1)
	}
}

func pad(w io.Writer, depth int) {
	for i := 0; i < depth*indentSize; i++ {
		fmt.Fprint(w, " ")
	}
}

func dumpStmt(w io.Writer, s Stmt, depth int) {
	pad(w, depth)
	switch n := s.(type) {
	case *ExprStmt:
		fmt.Fprint(w, "ExprStmt ")
		dumpExprInline(w, n.X)
		fmt.Fprintln(w)
	case *BlockStmt:
		fmt.Fprintln(w, "Block")
		for _, st := range n.Stmts {
			dumpStmt(w, st, depth+1)
		}
	case *IfStmt:
		fmt.Fprint(w, "If ")
		dumpExprInline(w, n.Cond)
		fmt.Fprintln(w)
		dumpStmt(w, n.Then, depth+1)
		if n.Else != nil {
			pad(w, depth)
			fmt.Fprintln(w, "Else")
			dumpStmt(w, n.Else, depth+1)
		}
	case *WhileStmt:
		fmt.Fprint(w, "While ")
		if n.Cond == nil {
			fmt.Fprint(w, "true")
		} else {
			dumpExprInline(w, n.Cond)
		}
		fmt.Fprintln(w)
		dumpStmt(w, n.Body, depth+1)
	case *ForStmt:
		fmt.Fprintln(w, "For")
		dumpStmt(w, n.Body, depth+1)
	case *ReturnStmt:
		fmt.Fprint(w, "Return ")
		if n.Value != nil {
			dumpExprInline(w, n.Value)
		}
		fmt.Fprintln(w)
	case *BreakStmt:
		fmt.Fprintln(w, "Break")
	case *ContinueStmt:
		fmt.Fprintln(w, "Continue")
	case *DeclList:
		fmt.Fprintf(w, "DeclList %s ", n.BaseType)
		for i, d := range n.Decls {
			if i > 0 {
				fmt.Fprint(w, ", ")
			}
			fmt.Fprint(w, d.Name)
		}
		fmt.Fprintln(w)
	default:
		fmt.Fprintf(w, "%T\n", s)
	}
}

func dumpExprInline(w io.Writer, x Expr) {
	switch n := x.(type) {
	case *IntLit:
		fmt.Fprintf(w, "%d", n.Value)
	case *DoubleLit:
		fmt.Fprintf(w, "%g", n.Value)
	case *BoolLit:
		fmt.Fprintf(w, "%v", n.Value)
	case *StringLit:
		fmt.Fprintf(w, "%q", n.Value)
	case *Identifier:
		fmt.Fprint(w, n.Name)
	case *CallExpr:
		if n.DynamicBound {
			fmt.Fprint(w, "@")
		}
		fmt.Fprintf(w, "%s(...)", n.Callee)
	case *IndexExpr:
		dumpExprInline(w, n.Array)
		fmt.Fprint(w, "[")
		dumpExprInline(w, n.Index)
		fmt.Fprint(w, "]")
	case *AssignExpr:
		dumpExprInline(w, n.Target)
		fmt.Fprint(w, " = ")
		dumpExprInline(w, n.Value)
	case *UnaryExpr:
		fmt.Fprintf(w, "unop(")
		dumpExprInline(w, n.Operand)
		fmt.Fprint(w, ")")
	case *BinaryExpr:
		fmt.Fprint(w, "(")
		dumpExprInline(w, n.Left)
		fmt.Fprint(w, " binop ")
		dumpExprInline(w, n.Right)
		fmt.Fprint(w, ")")
	case *InfixExpr:
		fmt.Fprint(w, "(")
		dumpExprInline(w, n.Left)
		fmt.Fprintf(w, " %s ", n.Symbol)
		dumpExprInline(w, n.Right)
		fmt.Fprint(w, ")")
	default:
		fmt.Fprintf(w, "%T", x)
	}
}
