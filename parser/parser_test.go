/*
File    : cmm/parser/parser_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"testing"

	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/akashmaji946/cmm/value"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) *Program {
	t.Helper()
	sm := sourcemgr.NewFromBytes("<test>", []byte(src), true)
	p := New(sm)
	prog := p.Parse()
	require.False(t, p.HasErrors(), "unexpected parse errors: %v", p.Errors())
	return prog
}

func TestParser_ConstantFoldingArithmetic(t *testing.T) {
	prog := parseSrc(t, "int x = 2 + 3 * 4;")
	dl := prog.TopLevel.Stmts[0].(*DeclList)
	lit, ok := dl.Decls[0].Init.(*IntLit)
	require.True(t, ok, "expected folded IntLit, got %T", dl.Decls[0].Init)
	require.EqualValues(t, 14, lit.Value)
}

func TestParser_ConstantFoldingStringConcat(t *testing.T) {
	prog := parseSrc(t, `string s = "n=" + 42;`)
	dl := prog.TopLevel.Stmts[0].(*DeclList)
	lit, ok := dl.Decls[0].Init.(*StringLit)
	require.True(t, ok, "expected folded StringLit, got %T", dl.Decls[0].Init)
	require.Equal(t, "n=42", lit.Value)
}

func TestParser_IfFoldsConstantCondition(t *testing.T) {
	prog := parseSrc(t, "if (true) { int x = 1; } else { int y = 2; }")
	blk, ok := prog.TopLevel.Stmts[0].(*BlockStmt)
	require.True(t, ok, "expected then-branch block, got %T", prog.TopLevel.Stmts[0])
	require.Len(t, blk.Stmts, 1)
}

func TestParser_WhileFalseFoldsAway(t *testing.T) {
	prog := parseSrc(t, "while (false) { int x = 1; } int y = 2;")
	require.Len(t, prog.TopLevel.Stmts, 2)
	blk, ok := prog.TopLevel.Stmts[0].(*BlockStmt)
	require.True(t, ok)
	require.Empty(t, blk.Stmts)
}

func TestParser_FunctionDefinitionAndCall(t *testing.T) {
	prog := parseSrc(t, `
		int fact(int n) { if (n <= 1) return 1; return n * fact(n - 1); }
		print(fact(6));
	`)
	fn, ok := prog.Funcs["fact"]
	require.True(t, ok)
	require.Equal(t, value.Int, fn.ReturnType)
	require.Len(t, fn.Params, 1)
	require.Equal(t, "n", fn.Params[0].Name)

	exprStmt, ok := prog.TopLevel.Stmts[0].(*ExprStmt)
	require.True(t, ok)
	call, ok := exprStmt.X.(*CallExpr)
	require.True(t, ok)
	require.Equal(t, "print", call.Callee)
	require.False(t, call.DynamicBound)
}

func TestParser_DynamicBoundCall(t *testing.T) {
	prog := parseSrc(t, "int r = @helper(1, 2);")
	dl := prog.TopLevel.Stmts[0].(*DeclList)
	call, ok := dl.Decls[0].Init.(*CallExpr)
	require.True(t, ok)
	require.True(t, call.DynamicBound)
	require.Equal(t, "helper", call.Callee)
}

func TestParser_InfixOperatorDefinition(t *testing.T) {
	prog := parseSrc(t, "infix a ** b = { return a * b; } int r = 2 ** 3 + 1;")
	def, ok := prog.Infixes["**"]
	require.True(t, ok)
	require.Equal(t, "a", def.LeftName)
	require.Equal(t, "b", def.RightName)

	dl := prog.TopLevel.Stmts[0].(*DeclList)
	bin, ok := dl.Decls[0].Init.(*BinaryExpr)
	require.True(t, ok, "expected '+' at the top, got %T", dl.Decls[0].Init)
	require.Equal(t, value.Add, bin.Op)
	infix, ok := bin.Left.(*InfixExpr)
	require.True(t, ok, "expected '**' to bind tighter than '+', got %T", bin.Left)
	require.Equal(t, "**", infix.Symbol)
}

func TestParser_ArrayDeclarationAndIndexAssignment(t *testing.T) {
	prog := parseSrc(t, "int a[3]; a[0] = 10;")
	dl, ok := prog.TopLevel.Stmts[0].(*DeclList)
	require.True(t, ok)
	require.Len(t, dl.Decls[0].Dims, 1)

	stmt, ok := prog.TopLevel.Stmts[1].(*ExprStmt)
	require.True(t, ok)
	assign, ok := stmt.X.(*AssignExpr)
	require.True(t, ok)
	_, ok = assign.Target.(*IndexExpr)
	require.True(t, ok)
}

func TestParser_ForLoopAllPartsOptional(t *testing.T) {
	prog := parseSrc(t, "for (;;) { break; }")
	forStmt, ok := prog.TopLevel.Stmts[0].(*ForStmt)
	require.True(t, ok)
	require.Nil(t, forStmt.Init)
	require.Nil(t, forStmt.Cond)
	require.Nil(t, forStmt.Post)
}

func TestParser_HexIntegerLiteral(t *testing.T) {
	prog := parseSrc(t, "int x = 0x7FFFFFFF;")
	dl := prog.TopLevel.Stmts[0].(*DeclList)
	lit := dl.Decls[0].Init.(*IntLit)
	require.EqualValues(t, 0x7FFFFFFF, lit.Value)
}
