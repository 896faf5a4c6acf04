/*
File    : cmm/parser/ast.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
// Package parser builds CMM's abstract syntax tree from a token stream and
// folds constant subexpressions as it goes. Following the teacher's own
// convention (go-mix keeps its node set in parser/node.go, not a separate
// ast package), CMM's node set lives here, in the parser package itself.
//
// Unlike the teacher, which dispatches over nodes with a NodeVisitor
// interface (Accept/Visit), this AST uses a plain Go type switch at each
// consumer (the evaluator, the constant folder). CMM's node set is closed
// and small, and spec §9 only asks for "a tagged sum type with pattern
// matching" -- a type switch is the idiomatic Go rendition of that, and it
// lets folding and evaluation share the same value.EvalBinary/EvalUnary
// helpers without threading a visitor object through both.
package parser

import "github.com/akashmaji946/cmm/value"

// Expr is any expression node.
type Expr interface{ exprNode() }

// Stmt is any statement node.
type Stmt interface{ stmtNode() }

// --- Expressions (spec §3.4) ---

type IntLit struct {
	Value int32
	Loc   int
}

type DoubleLit struct {
	Value float64
	Loc   int
}

type BoolLit struct {
	Value bool
	Loc   int
}

type StringLit struct {
	Value string
	Loc   int
}

type Identifier struct {
	Name string
	Loc  int
}

// CallExpr is a call by name. DynamicBound marks a dynamic-bound call (the
// closure substitute, §4.6/§9/GLOSSARY): the callee's parent frame becomes
// the caller's frame instead of the top-level frame.
type CallExpr struct {
	Callee       string
	Args         []Expr
	DynamicBound bool
	Loc          int
}

// IndexExpr is arr[i]. It is itself an Expr (reads) and, through the
// evaluator's lvalue resolution, also an assignment target (writes).
type IndexExpr struct {
	Array Expr
	Index Expr
	Loc   int
}

// AssignExpr is lhs = rhs. Assignment is an expression (spec §4.4); lhs
// must be an Identifier or IndexExpr.
type AssignExpr struct {
	Target Expr
	Value  Expr
	Loc    int
}

type UnaryExpr struct {
	Op      value.UnOp
	Operand Expr
	Loc     int
}

type BinaryExpr struct {
	Op    value.BinOp
	Left  Expr
	Right Expr
	Loc   int
}

// InfixExpr applies a user-defined infix operator (spec §3.4, §4.6).
type InfixExpr struct {
	Symbol string
	Left   Expr
	Right  Expr
	Loc    int
}

func (*IntLit) exprNode()     {}
func (*DoubleLit) exprNode()  {}
func (*BoolLit) exprNode()    {}
func (*StringLit) exprNode()  {}
func (*Identifier) exprNode() {}
func (*CallExpr) exprNode()   {}
func (*IndexExpr) exprNode()  {}
func (*AssignExpr) exprNode() {}
func (*UnaryExpr) exprNode()  {}
func (*BinaryExpr) exprNode() {}
func (*InfixExpr) exprNode()  {}

// --- Statements (spec §3.4) ---

type ExprStmt struct{ X Expr }

type BlockStmt struct{ Stmts []Stmt }

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if absent
}

// WhileStmt's Cond is nil to mean "forever" (spec §3.4, §4.5).
type WhileStmt struct {
	Cond Expr
	Body Stmt
}

type ForStmt struct {
	Init Stmt // nil if absent
	Cond Expr // nil if absent (treated as true)
	Post Expr // nil if absent
	Body Stmt
}

type ReturnStmt struct {
	Value Expr // nil means void
	Loc   int
}

type BreakStmt struct{ Loc int }
type ContinueStmt struct{ Loc int }

// Declaration is one name in a DeclList: `T name`, `T name = init`, or
// `T name[dim1][dim2]...` (non-empty Dims makes it an array).
type Declaration struct {
	Name string
	Init Expr   // nil if absent
	Dims []Expr // nil/empty for a scalar declaration
	Loc  int
}

// DeclList is `T name1 [= e1], name2 [= e2], ...;` (spec §3.4).
type DeclList struct {
	BaseType value.Type
	Decls    []*Declaration
}

func (*ExprStmt) stmtNode()    {}
func (*BlockStmt) stmtNode()   {}
func (*IfStmt) stmtNode()      {}
func (*WhileStmt) stmtNode()   {}
func (*ForStmt) stmtNode()     {}
func (*ReturnStmt) stmtNode()  {}
func (*BreakStmt) stmtNode()   {}
func (*ContinueStmt) stmtNode() {}
func (*DeclList) stmtNode()    {}

// Parameter is one function or infix-operator parameter.
type Parameter struct {
	Name string
	Type value.Type
	Loc  int
}

// FunctionDefinition is a top-level `T name(params) body`. CMM functions
// are not first-class (they cannot be assigned or passed around) and never
// capture a defining scope, so -- unlike the teacher's function.Function,
// which carries a captured *scope.Scope for closures -- this struct has no
// environment field at all; see DESIGN.md.
type FunctionDefinition struct {
	Name       string
	ReturnType value.Type
	Params     []*Parameter
	Body       Stmt
	Loc        int
}

// InfixPrecedence is the fixed binding power of every user-defined infix
// operator: level 12, the tightest level in the precedence table (spec
// §4.3), binding tighter than `* / %`. See DESIGN.md for the note on
// reconciling this with §3.4's looser description of the same constant.
const InfixPrecedence = 12

// InfixOpDefinition is `infix a SYM b = body` (spec §3.4, §6.1).
type InfixOpDefinition struct {
	Symbol    string
	LeftName  string
	RightName string
	Body      Stmt
	Loc       int
}

// Program is the parse result: the top-level statement block plus the
// function and infix-operator tables built while parsing it (spec §3.4,
// "Global AST container").
type Program struct {
	TopLevel *BlockStmt
	Funcs    map[string]*FunctionDefinition
	Infixes  map[string]*InfixOpDefinition
}
