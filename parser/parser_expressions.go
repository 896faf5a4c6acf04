/*
File    : cmm/parser/parser_expressions.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/akashmaji946/cmm/lexer"
	"github.com/akashmaji946/cmm/value"
)

// binOpInfo maps an operator token to its precedence level (spec §4.3's
// table) and its value.BinOp tag.
type binOpInfo struct {
	prec int
	op   value.BinOp
}

var binOps = map[lexer.TokenType]binOpInfo{
	lexer.OR:      {2, value.LOr},
	lexer.AND:     {3, value.LAnd},
	lexer.PIPE:    {4, value.BitOr},
	lexer.CARET:   {5, value.BitXor},
	lexer.AMP:     {6, value.BitAnd},
	lexer.EQ:      {7, value.Eq},
	lexer.NE:      {7, value.NotEq},
	lexer.LT:      {8, value.Less},
	lexer.LE:      {8, value.LessEq},
	lexer.GT:      {8, value.Greater},
	lexer.GE:      {8, value.GreaterEq},
	lexer.SHL:     {9, value.Shl},
	lexer.SHR:     {9, value.Shr},
	lexer.PLUS:    {10, value.Add},
	lexer.MINUS:   {10, value.Sub},
	lexer.STAR:    {11, value.Mul},
	lexer.SLASH:   {11, value.Div},
	lexer.PERCENT: {11, value.Mod},
}

const assignPrec = 1

// parseExpr implements Pratt precedence climbing (spec §4.3). Assignment
// (level 1) is right-associative and special-cased, since its left operand
// must be an lvalue rather than a folded value; every other level is
// left-associative, recursing at prec+1.
func (p *Parser) parseExpr(minPrec int) Expr {
	left := p.parsePrimary()

	for {
		if p.cur.Type == lexer.ASSIGN && assignPrec >= minPrec {
			loc := p.cur.Loc
			p.advance()
			right := p.parseExpr(assignPrec)
			left = &AssignExpr{Target: left, Value: right, Loc: loc}
			continue
		}

		if p.cur.Type == lexer.INFIX_OP {
			if InfixPrecedence < minPrec {
				break
			}
			sym := p.cur.Lit
			loc := p.cur.Loc
			p.advance()
			right := p.parseExpr(InfixPrecedence + 1)
			left = &InfixExpr{Symbol: sym, Left: left, Right: right, Loc: loc}
			continue
		}

		info, ok := binOps[p.cur.Type]
		if !ok || info.prec < minPrec {
			break
		}
		loc := p.cur.Loc
		p.advance()
		right := p.parseExpr(info.prec + 1)
		left = foldBinary(info.op, left, right, loc)
	}
	return left
}

// foldBinary constructs a BinaryExpr, immediately evaluating it via
// value.EvalBinary -- the same routine the evaluator calls -- when both
// operands are already literals (spec §4.3 "Constant folding", §9).
func foldBinary(op value.BinOp, left, right Expr, loc int) Expr {
	lv, lok := literalValue(left)
	rv, rok := literalValue(right)
	if lok && rok {
		if result, err := value.EvalBinary(op, lv, rv); err == nil {
			return literalFromValue(result, loc)
		}
	}
	return &BinaryExpr{Op: op, Left: left, Right: right, Loc: loc}
}

func foldUnary(op value.UnOp, operand Expr, loc int) Expr {
	if v, ok := literalValue(operand); ok {
		if result, err := value.EvalUnary(op, v); err == nil {
			return literalFromValue(result, loc)
		}
	}
	return &UnaryExpr{Op: op, Operand: operand, Loc: loc}
}

// literalValue extracts the constant value.Value a literal expression node
// represents, for feeding to value.EvalBinary/EvalUnary during folding.
func literalValue(e Expr) (value.Value, bool) {
	switch n := e.(type) {
	case *IntLit:
		return value.IntVal(n.Value), true
	case *DoubleLit:
		return value.DoubleVal(n.Value), true
	case *BoolLit:
		return value.BoolVal(n.Value), true
	case *StringLit:
		return value.StringVal(n.Value), true
	}
	return value.Value{}, false
}

// literalFromValue is the inverse of literalValue: it re-wraps a folded
// scalar result back into an AST literal node.
func literalFromValue(v value.Value, loc int) Expr {
	switch v.Type {
	case value.Int:
		return &IntLit{Value: v.I, Loc: loc}
	case value.Double:
		return &DoubleLit{Value: v.D, Loc: loc}
	case value.Bool:
		return &BoolLit{Value: v.B, Loc: loc}
	case value.String:
		return &StringLit{Value: v.S, Loc: loc}
	}
	return &IntLit{Value: 0, Loc: loc}
}

// parsePrimary implements `Primary ::= ( expr ) | identifier-expr | literal
// | unary-op primary` (spec §4.3).
func (p *Parser) parsePrimary() Expr {
	loc := p.cur.Loc
	switch p.cur.Type {
	case lexer.PLUS:
		p.advance()
		return foldUnary(value.Pos, p.parsePrimary(), loc)
	case lexer.MINUS:
		p.advance()
		return foldUnary(value.Neg, p.parsePrimary(), loc)
	case lexer.BANG:
		p.advance()
		return foldUnary(value.Not, p.parsePrimary(), loc)
	case lexer.TILDE:
		p.advance()
		return foldUnary(value.BitNot, p.parsePrimary(), loc)
	case lexer.LPAREN:
		p.advance()
		e := p.parseExpr(1)
		p.expect(lexer.RPAREN, "')'")
		return e
	case lexer.INT_LIT:
		v := p.cur.IntVal
		p.advance()
		return &IntLit{Value: v, Loc: loc}
	case lexer.DBL_LIT:
		v := p.cur.DoubleVal
		p.advance()
		return &DoubleLit{Value: v, Loc: loc}
	case lexer.BOOL_LIT:
		v := p.cur.BoolVal
		p.advance()
		return &BoolLit{Value: v, Loc: loc}
	case lexer.STR_LIT:
		v := p.cur.Lit
		p.advance()
		return &StringLit{Value: v, Loc: loc}
	case lexer.AT:
		p.advance()
		name := p.cur.Lit
		p.expect(lexer.IDENT, "callee name")
		return p.parseCallTail(name, loc, true)
	case lexer.IDENT:
		name := p.cur.Lit
		p.advance()
		return p.parseIdentTail(name, loc)
	default:
		p.errorf(p.cur.Loc, "unexpected token %q in expression", p.cur.Lit)
		p.advance()
		return &IntLit{Value: 0, Loc: loc}
	}
}

// parseIdentTail handles the identifier-expr production: call syntax
// `name(args)` or any number of index suffixes `[expr]` (spec §4.3).
func (p *Parser) parseIdentTail(name string, loc int) Expr {
	if p.cur.Type == lexer.LPAREN {
		return p.parseCallTail(name, loc, false)
	}
	var e Expr = &Identifier{Name: name, Loc: loc}
	for p.cur.Type == lexer.LBRACKET {
		p.advance()
		idx := p.parseExpr(1)
		p.expect(lexer.RBRACKET, "']'")
		e = &IndexExpr{Array: e, Index: idx, Loc: loc}
	}
	return e
}

func (p *Parser) parseCallTail(name string, loc int, dynamicBound bool) Expr {
	p.expect(lexer.LPAREN, "'('")
	var args []Expr
	for p.cur.Type != lexer.RPAREN && !p.HasErrors() {
		args = append(args, p.parseExpr(1))
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	p.expect(lexer.RPAREN, "')'")
	var e Expr = &CallExpr{Callee: name, Args: args, DynamicBound: dynamicBound, Loc: loc}
	for p.cur.Type == lexer.LBRACKET {
		p.advance()
		idx := p.parseExpr(1)
		p.expect(lexer.RBRACKET, "']'")
		e = &IndexExpr{Array: e, Index: idx, Loc: loc}
	}
	return e
}
