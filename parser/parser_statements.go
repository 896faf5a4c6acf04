/*
File    : cmm/parser/parser_statements.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"github.com/akashmaji946/cmm/lexer"
)

// parseStatement dispatches on the leading token (spec §4.3).
func (p *Parser) parseStatement() Stmt {
	switch p.cur.Type {
	case lexer.LBRACE:
		return p.parseBlock()
	case lexer.IF_KEY:
		return p.parseIf()
	case lexer.WHILE_KEY:
		return p.parseWhile()
	case lexer.FOR_KEY:
		return p.parseFor()
	case lexer.RETURN_KEY:
		return p.parseReturn()
	case lexer.BREAK_KEY:
		loc := p.cur.Loc
		p.advance()
		p.expect(lexer.SEMI, "';'")
		return &BreakStmt{Loc: loc}
	case lexer.CONTINUE_KEY:
		loc := p.cur.Loc
		p.advance()
		p.expect(lexer.SEMI, "';'")
		return &ContinueStmt{Loc: loc}
	default:
		if isTypeKeyword(p.cur.Type) {
			return p.parseDeclList()
		}
		return p.parseExprStmt()
	}
}

func (p *Parser) parseBlock() Stmt {
	p.expect(lexer.LBRACE, "'{'")
	blk := &BlockStmt{}
	for p.cur.Type != lexer.RBRACE && p.cur.Type != lexer.EOF && !p.HasErrors() {
		blk.Stmts = append(blk.Stmts, p.parseStatement())
	}
	p.expect(lexer.RBRACE, "'}'")
	return blk
}

// foldIf implements the constant-folding collapse spec §4.3 describes for
// `if`: a constant-true condition reduces to the then-branch, a
// constant-false condition reduces to the else-branch (or nil).
func foldIf(cond Expr, then, els Stmt) Stmt {
	if b, ok := cond.(*BoolLit); ok {
		if b.Value {
			return then
		}
		return els
	}
	return nil
}

func (p *Parser) parseIf() Stmt {
	p.advance() // 'if'
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpr(1)
	p.expect(lexer.RPAREN, "')'")
	then := p.parseStatement()
	var els Stmt
	if p.cur.Type == lexer.ELSE_KEY {
		p.advance()
		els = p.parseStatement()
	}
	if folded := foldIf(cond, then, els); folded != nil || isBoolLit(cond) {
		if folded == nil {
			return &BlockStmt{}
		}
		return folded
	}
	return &IfStmt{Cond: cond, Then: then, Else: els}
}

func isBoolLit(e Expr) bool { _, ok := e.(*BoolLit); return ok }

func (p *Parser) parseWhile() Stmt {
	p.advance() // 'while'
	p.expect(lexer.LPAREN, "'('")
	cond := p.parseExpr(1)
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()

	if b, ok := cond.(*BoolLit); ok {
		if !b.Value {
			// A never-executing while folds away entirely (spec §4.3).
			return &BlockStmt{}
		}
		// A constant-true condition becomes the "forever" marker.
		return &WhileStmt{Cond: nil, Body: body}
	}
	return &WhileStmt{Cond: cond, Body: body}
}

func (p *Parser) parseFor() Stmt {
	p.advance() // 'for'
	p.expect(lexer.LPAREN, "'('")

	var init Stmt
	if p.cur.Type != lexer.SEMI {
		if isTypeKeyword(p.cur.Type) {
			init = p.parseDeclListNoSemi()
		} else {
			init = &ExprStmt{X: p.parseExpr(1)}
		}
	}
	p.expect(lexer.SEMI, "';'")

	var cond Expr
	if p.cur.Type != lexer.SEMI {
		cond = p.parseExpr(1)
	}
	p.expect(lexer.SEMI, "';'")

	var post Expr
	if p.cur.Type != lexer.RPAREN {
		post = p.parseExpr(1)
	}
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()

	if b, ok := cond.(*BoolLit); ok && !b.Value {
		// A never-executing for-loop folds away, but its init (if any)
		// still runs once: it is kept alone inside a block (spec §4.3).
		if init != nil {
			return &BlockStmt{Stmts: []Stmt{init}}
		}
		return &BlockStmt{}
	}
	if b, ok := cond.(*BoolLit); ok && b.Value {
		cond = nil
	}
	return &ForStmt{Init: init, Cond: cond, Post: post, Body: body}
}

func (p *Parser) parseReturn() Stmt {
	loc := p.cur.Loc
	p.advance() // 'return'
	var val Expr
	if p.cur.Type != lexer.SEMI {
		val = p.parseExpr(1)
	}
	p.expect(lexer.SEMI, "';'")
	return &ReturnStmt{Value: val, Loc: loc}
}

func (p *Parser) parseExprStmt() Stmt {
	x := p.parseExpr(1)
	p.expect(lexer.SEMI, "';'")
	return &ExprStmt{X: x}
}

// parseDeclList parses `TYPE name [dims] [= init], ...;` (spec §3.4, §6.1).
func (p *Parser) parseDeclList() Stmt {
	dl := p.parseDeclListNoSemi()
	p.expect(lexer.SEMI, "';'")
	return dl
}

func (p *Parser) parseDeclListNoSemi() *DeclList {
	baseType, _ := typeKeyword(p.cur.Type)
	p.advance()
	dl := &DeclList{BaseType: baseType}
	for {
		decl := p.parseOneDeclaration()
		dl.Decls = append(dl.Decls, decl)
		if p.cur.Type == lexer.COMMA {
			p.advance()
			continue
		}
		break
	}
	return dl
}

func (p *Parser) parseOneDeclaration() *Declaration {
	loc := p.cur.Loc
	name := p.cur.Lit
	p.expect(lexer.IDENT, "declaration name")

	decl := &Declaration{Name: name, Loc: loc}
	for p.cur.Type == lexer.LBRACKET {
		p.advance()
		dim := p.parseExpr(1)
		p.expect(lexer.RBRACKET, "']'")
		decl.Dims = append(decl.Dims, dim)
	}
	if p.cur.Type == lexer.ASSIGN {
		p.advance()
		decl.Init = p.parseExpr(1)
	}
	return decl
}
