/*
File    : cmm/parser/parser.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package parser

import (
	"fmt"

	"github.com/akashmaji946/cmm/lexer"
	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/akashmaji946/cmm/value"
)

// Parser is a recursive-descent parser with Pratt-style precedence
// climbing for expressions (spec §4.3). It mirrors the teacher's own
// parser/parser.go shape (NewParser/Parse/HasErrors/GetErrors), fed by a
// sourcemgr-backed lexer instead of a bare string, and buffering tokens
// itself to support the two-token lookahead top-level decl-vs-function
// disambiguation (spec §9: "buffer one extra token" is the alternative to
// a cursor-restorable lexer, and is what this parser does).
type Parser struct {
	Sm  *sourcemgr.SourceManager
	Lex *lexer.Lexer

	cur    lexer.Token
	peeked []lexer.Token

	errors []string
}

// New constructs a Parser reading from sm.
func New(sm *sourcemgr.SourceManager) *Parser {
	p := &Parser{Sm: sm, Lex: lexer.New(sm)}
	p.cur = p.Lex.Next()
	return p
}

func (p *Parser) HasErrors() bool      { return len(p.errors) > 0 }
func (p *Parser) Errors() []string     { return p.errors }

func (p *Parser) errorf(loc int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	p.Sm.Error(sourcemgr.Loc(loc), "%s", msg)
	p.errors = append(p.errors, fmt.Sprintf("%s", msg))
}

// peekN ensures at least n tokens beyond cur are buffered and returns the
// n-th one (1-indexed: peekN(1) is the token right after cur).
func (p *Parser) peekN(n int) lexer.Token {
	for len(p.peeked) < n {
		p.peeked = append(p.peeked, p.Lex.Next())
	}
	return p.peeked[n-1]
}

func (p *Parser) peek() lexer.Token { return p.peekN(1) }

// advance consumes cur and pulls the next token off the peek buffer (or
// the lexer, if the buffer is empty).
func (p *Parser) advance() lexer.Token {
	prev := p.cur
	if len(p.peeked) > 0 {
		p.cur = p.peeked[0]
		p.peeked = p.peeked[1:]
	} else {
		p.cur = p.Lex.Next()
	}
	return prev
}

func (p *Parser) expect(tt lexer.TokenType, what string) lexer.Token {
	if p.cur.Type != tt {
		p.errorf(p.cur.Loc, "expected %s, got %q", what, p.cur.Lit)
		return p.cur
	}
	return p.advance()
}

// typeKeyword maps a type-keyword token to a value.Type, or reports ok=false.
func typeKeyword(tt lexer.TokenType) (value.Type, bool) {
	switch tt {
	case lexer.INT_KEY:
		return value.Int, true
	case lexer.DOUBLE_KEY:
		return value.Double, true
	case lexer.BOOL_KEY:
		return value.Bool, true
	case lexer.STRING_KEY:
		return value.String, true
	case lexer.VOID_KEY:
		return value.Void, true
	}
	return value.Void, false
}

func isTypeKeyword(tt lexer.TokenType) bool {
	_, ok := typeKeyword(tt)
	return ok
}

// Parse runs the top-level loop (spec §4.3): until EOF, each iteration is
// either a function definition, an infix-operator definition, or a
// top-level statement appended to the program block.
func (p *Parser) Parse() *Program {
	prog := &Program{
		TopLevel: &BlockStmt{},
		Funcs:    make(map[string]*FunctionDefinition),
		Infixes:  make(map[string]*InfixOpDefinition),
	}

	for p.cur.Type != lexer.EOF {
		if p.HasErrors() {
			break
		}
		switch {
		case p.cur.Type == lexer.INFIX_KEY:
			if def := p.parseInfixDefinition(); def != nil {
				prog.Infixes[def.Symbol] = def
			}
		case isTypeKeyword(p.cur.Type) && p.peek().Type == lexer.IDENT && p.peekN(2).Type == lexer.LPAREN:
			if def := p.parseFunctionDefinition(); def != nil {
				if _, exists := prog.Funcs[def.Name]; exists {
					p.Sm.Warning(sourcemgr.Loc(def.Loc), "function %q redefined", def.Name)
				}
				prog.Funcs[def.Name] = def
			}
		default:
			stmt := p.parseStatement()
			if stmt != nil {
				prog.TopLevel.Stmts = append(prog.TopLevel.Stmts, stmt)
			}
		}
	}
	return prog
}

// parseFunctionDefinition parses `TYPE IDENT ( params ) body`, called only
// once the two-token lookahead in Parse has confirmed the shape.
func (p *Parser) parseFunctionDefinition() *FunctionDefinition {
	loc := p.cur.Loc
	retType, _ := typeKeyword(p.cur.Type)
	p.advance()
	name := p.cur.Lit
	p.expect(lexer.IDENT, "function name")
	p.expect(lexer.LPAREN, "'('")

	var params []*Parameter
	if p.cur.Type == lexer.VOID_KEY && p.peek().Type == lexer.RPAREN {
		p.advance()
	} else {
		for p.cur.Type != lexer.RPAREN && !p.HasErrors() {
			pt, ok := typeKeyword(p.cur.Type)
			if !ok {
				p.errorf(p.cur.Loc, "expected parameter type, got %q", p.cur.Lit)
				break
			}
			ploc := p.cur.Loc
			p.advance()
			pname := ""
			if p.cur.Type == lexer.IDENT {
				pname = p.cur.Lit
				p.advance()
			}
			// A trailing `[]` marks an array parameter (spec §4.7's `main`
			// takes "a single string-array argument"; spec.md gives no
			// concrete declaration syntax for it, so this follows the
			// teacher's own array-declaration bracket convention rather
			// than inventing an unrelated one).
			if p.cur.Type == lexer.LBRACKET && p.peek().Type == lexer.RBRACKET {
				p.advance()
				p.advance()
				pt = value.Array
			}
			params = append(params, &Parameter{Name: pname, Type: pt, Loc: ploc})
			if p.cur.Type == lexer.COMMA {
				p.advance()
				continue
			}
			break
		}
	}
	p.expect(lexer.RPAREN, "')'")
	body := p.parseStatement()
	return &FunctionDefinition{Name: name, ReturnType: retType, Params: params, Body: body, Loc: loc}
}

// parseInfixDefinition parses `infix LHS SYM RHS = body` (spec §4.3, §6.1).
func (p *Parser) parseInfixDefinition() *InfixOpDefinition {
	loc := p.cur.Loc
	p.advance() // 'infix'
	left := p.cur.Lit
	p.expect(lexer.IDENT, "left operand name")
	if p.cur.Type != lexer.INFIX_OP {
		p.errorf(p.cur.Loc, "expected infix operator symbol, got %q", p.cur.Lit)
		return nil
	}
	sym := p.cur.Lit
	p.advance()
	right := p.cur.Lit
	p.expect(lexer.IDENT, "right operand name")
	p.expect(lexer.ASSIGN, "'='")
	body := p.parseStatement()
	return &InfixOpDefinition{Symbol: sym, LeftName: left, RightName: right, Body: body, Loc: loc}
}
