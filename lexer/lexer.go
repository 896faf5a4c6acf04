/*
File    : cmm/lexer/lexer.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"strconv"
	"strings"

	"github.com/akashmaji946/cmm/sourcemgr"
)

// Lexer is a pull-based tokenizer: each call to Next returns the next
// token, advancing the underlying SourceManager's cursor (spec §4.2).
// Shaped after the teacher's lexer/lexer.go, but driven by a
// sourcemgr.SourceManager instead of tracking its own Line/Column fields.
type Lexer struct {
	Sm *sourcemgr.SourceManager
}

// New wraps sm in a Lexer ready to produce tokens.
func New(sm *sourcemgr.SourceManager) *Lexer {
	return &Lexer{Sm: sm}
}

func isDigit(b byte) bool      { return b >= '0' && b <= '9' }
func isHexDigit(b byte) bool   { return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F') }
func isAlpha(b byte) bool      { return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }
func isAlnum(b byte) bool      { return isAlpha(b) || isDigit(b) }
func isWhitespace(b byte) bool { return b == ' ' || b == '\t' || b == '\r' || b == '\n' }

// Next produces the next token, skipping whitespace and comments first.
func (l *Lexer) Next() Token {
	l.skipWhitespaceAndComments()

	startLoc := sourcemgr.Loc(l.Sm.Pos)
	line, col := l.Sm.LocToLineCol(startLoc)
	b, ok := l.Sm.Peek()
	if !ok {
		return l.tok(EOF, "", startLoc, line, col)
	}

	switch {
	case isDigit(b):
		return l.readNumber(startLoc, line, col)
	case isAlpha(b):
		return l.readIdentifier(startLoc, line, col)
	case b == '"':
		return l.readString(startLoc, line, col)
	}

	return l.readOperator(startLoc, line, col)
}

func (l *Lexer) tok(tt TokenType, lit string, loc sourcemgr.Loc, line, col int) Token {
	return Token{Type: tt, Lit: lit, Loc: int(loc), Line: line, Col: col}
}

func (l *Lexer) skipWhitespaceAndComments() {
	for {
		b, ok := l.Sm.Peek()
		if !ok {
			return
		}
		if isWhitespace(b) {
			l.Sm.Get()
			continue
		}
		if b == '/' {
			if nb, ok2 := l.Sm.PeekAt(1); ok2 && nb == '/' {
				l.skipLineComment()
				continue
			}
			if nb, ok2 := l.Sm.PeekAt(1); ok2 && nb == '*' {
				l.skipBlockComment()
				continue
			}
		}
		return
	}
}

func (l *Lexer) skipLineComment() {
	for {
		b, ok := l.Sm.Get()
		if !ok || b == '\n' {
			return
		}
	}
}

// skipBlockComment consumes a /* ... */ run. Block comments do not nest; an
// opening /* encountered while already inside one is a warning, and the
// scan continues regardless until the next */ (spec §4.2).
func (l *Lexer) skipBlockComment() {
	start := sourcemgr.Loc(l.Sm.Pos)
	l.Sm.Get() // '/'
	l.Sm.Get() // '*'
	for {
		b, ok := l.Sm.Get()
		if !ok {
			l.Sm.Error(start, "unterminated block comment")
			return
		}
		if b == '/' {
			if nb, ok2 := l.Sm.Peek(); ok2 && nb == '*' {
				l.Sm.Warning(sourcemgr.Loc(l.Sm.Pos-1), "nested block comment is not supported")
			}
			continue
		}
		if b == '*' {
			if nb, ok2 := l.Sm.Peek(); ok2 && nb == '/' {
				l.Sm.Get()
				return
			}
		}
	}
}

func (l *Lexer) readIdentifier(startLoc sourcemgr.Loc, line, col int) Token {
	var sb strings.Builder
	for {
		b, ok := l.Sm.Peek()
		if !ok || !isAlnum(b) {
			break
		}
		l.Sm.Get()
		sb.WriteByte(b)
	}
	ident := sb.String()
	if strings.HasSuffix(ident, "_") {
		l.Sm.Warning(startLoc, "identifier %q ends with a trailing underscore", ident)
	}
	tt := lookupIdent(ident)
	t := l.tok(tt, ident, startLoc, line, col)
	if tt == BOOL_LIT {
		t.BoolVal = ident == "true"
	}
	return t
}

// readNumber scans an integer or double literal. Integers are decimal or
// 0x/0X hex; doubles are digits '.' digits with no exponent notation
// (spec §4.2).
func (l *Lexer) readNumber(startLoc sourcemgr.Loc, line, col int) Token {
	var sb strings.Builder

	if b, _ := l.Sm.Peek(); b == '0' {
		if nb, ok := l.Sm.PeekAt(1); ok && (nb == 'x' || nb == 'X') {
			l.Sm.Get()
			l.Sm.Get()
			var hex strings.Builder
			for {
				b, ok := l.Sm.Peek()
				if !ok || !isHexDigit(b) {
					break
				}
				l.Sm.Get()
				hex.WriteByte(b)
			}
			n, err := strconv.ParseUint(hex.String(), 16, 64)
			if err != nil {
				l.Sm.Error(startLoc, "malformed hex integer literal")
			}
			t := l.tok(INT_LIT, "0x"+hex.String(), startLoc, line, col)
			t.IntVal = int32(uint32(n))
			return t
		}
	}

	for {
		b, ok := l.Sm.Peek()
		if !ok || !isDigit(b) {
			break
		}
		l.Sm.Get()
		sb.WriteByte(b)
	}

	isDouble := false
	if b, ok := l.Sm.Peek(); ok && b == '.' {
		if nb, ok2 := l.Sm.PeekAt(1); ok2 && isDigit(nb) {
			isDouble = true
			l.Sm.Get()
			sb.WriteByte('.')
			for {
				b, ok := l.Sm.Peek()
				if !ok || !isDigit(b) {
					break
				}
				l.Sm.Get()
				sb.WriteByte(b)
			}
		}
	}

	lit := sb.String()
	if isDouble {
		d, err := strconv.ParseFloat(lit, 64)
		if err != nil {
			l.Sm.Error(startLoc, "malformed double literal %q", lit)
		}
		t := l.tok(DBL_LIT, lit, startLoc, line, col)
		t.DoubleVal = d
		return t
	}
	n, err := strconv.ParseInt(lit, 10, 64)
	if err != nil {
		l.Sm.Error(startLoc, "malformed integer literal %q", lit)
	}
	t := l.tok(INT_LIT, lit, startLoc, line, col)
	t.IntVal = int32(n)
	return t
}

// escapeChar maps a backslash-escape letter to its byte value. Unknown
// escapes are signalled by ok=false, in which case the lexer emits a
// literal backslash followed by the character (spec §4.2).
func escapeChar(b byte) (byte, bool) {
	switch b {
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'n':
		return '\n', true
	case 'r':
		return '\r', true
	case 't':
		return '\t', true
	case 'v':
		return '\v', true
	case '?':
		return '?', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	default:
		return 0, false
	}
}

func (l *Lexer) readString(startLoc sourcemgr.Loc, line, col int) Token {
	l.Sm.Get() // opening quote
	var sb strings.Builder
	for {
		b, ok := l.Sm.Get()
		if !ok {
			l.Sm.Error(startLoc, "unterminated string literal")
			return l.tok(INVALID, sb.String(), startLoc, line, col)
		}
		if b == '"' {
			break
		}
		if b == '\\' {
			nb, ok2 := l.Sm.Get()
			if !ok2 {
				l.Sm.Error(startLoc, "unterminated string literal")
				break
			}
			if decoded, known := escapeChar(nb); known {
				sb.WriteByte(decoded)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(nb)
			}
			continue
		}
		sb.WriteByte(b)
	}
	t := l.tok(STR_LIT, sb.String(), startLoc, line, col)
	return t
}

// readOperator handles punctuators and user-defined infix-operator symbols.
// Multi-character built-in operators are disambiguated by single-character
// lookahead; any other run of punctuation characters that doesn't spell a
// built-in operator is lexed whole as an InfixOp token (spec §4.2, §4.3).
func (l *Lexer) readOperator(startLoc sourcemgr.Loc, line, col int) Token {
	b, _ := l.Sm.Get()
	run := string(b)
	for nb, ok := l.Sm.PeekAt(0); ok && isPunctByte(nb); nb, ok = l.Sm.PeekAt(len(run) - 1) {
		run += string(nb)
	}
	switch run {
	case "==", "!=", "<=", ">=", "<<", ">>", "&&", "||":
	default:
		if len(run) > 1 {
			l.Sm.Pos += len(run) - 1
			return l.tok(INFIX_OP, run, startLoc, line, col)
		}
	}
	two := func(next byte, tt TokenType) (Token, bool) {
		if nb, ok := l.Sm.Peek(); ok && nb == next {
			l.Sm.Get()
			return l.tok(tt, string(b)+string(next), startLoc, line, col), true
		}
		return Token{}, false
	}

	switch b {
	case '(':
		return l.tok(LPAREN, "(", startLoc, line, col)
	case ')':
		return l.tok(RPAREN, ")", startLoc, line, col)
	case '{':
		return l.tok(LBRACE, "{", startLoc, line, col)
	case '}':
		return l.tok(RBRACE, "}", startLoc, line, col)
	case '[':
		return l.tok(LBRACKET, "[", startLoc, line, col)
	case ']':
		return l.tok(RBRACKET, "]", startLoc, line, col)
	case ',':
		return l.tok(COMMA, ",", startLoc, line, col)
	case ';':
		return l.tok(SEMI, ";", startLoc, line, col)
	case '+':
		return l.tok(PLUS, "+", startLoc, line, col)
	case '-':
		return l.tok(MINUS, "-", startLoc, line, col)
	case '*':
		return l.tok(STAR, "*", startLoc, line, col)
	case '/':
		return l.tok(SLASH, "/", startLoc, line, col)
	case '%':
		return l.tok(PERCENT, "%", startLoc, line, col)
	case '=':
		if t, ok := two('=', EQ); ok {
			return t
		}
		return l.tok(ASSIGN, "=", startLoc, line, col)
	case '!':
		if t, ok := two('=', NE); ok {
			return t
		}
		return l.tok(BANG, "!", startLoc, line, col)
	case '<':
		if t, ok := two('=', LE); ok {
			return t
		}
		if t, ok := two('<', SHL); ok {
			return t
		}
		return l.tok(LT, "<", startLoc, line, col)
	case '>':
		if t, ok := two('=', GE); ok {
			return t
		}
		if t, ok := two('>', SHR); ok {
			return t
		}
		return l.tok(GT, ">", startLoc, line, col)
	case '&':
		if t, ok := two('&', AND); ok {
			return t
		}
		return l.tok(AMP, "&", startLoc, line, col)
	case '|':
		if t, ok := two('|', OR); ok {
			return t
		}
		return l.tok(PIPE, "|", startLoc, line, col)
	case '^':
		return l.tok(CARET, "^", startLoc, line, col)
	case '~':
		return l.tok(TILDE, "~", startLoc, line, col)
	case '@':
		return l.tok(AT, "@", startLoc, line, col)
	}

	return l.readInfixSymbol(b, startLoc, line, col)
}

// isPunctByte reports whether b may appear inside a user-defined infix
// operator symbol: any printable, non-alphanumeric, non-whitespace,
// non-structural character.
func isPunctByte(b byte) bool {
	switch b {
	case 0, ' ', '\t', '\r', '\n', '(', ')', '{', '}', '[', ']', ',', ';', '"':
		return false
	}
	return b > ' ' && b < 0x7f && !isAlnum(b)
}

func (l *Lexer) readInfixSymbol(first byte, startLoc sourcemgr.Loc, line, col int) Token {
	sb := strings.Builder{}
	sb.WriteByte(first)
	for {
		b, ok := l.Sm.Peek()
		if !ok || !isPunctByte(b) {
			break
		}
		l.Sm.Get()
		sb.WriteByte(b)
	}
	sym := sb.String()
	if sym == "" {
		l.Sm.Error(startLoc, "unexpected character")
		return l.tok(INVALID, sym, startLoc, line, col)
	}
	return l.tok(INFIX_OP, sym, startLoc, line, col)
}
