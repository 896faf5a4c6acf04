/*
File    : cmm/lexer/lexer_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package lexer

import (
	"testing"

	"github.com/akashmaji946/cmm/sourcemgr"
	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []Token {
	t.Helper()
	sm := sourcemgr.NewFromBytes("<test>", []byte(src), true)
	l := New(sm)
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			break
		}
	}
	return toks
}

func TestLexer_Punctuators(t *testing.T) {
	toks := lexAll(t, "+ - * / % == != <= >= << >> && || = < > & | ^ ~ !")
	want := []TokenType{PLUS, MINUS, STAR, SLASH, PERCENT, EQ, NE, LE, GE, SHL, SHR, AND, OR, ASSIGN, LT, GT, AMP, PIPE, CARET, TILDE, BANG, EOF}
	require.Len(t, toks, len(want))
	for i, w := range want {
		require.Equal(t, w, toks[i].Type, "token %d", i)
	}
}

func TestLexer_IntAndHex(t *testing.T) {
	toks := lexAll(t, "42 0x7FFFFFFF")
	require.Equal(t, INT_LIT, toks[0].Type)
	require.EqualValues(t, 42, toks[0].IntVal)
	require.Equal(t, INT_LIT, toks[1].Type)
	require.EqualValues(t, 0x7FFFFFFF, toks[1].IntVal)
}

func TestLexer_Double(t *testing.T) {
	toks := lexAll(t, "3.14")
	require.Equal(t, DBL_LIT, toks[0].Type)
	require.InDelta(t, 3.14, toks[0].DoubleVal, 1e-9)
}

func TestLexer_StringEscapes(t *testing.T) {
	toks := lexAll(t, `"a\nb\qc"`)
	require.Equal(t, STR_LIT, toks[0].Type)
	require.Equal(t, "a\nb\\qc", toks[0].Lit)
}

func TestLexer_KeywordsAndIdentifiers(t *testing.T) {
	toks := lexAll(t, "int double bool string void if else for while do break continue return infix foo true false")
	wantTypes := []TokenType{INT_KEY, DOUBLE_KEY, BOOL_KEY, STRING_KEY, VOID_KEY, IF_KEY, ELSE_KEY, FOR_KEY, WHILE_KEY, DO_KEY, BREAK_KEY, CONTINUE_KEY, RETURN_KEY, INFIX_KEY, IDENT, BOOL_LIT, BOOL_LIT}
	for i, w := range wantTypes {
		require.Equal(t, w, toks[i].Type, "token %d (%q)", i, toks[i].Lit)
	}
	require.True(t, toks[15].BoolVal)
	require.False(t, toks[16].BoolVal)
}

func TestLexer_InfixOperatorSymbol(t *testing.T) {
	toks := lexAll(t, "a <-> b")
	require.Equal(t, IDENT, toks[0].Type)
	require.Equal(t, INFIX_OP, toks[1].Type)
	require.Equal(t, "<->", toks[1].Lit)
	require.Equal(t, IDENT, toks[2].Type)
}

func TestLexer_TrailingUnderscoreWarns(t *testing.T) {
	sm := sourcemgr.NewFromBytes("<test>", []byte("foo_ "), false)
	l := New(sm)
	l.Next()
	require.Len(t, sm.Diagnostics, 1)
	require.Equal(t, sourcemgr.SeverityWarning, sm.Diagnostics[0].Severity)
}

func TestLexer_LocationsMonotonic(t *testing.T) {
	toks := lexAll(t, "int x = 1 + 2;\nint y = 3;")
	prev := -1
	for _, tok := range toks {
		require.GreaterOrEqual(t, tok.Loc, prev)
		prev = tok.Loc
	}
}

func TestLexer_BlockComment(t *testing.T) {
	toks := lexAll(t, "int /* comment */ x;")
	require.Equal(t, INT_KEY, toks[0].Type)
	require.Equal(t, IDENT, toks[1].Type)
	require.Equal(t, "x", toks[1].Lit)
}

func TestLexer_NestedBlockCommentWarns(t *testing.T) {
	sm := sourcemgr.NewFromBytes("<test>", []byte("/* outer /* inner */ x"), false)
	l := New(sm)
	l.Next()
	require.Len(t, sm.Diagnostics, 1)
	require.Equal(t, sourcemgr.SeverityWarning, sm.Diagnostics[0].Severity)
}
