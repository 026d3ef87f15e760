package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.xinuc.dev/internal/testutil"
	"go.xinuc.dev/pkg/token"
)

func collectAll(l *Lexer) []token.Token {
	var toks []token.Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.IsEOF() {
			return toks
		}
	}
}

func TestLexerBasics(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		fail   bool
		expect []token.Kind
	}{
		{
			"keywords and punctuation",
			"process p() { signal(1); wait(2); }",
			false,
			[]token.Kind{
				token.PROCESS, token.IDENTIFIER, token.LPAREN, token.RPAREN,
				token.LBRACE, token.SIGNAL, token.LPAREN, token.NUMBER, token.RPAREN, token.SEMI,
				token.WAIT, token.LPAREN, token.NUMBER, token.RPAREN, token.SEMI,
				token.RBRACE, token.EOF,
			},
		},
		{
			"line and block comments are skipped",
			"int x; // trailing\n/* block */ int y;",
			false,
			[]token.Kind{
				token.INT, token.IDENTIFIER, token.SEMI,
				token.INT, token.IDENTIFIER, token.SEMI, token.EOF,
			},
		},
		{
			"numeric literal forms",
			"0 0x0 0xFF 0b10 07 3.14 1e9 .5 1u 1L",
			false,
			[]token.Kind{
				token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER, token.NUMBER,
				token.FLOAT, token.FLOAT, token.FLOAT, token.NUMBER, token.NUMBER, token.EOF,
			},
		},
		{
			"maximal munch",
			"<<= >>= -> == = ++ + +",
			false,
			[]token.Kind{
				token.SHL_ASSIGN, token.SHR_ASSIGN, token.ARROW, token.EQ, token.ASSIGN,
				token.INC, token.PLUS, token.PLUS, token.EOF,
			},
		},
		{
			"unterminated string is an error",
			`"unterminated`,
			true,
			nil,
		},
		{
			"unterminated block comment is an error",
			"/* never closed",
			true,
			nil,
		},
		{
			"unexpected character is an error",
			"@",
			true,
			nil,
		},
		{
			"empty source is just EOF",
			"",
			false,
			[]token.Kind{token.EOF},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			l := New(c.src, "t.c")
			toks := collectAll(l)
			if c.fail {
				assert.True(t, l.HadError())
				assert.NotEmpty(t, l.Errors())
				return
			}
			assert.False(t, l.HadError())

			var kinds []token.Kind
			for _, tok := range toks {
				kinds = append(kinds, tok.Kind)
			}
			assert.Equal(t, c.expect, kinds)
		})
	}
}

func TestLexerEscapesAndCharLiterals(t *testing.T) {
	l := New(`"\n\t\\\""`, "t.c")
	tok := l.Next()
	assert.Equal(t, token.STRING, tok.Kind)
	assert.Equal(t, "\n\t\\\"", tok.Text)

	l = New(`'\x41'`, "t.c")
	tok = l.Next()
	assert.Equal(t, token.CHAR, tok.Kind)
	assert.Equal(t, byte('A'), tok.CharValue)

	l = New(`'\0'`, "t.c")
	tok = l.Next()
	assert.Equal(t, token.CHAR, tok.Kind)
	assert.Equal(t, byte(0), tok.CharValue)
}

func TestLexerPeekAndUnget(t *testing.T) {
	l := New("int x;", "t.c")

	first := l.Peek()
	assert.Equal(t, token.INT, first.Kind)
	assert.Equal(t, first, l.Peek(), "repeated peek returns the same token")

	consumed := l.Next()
	assert.Equal(t, first, consumed)

	next := l.Next()
	assert.Equal(t, token.IDENTIFIER, next.Kind)

	l.Unget(next)
	assert.Equal(t, next, l.Peek())
	assert.Equal(t, next, l.Next())

	after := l.Next()
	assert.Equal(t, token.SEMI, after.Kind)
}

func TestLexerUngetTwicePanics(t *testing.T) {
	l := New("x", "t.c")
	tok := l.Next()
	assert.Panics(t, func() {
		l.Unget(tok)
		l.Unget(tok)
	})
}

func TestLexerPositionsAreMonotonic(t *testing.T) {
	l := New("int a;\nint b;\n", "t.c")
	toks := collectAll(l)
	for i := 1; i < len(toks); i++ {
		prev, cur := toks[i-1].Loc, toks[i].Loc
		assert.True(t, cur.Line > prev.Line || (cur.Line == prev.Line && cur.Column >= prev.Column))
	}
}

func TestLexerIdempotent(t *testing.T) {
	src := testutil.GetRandomProgram(3)
	a := collectAll(New(src, "t.c"))
	b := collectAll(New(src, "t.c"))
	assert.Equal(t, a, b)
}

// Use a package-level variable so the compiler can't optimize the call away.
var benchResult []token.Token

func benchmarkLexer(size int, b *testing.B) {
	for n := 0; n < b.N; n++ {
		b.StopTimer()
		data := testutil.GetRandomTokens(size)
		l := New(data, "bench.c")
		b.StartTimer()

		benchResult = collectAll(l)
	}
}

func BenchmarkLexer100(b *testing.B)     { benchmarkLexer(100, b) }
func BenchmarkLexer1000(b *testing.B)    { benchmarkLexer(1000, b) }
func BenchmarkLexer10000(b *testing.B)   { benchmarkLexer(10000, b) }
func BenchmarkLexer100000(b *testing.B)  { benchmarkLexer(100000, b) }
func BenchmarkLexer1000000(b *testing.B) { benchmarkLexer(1000000, b) }
