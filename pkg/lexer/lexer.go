// Package lexer turns a source buffer into a stream of tokens on demand.
//
// The lexer is synchronous and stateful: Next/Peek/Unget are plain method
// calls with no concurrency, giving the parser a single-token peek and a
// single-token push-back.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"go.xinuc.dev/pkg/diag"
	"go.xinuc.dev/pkg/token"
)

const eof = -1

// Lexer converts a read-only source buffer plus a filename label into a
// restartable stream of tokens. A Lexer should never be shared across
// goroutines; it carries no internal synchronization.
type Lexer struct {
	filename string
	src      string

	// pos is the byte offset of the next unread character. line/col are
	// the coordinates that character would be reported at.
	pos  int
	line int
	col  int

	// peeked holds a token already scanned by Peek but not yet consumed.
	peeked *token.Token

	// pushedBack holds a single token returned to the stream by Unget. A
	// second Unget before the first is drained is a programmer error.
	pushedBack *token.Token

	errs     []diag.CompileError
	hadError bool
}

// New creates a Lexer over src, labelling positions with filename.
func New(src, filename string) *Lexer {
	return &Lexer{filename: filename, src: src, line: 1, col: 1}
}

// HadError reports whether any ERROR token has been emitted so far.
func (l *Lexer) HadError() bool { return l.hadError }

// Errors returns every lexical diagnostic recorded so far.
func (l *Lexer) Errors() []diag.CompileError { return l.errs }

// Next returns the next token and advances past it. On malformed input it
// returns an ERROR token and records the failure; HadError/Errors surface
// it, matching the C source's lexer_has_error/lexer_get_error split instead
// of a second return value.
func (l *Lexer) Next() token.Token {
	if l.pushedBack != nil {
		t := *l.pushedBack
		l.pushedBack = nil
		return t
	}
	if l.peeked != nil {
		t := *l.peeked
		l.peeked = nil
		return t
	}
	return l.scan()
}

// Peek returns the next token without consuming it. Repeated Peeks return
// the same token until Next drains it.
func (l *Lexer) Peek() token.Token {
	if l.pushedBack != nil {
		return *l.pushedBack
	}
	if l.peeked == nil {
		t := l.scan()
		l.peeked = &t
	}
	return *l.peeked
}

// Unget pushes t back onto the stream so the next Next returns it. At most
// one token may be pushed back at a time; pushing back a second panics.
func (l *Lexer) Unget(t token.Token) {
	if l.pushedBack != nil {
		panic("lexer: Unget called with a token already pushed back")
	}
	l.pushedBack = &t
}

// --- character-level plumbing ---

func (l *Lexer) peekByte() byte {
	if l.pos >= len(l.src) {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekByteAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *Lexer) atEOF() bool { return l.pos >= len(l.src) }

func (l *Lexer) advance() byte {
	if l.atEOF() {
		return 0
	}
	c := l.src[l.pos]
	l.pos++
	if c == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return c
}

func (l *Lexer) here() token.Location {
	return token.Location{File: l.filename, Line: l.line, Column: l.col}
}

func (l *Lexer) errorf(pos token.Location, format string, args ...interface{}) token.Token {
	msg := fmt.Sprintf(format, args...)
	l.hadError = true
	l.errs = append(l.errs, diag.NewLexError(pos, msg))
	return token.Token{Kind: token.ERROR, Text: msg, Loc: pos}
}

// scan is the core dispatcher: skip whitespace/comments, then classify the
// next character.
func (l *Lexer) scan() token.Token {
	for {
		switch c := l.peekByte(); {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			l.advance()
		case c == '/' && l.peekByteAt(1) == '/':
			l.skipLineComment()
		case c == '/' && l.peekByteAt(1) == '*':
			if tok, ok := l.skipBlockComment(); !ok {
				return tok
			}
		default:
			goto ready
		}
	}
ready:
	pos := l.here()

	if l.atEOF() {
		return token.Token{Kind: token.EOF, Loc: pos}
	}

	c := l.peekByte()
	switch {
	case isDigit(c):
		return l.scanNumber(pos)
	case c == '.' && isDigit(l.peekByteAt(1)):
		return l.scanNumber(pos)
	case c == '"':
		return l.scanString(pos)
	case c == '\'':
		return l.scanChar(pos)
	case isIdentStart(c):
		return l.scanIdentifier(pos)
	default:
		return l.scanOperator(pos)
	}
}

func (l *Lexer) skipLineComment() {
	for !l.atEOF() && l.peekByte() != '\n' {
		l.advance()
	}
}

func (l *Lexer) skipBlockComment() (token.Token, bool) {
	start := l.here()
	l.advance() // '/'
	l.advance() // '*'
	for {
		if l.atEOF() {
			return l.errorf(start, "unterminated block comment"), false
		}
		if l.peekByte() == '*' && l.peekByteAt(1) == '/' {
			l.advance()
			l.advance()
			return token.Token{}, true
		}
		l.advance()
	}
}

func isDigit(c byte) bool      { return c >= '0' && c <= '9' }
func isHexDigit(c byte) bool   { return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F') }
func isIdentStart(c byte) bool { return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isIdentCont(c byte) bool  { return isIdentStart(c) || isDigit(c) }

func (l *Lexer) scanIdentifier(pos token.Location) token.Token {
	var sb strings.Builder
	for isIdentCont(l.peekByte()) {
		sb.WriteByte(l.advance())
	}
	text := sb.String()
	if kind, ok := token.Lookup(text); ok {
		return token.Token{Kind: kind, Text: text, Loc: pos}
	}
	return token.Token{Kind: token.IDENTIFIER, Text: text, Loc: pos}
}

// scanNumber recognizes decimal, hex (0x/0X), binary (0b/0B), and octal
// (leading 0) integers, plus a floating form with '.' or an exponent.
// Trailing u/U/l/L/f/F suffix characters are consumed and discarded.
func (l *Lexer) scanNumber(pos token.Location) token.Token {
	var sb strings.Builder
	isFloat := false

	if l.peekByte() == '0' && (l.peekByteAt(1) == 'x' || l.peekByteAt(1) == 'X') {
		sb.WriteByte(l.advance())
		sb.WriteByte(l.advance())
		for isHexDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
		return l.finishInt(pos, sb.String(), 16, 2)
	}
	if l.peekByte() == '0' && (l.peekByteAt(1) == 'b' || l.peekByteAt(1) == 'B') {
		sb.WriteByte(l.advance())
		sb.WriteByte(l.advance())
		for l.peekByte() == '0' || l.peekByte() == '1' {
			sb.WriteByte(l.advance())
		}
		return l.finishInt(pos, sb.String(), 2, 2)
	}

	for isDigit(l.peekByte()) {
		sb.WriteByte(l.advance())
	}
	if l.peekByte() == '.' && isDigit(l.peekByteAt(1)) {
		isFloat = true
		sb.WriteByte(l.advance())
		for isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
	} else if l.peekByte() == '.' && sb.Len() > 0 {
		isFloat = true
		sb.WriteByte(l.advance())
		for isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
	}
	if l.peekByte() == 'e' || l.peekByte() == 'E' {
		isFloat = true
		sb.WriteByte(l.advance())
		if l.peekByte() == '+' || l.peekByte() == '-' {
			sb.WriteByte(l.advance())
		}
		for isDigit(l.peekByte()) {
			sb.WriteByte(l.advance())
		}
	}

	digits := sb.String()
	if isFloat {
		return l.finishFloat(pos, digits)
	}
	if len(digits) > 1 && digits[0] == '0' {
		return l.finishInt(pos, digits, 8, 0)
	}
	return l.finishInt(pos, digits, 10, 0)
}

func (l *Lexer) consumeSuffix() string {
	var sb strings.Builder
	for {
		switch l.peekByte() {
		case 'u', 'U', 'l', 'L', 'f', 'F':
			sb.WriteByte(l.advance())
		default:
			return sb.String()
		}
	}
}

func (l *Lexer) finishInt(pos token.Location, digits string, base, strip int) token.Token {
	suffix := l.consumeSuffix()
	v, err := strconv.ParseInt(digits[strip:], base, 64)
	if err != nil {
		return l.errorf(pos, "invalid numeric literal '%s'", digits)
	}
	return token.Token{Kind: token.NUMBER, Text: digits + suffix, IntValue: v, Loc: pos}
}

func (l *Lexer) finishFloat(pos token.Location, digits string) token.Token {
	suffix := l.consumeSuffix()
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil {
		return l.errorf(pos, "invalid numeric literal '%s'", digits)
	}
	return token.Token{Kind: token.FLOAT, Text: digits + suffix, FloatValue: v, Loc: pos}
}

func (l *Lexer) scanString(pos token.Location) token.Token {
	l.advance() // opening '"'
	var sb strings.Builder
	for {
		if l.atEOF() {
			return l.errorf(pos, "unterminated string literal")
		}
		c := l.peekByte()
		if c == '"' {
			l.advance()
			return token.Token{Kind: token.STRING, Text: sb.String(), Loc: pos}
		}
		if c == '\n' {
			return l.errorf(pos, "unterminated string literal")
		}
		if c == '\\' {
			l.advance()
			ch, ok := l.scanEscape()
			if !ok {
				return l.errorf(pos, "invalid escape sequence in string literal")
			}
			sb.WriteByte(ch)
			continue
		}
		sb.WriteByte(l.advance())
	}
}

func (l *Lexer) scanChar(pos token.Location) token.Token {
	l.advance() // opening '\''
	if l.atEOF() {
		return l.errorf(pos, "unterminated character literal")
	}

	var v byte
	if l.peekByte() == '\\' {
		l.advance()
		ch, ok := l.scanEscape()
		if !ok {
			return l.errorf(pos, "invalid escape sequence in character literal")
		}
		v = ch
	} else {
		v = l.advance()
	}

	if l.peekByte() != '\'' {
		return l.errorf(pos, "unterminated character literal")
	}
	l.advance()
	return token.Token{Kind: token.CHAR, Text: string(v), CharValue: v, Loc: pos}
}

func (l *Lexer) scanEscape() (byte, bool) {
	if l.atEOF() {
		return 0, false
	}
	c := l.advance()
	switch c {
	case 'n':
		return '\n', true
	case 't':
		return '\t', true
	case 'r':
		return '\r', true
	case '0':
		return 0, true
	case '\\':
		return '\\', true
	case '\'':
		return '\'', true
	case '"':
		return '"', true
	case 'a':
		return '\a', true
	case 'b':
		return '\b', true
	case 'f':
		return '\f', true
	case 'v':
		return '\v', true
	case 'x':
		if !isHexDigit(l.peekByte()) {
			return 0, false
		}
		var sb strings.Builder
		for i := 0; i < 2 && isHexDigit(l.peekByte()); i++ {
			sb.WriteByte(l.advance())
		}
		v, err := strconv.ParseUint(sb.String(), 16, 8)
		if err != nil {
			return 0, false
		}
		return byte(v), true
	default:
		return 0, false
	}
}

// operators3/operators2 are checked by maximal munch before falling back to
// a single-character operator.
var operators3 = map[string]token.Kind{
	"<<=": token.SHL_ASSIGN,
	">>=": token.SHR_ASSIGN,
}

var operators2 = map[string]token.Kind{
	"++": token.INC, "--": token.DEC,
	"+=": token.PLUS_ASSIGN, "-=": token.MINUS_ASSIGN,
	"*=": token.STAR_ASSIGN, "/=": token.SLASH_ASSIGN, "%=": token.PERCENT_ASSIGN,
	"&&": token.AND_AND, "||": token.OR_OR,
	"==": token.EQ, "!=": token.NE, "<=": token.LE, ">=": token.GE,
	"&=": token.AMP_ASSIGN, "|=": token.PIPE_ASSIGN, "^=": token.CARET_ASSIGN,
	"<<": token.SHL, ">>": token.SHR, "->": token.ARROW,
}

var operators1 = map[byte]token.Kind{
	'+': token.PLUS, '-': token.MINUS, '*': token.STAR, '/': token.SLASH, '%': token.PERCENT,
	'&': token.AMP, '|': token.PIPE, '^': token.CARET, '~': token.TILDE, '!': token.BANG,
	'=': token.ASSIGN, '<': token.LT, '>': token.GT,
	';': token.SEMI, ':': token.COLON, ',': token.COMMA, '.': token.DOT,
	'(': token.LPAREN, ')': token.RPAREN, '{': token.LBRACE, '}': token.RBRACE,
	'[': token.LBRACKET, ']': token.RBRACKET, '?': token.QUESTION,
}

func (l *Lexer) scanOperator(pos token.Location) token.Token {
	three := string([]byte{l.peekByte(), l.peekByteAt(1), l.peekByteAt(2)})
	if kind, ok := operators3[three]; ok {
		l.advance()
		l.advance()
		l.advance()
		return token.Token{Kind: kind, Text: three, Loc: pos}
	}

	two := string([]byte{l.peekByte(), l.peekByteAt(1)})
	if kind, ok := operators2[two]; ok {
		l.advance()
		l.advance()
		return token.Token{Kind: kind, Text: two, Loc: pos}
	}

	c := l.advance()
	if kind, ok := operators1[c]; ok {
		return token.Token{Kind: kind, Text: string(c), Loc: pos}
	}
	return l.errorf(pos, "unexpected character '%c'", c)
}
