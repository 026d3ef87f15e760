// Package token defines the lexical token vocabulary shared by the lexer
// and parser.
package token

import "fmt"

// Kind is an ID that correlates to the lexical category a Token belongs to.
type Kind int

const (
	// ERROR denotes a lexing error. The Text of the token carries the
	// error message.
	ERROR Kind = iota
	// EOF marks the end of the token stream. Once emitted, the lexer keeps
	// returning it on every further call.
	EOF

	NUMBER
	FLOAT
	STRING
	CHAR
	IDENTIFIER

	// Keywords.
	VOID
	INT
	CHAR_TYPE
	FLOAT_TYPE
	DOUBLE
	LONG
	SHORT
	UNSIGNED
	SIGNED
	CONST
	VOLATILE
	STATIC
	EXTERN
	STRUCT
	UNION
	ENUM
	TYPEDEF
	SIZEOF
	IF
	ELSE
	WHILE
	DO
	FOR
	SWITCH
	CASE
	DEFAULT
	BREAK
	CONTINUE
	RETURN
	GOTO
	PROCESS
	SYSCALL
	INTERRUPT
	SEMAPHORE
	SIGNAL
	WAIT
	CREATE
	RESUME
	SUSPEND
	KILL
	SLEEP
	YIELD
	GETPID
	GETPRIO
	CHPRIO
	TRUE
	FALSE
	NULL_LITERAL

	// Operators and punctuation.
	PLUS
	MINUS
	STAR
	SLASH
	PERCENT
	INC
	DEC
	PLUS_ASSIGN
	MINUS_ASSIGN
	STAR_ASSIGN
	SLASH_ASSIGN
	PERCENT_ASSIGN
	AMP
	PIPE
	CARET
	TILDE
	AND_AND
	OR_OR
	BANG
	ASSIGN
	AMP_ASSIGN
	PIPE_ASSIGN
	CARET_ASSIGN
	SHL
	SHR
	SHL_ASSIGN
	SHR_ASSIGN
	EQ
	NE
	LT
	GT
	LE
	GE
	SEMI
	COLON
	COMMA
	DOT
	ARROW
	LPAREN
	RPAREN
	LBRACE
	RBRACE
	LBRACKET
	RBRACKET
	QUESTION
)

// keywords maps the exact source spelling of each keyword to its Kind. Any
// identifier that doesn't show up here lexes as IDENTIFIER.
var keywords = map[string]Kind{
	"void": VOID, "int": INT, "char": CHAR_TYPE, "float": FLOAT_TYPE,
	"double": DOUBLE, "long": LONG, "short": SHORT, "unsigned": UNSIGNED,
	"signed": SIGNED, "const": CONST, "volatile": VOLATILE, "static": STATIC,
	"extern": EXTERN, "struct": STRUCT, "union": UNION, "enum": ENUM,
	"typedef": TYPEDEF, "sizeof": SIZEOF, "if": IF, "else": ELSE,
	"while": WHILE, "do": DO, "for": FOR, "switch": SWITCH, "case": CASE,
	"default": DEFAULT, "break": BREAK, "continue": CONTINUE, "return": RETURN,
	"goto": GOTO, "process": PROCESS, "syscall": SYSCALL,
	"interrupt": INTERRUPT, "semaphore": SEMAPHORE, "signal": SIGNAL,
	"wait": WAIT, "create": CREATE, "resume": RESUME, "suspend": SUSPEND,
	"kill": KILL, "sleep": SLEEP, "yield": YIELD, "getpid": GETPID,
	"getprio": GETPRIO, "chprio": CHPRIO, "true": TRUE, "false": FALSE,
	"null": NULL_LITERAL, "NULL": NULL_LITERAL,
}

// Lookup returns the keyword Kind for text, and ok=false if text is a plain
// identifier.
func Lookup(text string) (Kind, bool) {
	k, ok := keywords[text]
	return k, ok
}

var names = map[Kind]string{
	ERROR: "ERROR", EOF: "EOF", NUMBER: "NUMBER", FLOAT: "FLOAT",
	STRING: "STRING", CHAR: "CHAR", IDENTIFIER: "IDENTIFIER",
	VOID: "void", INT: "int", CHAR_TYPE: "char", FLOAT_TYPE: "float",
	DOUBLE: "double", LONG: "long", SHORT: "short", UNSIGNED: "unsigned",
	SIGNED: "signed", CONST: "const", VOLATILE: "volatile", STATIC: "static",
	EXTERN: "extern", STRUCT: "struct", UNION: "union", ENUM: "enum",
	TYPEDEF: "typedef", SIZEOF: "sizeof", IF: "if", ELSE: "else",
	WHILE: "while", DO: "do", FOR: "for", SWITCH: "switch", CASE: "case",
	DEFAULT: "default", BREAK: "break", CONTINUE: "continue", RETURN: "return",
	GOTO: "goto", PROCESS: "process", SYSCALL: "syscall",
	INTERRUPT: "interrupt", SEMAPHORE: "semaphore", SIGNAL: "signal",
	WAIT: "wait", CREATE: "create", RESUME: "resume", SUSPEND: "suspend",
	KILL: "kill", SLEEP: "sleep", YIELD: "yield", GETPID: "getpid",
	GETPRIO: "getprio", CHPRIO: "chprio", TRUE: "true", FALSE: "false",
	NULL_LITERAL: "null",
	PLUS:         "+", MINUS: "-", STAR: "*", SLASH: "/", PERCENT: "%",
	INC: "++", DEC: "--", PLUS_ASSIGN: "+=", MINUS_ASSIGN: "-=",
	STAR_ASSIGN: "*=", SLASH_ASSIGN: "/=", PERCENT_ASSIGN: "%=", AMP: "&",
	PIPE: "|", CARET: "^", TILDE: "~", AND_AND: "&&", OR_OR: "||", BANG: "!",
	ASSIGN: "=", AMP_ASSIGN: "&=", PIPE_ASSIGN: "|=", CARET_ASSIGN: "^=",
	SHL: "<<", SHR: ">>", SHL_ASSIGN: "<<=", SHR_ASSIGN: ">>=", EQ: "==",
	NE: "!=", LT: "<", GT: ">", LE: "<=", GE: ">=", SEMI: ";", COLON: ":",
	COMMA: ",", DOT: ".", ARROW: "->", LPAREN: "(", RPAREN: ")",
	LBRACE: "{", RBRACE: "}", LBRACKET: "[", RBRACKET: "]", QUESTION: "?",
}

// String renders the human-readable name of k from a hand-written name
// table rather than generated stringer output.
func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// IsTypeKeyword reports whether k starts a type_specifier.
func (k Kind) IsTypeKeyword() bool {
	switch k {
	case VOID, INT, CHAR_TYPE, FLOAT_TYPE, DOUBLE, LONG, SHORT, PROCESS, SEMAPHORE:
		return true
	}
	return false
}

// IsStorageClass reports whether k is a storage-class specifier.
func (k Kind) IsStorageClass() bool {
	return k == STATIC || k == EXTERN
}

// IsAssignment reports whether k is '=' or a compound-assignment operator.
func (k Kind) IsAssignment() bool {
	switch k {
	case ASSIGN, PLUS_ASSIGN, MINUS_ASSIGN, STAR_ASSIGN, SLASH_ASSIGN,
		PERCENT_ASSIGN, AMP_ASSIGN, PIPE_ASSIGN, CARET_ASSIGN, SHL_ASSIGN, SHR_ASSIGN:
		return true
	}
	return false
}

// IsComparison reports whether k is a relational or equality operator.
func (k Kind) IsComparison() bool {
	switch k {
	case EQ, NE, LT, GT, LE, GE:
		return true
	}
	return false
}

// IsUnary reports whether k can prefix a unary expression.
func (k Kind) IsUnary() bool {
	switch k {
	case INC, DEC, PLUS, MINUS, BANG, TILDE, AMP, STAR, SIZEOF:
		return true
	}
	return false
}

// IsBinary reports whether k is one of the binary operator kinds that
// Precedence knows about.
func (k Kind) IsBinary() bool {
	_, ok := precedence[k]
	return ok
}

var precedence = map[Kind]int{
	STAR: 10, SLASH: 10, PERCENT: 10,
	PLUS: 9, MINUS: 9,
	SHL: 8, SHR: 8,
	LT: 7, GT: 7, LE: 7, GE: 7,
	EQ: 6, NE: 6,
	AMP: 5,
	CARET: 4,
	PIPE: 3,
	AND_AND: 2,
	OR_OR: 1,
}

// Precedence returns the binding power of k, or 0 if k is not a binary
// operator. Higher numbers bind tighter.
func (k Kind) Precedence() int {
	return precedence[k]
}

// Location records the coordinates at which a Token begins.
type Location struct {
	File   string
	Line   int
	Column int
}

// String pretty-prints the location as "file:line:column".
func (l Location) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Token is a lexical unit produced by the lexer and consumed by the parser.
// Only the value field matching Kind is meaningful: IntValue for NUMBER,
// FloatValue for FLOAT, CharValue for CHAR. Text holds the literal spelling
// as captured from the source, except that STRING and CHAR tokens carry
// their decoded content (quotes removed, escapes resolved) and ERROR tokens
// carry the error message.
type Token struct {
	Kind       Kind
	Text       string
	IntValue   int64
	FloatValue float64
	CharValue  byte
	Loc        Location
}

// String renders the token for diagnostics, matching the dump-tokens format
// in the driver: `<KIND> "<text>" at <line>:<column>`, with text Go-quoted.
func (t Token) String() string {
	return fmt.Sprintf("%-12s %q at %d:%d", t.Kind, t.Text, t.Loc.Line, t.Loc.Column)
}

// IsEOF reports whether t is the terminal end-of-stream token.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// IsError reports whether t is a lexical-error token.
func (t Token) IsError() bool { return t.Kind == ERROR }
