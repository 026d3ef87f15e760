// Package ast defines the abstract syntax tree produced by the parser.
//
// A single tagged-variant Node type stands in for one struct per
// production: every node carries a Kind plus the union of fields any kind
// might need, so the generic tree walks (codegen, the debug printer) share
// one type switch keyed on Kind instead of an interface-per-kind hierarchy.
package ast

import (
	"go.xinuc.dev/pkg/token"
	"go.xinuc.dev/pkg/types"
)

// Kind enumerates every node shape the parser can construct.
type Kind int

const (
	PROGRAM Kind = iota
	FUNCTION
	PROCESS
	SYSCALL
	INTERRUPT
	PARAM
	BLOCK
	VAR_DECL
	ARRAY_DECL
	STRUCT_DECL
	UNION_DECL
	ENUM_DECL
	TYPEDEF
	FIELD
	EXPR_STMT
	IF
	WHILE
	DO_WHILE
	FOR
	SWITCH
	CASE
	DEFAULT
	RETURN
	BREAK
	CONTINUE
	GOTO
	LABEL
	EMPTY
	NUMBER
	FLOAT
	STRING
	CHAR
	IDENTIFIER
	BINARY_OP
	UNARY_OP
	ASSIGN
	COMPOUND_ASSIGN
	TERNARY
	CALL
	ARRAY_ACCESS
	MEMBER_ACCESS
	PTR_MEMBER
	CAST
	SIZEOF
	ADDRESS_OF
	DEREFERENCE
	PRE_INC
	PRE_DEC
	POST_INC
	POST_DEC
	COMMA
	INIT_LIST
	CREATE
	RESUME
	SUSPEND
	KILL
	SLEEP
	YIELD
	WAIT
	SIGNAL
	GETPID
	SEMAPHORE
	TYPE
	POINTER_TYPE
	ARRAY_TYPE
	FUNC_TYPE
)

var kindNames = [...]string{
	"PROGRAM", "FUNCTION", "PROCESS", "SYSCALL", "INTERRUPT", "PARAM", "BLOCK",
	"VAR_DECL", "ARRAY_DECL", "STRUCT_DECL", "UNION_DECL", "ENUM_DECL",
	"TYPEDEF", "FIELD", "EXPR_STMT", "IF", "WHILE", "DO_WHILE", "FOR",
	"SWITCH", "CASE", "DEFAULT", "RETURN", "BREAK", "CONTINUE", "GOTO",
	"LABEL", "EMPTY", "NUMBER", "FLOAT", "STRING", "CHAR", "IDENTIFIER",
	"BINARY_OP", "UNARY_OP", "ASSIGN", "COMPOUND_ASSIGN", "TERNARY", "CALL",
	"ARRAY_ACCESS", "MEMBER_ACCESS", "PTR_MEMBER", "CAST", "SIZEOF",
	"ADDRESS_OF", "DEREFERENCE", "PRE_INC", "PRE_DEC", "POST_INC", "POST_DEC",
	"COMMA", "INIT_LIST", "CREATE", "RESUME", "SUSPEND", "KILL", "SLEEP",
	"YIELD", "WAIT", "SIGNAL", "GETPID", "SEMAPHORE", "TYPE", "POINTER_TYPE",
	"ARRAY_TYPE", "FUNC_TYPE",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// Node is the tagged-variant AST node. Only the fields relevant to Kind are
// populated; which slot each production fills is documented per Kind on the
// parser's construction helpers.
type Node struct {
	Kind Kind
	Loc  token.Location

	// Named child slots, reused across kinds per the construction rules
	// (e.g. IF: cond/then/else in Left/Right/Extra).
	Left  *Node
	Right *Node
	Extra *Node

	// Children holds ordered lists: block statements, call arguments,
	// function parameters, declaration lists.
	Children []*Node

	Name string // identifier text, member name, label name
	Op   string // operator spelling for BINARY_OP/UNARY_OP/ASSIGN kinds

	IntValue   int64
	FloatValue float64
	CharValue  byte

	Type     *types.Info
	IsLvalue bool
}

// New constructs a bare node of the given kind at pos.
func New(kind Kind, pos token.Location) *Node {
	return &Node{Kind: kind, Loc: pos}
}
