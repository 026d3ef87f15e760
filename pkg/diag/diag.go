// Package diag holds the structured error kinds shared by every compilation
// stage, plus the single-line formatting rule the driver renders them with.
package diag

import (
	"fmt"

	"go.xinuc.dev/pkg/token"
)

// CompileError is implemented by every diagnostic a stage can record.
// Position returns nil for errors that have no associated token, which is
// always true of codegen errors.
type CompileError interface {
	error
	Position() *token.Location
}

// base carries the fields common to every positioned diagnostic.
type base struct {
	pos *token.Location
	msg string
	tok string
}

func (b base) Position() *token.Location { return b.pos }

func (b base) Error() string {
	if b.pos == nil {
		return fmt.Sprintf("error: %s", b.msg)
	}
	if b.tok == "" {
		return fmt.Sprintf("%s: error: %s", b.pos, b.msg)
	}
	return fmt.Sprintf("%s: error: %s at '%s'", b.pos, b.msg, b.tok)
}

// LexError reports a malformed token: unterminated comment/string/char, or
// an unrecognized character.
type LexError struct{ base }

// NewLexError builds a LexError at pos describing msg.
func NewLexError(pos token.Location, msg string) *LexError {
	return &LexError{base{pos: &pos, msg: msg}}
}

// SyntaxError reports a parser panic-mode failure: an unexpected token where
// a specific construct was expected.
type SyntaxError struct{ base }

// NewSyntaxError builds a SyntaxError naming the offending tok.
func NewSyntaxError(pos token.Location, msg, tok string) *SyntaxError {
	return &SyntaxError{base{pos: &pos, msg: msg, tok: tok}}
}

// RedeclarationError reports a symbol declared twice in the same scope.
type RedeclarationError struct{ base }

// NewRedeclarationError builds a RedeclarationError for the given name.
func NewRedeclarationError(name string) *RedeclarationError {
	return &RedeclarationError{base{msg: fmt.Sprintf("symbol '%s' already declared in current scope", name)}}
}

// UndefinedError reports a reference to a name with no visible declaration.
type UndefinedError struct{ base }

// NewUndefinedError builds an UndefinedError; kind is "variable" or
// "function", matching the driver's "Undefined <kind> '<name>'" wording.
func NewUndefinedError(kind, name string) *UndefinedError {
	return &UndefinedError{base{msg: fmt.Sprintf("Undefined %s '%s'", kind, name)}}
}

// UnsupportedError reports a construct that parses but has no defined
// lowering (sizeof, compound assignment, struct/union/enum declarations).
type UnsupportedError struct{ base }

// NewUnsupportedError builds an UnsupportedError describing construct.
func NewUnsupportedError(construct string) *UnsupportedError {
	return &UnsupportedError{base{msg: fmt.Sprintf("unsupported construct: %s", construct)}}
}
