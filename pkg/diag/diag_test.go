package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.xinuc.dev/pkg/token"
)

func TestSyntaxErrorFormatsPositionAndToken(t *testing.T) {
	pos := token.Location{File: "f.c", Line: 4, Column: 9}
	err := NewSyntaxError(pos, "expected ';'", "}")

	assert.Equal(t, `f.c:4:9: error: expected ';' at '}'`, err.Error())
	assert.Equal(t, &pos, err.Position())
}

func TestLexErrorFormatsWithoutToken(t *testing.T) {
	pos := token.Location{File: "f.c", Line: 1, Column: 1}
	err := NewLexError(pos, "unterminated string")

	assert.Equal(t, "f.c:1:1: error: unterminated string", err.Error())
}

func TestRedeclarationErrorHasNoPosition(t *testing.T) {
	err := NewRedeclarationError("x")

	assert.Nil(t, err.Position())
	assert.Equal(t, "error: symbol 'x' already declared in current scope", err.Error())
}

func TestUndefinedErrorNamesKind(t *testing.T) {
	err := NewUndefinedError("variable", "x")
	assert.Equal(t, "error: Undefined variable 'x'", err.Error())

	err2 := NewUndefinedError("function", "f")
	assert.Equal(t, "error: Undefined function 'f'", err2.Error())
}

func TestUnsupportedErrorNamesConstruct(t *testing.T) {
	err := NewUnsupportedError("sizeof")
	assert.Equal(t, "error: unsupported construct: sizeof", err.Error())
}

func TestEveryDiagnosticSatisfiesCompileError(t *testing.T) {
	var errs []CompileError
	errs = append(errs,
		NewLexError(token.Location{}, "x"),
		NewSyntaxError(token.Location{}, "x", "y"),
		NewRedeclarationError("x"),
		NewUndefinedError("variable", "x"),
		NewUnsupportedError("x"),
	)
	for _, e := range errs {
		assert.NotEmpty(t, e.Error())
	}
}
