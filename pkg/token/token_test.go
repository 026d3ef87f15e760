package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookup(t *testing.T) {
	cases := []struct {
		text string
		kind Kind
		ok   bool
	}{
		{"process", PROCESS, true},
		{"semaphore", SEMAPHORE, true},
		{"signal", SIGNAL, true},
		{"wait", WAIT, true},
		{"getpid", GETPID, true},
		{"char", CHAR_TYPE, true},
		{"NULL", NULL_LITERAL, true},
		{"null", NULL_LITERAL, true},
		{"notakeyword", 0, false},
	}
	for _, c := range cases {
		kind, ok := Lookup(c.text)
		assert.Equal(t, c.ok, ok, c.text)
		if c.ok {
			assert.Equal(t, c.kind, kind, c.text)
		}
	}
}

func TestKindPredicates(t *testing.T) {
	assert.True(t, VOID.IsTypeKeyword())
	assert.True(t, PROCESS.IsTypeKeyword())
	assert.True(t, SEMAPHORE.IsTypeKeyword())
	assert.False(t, IDENTIFIER.IsTypeKeyword())

	assert.True(t, STATIC.IsStorageClass())
	assert.True(t, EXTERN.IsStorageClass())
	assert.False(t, VOID.IsStorageClass())

	assert.True(t, ASSIGN.IsAssignment())
	assert.True(t, PLUS_ASSIGN.IsAssignment())
	assert.False(t, EQ.IsAssignment())

	assert.True(t, EQ.IsComparison())
	assert.True(t, LE.IsComparison())
	assert.False(t, ASSIGN.IsComparison())

	assert.True(t, BANG.IsUnary())
	assert.True(t, SIZEOF.IsUnary())
	assert.False(t, PLUS_ASSIGN.IsUnary())

	assert.True(t, PLUS.IsBinary())
	assert.True(t, OR_OR.IsBinary())
	assert.False(t, SEMI.IsBinary())
}

func TestPrecedence(t *testing.T) {
	assert.Greater(t, STAR.Precedence(), PLUS.Precedence())
	assert.Greater(t, PLUS.Precedence(), SHL.Precedence())
	assert.Greater(t, AND_AND.Precedence(), OR_OR.Precedence())
	assert.Equal(t, 0, SEMI.Precedence())
}

func TestLocationString(t *testing.T) {
	loc := Location{File: "a.c", Line: 3, Column: 7}
	assert.Equal(t, "a.c:3:7", loc.String())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "process", PROCESS.String())
	assert.Equal(t, "+", PLUS.String())
	assert.Contains(t, Kind(9999).String(), "Kind(")
}

func TestTokenIsEOFAndIsError(t *testing.T) {
	assert.True(t, Token{Kind: EOF}.IsEOF())
	assert.False(t, Token{Kind: NUMBER}.IsEOF())
	assert.True(t, Token{Kind: ERROR}.IsError())
	assert.False(t, Token{Kind: NUMBER}.IsError())
}
