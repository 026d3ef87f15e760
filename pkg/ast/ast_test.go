package ast

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go.xinuc.dev/pkg/token"
)

func TestNewSetsKindAndLoc(t *testing.T) {
	loc := token.Location{File: "f.c", Line: 3, Column: 7}
	n := New(IDENTIFIER, loc)

	assert.Equal(t, IDENTIFIER, n.Kind)
	assert.Equal(t, loc, n.Loc)
	assert.Nil(t, n.Left)
	assert.Nil(t, n.Right)
	assert.Nil(t, n.Extra)
	assert.Empty(t, n.Children)
}

func TestKindStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "PROGRAM", PROGRAM.String())
	assert.Equal(t, "FUNC_TYPE", FUNC_TYPE.String())
	assert.Equal(t, "UNKNOWN", Kind(10000).String())
}

func TestEverySiblingSubtreeIsDisjoint(t *testing.T) {
	// Build a small IF node and confirm the three named slots never alias
	// each other or the parent node - each construction
	// helper in the parser must always allocate a fresh node per slot.
	cond := New(NUMBER, token.Location{})
	then := New(BLOCK, token.Location{})
	els := New(BLOCK, token.Location{})

	n := New(IF, token.Location{})
	n.Left = cond
	n.Right = then
	n.Extra = els

	seen := map[*Node]bool{n: true}
	for _, child := range []*Node{n.Left, n.Right, n.Extra} {
		assert.False(t, seen[child], "child pointer aliases an already-seen node")
		seen[child] = true
	}
}
