package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpcodeStringKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "PUSH", PUSH.String())
	assert.Equal(t, "HALT", HALT.String())
	assert.Equal(t, "???", Opcode(9999).String())
}

func TestBinaryOpcodesCoverEveryGrammarOperator(t *testing.T) {
	for _, op := range []string{
		"+", "-", "*", "/", "%", "&", "|", "^", "<<", ">>",
		"==", "!=", "<", "<=", ">", ">=", "&&", "||",
	} {
		_, ok := binaryOpcodes[op]
		assert.True(t, ok, "missing opcode mapping for %q", op)
	}
}
