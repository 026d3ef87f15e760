package codegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.xinuc.dev/pkg/lexer"
	"go.xinuc.dev/pkg/parser"
	"go.xinuc.dev/pkg/symtab"
)

// compile runs the lexer/parser/symtab/codegen pipeline end to end and
// returns the finished Generator, for assertions on both Code() and
// HadError().
func compile(t *testing.T, src string) *Generator {
	t.Helper()
	lex := lexer.New(src, "t.c")
	p := parser.New(lex, "t.c")
	prog := p.Parse()
	require.False(t, p.HadError(), "unexpected parse error: %v", p.Errors())

	syms := symtab.New()
	symtab.Build(syms, prog)
	require.False(t, syms.HadError())

	gen := New(syms)
	gen.Generate(prog)
	return gen
}

func opSeq(code []Instruction) []Opcode {
	ops := make([]Opcode, len(code))
	for i, instr := range code {
		ops[i] = instr.Op
	}
	return ops
}

func TestGenerateReturnAddition(t *testing.T) {
	gen := compile(t, "void f(){ return 1+2; }")
	assert.True(t, !gen.HadError())
	code := gen.Code()
	assert.Equal(t, []Opcode{NOP, PUSH, PUSH, ADD, RET, PUSH, RET, HALT}, opSeq(code))
	assert.EqualValues(t, 1, code[1].Operand)
	assert.EqualValues(t, 2, code[2].Operand)
}

func TestGenerateIfElse(t *testing.T) {
	gen := compile(t, "void f(){ if (1) return 2; else return 3; }")
	code := gen.Code()
	assert.Equal(t, []Opcode{
		NOP, PUSH, JZ, PUSH, RET, JMP, PUSH, RET, PUSH, RET, HALT,
	}, opSeq(code))

	// JZ at index 2 must land right after the JMP that skips the else
	// branch (index 6), and the JMP at index 5 must land after the else
	// branch's RET (index 8).
	assert.EqualValues(t, 6, code[2].Operand)
	assert.EqualValues(t, 8, code[5].Operand)
}

func TestGenerateWhileYield(t *testing.T) {
	gen := compile(t, "void f(){ while (0) { yield; } }")
	code := gen.Code()
	assert.Equal(t, []Opcode{NOP, PUSH, JZ, YIELD, JMP, PUSH, RET, HALT}, opSeq(code))
	assert.EqualValues(t, 1, code[4].Operand) // JMP back to the condition test
	assert.EqualValues(t, 5, code[2].Operand) // JZ past the loop body
}

func TestGenerateSignalWait(t *testing.T) {
	gen := compile(t, "void f(){ signal(1); wait(2); }")
	code := gen.Code()
	assert.Equal(t, []Opcode{NOP, PUSH, SIGNAL, PUSH, WAIT, PUSH, RET, HALT}, opSeq(code))
}

func TestGenerateCallOffsetsMatchDeclarationOrder(t *testing.T) {
	gen := compile(t, "void a(){} void b(){ a(); }")
	code := gen.Code()
	var call *Instruction
	for i := range code {
		if code[i].Op == CALL {
			call = &code[i]
		}
	}
	require.NotNil(t, call)
	assert.EqualValues(t, 0, call.Operand) // a's offset, assigned first
}

func TestGenerateUndefinedVariableRecordsErrorButContinues(t *testing.T) {
	gen := compile(t, "void f(){ x = 1; }")
	assert.True(t, gen.HadError())
	require.NotEmpty(t, gen.Errors())
	assert.Contains(t, gen.Errors()[0].Error(), "Undefined variable")
	// The program still ends in HALT even on a codegen error.
	code := gen.Code()
	assert.Equal(t, HALT, code[len(code)-1].Op)
}

func TestGenerateUndefinedFunctionCall(t *testing.T) {
	gen := compile(t, "void f(){ g(); }")
	assert.True(t, gen.HadError())
	assert.Contains(t, gen.Errors()[0].Error(), "Undefined function 'g'")
}

func TestGenerateFinalInstructionIsAlwaysHalt(t *testing.T) {
	for _, src := range []string{
		"void f(){}",
		"void f(){ return; }",
		"void f(){ while(1){ break; } }",
	} {
		gen := compile(t, src)
		code := gen.Code()
		require.NotEmpty(t, code)
		assert.Equal(t, HALT, code[len(code)-1].Op)
	}
}

func TestGenerateJumpOperandsAreValidIndices(t *testing.T) {
	gen := compile(t, `
		void f() {
			int i;
			for (i = 0; i < 10; i = i + 1) {
				if (i) { continue; }
				break;
			}
		}`)
	code := gen.Code()
	for _, instr := range code {
		switch instr.Op {
		case JMP, JZ, JNZ:
			assert.GreaterOrEqual(t, int(instr.Operand), 0)
			assert.Less(t, int(instr.Operand), len(code))
		}
	}
}

func TestGenerateIsIdempotentForFreshGenerators(t *testing.T) {
	src := "void f(){ int x = 1; while (x) { x = x - 1; } return x; }"

	lex := lexer.New(src, "t.c")
	p := parser.New(lex, "t.c")
	prog := p.Parse()

	syms1 := symtab.New()
	symtab.Build(syms1, prog)
	gen1 := New(syms1)
	gen1.Generate(prog)

	syms2 := symtab.New()
	symtab.Build(syms2, prog)
	gen2 := New(syms2)
	gen2.Generate(prog)

	assert.Equal(t, gen1.Code(), gen2.Code())
}

func TestGenerateLocalVsGlobalLoadStore(t *testing.T) {
	gen := compile(t, "int g; void f(){ int l; l = g; g = l; }")
	code := gen.Code()
	ops := opSeq(code)
	assert.Contains(t, ops, LOADG)
	assert.Contains(t, ops, STOREL)
	assert.Contains(t, ops, STOREG)
}

func TestGenerateBreakWithoutLoopIsNoOp(t *testing.T) {
	gen := compile(t, "void f(){ break; }")
	code := gen.Code()
	assert.Equal(t, []Opcode{NOP, PUSH, RET, HALT}, opSeq(code))
}

func TestGenerateDoWhileConditionRunsAfterBody(t *testing.T) {
	gen := compile(t, "void f(){ do { yield; } while (1); }")
	code := gen.Code()
	// body (YIELD) precedes the condition test (PUSH 1), and JNZ loops
	// back to the body's start.
	assert.Equal(t, []Opcode{NOP, YIELD, PUSH, JNZ, PUSH, RET, HALT}, opSeq(code))
	assert.EqualValues(t, 1, code[3].Operand)
}

func TestGenerateTernary(t *testing.T) {
	gen := compile(t, "void f(){ return 1 ? 2 : 3; }")
	code := gen.Code()
	assert.Equal(t, []Opcode{NOP, PUSH, JZ, PUSH, JMP, PUSH, RET, PUSH, RET, HALT}, opSeq(code))
}

func TestGenerateCompoundAssignIsUnsupported(t *testing.T) {
	gen := compile(t, "void f(){ int x; x += 1; }")
	assert.True(t, gen.HadError())
	assert.Contains(t, gen.Errors()[0].Error(), "unsupported construct")
}

func TestGenerateSizeofIsUnsupported(t *testing.T) {
	gen := compile(t, "void f(){ return sizeof(int); }")
	assert.True(t, gen.HadError())
}

func TestGenerateIgnoresTopLevelStructDecl(t *testing.T) {
	// Generate only walks FUNCTION/PROCESS top-level children; a bare
	// struct declaration is structurally valid but produces no code and
	// no error.
	gen := compile(t, "struct point { int x; }; void f(){}")
	assert.False(t, gen.HadError())
	assert.Equal(t, []Opcode{NOP, PUSH, RET, HALT}, opSeq(gen.Code()))
}

func TestGenerateForContinueTargetsStep(t *testing.T) {
	gen := compile(t, "void f(){ int i; for (i = 0; i < 3; i = i + 1) { continue; } }")
	code := gen.Code()
	assert.Equal(t, []Opcode{
		NOP, PUSH, DUP, STOREL, POP, // i = 0 ; POP
		LOADL, PUSH, LT, JZ, // i < 3
		JMP,                               // continue
		LOADL, PUSH, ADD, DUP, STOREL, POP, // i = i + 1 ; POP
		JMP, // back to the condition
		PUSH, RET, HALT,
	}, opSeq(code))
	// The continue jumps to the step expression, not past it to the
	// condition.
	assert.EqualValues(t, 10, code[9].Operand)
	assert.EqualValues(t, 5, code[16].Operand)
	assert.EqualValues(t, 17, code[8].Operand)
}

func TestGeneratePreAndPostIncrement(t *testing.T) {
	gen := compile(t, "void f(){ int x = 0; ++x; x++; }")
	code := gen.Code()
	ops := opSeq(code)
	assert.Contains(t, ops, ADD)
	assert.Contains(t, ops, DUP)
}
