// Package codegen lowers a parsed, symbol-populated AST into a linear
// instruction program for a stack-based virtual machine. A single
// traversal appends instructions to a growable code buffer and
// back-patches forward jumps once their target address is known.
package codegen

import (
	"go.xinuc.dev/pkg/ast"
	"go.xinuc.dev/pkg/diag"
	"go.xinuc.dev/pkg/symtab"
)

// Instruction is one entry in the emitted program. Operand is interpreted
// per-opcode: an instruction index for JMP/JZ/JNZ, a symbol-table offset
// for CALL/LOADx/STOREx, an immediate for PUSH, an argument count for
// CREATE.
type Instruction struct {
	Op      Opcode
	Operand int32
	Label   string
	Comment string
}

// Generator walks an AST and produces a flat Instruction sequence. It owns
// its code buffer and borrows a *symtab.Table whose global scope has
// already been populated by symtab.Build. Generate drives
// EnterScope/ExitScope and Insert for every function scope and nested block
// it lowers, since the driver-level symbol-table build only covers
// top-level declarations.
//
// Each loop pushes a continue target and two initially empty lists of
// pending jump indices. A BREAK statement emits a forward JMP and records
// its index; once the loop's exit address is known, every recorded index
// is patched to it. CONTINUE works the same way when the loop's continue
// target is not yet resolved (a for loop's step address is only known
// after its body has been generated); while loops resolve it up front and
// emit the back-jump directly. These are back-patch lists rather than the
// single patch index per loop, since one loop body may contain more than
// one break or continue statement and each needs its own patch.
type Generator struct {
	code []Instruction
	syms *symtab.Table

	continueTargets  []int
	pendingBreaks    [][]int
	pendingContinues [][]int

	labelCounter int

	hadError bool
	errs     []diag.CompileError
}

// New creates a Generator that will insert function/block-local symbols
// into syms as it lowers each function body.
func New(syms *symtab.Table) *Generator {
	return &Generator{syms: syms}
}

// HadError reports whether any codegen diagnostic was recorded.
func (g *Generator) HadError() bool { return g.hadError }

// Errors returns every codegen diagnostic recorded so far.
func (g *Generator) Errors() []diag.CompileError { return g.errs }

// Code returns the finished instruction sequence. Valid to call regardless
// of HadError, since the generator records and continues on undefined-name
// and unsupported-construct errors.
func (g *Generator) Code() []Instruction { return g.code }

func (g *Generator) emit(op Opcode, operand int32) int {
	idx := len(g.code)
	g.code = append(g.code, Instruction{Op: op, Operand: operand})
	return idx
}

func (g *Generator) emitLabel(text string) int {
	idx := len(g.code)
	g.code = append(g.code, Instruction{Op: NOP, Label: text})
	return idx
}

// newLabel returns and increments the monotonic label counter. The id
// itself is never emitted, and no lowering in this package calls newLabel:
// branch targets are instruction indices.
func (g *Generator) newLabel() int {
	id := g.labelCounter
	g.labelCounter++
	return id
}

func (g *Generator) patchJump(index, target int) {
	g.code[index].Operand = int32(target)
}

func (g *Generator) here() int { return len(g.code) }

func (g *Generator) errUndefined(kind, name string) {
	g.hadError = true
	g.errs = append(g.errs, diag.NewUndefinedError(kind, name))
}

func (g *Generator) errUnsupported(construct string) {
	g.hadError = true
	g.errs = append(g.errs, diag.NewUnsupportedError(construct))
}

// Generate lowers every top-level FUNCTION/PROCESS declaration in program,
// then emits a single trailing HALT. It returns true iff no error was
// recorded; partial instructions may already be in Code() on failure.
func (g *Generator) Generate(program *ast.Node) bool {
	for _, child := range program.Children {
		switch child.Kind {
		case ast.FUNCTION, ast.PROCESS:
			g.genFunction(child)
		}
	}
	g.emit(HALT, 0)
	return !g.hadError
}

// genFunction emits the function's label, its body (with params bound in a
// fresh scope), and an implicit "return 0" tail so every function falls
// through to a well-formed RET even without an explicit return statement.
func (g *Generator) genFunction(fn *ast.Node) {
	g.emitLabel("func_" + fn.Name)

	g.syms.EnterScope()
	for _, param := range fn.Children {
		g.syms.Insert(param.Name, symtab.Parameter, param.Type)
	}

	if fn.Right != nil {
		g.gen(fn.Right)
	}
	g.syms.ExitScope()

	g.emit(PUSH, 0)
	g.emit(RET, 0)
}

// gen dispatches n to its statement or expression lowering. Expressions
// leave their result on top of the stack; statements leave the stack as
// they found it (EXPR_STMT explicitly pops the discarded value).
func (g *Generator) gen(n *ast.Node) {
	switch n.Kind {
	case ast.BLOCK:
		g.genBlock(n)
	case ast.EXPR_STMT:
		g.gen(n.Left)
		g.emit(POP, 0)
	case ast.VAR_DECL, ast.ARRAY_DECL:
		g.genLocalDecl(n)
	case ast.RETURN:
		g.genReturn(n)
	case ast.IF:
		g.genIf(n)
	case ast.WHILE:
		g.genWhile(n)
	case ast.DO_WHILE:
		g.genDoWhile(n)
	case ast.FOR:
		g.genFor(n)
	case ast.BREAK:
		g.genBreak(n)
	case ast.CONTINUE:
		g.genContinue(n)
	case ast.EMPTY:
		// no-op statement
	case ast.CREATE:
		g.genCreate(n)
	case ast.RESUME, ast.SUSPEND, ast.KILL, ast.SLEEP, ast.WAIT, ast.SIGNAL:
		g.genProcessArgStmt(n)
	case ast.YIELD:
		g.emit(YIELD, 0)

	case ast.NUMBER:
		g.emit(PUSH, int32(n.IntValue))
	case ast.CHAR:
		g.emit(PUSH, int32(n.CharValue))
	case ast.IDENTIFIER:
		g.genLoad(n)
	case ast.BINARY_OP:
		g.genBinary(n)
	case ast.UNARY_OP:
		g.genUnary(n)
	case ast.ASSIGN:
		g.genAssign(n)
	case ast.TERNARY:
		g.genTernary(n)
	case ast.COMMA:
		g.genComma(n)
	case ast.CALL:
		g.genCall(n)
	case ast.GETPID:
		g.emit(GETPID, 0)
	case ast.PRE_INC, ast.PRE_DEC, ast.POST_INC, ast.POST_DEC:
		g.genIncDec(n)

	case ast.FLOAT:
		g.errUnsupported("floating-point literal")
	case ast.STRING:
		g.errUnsupported("string literal")
	case ast.COMPOUND_ASSIGN:
		g.errUnsupported("compound assignment")
	case ast.SIZEOF:
		g.errUnsupported("sizeof")
	case ast.ARRAY_ACCESS:
		g.errUnsupported("array access")
	case ast.MEMBER_ACCESS, ast.PTR_MEMBER:
		g.errUnsupported("struct/union member access")
	case ast.ADDRESS_OF:
		g.errUnsupported("address-of")
	case ast.DEREFERENCE:
		g.errUnsupported("pointer dereference")
	case ast.INIT_LIST:
		g.errUnsupported("initializer list")
	case ast.STRUCT_DECL, ast.UNION_DECL, ast.ENUM_DECL:
		g.errUnsupported("struct/union/enum declaration")
	case ast.TYPEDEF:
		g.errUnsupported("typedef")
	default:
		g.errUnsupported(n.Kind.String())
	}
}

func (g *Generator) genBlock(n *ast.Node) {
	g.syms.EnterScope()
	for _, stmt := range n.Children {
		g.gen(stmt)
	}
	g.syms.ExitScope()
}

// genLocalDecl declares a block-local variable/array and, if there is an
// initializer, evaluates and stores it. Top-level VAR_DECL/ARRAY_DECL
// nodes never reach here: Generate only walks FUNCTION/PROCESS children.
func (g *Generator) genLocalDecl(n *ast.Node) {
	sym := g.syms.Insert(n.Name, symtab.Variable, n.Type)
	if n.Right == nil {
		return
	}
	g.gen(n.Right)
	if sym == nil {
		return
	}
	if sym.ScopeLevel == 0 {
		g.emit(STOREG, int32(sym.Offset))
	} else {
		g.emit(STOREL, int32(sym.Offset))
	}
}

func (g *Generator) genReturn(n *ast.Node) {
	if n.Left != nil {
		g.gen(n.Left)
	} else {
		g.emit(PUSH, 0)
	}
	g.emit(RET, 0)
}

func (g *Generator) genIf(n *ast.Node) {
	g.gen(n.Left)
	j1 := g.emit(JZ, 0)
	g.gen(n.Right)
	if n.Extra != nil {
		j2 := g.emit(JMP, 0)
		g.patchJump(j1, g.here())
		g.gen(n.Extra)
		g.patchJump(j2, g.here())
	} else {
		g.patchJump(j1, g.here())
	}
}

// pushLoop enters a new loop level. continueTarget is an instruction
// index, or -1 when the target is not yet known; continues emitted before
// setContinueTarget resolves it are collected for back-patching.
func (g *Generator) pushLoop(continueTarget int) {
	g.continueTargets = append(g.continueTargets, continueTarget)
	g.pendingBreaks = append(g.pendingBreaks, nil)
	g.pendingContinues = append(g.pendingContinues, nil)
}

// setContinueTarget resolves the current loop's continue target and
// patches every continue emitted while it was still unknown.
func (g *Generator) setContinueTarget(target int) {
	top := len(g.continueTargets) - 1
	g.continueTargets[top] = target
	for _, idx := range g.pendingContinues[top] {
		g.patchJump(idx, target)
	}
	g.pendingContinues[top] = nil
}

// popLoop patches every pending break in the current loop level to
// exitAddr and leaves it.
func (g *Generator) popLoop(exitAddr int) {
	top := len(g.pendingBreaks) - 1
	for _, idx := range g.pendingBreaks[top] {
		g.patchJump(idx, exitAddr)
	}
	g.pendingBreaks = g.pendingBreaks[:top]
	g.pendingContinues = g.pendingContinues[:top]
	g.continueTargets = g.continueTargets[:top]
}

func (g *Generator) genWhile(n *ast.Node) {
	continueTarget := g.here()
	g.gen(n.Left)
	j := g.emit(JZ, 0)

	g.pushLoop(continueTarget)
	g.gen(n.Right)
	g.emit(JMP, int32(continueTarget))
	g.patchJump(j, g.here())
	g.popLoop(g.here())
}

// genDoWhile executes the body once before testing the condition. continue
// targets the condition test (re-entering the loop still re-checks it);
// break targets the address right after the loop.
func (g *Generator) genDoWhile(n *ast.Node) {
	start := g.here()

	g.pushLoop(-1) // resolved below once the condition's address is known
	g.gen(n.Left)  // body
	g.setContinueTarget(g.here())
	g.gen(n.Right) // condition
	g.emit(JNZ, int32(start))
	g.popLoop(g.here())
}

func (g *Generator) genFor(n *ast.Node) {
	if n.Left != nil {
		g.gen(n.Left)
		g.emit(POP, 0)
	}
	loopStart := g.here()

	hasCond := n.Right != nil
	var j int
	if hasCond {
		g.gen(n.Right)
		j = g.emit(JZ, 0)
	}

	body := n.Children[0]

	g.pushLoop(-1) // resolved below, at the step expression's address
	g.gen(body)
	g.setContinueTarget(g.here())
	if n.Extra != nil {
		g.gen(n.Extra)
		g.emit(POP, 0)
	}
	g.emit(JMP, int32(loopStart))
	if hasCond {
		g.patchJump(j, g.here())
	}
	g.popLoop(g.here())
}

func (g *Generator) genBreak(n *ast.Node) {
	if len(g.pendingBreaks) == 0 {
		return
	}
	idx := g.emit(JMP, 0)
	top := len(g.pendingBreaks) - 1
	g.pendingBreaks[top] = append(g.pendingBreaks[top], idx)
}

func (g *Generator) genContinue(n *ast.Node) {
	if len(g.continueTargets) == 0 {
		return
	}
	top := len(g.continueTargets) - 1
	if target := g.continueTargets[top]; target >= 0 {
		g.emit(JMP, int32(target))
		return
	}
	idx := g.emit(JMP, 0)
	g.pendingContinues[top] = append(g.pendingContinues[top], idx)
}

func (g *Generator) genCreate(n *ast.Node) {
	for _, arg := range n.Children {
		g.gen(arg)
	}
	g.emit(CREATE, int32(len(n.Children)))
}

var processOpcodes = map[ast.Kind]Opcode{
	ast.RESUME: RESUME, ast.SUSPEND: SUSPEND, ast.KILL: KILL,
	ast.SLEEP: SLEEP, ast.WAIT: WAIT, ast.SIGNAL: SIGNAL,
}

func (g *Generator) genProcessArgStmt(n *ast.Node) {
	if n.Left != nil {
		g.gen(n.Left)
	} else {
		g.emit(PUSH, 0)
	}
	g.emit(processOpcodes[n.Kind], 0)
}

func (g *Generator) genLoad(n *ast.Node) {
	sym := g.syms.Lookup(n.Name)
	if sym == nil {
		g.errUndefined("variable", n.Name)
		g.emit(PUSH, 0)
		return
	}
	sym.IsUsed = true
	if sym.ScopeLevel == 0 {
		g.emit(LOADG, int32(sym.Offset))
	} else {
		g.emit(LOADL, int32(sym.Offset))
	}
}

func (g *Generator) genBinary(n *ast.Node) {
	g.gen(n.Left)
	g.gen(n.Right)
	op, ok := binaryOpcodes[n.Op]
	if !ok {
		g.errUnsupported("binary operator " + n.Op)
		return
	}
	g.emit(op, 0)
}

func (g *Generator) genUnary(n *ast.Node) {
	switch n.Op {
	case "+":
		g.gen(n.Left)
	case "-":
		g.gen(n.Left)
		g.emit(NEG, 0)
	case "!":
		g.gen(n.Left)
		g.emit(LNOT, 0)
	case "~":
		g.gen(n.Left)
		g.emit(NOT, 0)
	default:
		g.errUnsupported("unary operator " + n.Op)
	}
}

// genAssign handles simple `identifier = rhs`; any other assignment target
// (array element, struct member, dereference) has no addressing model
// defined here and is reported unsupported.
func (g *Generator) genAssign(n *ast.Node) {
	if n.Left.Kind != ast.IDENTIFIER {
		g.errUnsupported("assignment to non-identifier lvalue")
		return
	}
	sym := g.syms.Lookup(n.Left.Name)
	if sym == nil {
		g.errUndefined("variable", n.Left.Name)
		return
	}
	g.gen(n.Right)
	g.emit(DUP, 0)
	if sym.ScopeLevel == 0 {
		g.emit(STOREG, int32(sym.Offset))
	} else {
		g.emit(STOREL, int32(sym.Offset))
	}
}

func (g *Generator) genTernary(n *ast.Node) {
	g.gen(n.Left)
	j1 := g.emit(JZ, 0)
	g.gen(n.Right)
	j2 := g.emit(JMP, 0)
	g.patchJump(j1, g.here())
	g.gen(n.Extra)
	g.patchJump(j2, g.here())
}

// genComma evaluates every operand left to right, discarding all but the
// last (whose value becomes the expression's result).
func (g *Generator) genComma(n *ast.Node) {
	for i, child := range n.Children {
		g.gen(child)
		if i != len(n.Children)-1 {
			g.emit(POP, 0)
		}
	}
}

func (g *Generator) genCall(n *ast.Node) {
	if n.Left.Kind != ast.IDENTIFIER {
		g.errUnsupported("call through a non-identifier expression")
		return
	}
	sym := g.syms.Lookup(n.Left.Name)
	if sym == nil {
		g.errUndefined("function", n.Left.Name)
		return
	}
	for _, arg := range n.Children {
		g.gen(arg)
	}
	g.emit(CALL, int32(sym.Offset))
}

// genIncDec implements pre/post increment/decrement for an identifier
// operand by reusing the load/DUP/store sequence from genAssign: the DUP
// placement determines whether the old or new value survives on the
// stack.
func (g *Generator) genIncDec(n *ast.Node) {
	if n.Left.Kind != ast.IDENTIFIER {
		g.errUnsupported("increment/decrement of a non-identifier lvalue")
		return
	}
	sym := g.syms.Lookup(n.Left.Name)
	if sym == nil {
		g.errUndefined("variable", n.Left.Name)
		return
	}

	store := func() {
		if sym.ScopeLevel == 0 {
			g.emit(STOREG, int32(sym.Offset))
		} else {
			g.emit(STOREL, int32(sym.Offset))
		}
	}
	delta := int32(1)
	if n.Kind == ast.PRE_DEC || n.Kind == ast.POST_DEC {
		delta = -1
	}

	g.genLoad(n.Left)
	switch n.Kind {
	case ast.PRE_INC, ast.PRE_DEC:
		g.emit(PUSH, delta)
		g.emit(ADD, 0)
		g.emit(DUP, 0)
		store()
	case ast.POST_INC, ast.POST_DEC:
		g.emit(DUP, 0)
		g.emit(PUSH, delta)
		g.emit(ADD, 0)
		store()
	}
}
