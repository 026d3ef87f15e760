// Package symtab implements the lexically-scoped symbol table: a stack of
// hash-bucketed scopes supporting O(1)-average insert and lookup.
package symtab

import (
	"go.xinuc.dev/pkg/ast"
	"go.xinuc.dev/pkg/diag"
	"go.xinuc.dev/pkg/types"
)

const bucketCount = 128

// Kind classifies what a Symbol names.
type Kind int

const (
	Variable Kind = iota
	Parameter
	Function
	Process
	SemaphoreSym
	StructSym
	UnionSym
	EnumSym
	TypedefSym
	LabelSym
)

var kindNames = map[Kind]string{
	Variable: "variable", Parameter: "parameter", Function: "function",
	Process: "process", SemaphoreSym: "semaphore", StructSym: "struct",
	UnionSym: "union", EnumSym: "enum", TypedefSym: "typedef", LabelSym: "label",
}

func (k Kind) String() string { return kindNames[k] }

// Symbol is one declared name, chained within its bucket on hash collision.
type Symbol struct {
	Name          string
	Kind          Kind
	Type          *types.Info
	ScopeLevel    int
	Offset        int
	IsInitialized bool
	IsUsed        bool
	Declaration   *ast.Node
	next          *Symbol
}

// scope is one lexical level: a fixed bucket array plus a next-offset
// counter tracking bytes allocated to variables/parameters declared here.
type scope struct {
	level      int
	buckets    [bucketCount]*Symbol
	count      int
	nextOffset int
	parent     *scope
	order      []*Symbol // declaration order, for diagnostics dumps only
}

// Table is a stack of scopes rooted at a single, never-replaced global
// scope. Walking parent links from current always reaches global.
type Table struct {
	global  *scope
	current *scope
	level   int

	hadError bool
	errs     []diag.CompileError
}

// New creates a Table with only the global scope (level 0, no parent).
func New() *Table {
	g := &scope{level: 0}
	return &Table{global: g, current: g}
}

// HadError reports whether any Insert failed with a redeclaration.
func (t *Table) HadError() bool { return t.hadError }

// Errors returns every symbol-table diagnostic recorded so far.
func (t *Table) Errors() []diag.CompileError { return t.errs }

// djb2 hashes name into [0, bucketCount).
func djb2(name string) uint32 {
	var h uint32 = 5381
	for i := 0; i < len(name); i++ {
		h = h*33 + uint32(name[i])
	}
	return h % bucketCount
}

// EnterScope pushes a fresh scope whose parent is the current scope.
func (t *Table) EnterScope() {
	t.level++
	t.current = &scope{level: t.level, parent: t.current}
}

// ExitScope restores the parent scope, dropping the current scope (and its
// symbols) for garbage collection. A no-op at the global scope.
func (t *Table) ExitScope() {
	if t.current == t.global {
		return
	}
	t.current = t.current.parent
	t.level--
}

// Insert declares name in the current scope. It fails with a
// RedeclarationError when name already exists in the current scope only
// (shadowing an outer scope is fine). On success the symbol's Offset is set
// to the current scope's next_offset. Variable/Parameter symbols then
// advance next_offset by the type's storage size; Function/Process symbols
// advance it by one nominal slot so that two callable symbols declared in
// the same scope still receive distinct, insertion-ordered offsets (a
// function has no byte-sized storage to account for, but CALL still needs
// a unique operand to address it by).
func (t *Table) Insert(name string, kind Kind, typ *types.Info) *Symbol {
	if t.LookupCurrentScope(name) != nil {
		t.hadError = true
		t.errs = append(t.errs, diag.NewRedeclarationError(name))
		return nil
	}

	sym := &Symbol{
		Name:       name,
		Kind:       kind,
		Type:       typ,
		ScopeLevel: t.level,
		Offset:     t.current.nextOffset,
	}
	switch kind {
	case Variable, Parameter:
		t.current.nextOffset += types.Size(typ)
	case Function, Process:
		t.current.nextOffset++
	}

	h := djb2(name)
	sym.next = t.current.buckets[h]
	t.current.buckets[h] = sym
	t.current.count++
	t.current.order = append(t.current.order, sym)
	return sym
}

// Lookup walks from the current scope outward through parents, returning
// the first symbol named name, or nil.
func (t *Table) Lookup(name string) *Symbol {
	h := djb2(name)
	for s := t.current; s != nil; s = s.parent {
		for sym := s.buckets[h]; sym != nil; sym = sym.next {
			if sym.Name == name {
				return sym
			}
		}
	}
	return nil
}

// LookupCurrentScope searches only the current scope.
func (t *Table) LookupCurrentScope(name string) *Symbol {
	h := djb2(name)
	for sym := t.current.buckets[h]; sym != nil; sym = sym.next {
		if sym.Name == name {
			return sym
		}
	}
	return nil
}

// CurrentLevel returns the level of the current scope (0 at global).
func (t *Table) CurrentLevel() int { return t.level }

// GlobalSymbols returns every symbol declared in the global scope, in
// declaration order. Intended for diagnostics dumps; not used by any
// compilation stage itself.
func (t *Table) GlobalSymbols() []*Symbol {
	return append([]*Symbol(nil), t.global.order...)
}

// Build populates the global scope from a parsed Program node: one symbol
// per top-level function, process, or variable declaration. Other
// top-level node kinds (struct/union/enum/typedef declarations) are not
// symbol-table entries and are skipped.
func Build(t *Table, program *ast.Node) {
	if program.Kind != ast.PROGRAM {
		return
	}
	for _, child := range program.Children {
		switch child.Kind {
		case ast.FUNCTION:
			sym := t.Insert(child.Name, Function, child.Type)
			if sym != nil {
				sym.Declaration = child
			}
		case ast.PROCESS:
			sym := t.Insert(child.Name, Process, child.Type)
			if sym != nil {
				sym.Declaration = child
			}
		case ast.VAR_DECL, ast.ARRAY_DECL:
			sym := t.Insert(child.Name, Variable, child.Type)
			if sym != nil {
				sym.Declaration = child
			}
		}
	}
}
