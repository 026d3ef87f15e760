// Package types describes the compiler's type descriptors: base kinds,
// qualifiers, and the composite shapes (pointer, array, function) built on
// top of them.
package types

import (
	"strconv"
	"strings"
)

// BaseKind enumerates the type descriptor's base category.
type BaseKind int

const (
	Void BaseKind = iota
	Char
	Short
	Int
	Long
	Float
	Double
	Pointer
	Array
	Struct
	Union
	Enum
	Function
	Process
	Semaphore
	Pid
	Unknown
)

var baseNames = map[BaseKind]string{
	Void: "void", Char: "char", Short: "short", Int: "int", Long: "long",
	Float: "float", Double: "double", Pointer: "pointer", Array: "array",
	Struct: "struct", Union: "union", Enum: "enum", Function: "function",
	Process: "process", Semaphore: "semaphore", Pid: "pid", Unknown: "unknown",
}

func (b BaseKind) String() string { return baseNames[b] }

// Qualifier is a bitmask of storage/type qualifiers.
type Qualifier uint8

const (
	Const Qualifier = 1 << iota
	Volatile
	Unsigned
	Signed
	StaticQ
	ExternQ
	Register
)

// Info is a type descriptor. Invariants: PointerDepth >= 1 iff Base ==
// Pointer; len(ArrayDims) > 0 iff Base == Array; Return != nil iff Base ==
// Function.
type Info struct {
	Base         BaseKind
	Qualifiers   Qualifier
	PointerDepth int
	ArrayDims    []int
	StructName   string
	Elem         *Info // pointer-target or array-element type
	Return       *Info // function return type
	Params       []*Info
}

// baseSize is the storage size, in bytes, of each scalar base kind on the
// reference stack-VM ABI. Aggregate/function/process kinds have no defined
// layout in this implementation (see Non-goals) and size to a single VM
// cell so offset accounting stays well-defined even when a declaration of
// one of those kinds reaches the symbol table.
var baseSize = map[BaseKind]int{
	Void: 0, Char: 1, Short: 2, Int: 4, Long: 8,
	Float: 4, Double: 8, Pid: 4,
}

// Size returns the storage size of t in bytes, used to advance a scope's
// next_offset counter on a variable/parameter insert.
func Size(t *Info) int {
	if t == nil {
		return 0
	}
	switch t.Base {
	case Pointer:
		return 8
	case Array:
		elemSize := Size(t.Elem)
		n := elemSize
		for _, d := range t.ArrayDims {
			if d > 0 {
				n *= d
			}
		}
		return n
	default:
		if sz, ok := baseSize[t.Base]; ok {
			return sz
		}
		return 4
	}
}

// String renders t in a C-ish declarator form for diagnostics.
func String(t *Info) string {
	if t == nil {
		return "<nil>"
	}

	var sb strings.Builder
	if t.Qualifiers&Const != 0 {
		sb.WriteString("const ")
	}
	if t.Qualifiers&Volatile != 0 {
		sb.WriteString("volatile ")
	}
	if t.Qualifiers&Unsigned != 0 {
		sb.WriteString("unsigned ")
	}

	switch t.Base {
	case Pointer:
		sb.WriteString(String(t.Elem))
		sb.WriteString(strings.Repeat("*", t.PointerDepth))
	case Array:
		sb.WriteString(String(t.Elem))
		for _, d := range t.ArrayDims {
			if d > 0 {
				sb.WriteString("[")
				sb.WriteString(strconv.Itoa(d))
				sb.WriteString("]")
			} else {
				sb.WriteString("[]")
			}
		}
	case Function:
		sb.WriteString(String(t.Return))
		sb.WriteString("(")
		for i, p := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(String(p))
		}
		sb.WriteString(")")
	case Struct, Union, Enum:
		sb.WriteString(t.Base.String())
		if t.StructName != "" {
			sb.WriteString(" ")
			sb.WriteString(t.StructName)
		}
	default:
		sb.WriteString(t.Base.String())
	}

	return sb.String()
}
