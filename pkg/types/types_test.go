package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSizeScalars(t *testing.T) {
	assert.Equal(t, 0, Size(&Info{Base: Void}))
	assert.Equal(t, 1, Size(&Info{Base: Char}))
	assert.Equal(t, 2, Size(&Info{Base: Short}))
	assert.Equal(t, 4, Size(&Info{Base: Int}))
	assert.Equal(t, 8, Size(&Info{Base: Long}))
	assert.Equal(t, 4, Size(&Info{Base: Float}))
	assert.Equal(t, 8, Size(&Info{Base: Double}))
}

func TestSizeNilIsZero(t *testing.T) {
	assert.Equal(t, 0, Size(nil))
}

func TestSizePointerIsEightRegardlessOfTarget(t *testing.T) {
	ptr := &Info{Base: Pointer, PointerDepth: 1, Elem: &Info{Base: Char}}
	assert.Equal(t, 8, Size(ptr))
}

func TestSizeArrayMultipliesDims(t *testing.T) {
	arr := &Info{Base: Array, Elem: &Info{Base: Int}, ArrayDims: []int{10}}
	assert.Equal(t, 40, Size(arr))

	matrix := &Info{Base: Array, Elem: &Info{Base: Int}, ArrayDims: []int{3, 4}}
	assert.Equal(t, 4*3*4, Size(matrix))
}

func TestSizeArrayWithUnknownDimSkipsMultiplication(t *testing.T) {
	// A bare `int x[];` dimension is recorded as -1; Size must not fold
	// that into a negative or zero total.
	arr := &Info{Base: Array, Elem: &Info{Base: Int}, ArrayDims: []int{-1}}
	assert.Equal(t, 4, Size(arr))
}

func TestStringRendersDeclarators(t *testing.T) {
	assert.Equal(t, "int", String(&Info{Base: Int}))

	ptr := &Info{Base: Pointer, PointerDepth: 2, Elem: &Info{Base: Char}}
	assert.Equal(t, "char**", String(ptr))

	arr := &Info{Base: Array, Elem: &Info{Base: Int}, ArrayDims: []int{4}}
	assert.Equal(t, "int[4]", String(arr))

	fn := &Info{Base: Function, Return: &Info{Base: Void}, Params: []*Info{{Base: Int}, {Base: Char}}}
	assert.Equal(t, "void(int, char)", String(fn))

	s := &Info{Base: Struct, StructName: "point"}
	assert.Equal(t, "struct point", String(s))
}

func TestStringQualifiers(t *testing.T) {
	q := &Info{Base: Int, Qualifiers: Const | Unsigned}
	assert.Equal(t, "const unsigned int", String(q))
}

func TestStringNil(t *testing.T) {
	assert.Equal(t, "<nil>", String(nil))
}
