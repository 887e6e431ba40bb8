package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEqual_Structural(t *testing.T) {
	a := NewFunction([]DataType{I32Type, I32Type}, I32Type)
	b := NewFunction([]DataType{I32Type, I32Type}, I32Type)
	c := NewFunction([]DataType{I32Type, BoolType}, I32Type)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestEqual_TypeWrapper(t *testing.T) {
	a := NewType(I32Type)
	b := NewType(I32Type)
	c := NewType(BoolType)

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
}

func TestString_Function(t *testing.T) {
	f := NewFunction([]DataType{I32Type, I32Type}, BoolType)
	assert.Equal(t, "(i32, i32) -> bool", f.String())
}

func TestIsToBeInferred(t *testing.T) {
	assert.True(t, ToBeInferredType.IsToBeInferred())
	assert.False(t, I32Type.IsToBeInferred())
}
