package symtab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScopeIsolation(t *testing.T) {
	tbl := New[int]()
	tbl.Add("x", 1)

	tbl.Push()
	tbl.Add("y", 2)
	v, ok := tbl.Get("y")
	require.True(t, ok)
	assert.Equal(t, 2, v)
	tbl.Pop()

	_, ok = tbl.Get("y")
	assert.False(t, ok, "y must not be visible after its scope closed")

	v, ok = tbl.Get("x")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestShadowingInnermostWins(t *testing.T) {
	tbl := New[string]()
	tbl.Add("x", "outer")
	tbl.Push()
	tbl.Add("x", "inner")

	v, ok := tbl.Get("x")
	require.True(t, ok)
	assert.Equal(t, "inner", v)
}

func TestHasSearchesAllFrames(t *testing.T) {
	tbl := New[int]()
	tbl.Add("x", 1)
	tbl.Push()

	assert.True(t, tbl.Has("x"), "Has must find bindings in outer frames too")
}

func TestPopOutermostPanics(t *testing.T) {
	tbl := New[int]()
	assert.Panics(t, func() { tbl.Pop() })
}

func TestSetUpdatesOuterFrameInPlace(t *testing.T) {
	tbl := New[int]()
	tbl.Add("x", 1)
	tbl.Push()

	ok := tbl.Set("x", 2)
	require.True(t, ok)

	tbl.Pop()
	v, ok := tbl.Get("x")
	require.True(t, ok)
	assert.Equal(t, 2, v, "Set must mutate the frame that owns the binding, not shadow it")
}

func TestSetReportsMissingBinding(t *testing.T) {
	tbl := New[int]()
	assert.False(t, tbl.Set("nope", 1))
}
