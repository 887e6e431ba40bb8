package lsp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/axiomlang/axiom/source"
)

func TestToRange_EndCharacterIsExclusive(t *testing.T) {
	r := source.Range{
		Start: source.Position{Line: 0, Column: 2},
		End:   source.Position{Line: 0, Column: 5},
	}
	got := ToRange(r)
	assert.Equal(t, uint32(2), got.Start.Character)
	assert.Equal(t, uint32(6), got.End.Character)
}

func TestStore_OpenCompilesAndRevisionChanges(t *testing.T) {
	s := NewStore()
	doc1 := s.Open("file:///a.axiom", `function main(): i32 { return 1 }`)
	require.False(t, doc1.Result.Errs.HasErrors())

	doc2 := s.Change("file:///a.axiom", `function main(): i32 { return missing }`)
	require.True(t, doc2.Result.Errs.HasErrors())
	assert.NotEqual(t, doc1.Revision, doc2.Revision)

	got, ok := s.Get("file:///a.axiom")
	require.True(t, ok)
	assert.Equal(t, doc2.Revision, got.Revision)
}

func TestDiagnostics_OnePerError(t *testing.T) {
	s := NewStore()
	doc := s.Open("file:///a.axiom", `function main(): i32 { return missing }`)
	diags := Diagnostics(doc.Result.Errs)
	require.Len(t, diags, len(doc.Result.Errs))
}

func TestHover_ResolvesIdentifierType(t *testing.T) {
	s := NewStore()
	doc := s.Open("file:///a.axiom", `function main(): i32 { let a = 5 return a }`)
	require.False(t, doc.Result.Errs.HasErrors(), doc.Result.Errs.Lines())

	// "return a" - locate the 'a' identifier column within the source text.
	text := doc.Text
	line := 0
	col := indexOf(text, "return a") + len("return ")
	hover, ok := Hover(doc, source.Position{Line: uint32(line), Column: uint32(col)})
	require.True(t, ok)
	assert.Equal(t, "i32", hover.Contents.Value)
}

func indexOf(s, substr string) int {
	for i := 0; i+len(substr) <= len(s); i++ {
		if s[i:i+len(substr)] == substr {
			return i
		}
	}
	return -1
}
