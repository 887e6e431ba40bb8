package lexer

import (
	"testing"

	"github.com/axiomlang/axiom/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLex_RangeRoundTrip(t *testing.T) {
	src := "function main(): i32 { let a = 5 return a }"
	toks := Lex(src)
	require.NotEmpty(t, toks)

	runes := []rune(src)
	for _, tok := range toks {
		if tok.Kind == token.Unknown {
			continue
		}
		got := tok.Lexeme()
		if got == "" {
			continue
		}
		// reconstruct source[token.range] using byte offsets derived from
		// line/column against the (single-line) fixture.
		start := int(tok.Range.Start.Column)
		end := int(tok.Range.End.Column) + 1
		if end > len(runes) {
			end = len(runes)
		}
		assert.Equal(t, got, string(runes[start:end]), "lexeme %q range mismatch", got)
	}
}

func TestLex_RangeMonotonic(t *testing.T) {
	toks := Lex("let a = 1 + 2 * 3")
	for i := 0; i+1 < len(toks); i++ {
		assert.True(t, toks[i].Range.End.LessEqual(toks[i+1].Range.Start),
			"token %d (%s) overlaps token %d (%s)", i, toks[i], i+1, toks[i+1])
	}
}

func TestLex_NewlineResetsColumnAfterConsumption(t *testing.T) {
	toks := Lex("a\nb")
	require.Len(t, toks, 2)
	assert.Equal(t, uint32(0), toks[0].Range.Start.Line)
	assert.Equal(t, uint32(0), toks[0].Range.Start.Column)
	assert.Equal(t, uint32(1), toks[1].Range.Start.Line)
	assert.Equal(t, uint32(0), toks[1].Range.Start.Column)
}

func TestLex_ThreeCharacterOperators(t *testing.T) {
	cases := map[string]token.OpKind{
		">>=": token.OpShrAssign,
		"<<=": token.OpShlAssign,
		"||=": token.OpLogicalOrAssign,
		"&&=": token.OpLogicalAndAssign,
		">>":  token.OpShr,
		"<<":  token.OpShl,
		"||":  token.OpLogicalOr,
		"&&":  token.OpLogicalAnd,
	}
	for src, want := range cases {
		toks := Lex(src)
		require.Len(t, toks, 1, "lexing %q", src)
		assert.Equal(t, want, toks[0].OpKind, "lexing %q", src)
	}
}

func TestLex_UnknownCharacter(t *testing.T) {
	toks := Lex("a # b")
	require.Len(t, toks, 3)
	assert.Equal(t, token.Unknown, toks[1].Kind)
	assert.Equal(t, '#', toks[1].Char)
}

func TestLex_KeywordVsIdentifier(t *testing.T) {
	toks := Lex("function iffy")
	require.Len(t, toks, 2)
	assert.Equal(t, token.Keyword, toks[0].Kind)
	assert.Equal(t, token.Function, toks[0].KeywordKind)
	assert.Equal(t, token.Identifier, toks[1].Kind)
	assert.Equal(t, "iffy", toks[1].Text)
}
