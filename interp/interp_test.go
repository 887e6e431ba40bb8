package interp

import (
	"testing"

	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/parser"
	"github.com/axiomlang/axiom/sema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, src string) int32 {
	t.Helper()
	toks := lexer.Lex(src)
	f, err := parser.Parse(toks)
	require.NoError(t, err)
	errs := sema.Analyze(f)
	require.False(t, errs.HasErrors(), errs.Lines())
	v, err := New(f).RunMain()
	require.NoError(t, err)
	return v
}

func TestRunMain_SimpleArithmetic(t *testing.T) {
	assert.Equal(t, int32(7), run(t, `function main(): i32 { return 3 + 4 }`))
}

func TestRunMain_RecursiveFactorial(t *testing.T) {
	src := `
	function fact(n: i32): i32 {
		if n <= 1 { return 1 }
		return n * fact(n - 1)
	}
	function main(): i32 { return fact(5) }
	`
	assert.Equal(t, int32(120), run(t, src))
}

func TestRunMain_AssignmentInNestedScopeUpdatesOuterBinding(t *testing.T) {
	src := `
	function main(): i32 {
		let a = 1
		if 1 < 2 {
			a = 2
		}
		return a
	}
	`
	assert.Equal(t, int32(2), run(t, src))
}

func TestRunMain_CompoundAssignDesugars(t *testing.T) {
	src := `function main(): i32 { let a = 5 a += 10 return a }`
	assert.Equal(t, int32(15), run(t, src))
}

func TestRunMain_TernaryPicksBranch(t *testing.T) {
	src := `function main(): i32 { let x = 10 return x > 5 ? 1 : 0 }`
	assert.Equal(t, int32(1), run(t, src))
}
