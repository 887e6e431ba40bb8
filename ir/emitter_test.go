package ir

import (
	"strings"
	"testing"

	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/parser"
	"github.com/axiomlang/axiom/sema"
	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/require"
)

func compile(t *testing.T, src string) string {
	t.Helper()
	toks := lexer.Lex(src)
	f, err := parser.Parse(toks)
	require.NoError(t, err)
	errs := sema.Analyze(f)
	require.False(t, errs.HasErrors(), errs.Lines())
	mod := EmitModule(f)
	return mod.String()
}

func TestEmit_SimpleAddFunction(t *testing.T) {
	out := compile(t, `function add(a: i32, b: i32): i32 { return a + b }`)
	require.Contains(t, out, "define i32 @add(")
	require.Contains(t, out, "add ")
	require.Contains(t, out, "ret i32")
}

func TestEmit_ComparisonUsesUnsignedPredicate(t *testing.T) {
	out := compile(t, `function lt(a: i32, b: i32): bool { return a < b }`)
	require.Contains(t, out, "icmp ult")
}

func TestEmit_LogicalOrLowersToBitwiseOr(t *testing.T) {
	out := compile(t, `function f(a: bool, b: bool): bool { return a || b }`)
	require.Contains(t, out, "or i1")
}

func TestEmit_IfElseProducesThreeBlocksPlusMerge(t *testing.T) {
	out := compile(t, `function f(x: i32): i32 {
		if x > 0 { return 1 } else { return 0 }
	}`)
	require.Contains(t, out, "br i1")
	require.Contains(t, out, "br label")
}

func TestEmit_TernaryProducesPhi(t *testing.T) {
	out := compile(t, `function f(x: i32): i32 { return x > 0 ? 1 : 0 }`)
	require.Contains(t, out, "phi i32")
}

func TestEmit_RecursiveCallResolvesToSelf(t *testing.T) {
	out := compile(t, `function fact(n: i32): i32 { return n * fact(n - 1) }`)
	require.True(t, strings.Contains(out, "call i32 @fact("))
}

func TestEmit_AbsoluteLowersToCompareSubSelect(t *testing.T) {
	out := compile(t, `function f(x: i32): i32 { return +x }`)
	require.Contains(t, out, "icmp slt")
	require.Contains(t, out, "select i1")
}

func TestEmit_ModuleSnapshot(t *testing.T) {
	out := compile(t, `function add(a: i32, b: i32): i32 { return a + b }`)
	snaps.MatchSnapshot(t, out)
}
