package sema

import (
	"testing"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/lexer"
	"github.com/axiomlang/axiom/parser"
	"github.com/axiomlang/axiom/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOK(t *testing.T, src string) *ast.File {
	t.Helper()
	toks := lexer.Lex(src)
	f, err := parser.Parse(toks)
	require.NoError(t, err)
	return f
}

func TestAnalyze_WellTypedFunctionHasNoErrors(t *testing.T) {
	f := parseOK(t, `function add(a: i32, b: i32): i32 { return a + b }`)
	errs := Analyze(f)
	assert.False(t, errs.HasErrors(), errs.Lines())
	assert.True(t, f.Functions[0].DataType.Equal(types.NewFunction(
		[]types.DataType{types.I32Type, types.I32Type}, types.I32Type,
	)))
}

func TestAnalyze_RecursiveCallResolves(t *testing.T) {
	f := parseOK(t, `function fact(n: i32): i32 { return n * fact(n - 1) }`)
	errs := Analyze(f)
	assert.False(t, errs.HasErrors(), errs.Lines())
}

func TestAnalyze_UnknownIdentifierIsError(t *testing.T) {
	f := parseOK(t, `function main(): i32 { return missing }`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_WrongDataTypeOnBinaryMismatch(t *testing.T) {
	f := parseOK(t, `function main(): bool {
		let a = 1
		let b = 1 < 2
		return a == b
	}`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_NotATypeOnBadParamType(t *testing.T) {
	f := parseOK(t, `function main(x: nope): i32 { return x }`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_DuplicatedIdentifierOnRedeclaration(t *testing.T) {
	f := parseOK(t, `function main(): i32 {
		let a = 1
		let a = 2
		return a
	}`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_MismatchedNumberOfParameters(t *testing.T) {
	f := parseOK(t, `function add(a: i32, b: i32): i32 { return a + b }
	function main(): i32 { return add(1) }`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_ComparisonProducesBool(t *testing.T) {
	f := parseOK(t, `function main(): bool { return 1 < 2 }`)
	errs := Analyze(f)
	require.False(t, errs.HasErrors(), errs.Lines())
	ret := f.Functions[0].Body.Statements[0].(*ast.Return)
	bin := ret.Expr.(*ast.Binary)
	assert.True(t, bin.DataType.Equal(types.BoolType))
}

func TestAnalyze_TernaryTypeIsConsequentType(t *testing.T) {
	f := parseOK(t, `function main(): i32 { return 1 < 2 ? 10 : 20 }`)
	errs := Analyze(f)
	require.False(t, errs.HasErrors(), errs.Lines())
	ret := f.Functions[0].Body.Statements[0].(*ast.Return)
	ternary := ret.Expr.(*ast.Ternary)
	assert.True(t, ternary.DataType.Equal(types.I32Type))
}

func TestAnalyze_IfElseConditionMustBeBool(t *testing.T) {
	f := parseOK(t, `function main(): i32 {
		if 1 { return 1 } else { return 0 }
	}`)
	errs := Analyze(f)
	require.True(t, errs.HasErrors())
}

func TestAnalyze_ScopeIsolatesDeclarations(t *testing.T) {
	f := parseOK(t, `function main(): i32 {
		if 1 < 2 { let x = 5 }
		return 0
	}`)
	errs := Analyze(f)
	require.False(t, errs.HasErrors(), errs.Lines())
}
