package parser

import (
	"testing"

	"github.com/axiomlang/axiom/ast"
	"github.com/axiomlang/axiom/lexer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseExpr(t *testing.T, src string) ast.Node {
	t.Helper()
	toks := lexer.Lex("function main(): i32 { return " + src + " }")
	f, err := Parse(toks)
	require.NoError(t, err)
	require.Len(t, f.Functions, 1)
	require.Len(t, f.Functions[0].Body.Statements, 1)
	ret := f.Functions[0].Body.Statements[0].(*ast.Return)
	return ret.Expr
}

func TestPrecedence_MulBindsTighterThanAdd(t *testing.T) {
	n := parseExpr(t, "1 + 2 * 3")
	bin, ok := n.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BAdd, bin.Op)
	assert.IsType(t, &ast.Number{}, bin.Left)
	rightBin, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BMul, rightBin.Op)
}

func TestPrecedence_MulOnLeftBindsTighterThanAdd(t *testing.T) {
	n := parseExpr(t, "2 * 3 + 1")
	bin, ok := n.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BAdd, bin.Op)
	leftBin, ok := bin.Left.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BMul, leftBin.Op)
	assert.IsType(t, &ast.Number{}, bin.Right)
}

func TestPrecedence_OrLooserThanAnd(t *testing.T) {
	toks := lexer.Lex("function main(): i32 { return a || b && c }")
	f, err := Parse(toks)
	require.NoError(t, err)
	ret := f.Functions[0].Body.Statements[0].(*ast.Return)
	bin, ok := ret.Expr.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BLogicalOr, bin.Op)
	rightBin, ok := bin.Right.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BLogicalAnd, rightBin.Op)
}

func TestRangeCover_BinaryNodeUnionsOperands(t *testing.T) {
	n := parseExpr(t, "1 + 2")
	bin := n.(*ast.Binary)
	want := bin.Left.Range().Union(bin.Right.Range())
	assert.Equal(t, want, bin.Range())
}

func TestCompoundAssignDesugarsToBinary(t *testing.T) {
	toks := lexer.Lex("function main(): i32 { let a = 5 a += 10 return a }")
	f, err := Parse(toks)
	require.NoError(t, err)
	stmts := f.Functions[0].Body.Statements
	require.Len(t, stmts, 3)
	assign, ok := stmts[1].(*ast.Assignment)
	require.True(t, ok)
	assert.Equal(t, "a", assign.Name)
	bin, ok := assign.RHS.(*ast.Binary)
	require.True(t, ok)
	assert.Equal(t, ast.BAdd, bin.Op)
	ident, ok := bin.Left.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "a", ident.Name)
}

func TestIfElseIfElseChain(t *testing.T) {
	src := `function main(): i32 {
		let x = 2
		if x == 1 { return 10 } else if x == 2 { return 20 } else { return 30 }
	}`
	toks := lexer.Lex(src)
	f, err := Parse(toks)
	require.NoError(t, err)
	stmts := f.Functions[0].Body.Statements
	require.Len(t, stmts, 2)
	ifElse, ok := stmts[1].(*ast.IfElse)
	require.True(t, ok)
	require.Len(t, ifElse.ElseIfs, 1)
	require.NotNil(t, ifElse.Else)
}

func TestTernary(t *testing.T) {
	n := parseExpr(t, "x > 3 ? 1 : 0")
	ternary, ok := n.(*ast.Ternary)
	require.True(t, ok)
	assert.IsType(t, &ast.Binary{}, ternary.Condition)
}

func TestUnexpectedEOF(t *testing.T) {
	toks := lexer.Lex("function main(): i32 { return 1")
	_, err := Parse(toks)
	require.Error(t, err)
}

func TestSyntaxErrorOnBadToken(t *testing.T) {
	toks := lexer.Lex("function main(): i32 { return }")
	_, err := Parse(toks)
	require.Error(t, err)
}
