package compiler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompile_WellFormedProgramProducesModule(t *testing.T) {
	res := Compile(`function main(): i32 { return 1 + 2 }`)
	require.False(t, res.Errs.HasErrors(), res.Errs.Lines())
	require.NotNil(t, res.Module)
	assert.Contains(t, res.Module.String(), "define i32 @main(")
}

func TestCompile_SyntaxErrorHaltsBeforeAnalysis(t *testing.T) {
	res := Compile(`function main(): i32 { return }`)
	require.True(t, res.Errs.HasErrors())
	assert.Nil(t, res.Module)
}

func TestCompile_AnalysisErrorHaltsBeforeEmission(t *testing.T) {
	res := Compile(`function main(): i32 { return missing }`)
	require.True(t, res.Errs.HasErrors())
	assert.Nil(t, res.Module)
}
