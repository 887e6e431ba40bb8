package scaffold

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInit_CreatesLayoutAndManifest(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, "myproj", Bin))

	projDir := filepath.Join(root, "myproj")
	for _, d := range scaffoldDirs {
		info, err := os.Stat(filepath.Join(projDir, d))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}

	_, err := os.Stat(filepath.Join(projDir, "axiom.toml"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(projDir, "axiom.lock"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(projDir, "src", "bin.axiom"))
	require.NoError(t, err)
}

func TestInit_LibUsesLibEntryFile(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, "mylib", Lib))
	_, err := os.Stat(filepath.Join(root, "mylib", "src", "lib.axiom"))
	require.NoError(t, err)
}

func TestInit_RefusesExistingDirectory(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.Mkdir(filepath.Join(root, "dup"), 0o755))
	err := Init(root, "dup", Bin)
	require.Error(t, err)
}

func TestInit_DotNameScaffoldsInPlace(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, Init(root, ".", Bin))
	_, err := os.Stat(filepath.Join(root, "src", "bin.axiom"))
	require.NoError(t, err)
}
