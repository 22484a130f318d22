package paths

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.Mkdir(sub, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "a.txt"), []byte("12345"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(sub, "b.txt"), []byte("123"), 0644))
	return root
}

func TestInFolder(t *testing.T) {
	root := seedTree(t)

	t.Run("FilesAndFolders", func(t *testing.T) {
		paths, size := InFolder(root, true, true)
		assert.Len(t, paths, 3)
		assert.Equal(t, uint64(8), size, "size counts files only")
	})

	t.Run("FilesOnly", func(t *testing.T) {
		paths, size := InFolder(root, true, false)
		assert.Len(t, paths, 2)
		assert.Equal(t, uint64(8), size)
		for _, p := range paths {
			assert.False(t, p.IsDir)
		}
	})

	t.Run("FoldersOnly", func(t *testing.T) {
		paths, _ := InFolder(root, false, true)
		require.Len(t, paths, 1)
		assert.Equal(t, "sub", paths[0].FileName)
	})
}

func TestTreeSize(t *testing.T) {
	root := seedTree(t)
	assert.Equal(t, uint64(8), TreeSize(root))
	assert.Equal(t, uint64(3), TreeSize(filepath.Join(root, "sub")))
}

func TestIsDirEmpty(t *testing.T) {
	root := seedTree(t)

	empty, err := IsDirEmpty(t.TempDir())
	require.NoError(t, err)
	assert.True(t, empty)

	empty, err = IsDirEmpty(root)
	require.NoError(t, err)
	assert.False(t, empty)

	_, err = IsDirEmpty(filepath.Join(root, "missing"))
	assert.Error(t, err)
}
