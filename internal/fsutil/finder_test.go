package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("insert_job: X\n"), 0o644))
}

func TestFindFiles_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "b.jil"))
	writeFile(t, filepath.Join(root, "a.JIL"))
	writeFile(t, filepath.Join(root, "nested", "c.job"))
	writeFile(t, filepath.Join(root, "notes.txt"))

	files, err := FindFiles(root, ".jil", ".job")
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "a.JIL"),
		filepath.Join(root, "b.jil"),
		filepath.Join(root, "nested", "c.job"),
	}, files)
}

func TestFindFiles_SingleFileIgnoresExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chain.txt")
	writeFile(t, path)

	files, err := FindFiles(path, ".jil")
	require.NoError(t, err)
	assert.Equal(t, []string{path}, files)
}

func TestFindFiles_EmptyDirectory(t *testing.T) {
	files, err := FindFiles(t.TempDir(), ".jil")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestFindFiles_MissingRoot(t *testing.T) {
	_, err := FindFiles(filepath.Join(t.TempDir(), "nope"), ".jil")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestFindFiles_PanicsWithoutExtensions(t *testing.T) {
	assert.Panics(t, func() { _, _ = FindFiles(t.TempDir()) })
}
