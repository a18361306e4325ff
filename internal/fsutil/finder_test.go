package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestFindFilesByExtension(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "main.c"), "")
	touch(t, filepath.Join(root, "lib", "util.c"), "")
	touch(t, filepath.Join(root, "lib", "util.h"), "")
	touch(t, filepath.Join(root, "README.md"), "")

	files, err := FindFilesByExtension(root, ".c", ".h")
	require.NoError(t, err)
	assert.Equal(t, []string{"lib/util.c", "lib/util.h", "main.c"}, files)

	_, err = FindFilesByExtension(filepath.Join(root, "missing"), ".c")
	assert.Error(t, err)

	assert.Panics(t, func() { _, _ = FindFilesByExtension(root) })
}

func TestCopyDirFiles(t *testing.T) {
	src := t.TempDir()
	touch(t, filepath.Join(src, "default.cmake"), "set(X 1)")
	touch(t, filepath.Join(src, "nested", "skip.cmake"), "")

	dst := filepath.Join(t.TempDir(), "platform_files")
	copied, err := CopyDirFiles(src, dst)
	require.NoError(t, err)
	assert.Equal(t, []string{"default.cmake"}, copied)

	data, err := os.ReadFile(filepath.Join(dst, "default.cmake"))
	require.NoError(t, err)
	assert.Equal(t, "set(X 1)", string(data))

	_, err = os.Stat(filepath.Join(dst, "nested"))
	assert.True(t, os.IsNotExist(err))
}
