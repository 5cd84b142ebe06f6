package fsutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "info.json")

	require.NoError(t, WriteFileAtomic(path, []byte("first"), 0o644))
	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteFileAtomic_MissingDir(t *testing.T) {
	err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "a.png"), []byte("x"), 0o644)
	assert.Error(t, err)
}

func TestExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.png")

	ok, err := Exists(path)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	ok, err = Exists(path)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRequireDirAndFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "info.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	assert.NoError(t, RequireDir(dir))
	assert.Error(t, RequireDir(file))
	assert.Error(t, RequireDir(filepath.Join(dir, "missing")))

	assert.NoError(t, RequireFile(file))
	assert.Error(t, RequireFile(dir))
	assert.Error(t, RequireFile(filepath.Join(dir, "missing.json")))
}

func TestWriteFileAtomic_KeepsExistingMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "info.json")
	require.NoError(t, os.WriteFile(path, []byte("first"), 0o600))
	require.NoError(t, os.Chmod(path, 0o600))

	require.NoError(t, WriteFileAtomic(path, []byte("second"), 0o644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestWriteFileAtomic_FollowsSymlink(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "data", "info.json")
	require.NoError(t, os.Mkdir(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("first"), 0o644))
	link := filepath.Join(dir, "info.json")
	require.NoError(t, os.Symlink(target, link))

	require.NoError(t, WriteFileAtomic(link, []byte("second"), 0o644))

	fi, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, fi.Mode()&os.ModeSymlink, "link must stay a symlink")

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "second", string(data))

	entries, err := os.ReadDir(filepath.Dir(target))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
