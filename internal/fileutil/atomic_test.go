package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Parallel()

	t.Run("writes content and permissions", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "puzzle.txt")

		require.NoError(t, WriteFileAtomic(path, []byte("7,4,9\n"), 0o600))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "7,4,9\n", string(data))

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1, "temp files are cleaned up")
	})

	t.Run("overwrites existing files", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "puzzle.txt")
		require.NoError(t, WriteFileAtomic(path, []byte("old"), 0o644))
		require.NoError(t, WriteFileAtomic(path, []byte("new"), 0o644))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(data))
	})

	t.Run("failed rename leaves no temp file", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "taken")
		require.NoError(t, os.Mkdir(target, 0o755))

		require.Error(t, WriteFileAtomic(target, []byte("data"), 0o644))

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "taken", entries[0].Name())
	})

	t.Run("missing directory fails", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "missing", "puzzle.txt")
		require.Error(t, WriteFileAtomic(path, []byte("data"), 0o644))
	})
}
