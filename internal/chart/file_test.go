package chart

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFile(t *testing.T) {
	t.Run("creates missing directories", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "output", "language_chart.svg")

		require.NoError(t, WriteFile(path, []byte("<svg/>")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "<svg/>", string(got))
	})

	t.Run("replaces existing file and leaves no temp files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "chart.svg")
		require.NoError(t, os.WriteFile(path, []byte("old"), 0o644))

		require.NoError(t, WriteFile(path, []byte("new")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new", string(got))
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("error case - destination is not writable", func(t *testing.T) {
		dir := t.TempDir()
		blocker := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

		err := WriteFile(filepath.Join(blocker, "chart.svg"), []byte("<svg/>"))
		assert.Error(t, err)
		_, statErr := os.Stat(filepath.Join(blocker, "chart.svg"))
		assert.Error(t, statErr)
	})

	t.Run("error case - destination is a directory", func(t *testing.T) {
		dir := t.TempDir()
		target := filepath.Join(dir, "chart.svg")
		require.NoError(t, os.Mkdir(target, 0o755))

		err := WriteFile(target, []byte("<svg/>"))
		assert.Error(t, err)
		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temp file must be cleaned up")
	})
}
