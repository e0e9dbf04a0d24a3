package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMemory(t *testing.T) {
	fs := NewMemory()

	require.NoError(t, fs.MkdirAll("/base/pages/api/auth", 0755))
	require.NoError(t, fs.WriteFile("/base/pages/api/auth/login.ts", []byte("export {}"), 0644))

	content, err := fs.ReadFile("/base/pages/api/auth/login.ts")
	require.NoError(t, err)
	assert.Equal(t, "export {}", string(content))

	_, err = fs.ReadFile("/base/pages")
	assert.Error(t, err, "reading a directory should fail")

	entries, err := fs.ReadDir("/base/pages/api")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].IsDir())
}

func TestNewDryRun_DoesNotTouchDisk(t *testing.T) {
	tmpDir := t.TempDir()
	existing := filepath.Join(tmpDir, "keep.txt")
	require.NoError(t, os.WriteFile(existing, []byte("keep"), 0644))

	fs := NewDryRun()

	// Reads fall through to the real filesystem
	content, err := fs.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(content))

	// Writes stay in the memory layer
	target := filepath.Join(tmpDir, "app", "globals.css")
	require.NoError(t, fs.MkdirAll(filepath.Dir(target), 0755))
	require.NoError(t, fs.WriteFile(target, []byte("@tailwind base;"), 0644))

	written, err := fs.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "@tailwind base;", string(written))

	_, err = os.Stat(filepath.Join(tmpDir, "app"))
	assert.True(t, os.IsNotExist(err), "dry run must not create directories on disk")

	// Overwriting an existing file does not change it on disk
	require.NoError(t, fs.WriteFile(existing, []byte("changed"), 0644))
	onDisk, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(onDisk))
}
