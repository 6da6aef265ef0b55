package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
}

func TestFolderCatalogListsAudioFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Never_Gonna-Give.mp3")
	writeFile(t, dir, "second.WAV")
	writeFile(t, dir, "notes.txt")
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.mp3"), 0o755))

	cat, err := NewFolderCatalog(dir)
	require.NoError(t, err)

	tracks, err := cat.Tracks()
	require.NoError(t, err)
	require.Len(t, tracks, 2)

	assert.Equal(t, 0, tracks[0].ID)
	assert.Equal(t, "Never Gonna Give", tracks[0].Name)
	assert.Equal(t, "/songs/Never_Gonna-Give.mp3", tracks[0].Path)
	assert.Equal(t, "second", tracks[1].Name)
}

func TestFolderCatalogEmpty(t *testing.T) {
	cat, err := NewFolderCatalog(t.TempDir())
	require.NoError(t, err)

	tracks, err := cat.Tracks()
	require.NoError(t, err)
	assert.Empty(t, tracks)
}

func TestNewFolderCatalogCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "songs")
	_, err := NewFolderCatalog(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
