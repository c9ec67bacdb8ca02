package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlaylist(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPlaylist(t *testing.T) {
	path := writePlaylist(t, `
entries:
  - path: one.gif
  - path: two.gif
    loops: 3
`)
	pl, err := loadPlaylist(path)
	require.NoError(t, err)
	require.Len(t, pl.Entries, 2)

	assert.Equal(t, "one.gif", pl.Entries[0].Path)
	assert.Nil(t, pl.Entries[0].Loops)
	assert.Equal(t, "two.gif", pl.Entries[1].Path)
	require.NotNil(t, pl.Entries[1].Loops)
	assert.Equal(t, 3, *pl.Entries[1].Loops)
}

func TestLoadPlaylistRejectsEmpty(t *testing.T) {
	path := writePlaylist(t, "entries: []\n")
	_, err := loadPlaylist(path)
	assert.Error(t, err)
}

func TestLoadPlaylistRejectsMissingPath(t *testing.T) {
	path := writePlaylist(t, "entries:\n  - loops: 2\n")
	_, err := loadPlaylist(path)
	assert.Error(t, err)
}

func TestLoadPlaylistMissingFile(t *testing.T) {
	_, err := loadPlaylist(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
