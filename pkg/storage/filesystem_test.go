package storage

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageSaveAndOpen(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("nested/report.csv", []byte("a,b\n"))
	require.NoError(t, err)
	assert.True(t, store.Exists("nested/report.csv"))

	file, err := store.Open("nested/report.csv")
	require.NoError(t, err)
	defer file.Close()
	data, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "a,b\n", string(data))
}

func TestLocalStorageAppendCreatesAndGrows(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	assert.False(t, store.Exists("sheet.csv"))
	require.NoError(t, store.Append("sheet.csv", []byte("header\n")))
	require.NoError(t, store.Append("sheet.csv", []byte("row1\n")))
	require.NoError(t, store.Append("sheet.csv", []byte("row2\n")))

	data, err := os.ReadFile(store.Path("sheet.csv"))
	require.NoError(t, err)
	assert.Equal(t, "header\nrow1\nrow2\n", string(data))
}

func TestLocalStorageDelete(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	_, err = store.Save("gone.csv", []byte("x"))
	require.NoError(t, err)
	require.NoError(t, store.Delete("gone.csv"))
	assert.False(t, store.Exists("gone.csv"))

	// Deleting a missing file is not an error.
	require.NoError(t, store.Delete("gone.csv"))
}

func TestLocalStoragePathResolution(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "file.csv"), store.Path("file.csv"))
}
