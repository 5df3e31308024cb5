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
	base := filepath.Join(t.TempDir(), "out")
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	path, err := store.Save("attendance_report.csv", []byte("sr_no\n1\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "attendance_report.csv"), path)

	file, err := store.Open("attendance_report.csv")
	require.NoError(t, err)
	defer file.Close()
	content, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Equal(t, "sr_no\n1\n", string(content))
}

func TestLocalStorageSaveReplacesAndLeavesNoTempFiles(t *testing.T) {
	base := t.TempDir()
	store, err := NewLocalStorage(base)
	require.NoError(t, err)

	_, err = store.Save("report.html", []byte("old"))
	require.NoError(t, err)
	_, err = store.Save("report.html", []byte("new"))
	require.NoError(t, err)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "report.html", entries[0].Name())

	content, err := os.ReadFile(store.Path("report.html"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(content))
}

func TestLocalStorageAbsolutePathBypassesBase(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	abs := filepath.Join(t.TempDir(), "elsewhere.csv")
	assert.Equal(t, abs, store.Path(abs))
}
