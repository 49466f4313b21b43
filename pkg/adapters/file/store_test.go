package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/hollow/pkg/adapters/file"
	"github.com/aretw0/hollow/pkg/domain"
	"github.com/aretw0/hollow/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Ensure Store implements SaveStore
var _ ports.SaveStore = (*file.Store)(nil)

func TestFileStore_Contract(t *testing.T) {
	ports.RunSaveStoreContract(t, file.New(t.TempDir()))
}

func TestFileStore_KeyWithSlash(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, domain.SaveSlotKey, []byte(`{"current_scene_id":"gate"}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "no temp files or sub-directories should remain")
	assert.Equal(t, "edens-hollow%2Fsave.json", entries[0].Name())

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{domain.SaveSlotKey}, keys)
}

func TestFileStore_ListIgnoresStrayFiles(t *testing.T) {
	dir := t.TempDir()
	store := file.New(dir)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "tmp-123.json"), []byte("x"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "old.json"), 0o755))
	require.NoError(t, store.Put(ctx, "slot", []byte("{}")))

	keys, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"slot"}, keys)
}

func TestFileStore_MissingDirectory(t *testing.T) {
	store := file.New(filepath.Join(t.TempDir(), "never", "created"))

	keys, err := store.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)

	_, err = store.Get(context.Background(), "slot")
	assert.ErrorIs(t, err, domain.ErrSlotNotFound)
}

func TestFileStore_EmptyKey(t *testing.T) {
	store := file.New(t.TempDir())
	assert.Error(t, store.Put(context.Background(), "", []byte("x")))
	_, err := store.Get(context.Background(), "")
	assert.Error(t, err)
}
