package blobstore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreSaveAndDelete(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	ctx := context.Background()
	path, err := store.Save(ctx, "product", Upload{Filename: "front.PNG", ContentType: "image/png", Data: []byte("png-bytes")})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, "/uploads/product-"))
	assert.True(t, strings.HasSuffix(path, ".PNG"))

	name, err := NameFromPath(path)
	require.NoError(t, err)
	data, err := os.ReadFile(filepath.Join(root, name))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, path))
	_, err = os.Stat(filepath.Join(root, name))
	assert.True(t, os.IsNotExist(err))

	// second delete of the same path is a no-op
	assert.NoError(t, store.Delete(ctx, path))
}

func TestLocalStoreNamesAreUnique(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		path, err := store.Save(context.Background(), "product", Upload{Filename: "a.jpg", Data: []byte{1}})
		require.NoError(t, err)
		assert.False(t, seen[path], "duplicate name %s", path)
		seen[path] = true
	}
}

func TestLocalStoreLeavesNoTempFiles(t *testing.T) {
	root := t.TempDir()
	store, err := NewLocalStore(root)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "logo", Upload{Filename: "logo.svg", Data: []byte("<svg/>")})
	require.NoError(t, err)

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "logo-"))
}

func TestLocalStoreDeleteRejectsForeignPaths(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	assert.ErrorIs(t, store.Delete(context.Background(), "/etc/passwd"), ErrInvalidPath)
	assert.ErrorIs(t, store.Delete(context.Background(), "/uploads/../secret"), ErrInvalidPath)
	assert.NoError(t, store.Delete(context.Background(), ""))
}

func TestLocalStoreHonoursCancelledContext(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "product", Upload{Filename: "a.jpg", Data: []byte{1}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectKey(t *testing.T) {
	assert.Equal(t, "uploads/product-1-abc.jpg", ObjectKey("product-1-abc.jpg"))
}
