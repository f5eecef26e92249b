package uploads

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiskStorageSave(t *testing.T) {
	dir := t.TempDir()
	adapter, err := NewDiskStorageAdapter(dir)
	require.NoError(t, err)

	path, err := adapter.Save(context.Background(), "photo.jpg", []byte("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "photo.jpg", path)

	content, err := os.ReadFile(filepath.Join(dir, "photo.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), content)
}

func TestDiskStorageCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")

	adapter, err := NewDiskStorageAdapter(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, adapter.Dir())

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDiskStorageCancelledContext(t *testing.T) {
	adapter, err := NewDiskStorageAdapter(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = adapter.Save(ctx, "photo.jpg", []byte("x"))
	assert.ErrorIs(t, err, context.Canceled)
}
