package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStore_Save(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "uploads", 1024)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "Demo Video.MP4", strings.NewReader("frames"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/uploads/"))
	assert.True(t, strings.HasSuffix(url, ".mp4"))

	data, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/uploads/")))
	require.NoError(t, err)
	assert.Equal(t, "frames", string(data))
}

func TestLocalStore_SaveDropsOddExtensions(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "/uploads/", 1024)
	require.NoError(t, err)

	url, err := store.Save(context.Background(), "../../etc/passwd.<script>", strings.NewReader("x"))
	require.NoError(t, err)
	assert.NotContains(t, url, "..")
	assert.Equal(t, "", filepath.Ext(url))
}

func TestLocalStore_Remove(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "uploads", 1024)
	require.NoError(t, err)
	ctx := context.Background()

	url, err := store.Save(ctx, "shot.png", strings.NewReader("png"))
	require.NoError(t, err)

	require.NoError(t, store.Remove(ctx, url))
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.NoError(t, store.Remove(ctx, url), "already removed")
	assert.Error(t, store.Remove(ctx, "/elsewhere/shot.png"))
}

func TestLocalStore_SaveTooLarge(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "uploads", 4)
	require.NoError(t, err)

	_, err = store.Save(context.Background(), "big.png", strings.NewReader("12345"))
	assert.ErrorIs(t, err, ErrTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
