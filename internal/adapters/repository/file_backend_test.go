package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/folio/portfolio/internal/infrastructure/logger"
)

func TestFileBackend_ReadMissing(t *testing.T) {
	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)

	_, err = b.Read(context.Background(), "blogs")
	assert.ErrorIs(t, err, ErrBlobNotFound)
}

func TestFileBackend_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	_, err := NewFileBackend(dir, logger.NewNop())
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestFileBackend_MutateWritesFile(t *testing.T) {
	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	err = b.Mutate(ctx, "skills", func(current []byte) ([]byte, error) {
		assert.Nil(t, current)
		return []byte(`[{"id":1}]`), nil
	})
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(b.Dir(), "skills.json"))
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(raw))

	err = b.Mutate(ctx, "skills", func(current []byte) ([]byte, error) {
		assert.Equal(t, `[{"id":1}]`, string(current))
		return nil, ErrSkipWrite
	})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = b.Mutate(ctx, "skills", func([]byte) ([]byte, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	data, err := b.Read(ctx, "skills")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestFileBackend_HealthCheck(t *testing.T) {
	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)

	assert.NoError(t, b.HealthCheck(context.Background()))

	entries, err := os.ReadDir(b.Dir())
	require.NoError(t, err)
	assert.Empty(t, entries, "health probe leaves nothing behind")
}

func TestFileBackend_WatchInvalidatesCache(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	require.NoError(t, b.Watch())
	defer b.Close()

	ctx := context.Background()
	require.NoError(t, b.Mutate(ctx, "skills", func([]byte) ([]byte, error) {
		return []byte(`["first"]`), nil
	}))

	data, err := b.Read(ctx, "skills")
	require.NoError(t, err)
	assert.Equal(t, `["first"]`, string(data))

	// Edit the file behind the backend's back.
	require.NoError(t, os.WriteFile(filepath.Join(b.Dir(), "skills.json"), []byte(`["second"]`), 0o644))

	assert.Eventually(t, func() bool {
		data, err := b.Read(ctx, "skills")
		return err == nil && string(data) == `["second"]`
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, b.Close())
}

func TestFileBackend_ReadDoesNotCacheBytesOlderThanAWrite(t *testing.T) {
	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	b.caching = true
	ctx := context.Background()

	write := func(body string) {
		require.NoError(t, b.Mutate(ctx, "skills", func([]byte) ([]byte, error) {
			return []byte(body), nil
		}))
	}
	write("old")
	b.forget("skills")

	// A reader that loaded "old" and only caches it after a write landed.
	_, gen, ok := b.cached("skills")
	require.False(t, ok)
	write("new")
	b.remember("skills", []byte("old"), gen)

	data, err := b.Read(ctx, "skills")
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))

	b.forget("skills")
	_, gen, _ = b.cached("skills")
	b.forget("skills")
	b.remember("skills", []byte("old"), gen)
	_, _, ok = b.cached("skills")
	assert.False(t, ok)
}

func TestFileBackend_CloseWithoutWatch(t *testing.T) {
	b, err := NewFileBackend(t.TempDir(), logger.NewNop())
	require.NoError(t, err)
	assert.NoError(t, b.Close())
}
