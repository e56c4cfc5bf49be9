package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocal(t *testing.T) {
	t.Run("creates directory", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "blobs")
		_, err := NewLocal(dir)
		require.NoError(t, err)

		st, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, st.IsDir())
	})

	t.Run("empty dir rejected", func(t *testing.T) {
		_, err := NewLocal("")
		assert.Error(t, err)
	})
}

func TestLocalPutGet(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	info, err := store.Put(ctx, "abc.pdf", strings.NewReader("hello pdf"), PutObjectOptions{
		Size:        9,
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(9), info.Size)
	assert.Equal(t, "abc.pdf", info.Key)

	rc, got, err := store.Get(ctx, "abc.pdf")
	require.NoError(t, err)
	defer rc.Close()

	assert.Equal(t, int64(9), got.Size)
	content, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "hello pdf", string(content))
}

func TestLocalPutReportsActualSize(t *testing.T) {
	// The declared size in options is advisory; the returned size must be
	// the byte count actually written.
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	info, err := store.Put(ctx, "x.pdf", strings.NewReader("1234567890"), PutObjectOptions{Size: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(10), info.Size)
}

func TestLocalGetMissing(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, _, err = store.Get(ctx, "nope.pdf")
	assert.ErrorIs(t, err, ErrObjectNotExist)
}

func TestLocalDelete(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store, err := NewLocal(dir)
	require.NoError(t, err)

	_, err = store.Put(ctx, "gone.pdf", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)

	require.NoError(t, store.Delete(ctx, "gone.pdf"))
	_, statErr := os.Stat(filepath.Join(dir, "gone.pdf"))
	assert.True(t, os.IsNotExist(statErr))

	// Deleting a missing object is a no-op, not an error.
	assert.NoError(t, store.Delete(ctx, "gone.pdf"))
}

func TestLocalExists(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	ok, err := store.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = store.Put(ctx, "a.pdf", strings.NewReader("x"), PutObjectOptions{})
	require.NoError(t, err)

	ok, err = store.Exists(ctx, "a.pdf")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLocalRejectsPathKeys(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"", "../escape.pdf", "nested/key.pdf"} {
		_, putErr := store.Put(ctx, key, strings.NewReader("x"), PutObjectOptions{})
		assert.Error(t, putErr, "key %q", key)

		_, _, getErr := store.Get(ctx, key)
		assert.Error(t, getErr, "key %q", key)
	}
}
