package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocalStorage(t.TempDir(), "/media/")
	require.NoError(t, err)

	key := "rooms/abc/photo.jpg"
	require.NoError(t, store.Save(ctx, key, strings.NewReader("hello"), "image/jpeg"))

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	assert.Equal(t, "/media/rooms/abc/photo.jpg", store.URL(key))

	require.NoError(t, store.Delete(ctx, key))
	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrObjectNotFound)

	// Deleting again is fine.
	assert.NoError(t, store.Delete(ctx, key))
}

func TestLocalStorage_RejectsEscapingKeys(t *testing.T) {
	store, err := NewLocalStorage(t.TempDir(), "/media")
	require.NoError(t, err)

	err = store.Save(context.Background(), "../outside.txt", strings.NewReader("x"), "")
	assert.Error(t, err)
}
