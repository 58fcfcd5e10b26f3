package media

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStoreRoundTrip(t *testing.T) {
	store, err := NewFSStore(Config{Root: t.TempDir()})
	require.NoError(t, err)

	ctx := context.Background()
	key := PreviewKey("photo.jpg")

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Put(ctx, key, "image/jpeg", strings.NewReader("jpeg bytes")))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	require.NoError(t, store.Delete(ctx, key))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestFSStoreDeleteMissingKey(t *testing.T) {
	store, err := NewFSStore(Config{Root: t.TempDir()})
	require.NoError(t, err)

	// Deleting a key that was never stored is not an error.
	assert.NoError(t, store.Delete(context.Background(), "projects/preview/gone.jpg"))
}

func TestPreviewKeyNamespaceAndUniqueness(t *testing.T) {
	a := PreviewKey("my photo.jpg")
	b := PreviewKey("my photo.jpg")

	assert.True(t, strings.HasPrefix(a, "projects/preview/"))
	assert.True(t, strings.HasSuffix(a, "_my_photo.jpg"))
	assert.NotEqual(t, a, b, "same filename must produce distinct keys")
}

func TestStoreURL(t *testing.T) {
	store, err := NewFSStore(Config{Root: t.TempDir(), PublicURL: "https://media.example.com/"})
	require.NoError(t, err)

	assert.Equal(t, "https://media.example.com/projects/preview/x.jpg", store.URL("projects/preview/x.jpg"))
}
