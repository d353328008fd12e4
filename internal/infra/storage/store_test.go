package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyUnder(t *testing.T) {
	key, ok := keyUnder("https://cdn.test/bucket/", "https://cdn.test/bucket/awards/a.png?v=2")
	require.True(t, ok)
	assert.Equal(t, "awards/a.png", key)

	_, ok = keyUnder("https://cdn.test/bucket", "https://cdn.test/other/a.png")
	assert.False(t, ok)

	_, ok = keyUnder("https://cdn.test/bucket", "https://cdn.test/bucket/")
	assert.False(t, ok)

	_, ok = keyUnder("", "https://cdn.test/bucket/a.png")
	assert.False(t, ok)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: "ftp"})
	assert.ErrorIs(t, err, ErrUnknownDriver)
}

func TestOpenLocal(t *testing.T) {
	store, err := Open(context.Background(), Config{
		Driver:    DriverLocal,
		LocalDir:  t.TempDir(),
		PublicURL: "http://localhost:8080/uploads",
	})
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/trips/a.png", store.PublicURL("trips/a.png"))
}

func TestLocalRejectsEscapingKeys(t *testing.T) {
	store, err := NewLocal(t.TempDir(), "http://localhost/uploads")
	require.NoError(t, err)

	err = store.Upload(context.Background(), "../outside.png", []byte("x"), "image/png")
	assert.Error(t, err)
}
