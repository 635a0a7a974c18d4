package auth

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded, "a missing file reads as no session")

	sess := &Session{
		UserID:    "u1",
		Email:     DemoUserEmail,
		Name:      "Demo User",
		Role:      RoleUser,
		Token:     "tok",
		LoginTime: time.Now().Truncate(time.Second),
		Favorites: []Favorite{
			{Item: Item{ID: 7, Title: "Alien", Kind: MediaMovies, Genres: []string{"Horror"}}},
		},
	}
	require.NoError(t, store.Save(sess))

	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, sess.UserID, loaded.UserID)
	assert.Equal(t, sess.Token, loaded.Token)
	require.Len(t, loaded.Favorites, 1)
	assert.Equal(t, MediaMovies, loaded.Favorites[0].Kind)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Clear(), "clearing twice is fine")
}

func TestFileStoreCorruptSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store := NewFileStore(path)
	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr), "a corrupt snapshot is removed")
}

func TestFileStoreCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "session.json")
	store := NewFileStore(path)
	require.NoError(t, store.Save(&Session{UserID: "u1"}))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u1", loaded.UserID)
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)

	require.NoError(t, store.Save(&Session{UserID: "u9", Token: "tok"}))
	loaded, err = store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "u9", loaded.UserID)

	require.NoError(t, store.Clear())
	loaded, err = store.Load()
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
