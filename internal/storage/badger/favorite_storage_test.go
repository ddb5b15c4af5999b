package badger

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

func newTestStorage(t *testing.T) interfaces.FavoriteStorage {
	t.Helper()

	tmpDir := t.TempDir()

	options := badgerhold.DefaultOptions
	options.Dir = tmpDir
	options.ValueDir = tmpDir
	options.Logger = nil

	store, err := badgerhold.Open(options)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	db := &BadgerDB{store: store}
	return NewFavoriteStorage(db, arbor.NewLogger())
}

func entry(userID, placeID string, savedAt time.Time) models.FavoriteEntry {
	return models.FavoriteEntry{
		UserID:     userID,
		PlaceID:    placeID,
		Name:       "Cafe " + placeID,
		Address:    placeID + " Street",
		IsFavorite: true,
		SavedAt:    savedAt,
	}
}

func TestFavoritePutGetRoundTrip(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	saved := entry("user-1", "place-1", time.Now().UTC().Truncate(time.Second))
	require.NoError(t, storage.Put(ctx, saved))

	exists, err := storage.Exists(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.True(t, exists)

	entries, err := storage.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cafe place-1", entries[0].Name)
	assert.Equal(t, "place-1 Street", entries[0].Address)
	assert.True(t, entries[0].IsFavorite)
}

func TestFavoriteListScopedToUser(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, storage.Put(ctx, entry("user-1", "place-1", now)))
	require.NoError(t, storage.Put(ctx, entry("user-1", "place-2", now.Add(time.Second))))
	require.NoError(t, storage.Put(ctx, entry("user-2", "place-3", now)))

	entries, err := storage.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 2)
	for _, e := range entries {
		assert.Equal(t, "user-1", e.UserID)
	}

	entries, err = storage.List(ctx, "user-3")
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestFavoriteListOrderedBySavedAt(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()
	base := time.Now().UTC()

	require.NoError(t, storage.Put(ctx, entry("user-1", "place-c", base.Add(2*time.Second))))
	require.NoError(t, storage.Put(ctx, entry("user-1", "place-a", base)))
	require.NoError(t, storage.Put(ctx, entry("user-1", "place-b", base.Add(time.Second))))

	entries, err := storage.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "place-a", entries[0].PlaceID)
	assert.Equal(t, "place-b", entries[1].PlaceID)
	assert.Equal(t, "place-c", entries[2].PlaceID)
}

func TestFavoritePutReplacesExisting(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	first := entry("user-1", "place-1", time.Now().UTC())
	require.NoError(t, storage.Put(ctx, first))

	updated := first
	updated.Name = "Renamed"
	require.NoError(t, storage.Put(ctx, updated))

	entries, err := storage.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Renamed", entries[0].Name)
}

func TestFavoriteDeleteIdempotent(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, storage.Put(ctx, entry("user-1", "place-1", time.Now().UTC())))
	require.NoError(t, storage.Delete(ctx, "user-1", "place-1"))

	exists, err := storage.Exists(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.False(t, exists)

	// Deleting an absent key succeeds
	require.NoError(t, storage.Delete(ctx, "user-1", "place-1"))
	require.NoError(t, storage.Delete(ctx, "user-1", "never-existed"))
}

func TestFavoritePutRequiresKeyFields(t *testing.T) {
	storage := newTestStorage(t)
	ctx := context.Background()

	err := storage.Put(ctx, models.FavoriteEntry{PlaceID: "place-1"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = storage.Put(ctx, models.FavoriteEntry{UserID: "user-1"})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
