package favorites

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// fakeStorage is an in-memory FavoriteStorage with injectable failures.
type fakeStorage struct {
	mu      sync.Mutex
	entries map[string]models.FavoriteEntry
	putErr  error
	delErr  error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{entries: make(map[string]models.FavoriteEntry)}
}

func (f *fakeStorage) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.FavoriteEntry
	for _, e := range f.entries {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeStorage) Put(ctx context.Context, entry models.FavoriteEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.putErr != nil {
		return f.putErr
	}
	f.entries[entry.UserID+"/"+entry.PlaceID] = entry
	return nil
}

func (f *fakeStorage) Delete(ctx context.Context, userID, placeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.entries, userID+"/"+placeID)
	return nil
}

func (f *fakeStorage) Exists(ctx context.Context, userID, placeID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[userID+"/"+placeID]
	return ok, nil
}

// recordingEvents captures published events synchronously.
type recordingEvents struct {
	mu     sync.Mutex
	events []interfaces.Event
}

func (r *recordingEvents) Subscribe(eventType interfaces.EventType, handler interfaces.EventHandler) error {
	return nil
}

func (r *recordingEvents) Publish(ctx context.Context, event interfaces.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
	return nil
}

func (r *recordingEvents) PublishSync(ctx context.Context, event interfaces.Event) error {
	return r.Publish(ctx, event)
}

func (r *recordingEvents) Close() error { return nil }

func (r *recordingEvents) byType(eventType interfaces.EventType) []interfaces.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []interfaces.Event
	for _, e := range r.events {
		if e.Type == eventType {
			out = append(out, e)
		}
	}
	return out
}

func testCandidate(id string) models.PlaceCandidate {
	return models.PlaceCandidate{
		ID:       id,
		Name:     "Cafe " + id,
		Address:  id + " Street",
		PhotoURI: "file:///cache/" + id + ".jpg",
	}
}

func TestToggleAddsWhenAbsent(t *testing.T) {
	storage := newFakeStorage()
	events := &recordingEvents{}
	svc := NewService(storage, events, arbor.NewLogger())
	ctx := context.Background()

	isFav, err := svc.Toggle(ctx, "user-1", testCandidate("place-1"))
	require.NoError(t, err)
	assert.True(t, isFav)

	exists, err := storage.Exists(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.True(t, exists)

	// Denormalized snapshot is persisted
	entries, err := svc.List(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Cafe place-1", entries[0].Name)
	assert.Equal(t, "place-1 Street", entries[0].Address)
	assert.Equal(t, "file:///cache/place-1.jpg", entries[0].PhotoURI)
	assert.False(t, entries[0].SavedAt.IsZero())
}

func TestToggleRemovesWhenPresent(t *testing.T) {
	storage := newFakeStorage()
	svc := NewService(storage, &recordingEvents{}, arbor.NewLogger())
	ctx := context.Background()

	_, err := svc.Toggle(ctx, "user-1", testCandidate("place-1"))
	require.NoError(t, err)

	isFav, err := svc.Toggle(ctx, "user-1", testCandidate("place-1"))
	require.NoError(t, err)
	assert.False(t, isFav)

	exists, err := storage.Exists(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestToggleFailedWriteReconciles(t *testing.T) {
	storage := newFakeStorage()
	storage.putErr = fmt.Errorf("%w: disk full", models.ErrStore)
	events := &recordingEvents{}
	svc := NewService(storage, events, arbor.NewLogger())
	ctx := context.Background()

	isFav, err := svc.Toggle(ctx, "user-1", testCandidate("place-1"))
	assert.ErrorIs(t, err, models.ErrStore)
	// Reported state is the confirmed one, not the optimistic flip
	assert.False(t, isFav)

	toggled := events.byType(interfaces.EventFavoriteToggled)
	require.Len(t, toggled, 1)
	assert.Equal(t, true, toggled[0].Payload.(map[string]interface{})["is_favorite"])

	reconciled := events.byType(interfaces.EventFavoriteReconcile)
	require.Len(t, reconciled, 1)
	assert.Equal(t, false, reconciled[0].Payload.(map[string]interface{})["is_favorite"])
}

func TestToggleSerializesPerKey(t *testing.T) {
	storage := newFakeStorage()
	svc := NewService(storage, &recordingEvents{}, arbor.NewLogger())
	ctx := context.Background()

	const toggles = 10 // even count settles back to absent
	var wg sync.WaitGroup
	for i := 0; i < toggles; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Toggle(ctx, "user-1", testCandidate("place-1"))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	exists, err := storage.Exists(ctx, "user-1", "place-1")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestRemoveAbsentSucceeds(t *testing.T) {
	svc := NewService(newFakeStorage(), &recordingEvents{}, arbor.NewLogger())
	assert.NoError(t, svc.Remove(context.Background(), "user-1", "never-saved"))
}

func TestFavoritesInvalidInput(t *testing.T) {
	svc := NewService(newFakeStorage(), &recordingEvents{}, arbor.NewLogger())
	ctx := context.Background()

	_, err := svc.List(ctx, "")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.Add(ctx, "user-1", models.PlaceCandidate{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	err = svc.Remove(ctx, "", "place-1")
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	_, err = svc.Toggle(ctx, "user-1", models.PlaceCandidate{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}
