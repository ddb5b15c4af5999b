package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// FavoriteStorage is the persistence boundary for favorite documents,
// keyed by place ID under the owning user's collection.
type FavoriteStorage interface {
	// List returns every favorite saved by the user.
	List(ctx context.Context, userID string) ([]models.FavoriteEntry, error)

	// Put inserts or replaces the favorite document for (userID, placeID).
	Put(ctx context.Context, entry models.FavoriteEntry) error

	// Delete removes the favorite document. Deleting a key that does not
	// exist is not an error.
	Delete(ctx context.Context, userID, placeID string) error

	// Exists reports whether a favorite document is present.
	Exists(ctx context.Context, userID, placeID string) (bool, error)
}

// FavoritesService maintains each user's saved-places set with optimistic
// toggling against the authoritative store.
type FavoritesService interface {
	// List reads the full remote collection and replaces the local cache
	// wholesale.
	List(ctx context.Context, userID string) ([]models.FavoriteEntry, error)

	// Add persists a denormalized snapshot of the candidate.
	Add(ctx context.Context, userID string, candidate models.PlaceCandidate) error

	// Remove deletes by key; removing an absent key succeeds.
	Remove(ctx context.Context, userID, placeID string) error

	// Toggle flips the favorite state for the candidate and reports the
	// new state. Toggles for the same (user, place) pair serialize.
	Toggle(ctx context.Context, userID string, candidate models.PlaceCandidate) (bool, error)
}
