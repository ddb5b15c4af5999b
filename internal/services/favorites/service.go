package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// Service maintains each user's saved-places set against the authoritative
// document store. Toggles for the same (user, place) pair serialize so a
// double-tap settles on a consistent state.
type Service struct {
	storage interfaces.FavoriteStorage
	events  interfaces.EventService
	logger  arbor.ILogger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a new favorites service
func NewService(storage interfaces.FavoriteStorage, events interfaces.EventService, logger arbor.ILogger) interfaces.FavoritesService {
	return &Service{
		storage: storage,
		events:  events,
		logger:  logger,
		locks:   make(map[string]*sync.Mutex),
	}
}

// keyLock returns the mutex serializing toggles for one (user, place) pair.
func (s *Service) keyLock(userID, placeID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userID + "/" + placeID
	lock, ok := s.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[key] = lock
	}
	return lock
}

// List reads the user's full collection from the store. Callers replace any
// cached view wholesale with the returned slice.
func (s *Service) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	if userID == "" {
		return nil, models.ErrInvalidInput
	}

	entries, err := s.storage.List(ctx, userID)
	if err != nil {
		s.logger.Warn().Err(err).Str("user_id", userID).Msg("Failed to list favorites")
		return nil, err
	}

	s.logger.Debug().Str("user_id", userID).Int("count", len(entries)).Msg("Listed favorites")
	return entries, nil
}

// Add persists a denormalized snapshot of the candidate so listing never
// needs to re-enrich.
func (s *Service) Add(ctx context.Context, userID string, candidate models.PlaceCandidate) error {
	if userID == "" || candidate.ID == "" {
		return models.ErrInvalidInput
	}

	entry := models.FavoriteEntry{
		UserID:     userID,
		PlaceID:    candidate.ID,
		Name:       candidate.Name,
		Address:    candidate.Address,
		PhotoURI:   candidate.PhotoURI,
		IsFavorite: true,
		SavedAt:    time.Now().UTC(),
	}

	if err := s.storage.Put(ctx, entry); err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Str("place_id", candidate.ID).
			Msg("Failed to save favorite")
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("place_id", candidate.ID).Msg("Favorite saved")
	return nil
}

// Remove deletes the favorite by key. Removing an absent key succeeds.
func (s *Service) Remove(ctx context.Context, userID, placeID string) error {
	if userID == "" || placeID == "" {
		return models.ErrInvalidInput
	}

	if err := s.storage.Delete(ctx, userID, placeID); err != nil {
		s.logger.Warn().Err(err).
			Str("user_id", userID).
			Str("place_id", placeID).
			Msg("Failed to remove favorite")
		return err
	}

	s.logger.Info().Str("user_id", userID).Str("place_id", placeID).Msg("Favorite removed")
	return nil
}

// Toggle flips the favorite state for the candidate and reports the new
// state. The write is optimistic: subscribers hear the flipped state before
// the store confirms, and a reconcile event walks it back if the write
// fails.
func (s *Service) Toggle(ctx context.Context, userID string, candidate models.PlaceCandidate) (bool, error) {
	if userID == "" || candidate.ID == "" {
		return false, models.ErrInvalidInput
	}

	lock := s.keyLock(userID, candidate.ID)
	lock.Lock()
	defer lock.Unlock()

	current, err := s.storage.Exists(ctx, userID, candidate.ID)
	if err != nil {
		return false, err
	}
	next := !current

	s.publishToggled(ctx, userID, candidate.ID, next)

	if next {
		err = s.Add(ctx, userID, candidate)
	} else {
		err = s.Remove(ctx, userID, candidate.ID)
	}
	if err != nil {
		// Walk the optimistic flip back to the confirmed state
		s.publishReconcile(ctx, userID, candidate.ID, current)
		return current, err
	}

	return next, nil
}

func (s *Service) publishToggled(ctx context.Context, userID, placeID string, isFavorite bool) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventFavoriteToggled,
		Payload: map[string]interface{}{
			"user_id":     userID,
			"place_id":    placeID,
			"is_favorite": isFavorite,
		},
	})
}

func (s *Service) publishReconcile(ctx context.Context, userID, placeID string, isFavorite bool) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, interfaces.Event{
		Type: interfaces.EventFavoriteReconcile,
		Payload: map[string]interface{}{
			"user_id":     userID,
			"place_id":    placeID,
			"is_favorite": isFavorite,
		},
	})
}
