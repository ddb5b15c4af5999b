package badger

import (
	"context"
	"fmt"
	"sort"

	"github.com/ternarybob/arbor"
	"github.com/timshannon/badgerhold/v4"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// FavoriteStorage implements the FavoriteStorage interface for Badger
type FavoriteStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewFavoriteStorage creates a new FavoriteStorage instance
func NewFavoriteStorage(db *BadgerDB, logger arbor.ILogger) interfaces.FavoriteStorage {
	return &FavoriteStorage{
		db:     db,
		logger: logger,
	}
}

// favoriteKey builds the document key for a (user, place) pair.
func favoriteKey(userID, placeID string) string {
	return userID + "/" + placeID
}

func (s *FavoriteStorage) List(ctx context.Context, userID string) ([]models.FavoriteEntry, error) {
	var entries []models.FavoriteEntry
	if err := s.db.Store().Find(&entries, badgerhold.Where("UserID").Eq(userID).Index("UserID")); err != nil {
		return nil, fmt.Errorf("%w: failed to list favorites: %v", models.ErrStore, err)
	}

	// Stable listing order: oldest first, place ID breaks ties
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].SavedAt.Before(entries[j].SavedAt)
		}
		return entries[i].PlaceID < entries[j].PlaceID
	})

	return entries, nil
}

func (s *FavoriteStorage) Put(ctx context.Context, entry models.FavoriteEntry) error {
	if entry.UserID == "" || entry.PlaceID == "" {
		return fmt.Errorf("%w: favorite requires user ID and place ID", models.ErrInvalidInput)
	}

	entry.Key = favoriteKey(entry.UserID, entry.PlaceID)
	if err := s.db.Store().Upsert(entry.Key, entry); err != nil {
		return fmt.Errorf("%w: failed to store favorite: %v", models.ErrStore, err)
	}
	return nil
}

func (s *FavoriteStorage) Delete(ctx context.Context, userID, placeID string) error {
	if err := s.db.Store().Delete(favoriteKey(userID, placeID), &models.FavoriteEntry{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil // Already deleted
		}
		return fmt.Errorf("%w: failed to delete favorite: %v", models.ErrStore, err)
	}
	return nil
}

func (s *FavoriteStorage) Exists(ctx context.Context, userID, placeID string) (bool, error) {
	var entry models.FavoriteEntry
	if err := s.db.Store().Get(favoriteKey(userID, placeID), &entry); err != nil {
		if err == badgerhold.ErrNotFound {
			return false, nil
		}
		return false, fmt.Errorf("%w: failed to read favorite: %v", models.ErrStore, err)
	}
	return true, nil
}
