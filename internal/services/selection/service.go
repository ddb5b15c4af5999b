package selection

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// Service holds the most recently picked place candidate.
type Service struct {
	events interfaces.EventService
	logger arbor.ILogger

	mu      sync.RWMutex
	current models.PlaceCandidate
	held    bool
}

// NewService creates a new selection service
func NewService(events interfaces.EventService, logger arbor.ILogger) interfaces.SelectionService {
	return &Service{
		events: events,
		logger: logger,
	}
}

func (s *Service) Select(ctx context.Context, candidate models.PlaceCandidate) error {
	if candidate.ID == "" {
		return models.ErrInvalidInput
	}

	s.mu.Lock()
	s.current = candidate
	s.held = true
	s.mu.Unlock()

	s.logger.Debug().Str("place_id", candidate.ID).Str("name", candidate.Name).Msg("Selection changed")

	if s.events != nil {
		s.events.Publish(ctx, interfaces.Event{
			Type:    interfaces.EventSelectionChanged,
			Payload: candidate,
		})
	}
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	wasHeld := s.held
	s.current = models.PlaceCandidate{}
	s.held = false
	s.mu.Unlock()

	if wasHeld && s.events != nil {
		s.events.Publish(ctx, interfaces.Event{
			Type: interfaces.EventSelectionCleared,
		})
	}
	return nil
}

func (s *Service) Current() (models.PlaceCandidate, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current, s.held
}

// Resolve looks the held selection up in the supplied candidate list. A miss
// means the list backing the selection was replaced; callers should treat it
// as "no selection", not an error.
func (s *Service) Resolve(candidates []models.PlaceCandidate) (models.PlaceCandidate, bool) {
	s.mu.RLock()
	held := s.held
	id := s.current.ID
	s.mu.RUnlock()

	if !held {
		return models.PlaceCandidate{}, false
	}
	for _, candidate := range candidates {
		if candidate.ID == id {
			return candidate, true
		}
	}
	return models.PlaceCandidate{}, false
}
