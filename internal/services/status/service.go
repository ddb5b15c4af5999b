package status

import (
	"context"
	"sync"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
)

// AppState represents the application state
type AppState string

const (
	StateIdle      AppState = "idle"
	StateSearching AppState = "searching"
)

// Service tracks whether a meetup search is in flight and exposes a
// status snapshot for the API.
type Service struct {
	state        AppState
	mu           sync.RWMutex
	eventService interfaces.EventService
	logger       arbor.ILogger
	metadata     map[string]interface{}
}

// NewService creates a new StatusService
func NewService(eventService interfaces.EventService, logger arbor.ILogger) *Service {
	return &Service{
		state:        StateIdle,
		eventService: eventService,
		logger:       logger,
		metadata:     make(map[string]interface{}),
	}
}

// GetState returns the current application state (thread-safe)
func (s *Service) GetState() AppState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// SetState updates the application state
func (s *Service) SetState(state AppState, metadata map[string]interface{}) {
	s.mu.Lock()
	oldState := s.state
	s.state = state
	if metadata != nil {
		s.metadata = metadata
	} else {
		s.metadata = make(map[string]interface{})
	}
	s.mu.Unlock()

	if oldState != state {
		s.logger.Debug().
			Str("old_state", string(oldState)).
			Str("new_state", string(state)).
			Msg("Application state changed")
	}
}

// GetStatus returns the full status including state, metadata, and timestamp
func (s *Service) GetStatus() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	metadataCopy := make(map[string]interface{})
	for k, v := range s.metadata {
		metadataCopy[k] = v
	}

	return map[string]interface{}{
		"state":     string(s.state),
		"metadata":  metadataCopy,
		"timestamp": time.Now(),
	}
}

// SubscribeToSearchEvents flips the state to searching while a meetup flow
// runs and back to idle when it settles.
func (s *Service) SubscribeToSearchEvents() {
	s.eventService.Subscribe(interfaces.EventMeetupStarted, func(ctx context.Context, event interfaces.Event) error {
		metadata, _ := event.Payload.(map[string]interface{})
		s.SetState(StateSearching, metadata)
		return nil
	})

	settle := func(ctx context.Context, event interfaces.Event) error {
		s.SetState(StateIdle, nil)
		return nil
	}
	s.eventService.Subscribe(interfaces.EventSearchCompleted, settle)
	s.eventService.Subscribe(interfaces.EventSearchFailed, settle)

	s.logger.Info().Msg("StatusService subscribed to search events")
}
