package interfaces

import "context"

// EventType represents different event types in the system
type EventType string

const (
	EventMeetupStarted      EventType = "meetup_started"
	EventSearchCompleted    EventType = "search_completed"
	EventSearchFailed       EventType = "search_failed"
	EventSelectionChanged   EventType = "selection_changed"
	EventSelectionCleared   EventType = "selection_cleared"
	EventFavoriteToggled    EventType = "favorite_toggled"
	EventFavoriteReconcile  EventType = "favorite_reconcile"
	EventPhotoCacheCleanup  EventType = "photo_cache_cleanup"
)

// Event represents a system event
type Event struct {
	Type    EventType
	Payload interface{}
}

// EventHandler is a function that handles events
type EventHandler func(ctx context.Context, event Event) error

// EventService manages the pub/sub event bus that the presentation layer
// subscribes to for list/selection changes.
type EventService interface {
	// Subscribe to an event type
	Subscribe(eventType EventType, handler EventHandler) error

	// Publish an event to all subscribers
	Publish(ctx context.Context, event Event) error

	// PublishSync publishes event and waits for all handlers to complete
	PublishSync(ctx context.Context, event Event) error

	// Close shuts down the event service
	Close() error
}
