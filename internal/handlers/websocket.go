package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/fikalabs/fika/internal/interfaces"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for local development
	},
}

// WebSocketHandler pushes pipeline events to connected clients so the
// presentation layer can react to list, selection and favorite changes
// without polling.
type WebSocketHandler struct {
	logger           arbor.ILogger
	clients          map[*websocket.Conn]bool
	clientMutex      map[*websocket.Conn]*sync.Mutex
	mu               sync.RWMutex
	eventService     interfaces.EventService
	toggleThrottler  *rate.Limiter // Rapid favorite double-taps collapse to one broadcast
	serverInstanceID string        // Unique ID generated on startup - clients use to detect server restart
}

// wsMessage is the envelope pushed to clients.
type wsMessage struct {
	Type      string      `json:"type"`
	Payload   interface{} `json:"payload,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewWebSocketHandler(eventService interfaces.EventService, logger arbor.ILogger) *WebSocketHandler {
	h := &WebSocketHandler{
		logger:           logger,
		clients:          make(map[*websocket.Conn]bool),
		clientMutex:      make(map[*websocket.Conn]*sync.Mutex),
		eventService:     eventService,
		toggleThrottler:  rate.NewLimiter(rate.Every(100*time.Millisecond), 1),
		serverInstanceID: uuid.New().String(),
	}

	logger.Info().Str("server_instance_id", h.serverInstanceID).Msg("WebSocket handler initialized")

	return h
}

// HandleWebSocket upgrades the connection and keeps it open until the
// client disconnects.
func (h *WebSocketHandler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error().Err(err).Msg("Failed to upgrade WebSocket connection")
		return
	}

	h.mu.Lock()
	h.clients[conn] = true
	h.clientMutex[conn] = &sync.Mutex{}
	clientCount := len(h.clients)
	h.mu.Unlock()

	h.logger.Debug().Msgf("WebSocket client connected (total: %d)", clientCount)

	h.sendToClient(conn, wsMessage{
		Type:      "hello",
		Payload:   map[string]string{"server_instance_id": h.serverInstanceID},
		Timestamp: time.Now(),
	})

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		delete(h.clientMutex, conn)
		remaining := len(h.clients)
		h.mu.Unlock()

		conn.Close()
		h.logger.Debug().Msgf("WebSocket client disconnected (remaining: %d)", remaining)
	}()

	// Read messages from client (keep connection alive)
	for {
		_, _, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				h.logger.Warn().Err(err).Msg("WebSocket error")
			}
			break
		}
	}
}

// SubscribeToEvents wires the pipeline events onto the broadcast channel.
func (h *WebSocketHandler) SubscribeToEvents() {
	broadcast := func(ctx context.Context, event interfaces.Event) error {
		h.broadcastToClients(wsMessage{
			Type:      string(event.Type),
			Payload:   event.Payload,
			Timestamp: time.Now(),
		})
		return nil
	}

	throttledBroadcast := func(ctx context.Context, event interfaces.Event) error {
		if !h.toggleThrottler.Allow() {
			return nil
		}
		return broadcast(ctx, event)
	}

	h.eventService.Subscribe(interfaces.EventMeetupStarted, broadcast)
	h.eventService.Subscribe(interfaces.EventSearchCompleted, broadcast)
	h.eventService.Subscribe(interfaces.EventSearchFailed, broadcast)
	h.eventService.Subscribe(interfaces.EventSelectionChanged, broadcast)
	h.eventService.Subscribe(interfaces.EventSelectionCleared, broadcast)
	h.eventService.Subscribe(interfaces.EventFavoriteToggled, throttledBroadcast)
	h.eventService.Subscribe(interfaces.EventFavoriteReconcile, broadcast)
	h.eventService.Subscribe(interfaces.EventPhotoCacheCleanup, broadcast)

	h.logger.Info().Msg("WebSocket handler subscribed to pipeline events")
}

func (h *WebSocketHandler) sendToClient(conn *websocket.Conn, msg wsMessage) {
	h.mu.RLock()
	lock, ok := h.clientMutex[conn]
	h.mu.RUnlock()
	if !ok {
		return
	}

	lock.Lock()
	defer lock.Unlock()

	if err := conn.WriteJSON(msg); err != nil {
		h.logger.Warn().Err(err).Msg("Failed to write WebSocket message")
	}
}

func (h *WebSocketHandler) broadcastToClients(msg wsMessage) {
	h.mu.RLock()
	conns := make([]*websocket.Conn, 0, len(h.clients))
	for conn := range h.clients {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	for _, conn := range conns {
		h.sendToClient(conn, msg)
	}
}
