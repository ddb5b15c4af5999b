package server

import (
	"net/http"
	"strings"
)

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// WebSocket route
	mux.HandleFunc("/ws", s.app.WSHandler.HandleWebSocket)

	// API routes - Meetup flow
	mux.HandleFunc("/api/meetup", s.app.MeetupHandler.PlanHandler) // POST - plan a meetup around two addresses

	// API routes - Cafes
	mux.HandleFunc("/api/cafes/nearby", s.app.MeetupHandler.NearMeHandler)         // GET - search around a coordinate
	mux.HandleFunc("/api/cafes/search", s.app.SearchHandler.AutocompleteHandler)   // GET - autocomplete predictions
	mux.HandleFunc("/api/cafes/search/resolve", s.app.SearchHandler.ResolveHandler) // GET - resolve a prediction

	// API routes - Favorites
	mux.HandleFunc("/api/favorites", s.app.FavoritesHandler.ListHandler)          // GET - list saved places
	mux.HandleFunc("/api/favorites/toggle", s.app.FavoritesHandler.ToggleHandler) // POST - flip favorite state
	mux.HandleFunc("/api/favorites/", s.handleFavoriteRoutes)                     // DELETE /{placeID}

	// API routes - Selection
	mux.HandleFunc("/api/selection", s.app.SelectionHandler.SelectionHandler)              // GET/POST/DELETE
	mux.HandleFunc("/api/selection/directions", s.app.SelectionHandler.DirectionsHandler)  // GET - navigation deep link
	mux.HandleFunc("/api/selection/share", s.app.SelectionHandler.ShareHandler)            // POST - SMS compose link

	// API routes - System
	mux.HandleFunc("/api/status", s.app.StatusHandler.GetStatusHandler)
	mux.HandleFunc("/api/version", s.app.APIHandler.VersionHandler)
	mux.HandleFunc("/api/health", s.app.APIHandler.HealthHandler)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.app.APIHandler.NotFoundHandler)

	return mux
}

// handleFavoriteRoutes routes /api/favorites/{placeID} requests
func (s *Server) handleFavoriteRoutes(w http.ResponseWriter, r *http.Request) {
	placeID := strings.TrimPrefix(r.URL.Path, "/api/favorites/")
	if placeID == "" || strings.Contains(placeID, "/") {
		s.app.APIHandler.NotFoundHandler(w, r)
		return
	}

	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s.app.FavoritesHandler.DeleteHandler(w, r)
}
