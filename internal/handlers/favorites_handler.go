package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// ToggleFavoriteRequest is the payload for POST /api/favorites/toggle
type ToggleFavoriteRequest struct {
	UserID    string                `json:"user_id" validate:"required"`
	Candidate models.PlaceCandidate `json:"candidate" validate:"required"`
}

// FavoritesHandler handles favorites HTTP requests
type FavoritesHandler struct {
	favorites interfaces.FavoritesService
	logger    arbor.ILogger
}

// NewFavoritesHandler creates a new favorites handler with dependencies
func NewFavoritesHandler(favorites interfaces.FavoritesService, logger arbor.ILogger) *FavoritesHandler {
	return &FavoritesHandler{
		favorites: favorites,
		logger:    logger,
	}
}

// ListHandler handles GET /api/favorites?user_id= requests
func (h *FavoritesHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	userID := r.URL.Query().Get("user_id")
	if userID == "" {
		WriteError(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	entries, err := h.favorites.List(r.Context(), userID)
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.FavoriteEntry{}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"favorites": entries,
		"count":     len(entries),
	})
}

// ToggleHandler handles POST /api/favorites/toggle requests
func (h *FavoritesHandler) ToggleHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req ToggleFavoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil || req.Candidate.ID == "" {
		WriteError(w, http.StatusBadRequest, "user_id and candidate.id are required")
		return
	}

	isFavorite, err := h.favorites.Toggle(r.Context(), req.UserID, req.Candidate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"place_id":    req.Candidate.ID,
		"is_favorite": isFavorite,
	})
}

// DeleteHandler handles DELETE /api/favorites/{placeID}?user_id= requests
func (h *FavoritesHandler) DeleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodDelete) {
		return
	}

	placeID := strings.TrimPrefix(r.URL.Path, "/api/favorites/")
	userID := r.URL.Query().Get("user_id")
	if placeID == "" || userID == "" {
		WriteError(w, http.StatusBadRequest, "place ID path segment and user_id query parameter are required")
		return
	}

	if err := h.favorites.Remove(r.Context(), userID, placeID); err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteSuccess(w, "favorite removed")
}
