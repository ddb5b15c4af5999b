package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/deeplink"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// SelectRequest is the payload for POST /api/selection
type SelectRequest struct {
	Candidate models.PlaceCandidate `json:"candidate" validate:"required"`
}

// ShareRequest is the payload for POST /api/selection/share
type ShareRequest struct {
	Recipient string `json:"recipient"`
}

// SelectionHandler handles selection HTTP requests, including the deep
// links built from the held candidate.
type SelectionHandler struct {
	selection interfaces.SelectionService
	logger    arbor.ILogger
}

// NewSelectionHandler creates a new selection handler with dependencies
func NewSelectionHandler(selection interfaces.SelectionService, logger arbor.ILogger) *SelectionHandler {
	return &SelectionHandler{
		selection: selection,
		logger:    logger,
	}
}

// SelectionHandler routes /api/selection by method
func (h *SelectionHandler) SelectionHandler(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSelection(w, r)
	case http.MethodPost:
		h.setSelection(w, r)
	case http.MethodDelete:
		h.clearSelection(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *SelectionHandler) getSelection(w http.ResponseWriter, r *http.Request) {
	candidate, held := h.selection.Current()
	if !held {
		WriteError(w, http.StatusNotFound, "no place selected")
		return
	}
	WriteJSON(w, http.StatusOK, candidate)
}

func (h *SelectionHandler) setSelection(w http.ResponseWriter, r *http.Request) {
	var req SelectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if req.Candidate.ID == "" {
		WriteError(w, http.StatusBadRequest, "candidate.id is required")
		return
	}

	if err := h.selection.Select(r.Context(), req.Candidate); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, req.Candidate)
}

func (h *SelectionHandler) clearSelection(w http.ResponseWriter, r *http.Request) {
	if err := h.selection.Clear(r.Context()); err != nil {
		WriteServiceError(w, err)
		return
	}
	WriteSuccess(w, "selection cleared")
}

// DirectionsHandler handles GET /api/selection/directions requests,
// returning the navigation URI for the selected place.
func (h *SelectionHandler) DirectionsHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	candidate, held := h.selection.Current()
	if !held {
		WriteError(w, http.StatusNotFound, "no place selected")
		return
	}

	uri, err := deeplink.Navigation(candidate.Coordinate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"place_id":       candidate.ID,
		"navigation_uri": uri,
	})
}

// ShareHandler handles POST /api/selection/share requests, returning an
// SMS compose URI inviting the recipient to the selected place.
func (h *SelectionHandler) ShareHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	candidate, held := h.selection.Current()
	if !held {
		WriteError(w, http.StatusNotFound, "no place selected")
		return
	}

	var req ShareRequest
	if r.Body != nil {
		json.NewDecoder(r.Body).Decode(&req)
	}

	uri, err := deeplink.SMS(req.Recipient, candidate)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{
		"place_id": candidate.ID,
		"sms_uri":  uri,
	})
}
