package handlers

import (
	"net/http"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// SearchHandler handles place autocomplete HTTP requests
type SearchHandler struct {
	places   interfaces.PlacesClient
	enricher interfaces.Enricher
	logger   arbor.ILogger
}

// NewSearchHandler creates a new search handler with dependencies
func NewSearchHandler(places interfaces.PlacesClient, enricher interfaces.Enricher, logger arbor.ILogger) *SearchHandler {
	return &SearchHandler{
		places:   places,
		enricher: enricher,
		logger:   logger,
	}
}

// AutocompleteHandler handles GET /api/cafes/search?q=query requests
func (h *SearchHandler) AutocompleteHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	query := r.URL.Query().Get("q")

	h.logger.Info().Str("query", query).Msg("Autocomplete request received")

	predictions, err := h.places.Autocomplete(r.Context(), query)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": predictions,
		"count":       len(predictions),
	})
}

// ResolveHandler handles GET /api/cafes/search/resolve?place_id= requests.
// It turns a picked prediction into a fully enriched candidate, the same
// shape a nearby search returns.
func (h *SearchHandler) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	placeID := r.URL.Query().Get("place_id")
	if placeID == "" {
		WriteError(w, http.StatusBadRequest, "place_id query parameter is required")
		return
	}

	result, err := h.enricher.Enrich(r.Context(), []models.PlaceCandidate{{ID: placeID}})
	if err != nil {
		WriteServiceError(w, err)
		return
	}
	if len(result.Candidates) == 0 {
		WriteError(w, http.StatusNotFound, "place could not be resolved")
		return
	}

	WriteJSON(w, http.StatusOK, result.Candidates[0])
}
