package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

var validate = validator.New()

// MeetupRequest is the payload for POST /api/meetup
type MeetupRequest struct {
	AddressA string `json:"address_a" validate:"required"`
	AddressB string `json:"address_b" validate:"required"`
	Radius   int    `json:"radius,omitempty" validate:"gte=0"`
	Category string `json:"category,omitempty"`
}

// MeetupHandler handles meetup search HTTP requests
type MeetupHandler struct {
	meetupService interfaces.MeetupService
	logger        arbor.ILogger
}

// NewMeetupHandler creates a new meetup handler with dependencies
func NewMeetupHandler(meetupService interfaces.MeetupService, logger arbor.ILogger) *MeetupHandler {
	return &MeetupHandler{
		meetupService: meetupService,
		logger:        logger,
	}
}

// PlanHandler handles POST /api/meetup requests
func (h *MeetupHandler) PlanHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	var req MeetupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := validate.Struct(req); err != nil {
		WriteError(w, http.StatusBadRequest, "address_a and address_b are required")
		return
	}

	h.logger.Info().
		Str("address_a", req.AddressA).
		Str("address_b", req.AddressB).
		Msg("Meetup plan request received")

	plan, err := h.meetupService.Plan(r.Context(), req.AddressA, req.AddressB, models.SearchOptions{
		RadiusMeters: req.Radius,
		Category:     req.Category,
	})
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, plan)
}

// NearMeHandler handles GET /api/cafes/nearby?lat=&lng= requests
func (h *MeetupHandler) NearMeHandler(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lng, lngErr := strconv.ParseFloat(r.URL.Query().Get("lng"), 64)
	if latErr != nil || lngErr != nil {
		WriteError(w, http.StatusBadRequest, "lat and lng query parameters are required")
		return
	}

	opts := models.SearchOptions{Category: r.URL.Query().Get("category")}
	if radius, err := strconv.Atoi(r.URL.Query().Get("radius")); err == nil {
		opts.RadiusMeters = radius
	}

	plan, err := h.meetupService.NearMe(r.Context(), models.Coordinate{Latitude: lat, Longitude: lng}, opts)
	if err != nil {
		WriteServiceError(w, err)
		return
	}

	WriteJSON(w, http.StatusOK, plan)
}
