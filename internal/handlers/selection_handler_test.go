package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/models"
	"github.com/fikalabs/fika/internal/services/selection"
)

func newSelectionHandler() *SelectionHandler {
	svc := selection.NewService(nil, arbor.NewLogger())
	return NewSelectionHandler(svc, arbor.NewLogger())
}

func selectCandidate(t *testing.T, h *SelectionHandler, candidate models.PlaceCandidate) {
	t.Helper()
	data, err := json.Marshal(SelectRequest{Candidate: candidate})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodPost, "/api/selection", bytes.NewReader(data)))
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSelectionHandlerLifecycle(t *testing.T) {
	h := newSelectionHandler()

	// Empty register reads as 404
	rec := httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	candidate := models.PlaceCandidate{
		ID:         "place-1",
		Name:       "Drop Coffee",
		Coordinate: models.Coordinate{Latitude: 59.3146, Longitude: 18.0632},
	}
	selectCandidate(t, h, candidate)

	rec = httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var got models.PlaceCandidate
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, candidate, got)

	rec = httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodDelete, "/api/selection", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodGet, "/api/selection", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSelectionHandlerRejectsEmptyCandidate(t *testing.T) {
	h := newSelectionHandler()

	data, err := json.Marshal(SelectRequest{})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.SelectionHandler(rec, httptest.NewRequest(http.MethodPost, "/api/selection", bytes.NewReader(data)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDirectionsHandler(t *testing.T) {
	h := newSelectionHandler()

	// No selection yet
	rec := httptest.NewRecorder()
	h.DirectionsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/selection/directions", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	selectCandidate(t, h, models.PlaceCandidate{
		ID:         "place-1",
		Name:       "Drop Coffee",
		Coordinate: models.Coordinate{Latitude: 59.3146, Longitude: 18.0632},
	})

	rec = httptest.NewRecorder()
	h.DirectionsHandler(rec, httptest.NewRequest(http.MethodGet, "/api/selection/directions", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "google.navigation:q=59.3146,18.0632", resp["navigation_uri"])
}

func TestShareHandler(t *testing.T) {
	h := newSelectionHandler()

	selectCandidate(t, h, models.PlaceCandidate{
		ID:         "place-1",
		Name:       "Drop Coffee",
		Address:    "Wollmar Yxkullsgatan 10",
		Coordinate: models.Coordinate{Latitude: 59.3146, Longitude: 18.0632},
	})

	data, err := json.Marshal(ShareRequest{Recipient: "+46701234567"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	h.ShareHandler(rec, httptest.NewRequest(http.MethodPost, "/api/selection/share", bytes.NewReader(data)))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp["sms_uri"], "smsto:+46701234567")
	assert.Contains(t, resp["sms_uri"], "Drop")
}
