package geocoding

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/models"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server, *int64) {
	t.Helper()

	var calls int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&calls, 1)
		handler.ServeHTTP(w, r)
	}))
	t.Cleanup(server.Close)

	config := &common.ProvidersConfig{
		APIKey:            "test-key",
		GeocodingBaseURL:  server.URL,
		RequestTimeout:    5 * time.Second,
		RequestsPerSecond: 100,
	}

	svc := NewService(config, arbor.NewLogger()).(*Service)
	return svc, server, &calls
}

func TestResolveFirstResultWins(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "221B Baker Street", r.URL.Query().Get("address"))
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"geometry": {"location": {"lat": 51.5238, "lng": -0.1586}}},
				{"geometry": {"location": {"lat": 0, "lng": 0}}}
			]
		}`))
	}))

	coord, err := svc.Resolve(context.Background(), "221B Baker Street")
	require.NoError(t, err)
	assert.InDelta(t, 51.5238, coord.Latitude, 1e-9)
	assert.InDelta(t, -0.1586, coord.Longitude, 1e-9)
}

func TestResolveEmptyAddressNoNetworkCall(t *testing.T) {
	for _, address := range []string{"", "   ", "\t\n"} {
		svc, _, calls := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"status": "OK", "results": []}`))
		}))

		_, err := svc.Resolve(context.Background(), address)
		assert.ErrorIs(t, err, models.ErrInvalidInput)
		assert.Zero(t, atomic.LoadInt64(calls), "provider must not be called for %q", address)
	}
}

func TestResolveZeroResults(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))

	_, err := svc.Resolve(context.Background(), "nowhere at all")
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestResolveRateLimited(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OVER_QUERY_LIMIT", "results": [], "error_message": "quota exceeded"}`))
	}))

	_, err := svc.Resolve(context.Background(), "10 Downing Street")
	assert.ErrorIs(t, err, models.ErrRateLimited)
	assert.NotErrorIs(t, err, models.ErrProvider)
}

func TestResolveProviderStatusError(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "REQUEST_DENIED", "results": [], "error_message": "bad key"}`))
	}))

	_, err := svc.Resolve(context.Background(), "10 Downing Street")
	assert.ErrorIs(t, err, models.ErrProvider)
}

func TestResolveMalformedBody(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{not json`))
	}))

	_, err := svc.Resolve(context.Background(), "10 Downing Street")
	assert.ErrorIs(t, err, models.ErrProvider)
}

func TestResolveHTTPError(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := svc.Resolve(context.Background(), "10 Downing Street")
	assert.ErrorIs(t, err, models.ErrProvider)
}

func TestResolveOutOfRangeCoordinate(t *testing.T) {
	svc, _, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "OK", "results": [{"geometry": {"location": {"lat": 123.0, "lng": 0}}}]}`))
	}))

	_, err := svc.Resolve(context.Background(), "somewhere broken")
	assert.ErrorIs(t, err, models.ErrProvider)
}
