package meetup

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// MockGeocoder is a mock implementation of Geocoder
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, address string) (models.Coordinate, error) {
	args := m.Called(ctx, address)
	return args.Get(0).(models.Coordinate), args.Error(1)
}

// MockPlacesClient is a mock implementation of PlacesClient
type MockPlacesClient struct {
	mock.Mock
}

func (m *MockPlacesClient) Nearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]models.PlaceCandidate, error) {
	args := m.Called(ctx, center, radiusMeters, category)
	if candidates, ok := args.Get(0).([]models.PlaceCandidate); ok {
		return candidates, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlacesClient) Autocomplete(ctx context.Context, query string) ([]models.PlacePrediction, error) {
	args := m.Called(ctx, query)
	if predictions, ok := args.Get(0).([]models.PlacePrediction); ok {
		return predictions, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockPlacesClient) Details(ctx context.Context, placeID string) (models.PlaceDetail, error) {
	args := m.Called(ctx, placeID)
	return args.Get(0).(models.PlaceDetail), args.Error(1)
}

func (m *MockPlacesClient) Photo(ctx context.Context, photoRef string, maxWidth, maxHeight int) ([]byte, string, error) {
	args := m.Called(ctx, photoRef, maxWidth, maxHeight)
	if data, ok := args.Get(0).([]byte); ok {
		return data, args.String(1), args.Error(2)
	}
	return nil, args.String(1), args.Error(2)
}

// MockEnricher is a mock implementation of Enricher
type MockEnricher struct {
	mock.Mock
}

func (m *MockEnricher) Enrich(ctx context.Context, candidates []models.PlaceCandidate) (models.EnrichmentResult, error) {
	args := m.Called(ctx, candidates)
	return args.Get(0).(models.EnrichmentResult), args.Error(1)
}

// MockSelection is a mock implementation of SelectionService
type MockSelection struct {
	mock.Mock
}

func (m *MockSelection) Select(ctx context.Context, candidate models.PlaceCandidate) error {
	args := m.Called(ctx, candidate)
	return args.Error(0)
}

func (m *MockSelection) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockSelection) Current() (models.PlaceCandidate, bool) {
	args := m.Called()
	return args.Get(0).(models.PlaceCandidate), args.Bool(1)
}

func (m *MockSelection) Resolve(candidates []models.PlaceCandidate) (models.PlaceCandidate, bool) {
	args := m.Called(candidates)
	return args.Get(0).(models.PlaceCandidate), args.Bool(1)
}

func searchConfig() *common.SearchConfig {
	return &common.SearchConfig{
		DefaultRadiusMeters: 1000,
		DefaultCategory:     "cafe",
		MaxResults:          20,
		EnrichConcurrency:   5,
	}
}

func newTestService(geocoder *MockGeocoder, places *MockPlacesClient, enricher *MockEnricher, sel *MockSelection) interfaces.MeetupService {
	return NewService(geocoder, places, enricher, sel, nil, searchConfig(), arbor.NewLogger())
}

func TestPlanSearchesAroundMidpoint(t *testing.T) {
	geocoder := new(MockGeocoder)
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	pointA := models.Coordinate{Latitude: 50.0, Longitude: -0.25}
	pointB := models.Coordinate{Latitude: 52.0, Longitude: 0.75}
	midpoint := models.Coordinate{Latitude: 51.0, Longitude: 0.25}

	geocoder.On("Resolve", mock.Anything, "10 Downing St").Return(pointA, nil)
	geocoder.On("Resolve", mock.Anything, "Kings Cross").Return(pointB, nil)

	raw := []models.PlaceCandidate{{ID: "place-1", Name: "Cafe One"}}
	enriched := []models.PlaceCandidate{{ID: "place-1", Name: "Cafe One", Address: "1 St"}}

	places.On("Nearby", mock.Anything, midpoint, 1000, "cafe").Return(raw, nil)
	enricher.On("Enrich", mock.Anything, raw).Return(models.EnrichmentResult{Candidates: enriched, Dropped: 0}, nil)
	sel.On("Clear", mock.Anything).Return(nil)

	svc := newTestService(geocoder, places, enricher, sel)
	plan, err := svc.Plan(context.Background(), "10 Downing St", "Kings Cross", models.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, pointA, plan.PointA)
	assert.Equal(t, pointB, plan.PointB)
	assert.Equal(t, midpoint, plan.Midpoint)
	assert.Equal(t, enriched, plan.Candidates)
	assert.Zero(t, plan.Dropped)

	sel.AssertCalled(t, "Clear", mock.Anything)
}

func TestPlanGeocodeFailureNamesAddress(t *testing.T) {
	geocoder := new(MockGeocoder)
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	geocoder.On("Resolve", mock.Anything, "10 Downing St").
		Return(models.Coordinate{Latitude: 51.5, Longitude: -0.12}, nil)
	geocoder.On("Resolve", mock.Anything, "no such place").
		Return(models.Coordinate{}, fmt.Errorf("%w: no results", models.ErrNotFound))

	svc := newTestService(geocoder, places, enricher, sel)
	_, err := svc.Plan(context.Background(), "10 Downing St", "no such place", models.SearchOptions{})

	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.Contains(t, err.Error(), "no such place")

	places.AssertNotCalled(t, "Nearby", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	sel.AssertNotCalled(t, "Clear", mock.Anything)
}

func TestPlanBlankAddressRejected(t *testing.T) {
	geocoder := new(MockGeocoder)
	svc := newTestService(geocoder, new(MockPlacesClient), new(MockEnricher), new(MockSelection))

	_, err := svc.Plan(context.Background(), "  ", "Kings Cross", models.SearchOptions{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)

	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestPlanPropagatesDroppedCount(t *testing.T) {
	geocoder := new(MockGeocoder)
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	point := models.Coordinate{Latitude: 51.5, Longitude: -0.1}
	geocoder.On("Resolve", mock.Anything, mock.Anything).Return(point, nil)

	raw := []models.PlaceCandidate{{ID: "place-1"}, {ID: "place-2"}, {ID: "place-3"}}
	places.On("Nearby", mock.Anything, point, 1000, "cafe").Return(raw, nil)
	enricher.On("Enrich", mock.Anything, raw).
		Return(models.EnrichmentResult{Candidates: raw[:2], Dropped: 1}, nil)
	sel.On("Clear", mock.Anything).Return(nil)

	svc := newTestService(geocoder, places, enricher, sel)
	plan, err := svc.Plan(context.Background(), "a", "b", models.SearchOptions{})
	require.NoError(t, err)
	assert.Len(t, plan.Candidates, 2)
	assert.Equal(t, 1, plan.Dropped)
}

func TestNearMeCollapsesEndpoints(t *testing.T) {
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	center := models.Coordinate{Latitude: 59.33, Longitude: 18.07}
	places.On("Nearby", mock.Anything, center, 1000, "cafe").Return([]models.PlaceCandidate{}, nil)
	enricher.On("Enrich", mock.Anything, mock.Anything).Return(models.EnrichmentResult{}, nil)
	sel.On("Clear", mock.Anything).Return(nil)

	svc := newTestService(new(MockGeocoder), places, enricher, sel)
	plan, err := svc.NearMe(context.Background(), center, models.SearchOptions{})
	require.NoError(t, err)

	assert.Equal(t, center, plan.PointA)
	assert.Equal(t, center, plan.PointB)
	assert.Equal(t, center, plan.Midpoint)
	assert.Empty(t, plan.Candidates)
}

func TestNearMeHonorsSearchOverrides(t *testing.T) {
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	center := models.Coordinate{Latitude: 59.33, Longitude: 18.07}
	places.On("Nearby", mock.Anything, center, 250, "bakery").Return([]models.PlaceCandidate{}, nil)
	enricher.On("Enrich", mock.Anything, mock.Anything).Return(models.EnrichmentResult{}, nil)
	sel.On("Clear", mock.Anything).Return(nil)

	svc := newTestService(new(MockGeocoder), places, enricher, sel)
	_, err := svc.NearMe(context.Background(), center, models.SearchOptions{RadiusMeters: 250, Category: "bakery"})
	require.NoError(t, err)

	places.AssertExpectations(t)
}

func TestNearMeRejectsOutOfRangeCoordinate(t *testing.T) {
	svc := newTestService(new(MockGeocoder), new(MockPlacesClient), new(MockEnricher), new(MockSelection))
	_, err := svc.NearMe(context.Background(), models.Coordinate{Latitude: 91, Longitude: 0}, models.SearchOptions{})
	assert.ErrorIs(t, err, models.ErrInvalidInput)
}

func TestPlanNearbyFailureAborts(t *testing.T) {
	geocoder := new(MockGeocoder)
	places := new(MockPlacesClient)
	enricher := new(MockEnricher)
	sel := new(MockSelection)

	point := models.Coordinate{Latitude: 51.5, Longitude: -0.1}
	geocoder.On("Resolve", mock.Anything, mock.Anything).Return(point, nil)
	places.On("Nearby", mock.Anything, point, 1000, "cafe").
		Return(nil, fmt.Errorf("%w: quota exhausted", models.ErrRateLimited))

	svc := newTestService(geocoder, places, enricher, sel)
	_, err := svc.Plan(context.Background(), "a", "b", models.SearchOptions{})
	assert.ErrorIs(t, err, models.ErrRateLimited)

	enricher.AssertNotCalled(t, "Enrich", mock.Anything, mock.Anything)
	sel.AssertNotCalled(t, "Clear", mock.Anything)
}
