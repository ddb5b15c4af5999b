package meetup

import (
	"context"
	"fmt"
	"strings"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/geo"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// Service orchestrates the meetup search flow. The pipeline is
// geocode -> midpoint -> nearby search -> enrichment; any stage failure
// aborts the flow, while per-candidate enrichment failures only shrink the
// result list.
type Service struct {
	geocoder  interfaces.Geocoder
	places    interfaces.PlacesClient
	enricher  interfaces.Enricher
	selection interfaces.SelectionService
	events    interfaces.EventService
	search    *common.SearchConfig
	logger    arbor.ILogger
}

// NewService creates a new meetup service
func NewService(
	geocoder interfaces.Geocoder,
	places interfaces.PlacesClient,
	enricher interfaces.Enricher,
	selection interfaces.SelectionService,
	events interfaces.EventService,
	search *common.SearchConfig,
	logger arbor.ILogger,
) interfaces.MeetupService {
	return &Service{
		geocoder:  geocoder,
		places:    places,
		enricher:  enricher,
		selection: selection,
		events:    events,
		search:    search,
		logger:    logger,
	}
}

// Plan resolves both addresses concurrently, searches around their midpoint
// and enriches the candidates. A failed geocode names the address that
// could not be resolved.
func (s *Service) Plan(ctx context.Context, addressA, addressB string, opts models.SearchOptions) (models.MeetupPlan, error) {
	addressA = strings.TrimSpace(addressA)
	addressB = strings.TrimSpace(addressB)
	if addressA == "" || addressB == "" {
		return models.MeetupPlan{}, fmt.Errorf("%w: both addresses are required", models.ErrInvalidInput)
	}

	s.publish(ctx, interfaces.EventMeetupStarted, map[string]interface{}{
		"address_a": addressA,
		"address_b": addressB,
	})

	type geocodeResult struct {
		coord models.Coordinate
		err   error
	}

	resolve := func(address string, out chan<- geocodeResult) {
		coord, err := s.geocoder.Resolve(ctx, address)
		if err != nil {
			err = fmt.Errorf("resolving %q: %w", address, err)
		}
		out <- geocodeResult{coord: coord, err: err}
	}

	chA := make(chan geocodeResult, 1)
	chB := make(chan geocodeResult, 1)
	go resolve(addressA, chA)
	go resolve(addressB, chB)

	resA, resB := <-chA, <-chB
	if resA.err != nil {
		return s.fail(ctx, resA.err)
	}
	if resB.err != nil {
		return s.fail(ctx, resB.err)
	}

	midpoint := geo.Midpoint(resA.coord, resB.coord)

	s.logger.Info().
		Str("address_a", addressA).
		Str("address_b", addressB).
		Float64("mid_lat", midpoint.Latitude).
		Float64("mid_lng", midpoint.Longitude).
		Msg("Midpoint resolved")

	plan, err := s.searchAround(ctx, midpoint, opts)
	if err != nil {
		return s.fail(ctx, err)
	}
	plan.PointA = resA.coord
	plan.PointB = resB.coord

	s.finish(ctx, plan)
	return plan, nil
}

// NearMe searches around an already-known coordinate. Both endpoints of the
// plan collapse onto the center.
func (s *Service) NearMe(ctx context.Context, center models.Coordinate, opts models.SearchOptions) (models.MeetupPlan, error) {
	if !center.Valid() {
		return models.MeetupPlan{}, fmt.Errorf("%w: coordinate out of range", models.ErrInvalidInput)
	}

	s.publish(ctx, interfaces.EventMeetupStarted, map[string]interface{}{
		"latitude":  center.Latitude,
		"longitude": center.Longitude,
	})

	plan, err := s.searchAround(ctx, center, opts)
	if err != nil {
		return s.fail(ctx, err)
	}
	plan.PointA = center
	plan.PointB = center

	s.finish(ctx, plan)
	return plan, nil
}

func (s *Service) searchAround(ctx context.Context, center models.Coordinate, opts models.SearchOptions) (models.MeetupPlan, error) {
	radius := opts.RadiusMeters
	if radius <= 0 {
		radius = s.search.DefaultRadiusMeters
	}
	category := opts.Category
	if category == "" {
		category = s.search.DefaultCategory
	}

	candidates, err := s.places.Nearby(ctx, center, radius, category)
	if err != nil {
		return models.MeetupPlan{}, err
	}

	result, err := s.enricher.Enrich(ctx, candidates)
	if err != nil {
		return models.MeetupPlan{}, err
	}

	return models.MeetupPlan{
		Midpoint:   center,
		Candidates: result.Candidates,
		Dropped:    result.Dropped,
	}, nil
}

// finish publishes the settled plan and clears any stale selection, since
// the candidate it pointed at belongs to the previous result list.
func (s *Service) finish(ctx context.Context, plan models.MeetupPlan) {
	if s.selection != nil {
		s.selection.Clear(ctx)
	}

	s.logger.Info().
		Int("candidates", len(plan.Candidates)).
		Int("dropped", plan.Dropped).
		Msg("Meetup search completed")

	s.publish(ctx, interfaces.EventSearchCompleted, plan)
}

func (s *Service) fail(ctx context.Context, err error) (models.MeetupPlan, error) {
	s.logger.Warn().Err(err).Msg("Meetup search failed")
	s.publish(ctx, interfaces.EventSearchFailed, map[string]interface{}{
		"error": err.Error(),
	})
	return models.MeetupPlan{}, err
}

func (s *Service) publish(ctx context.Context, eventType interfaces.EventType, payload interface{}) {
	if s.events == nil {
		return
	}
	s.events.Publish(ctx, interfaces.Event{Type: eventType, Payload: payload})
}
