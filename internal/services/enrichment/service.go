// Package enrichment resolves detail and photo data for search candidates.
// It fans out one fetch per candidate, joins on a barrier, and publishes a
// single settled result list in input order.
package enrichment

import (
	"context"
	"sync"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// Service implements the Enricher interface
type Service struct {
	places      interfaces.PlacesClient
	photoStore  interfaces.PhotoStore
	concurrency int
	maxWidth    int
	maxHeight   int
	logger      arbor.ILogger
}

// NewService creates a new enrichment service
func NewService(places interfaces.PlacesClient, photoStore interfaces.PhotoStore, search *common.SearchConfig, photosCfg *common.PhotosConfig, logger arbor.ILogger) interfaces.Enricher {
	concurrency := search.EnrichConcurrency
	if concurrency <= 0 {
		concurrency = 5
	}

	return &Service{
		places:      places,
		photoStore:  photoStore,
		concurrency: concurrency,
		maxWidth:    photosCfg.MaxWidth,
		maxHeight:   photosCfg.MaxHeight,
		logger:      logger,
	}
}

// slot holds one candidate's settled outcome. Results land in a fixed
// index per candidate so completion order never reorders the output.
type slot struct {
	candidate models.PlaceCandidate
	err       error
}

// Enrich resolves name, address and photo for every candidate. The result
// is published only after all fetches settle; a candidate whose own fetch
// fails is dropped and counted rather than aborting its siblings.
func (s *Service) Enrich(ctx context.Context, candidates []models.PlaceCandidate) (models.EnrichmentResult, error) {
	if len(candidates) == 0 {
		return models.EnrichmentResult{Candidates: []models.PlaceCandidate{}}, nil
	}

	slots := make([]slot, len(candidates))
	var wg sync.WaitGroup

	// Semaphore for concurrency control
	sem := make(chan struct{}, s.concurrency)

	for i, candidate := range candidates {
		wg.Add(1)
		go func(idx int, c models.PlaceCandidate) {
			defer wg.Done()

			sem <- struct{}{}        // Acquire
			defer func() { <-sem }() // Release

			slots[idx] = s.enrichOne(ctx, c)
		}(i, candidate)
	}

	// Barrier: wait for every fetch to settle before publishing anything
	wg.Wait()

	if err := ctx.Err(); err != nil {
		// Hosting flow was torn down; discard results
		return models.EnrichmentResult{}, err
	}

	result := models.EnrichmentResult{
		Candidates: make([]models.PlaceCandidate, 0, len(candidates)),
	}
	for _, sl := range slots {
		if sl.err != nil {
			result.Dropped++
			s.logger.Warn().
				Err(sl.err).
				Str("place_id", sl.candidate.ID).
				Msg("Candidate dropped during enrichment")
			continue
		}
		result.Candidates = append(result.Candidates, sl.candidate)
	}

	s.logger.Info().
		Int("requested", len(candidates)).
		Int("resolved", len(result.Candidates)).
		Int("dropped", result.Dropped).
		Msg("Enrichment completed")

	return result, nil
}

// enrichOne fetches detail and, when a photo reference exists, photo bytes
// for a single candidate.
func (s *Service) enrichOne(ctx context.Context, candidate models.PlaceCandidate) slot {
	detail, err := s.places.Details(ctx, candidate.ID)
	if err != nil {
		return slot{candidate: candidate, err: err}
	}

	candidate.Name = detail.Name
	candidate.Address = detail.Address

	if len(detail.PhotoRefs) == 0 {
		// No photo is not a failure; the candidate ships without one
		return slot{candidate: candidate}
	}

	candidate.PhotoRef = detail.PhotoRefs[0]

	data, contentType, err := s.places.Photo(ctx, candidate.PhotoRef, s.maxWidth, s.maxHeight)
	if err != nil {
		return slot{candidate: candidate, err: err}
	}

	uri, err := s.photoStore.Store(data, contentType)
	if err != nil {
		return slot{candidate: candidate, err: err}
	}
	candidate.PhotoURI = uri

	return slot{candidate: candidate}
}
