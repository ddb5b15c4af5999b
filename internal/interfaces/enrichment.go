package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// Enricher resolves detail and photo data for a batch of candidates.
type Enricher interface {
	// Enrich fans out one fetch per candidate and joins on a barrier: the
	// result is published only after every fetch has settled. A candidate
	// whose own fetch fails is dropped and counted, never aborting its
	// siblings. Output preserves input order.
	Enrich(ctx context.Context, candidates []models.PlaceCandidate) (models.EnrichmentResult, error)
}

// PhotoStore materializes fetched photo bytes into locally addressable URIs.
type PhotoStore interface {
	// Store writes photo bytes to the local cache and returns a file URI.
	Store(data []byte, contentType string) (string, error)

	// Cleanup removes cached photos older than the store's max age,
	// returning the number of files purged.
	Cleanup() (int, error)
}
