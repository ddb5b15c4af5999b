package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// PlacesClient queries the places provider. Candidate and prediction order
// is the provider's relevance order; the pipeline never re-sorts.
type PlacesClient interface {
	// Nearby returns candidates around a center, each carrying only
	// ID, Name and Coordinate. An empty result set is a valid success.
	Nearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]models.PlaceCandidate, error)

	// Autocomplete returns ranked predictions for a free-text query.
	Autocomplete(ctx context.Context, query string) ([]models.PlacePrediction, error)

	// Details fetches name, address and photo references for one place ID.
	Details(ctx context.Context, placeID string) (models.PlaceDetail, error)

	// Photo fetches raw image bytes for an opaque photo reference, bounded
	// by max width/height. Returns bytes and the content type.
	Photo(ctx context.Context, photoRef string, maxWidth, maxHeight int) ([]byte, string, error)
}
