package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// Geocoder resolves free-text addresses into coordinates.
type Geocoder interface {
	// Resolve converts an address into a coordinate using the first result
	// in the provider's ranked list. Empty or whitespace-only input fails
	// with models.ErrInvalidInput before any network call.
	Resolve(ctx context.Context, address string) (models.Coordinate, error)
}
