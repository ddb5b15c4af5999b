package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// SelectionService is the single-slot register holding the place the user
// last picked from a result list. Selecting replaces any prior value; a new
// search clears it.
type SelectionService interface {
	// Select stores the candidate, replacing any existing selection.
	Select(ctx context.Context, candidate models.PlaceCandidate) error

	// Clear empties the register. Clearing an empty register succeeds.
	Clear(ctx context.Context) error

	// Current returns the held candidate, or false when the register is
	// empty.
	Current() (models.PlaceCandidate, bool)

	// Resolve looks the held selection up in the supplied candidate list,
	// returning false when nothing is held or the list no longer contains
	// it.
	Resolve(candidates []models.PlaceCandidate) (models.PlaceCandidate, bool)
}
