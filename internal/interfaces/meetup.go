package interfaces

import (
	"context"

	"github.com/fikalabs/fika/internal/models"
)

// MeetupService runs the end-to-end meetup search flow: geocode both
// endpoints, derive the midpoint, search around it and enrich the results.
type MeetupService interface {
	// Plan resolves both addresses and searches around their midpoint.
	// Zero-valued options fall back to configured defaults.
	Plan(ctx context.Context, addressA, addressB string, opts models.SearchOptions) (models.MeetupPlan, error)

	// NearMe searches around a single already-known coordinate.
	NearMe(ctx context.Context, center models.Coordinate, opts models.SearchOptions) (models.MeetupPlan, error)
}
