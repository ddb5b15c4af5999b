// Package geo holds the pure coordinate arithmetic of the discovery
// pipeline. Nothing here performs I/O.
package geo

import "github.com/fikalabs/fika/internal/models"

// Midpoint returns the arithmetic mean of the two coordinates' latitude and
// longitude components. This is a planar approximation rather than a
// great-circle midpoint, which is fine at city scale.
func Midpoint(a, b models.Coordinate) models.Coordinate {
	return models.Coordinate{
		Latitude:  (a.Latitude + b.Latitude) / 2,
		Longitude: (a.Longitude + b.Longitude) / 2,
	}
}
