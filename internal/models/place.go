package models

import "time"

// Coordinate represents a geographic coordinate. Immutable value type.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether the coordinate lies inside the WGS84 envelope.
func (c Coordinate) Valid() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// PlaceCandidate is a place returned by a nearby or autocomplete search.
// A fresh candidate carries only ID, Name and Coordinate; Address, PhotoRef
// and PhotoURI are filled during enrichment. A candidate may stay partially
// populated if its own enrichment fails.
type PlaceCandidate struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Address    string     `json:"address,omitempty"`
	Coordinate Coordinate `json:"coordinate"`
	PhotoRef   string     `json:"photo_ref,omitempty"`
	PhotoURI   string     `json:"photo_uri,omitempty"`
}

// PlacePrediction is a single autocomplete prediction: an opaque provider
// place ID plus the text the provider matched against the query.
type PlacePrediction struct {
	ID          string `json:"id"`
	MatchedText string `json:"matched_text"`
}

// PlaceDetail is the detail record for one place ID: name, formatted
// address and photo references.
type PlaceDetail struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Address   string   `json:"address"`
	PhotoRefs []string `json:"photo_refs,omitempty"`
}

// EnrichmentResult is the settled output of an enrichment pass: candidates
// in input order, plus the count of candidates dropped to per-candidate
// failures.
type EnrichmentResult struct {
	Candidates []PlaceCandidate `json:"candidates"`
	Dropped    int              `json:"dropped"`
}

// FavoriteEntry is the denormalized snapshot of a saved place, keyed by
// PlaceID under the owning user's collection. Denormalization means listing
// favorites never requires re-enrichment.
type FavoriteEntry struct {
	Key        string    `badgerhold:"key" json:"-"`
	UserID     string    `badgerholdIndex:"UserID" json:"user_id"`
	PlaceID    string    `json:"place_id"`
	Name       string    `json:"name"`
	Address    string    `json:"address"`
	PhotoURI   string    `json:"photo_uri,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	SavedAt    time.Time `json:"saved_at"`
}

// SearchOptions carries per-request overrides for a place search. Zero
// values fall back to configured defaults.
type SearchOptions struct {
	RadiusMeters int    `json:"radius,omitempty"`
	Category     string `json:"category,omitempty"`
}

// MeetupPlan is the published result of one meetup search flow.
type MeetupPlan struct {
	PointA     Coordinate       `json:"point_a"`
	PointB     Coordinate       `json:"point_b"`
	Midpoint   Coordinate       `json:"midpoint"`
	Candidates []PlaceCandidate `json:"candidates"`
	Dropped    int              `json:"dropped"`
}
