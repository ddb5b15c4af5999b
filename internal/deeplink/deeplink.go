// Package deeplink builds the URIs handed off to external apps: turn-by-turn
// navigation, shareable map links and prefilled SMS messages.
package deeplink

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fikalabs/fika/internal/models"
)

// Navigation returns the geo-navigation URI for turn-by-turn directions to
// the coordinate.
func Navigation(coord models.Coordinate) (string, error) {
	if !coord.Valid() {
		return "", fmt.Errorf("%w: coordinate out of range", models.ErrInvalidInput)
	}
	return fmt.Sprintf("google.navigation:q=%v,%v", coord.Latitude, coord.Longitude), nil
}

// MapLink returns a shareable HTTPS map link for the coordinate.
func MapLink(coord models.Coordinate) (string, error) {
	if !coord.Valid() {
		return "", fmt.Errorf("%w: coordinate out of range", models.ErrInvalidInput)
	}
	return fmt.Sprintf("https://www.google.com/maps/search/?api=1&query=%v%%2C%v", coord.Latitude, coord.Longitude), nil
}

// SMS returns an smsto: compose URI inviting the recipient to the place.
// The recipient may be empty, which leaves the destination for the user to
// fill in.
func SMS(recipient string, candidate models.PlaceCandidate) (string, error) {
	if candidate.Name == "" {
		return "", fmt.Errorf("%w: candidate has no name", models.ErrInvalidInput)
	}

	link, err := MapLink(candidate.Coordinate)
	if err != nil {
		return "", err
	}

	body := fmt.Sprintf("Fika at %s?", candidate.Name)
	if candidate.Address != "" {
		body += " " + candidate.Address + "."
	}
	body += " " + link

	return fmt.Sprintf("smsto:%s?body=%s", strings.TrimSpace(recipient), url.QueryEscape(body)), nil
}
