package common

import (
	"github.com/google/uuid"
)

// NewPhotoID generates a unique photo cache file ID with the "photo_" prefix
// Format: photo_<uuid>
func NewPhotoID() string {
	return "photo_" + uuid.New().String()
}
