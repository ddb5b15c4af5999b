// Package photos materializes fetched place photos into locally
// addressable files so enrichment can hand the UI a stable URI instead of
// raw bytes.
package photos

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ternarybob/arbor"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/interfaces"
)

// Service handles writing and purging cached photo files
type Service struct {
	cacheDir string
	maxAge   time.Duration
	logger   arbor.ILogger
}

// NewService creates a new photo cache service. The cache directory is
// created if it does not exist.
func NewService(config *common.PhotosConfig, logger arbor.ILogger) (*Service, error) {
	if err := os.MkdirAll(config.CacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create photo cache directory: %w", err)
	}

	maxAge := 24 * time.Hour
	if config.MaxAge != "" {
		parsed, err := time.ParseDuration(config.MaxAge)
		if err != nil {
			logger.Warn().Err(err).Str("max_age", config.MaxAge).Msg("Invalid photo max_age, using 24h")
		} else {
			maxAge = parsed
		}
	}

	return &Service{
		cacheDir: config.CacheDir,
		maxAge:   maxAge,
		logger:   logger,
	}, nil
}

var _ interfaces.PhotoStore = (*Service)(nil)

// Store writes photo bytes to the cache and returns a file URI
func (s *Service) Store(data []byte, contentType string) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("empty photo data")
	}

	name := common.NewPhotoID() + extensionFor(contentType)
	path := filepath.Join(s.cacheDir, name)

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write photo file: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}

	s.logger.Debug().
		Str("path", abs).
		Int("size", len(data)).
		Msg("Photo materialized")

	return "file://" + filepath.ToSlash(abs), nil
}

// Cleanup removes cached photos older than the configured max age
func (s *Service) Cleanup() (int, error) {
	entries, err := os.ReadDir(s.cacheDir)
	if err != nil {
		return 0, fmt.Errorf("failed to read photo cache directory: %w", err)
	}

	cutoff := time.Now().Add(-s.maxAge)
	purged := 0

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		if info.ModTime().After(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(s.cacheDir, entry.Name())); err != nil {
			s.logger.Warn().Err(err).Str("file", entry.Name()).Msg("Failed to purge cached photo")
			continue
		}
		purged++
	}

	if purged > 0 {
		s.logger.Info().Int("purged", purged).Msg("Photo cache cleaned up")
	}

	return purged, nil
}

// extensionFor maps a response content type to a file extension.
// Unknown types default to .jpg, which is what the provider serves.
func extensionFor(contentType string) string {
	switch {
	case strings.Contains(contentType, "png"):
		return ".png"
	case strings.Contains(contentType, "webp"):
		return ".webp"
	case strings.Contains(contentType, "gif"):
		return ".gif"
	default:
		return ".jpg"
	}
}
