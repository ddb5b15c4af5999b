package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Providers   ProvidersConfig `toml:"providers"`
	Photos      PhotosConfig    `toml:"photos"`
	Search      SearchConfig    `toml:"search"`
	Logging     LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// ProvidersConfig configures the external geocoding/places/photo providers.
type ProvidersConfig struct {
	APIKey            string        `toml:"api_key"`             // Maps-platform API key shared by all providers
	GeocodingBaseURL  string        `toml:"geocoding_base_url"`  // Override for tests; default is the Google endpoint
	PlacesBaseURL     string        `toml:"places_base_url"`     // Override for tests; default is the Google endpoint
	RequestTimeout    time.Duration `toml:"request_timeout"`     // Per external call
	RequestsPerSecond int           `toml:"requests_per_second"` // Rate limit toward the provider
}

// PhotosConfig configures the local photo cache that enrichment writes
// fetched photo bytes into.
type PhotosConfig struct {
	CacheDir        string `toml:"cache_dir"`        // Directory for materialized photo files
	MaxWidth        int    `toml:"max_width"`        // Requested max photo width in pixels
	MaxHeight       int    `toml:"max_height"`       // Requested max photo height in pixels
	MaxAge          string `toml:"max_age"`          // Photos older than this are purged, e.g. "24h"
	CleanupSchedule string `toml:"cleanup_schedule"` // Cron expression for cache cleanup
}

// SearchConfig configures search behavior around the places provider.
type SearchConfig struct {
	DefaultRadiusMeters int    `toml:"default_radius_meters"` // Radius when the caller does not supply one
	DefaultCategory     string `toml:"default_category"`      // Place type filter, e.g. "cafe"
	MaxResults          int    `toml:"max_results"`           // Cap on candidates per search
	EnrichConcurrency   int    `toml:"enrich_concurrency"`    // Parallel detail/photo fetches during enrichment
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Format string   `toml:"format"` // "json" or "text"
	Output []string `toml:"output"` // "stdout", "file"
}

// NewDefaultConfig returns a config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8085,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:           "./data/fika",
				ResetOnStartup: false,
			},
		},
		Providers: ProvidersConfig{
			APIKey:            "", // User must provide API key in config file
			GeocodingBaseURL:  "https://maps.googleapis.com/maps/api/geocode",
			PlacesBaseURL:     "https://maps.googleapis.com/maps/api/place",
			RequestTimeout:    10 * time.Second,
			RequestsPerSecond: 5,
		},
		Photos: PhotosConfig{
			CacheDir:        "./data/photos",
			MaxWidth:        500,
			MaxHeight:       500,
			MaxAge:          "24h",
			CleanupSchedule: "0 * * * *", // Hourly
		},
		Search: SearchConfig{
			DefaultRadiusMeters: 1000,
			DefaultCategory:     "cafe",
			MaxResults:          20,
			EnrichConcurrency:   5,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: []string{"stdout"},
		},
	}
}

// LoadFromFile loads configuration with priority: default -> file -> env
func LoadFromFile(path string) (*Config, error) {
	if path == "" {
		return LoadFromFiles()
	}
	return LoadFromFiles(path)
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env. Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("FIKA_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	// Server configuration
	if port := os.Getenv("FIKA_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("FIKA_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	// Storage configuration
	if badgerPath := os.Getenv("FIKA_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}

	// Provider configuration
	if apiKey := os.Getenv("FIKA_PROVIDERS_API_KEY"); apiKey != "" {
		config.Providers.APIKey = apiKey
	}
	if timeout := os.Getenv("FIKA_PROVIDERS_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			config.Providers.RequestTimeout = d
		}
	}

	// Photo cache configuration
	if dir := os.Getenv("FIKA_PHOTOS_CACHE_DIR"); dir != "" {
		config.Photos.CacheDir = dir
	}

	// Logging configuration
	if level := os.Getenv("FIKA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("FIKA_LOG_OUTPUT"); output != "" {
		outputs := []string{}
		for _, o := range strings.Split(output, ",") {
			if trimmed := strings.TrimSpace(o); trimmed != "" {
				outputs = append(outputs, trimmed)
			}
		}
		if len(outputs) > 0 {
			config.Logging.Output = outputs
		}
	}
}

// IsProduction returns true when the environment is configured as production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}
