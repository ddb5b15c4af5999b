package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/ternarybob/arbor"
	"golang.org/x/time/rate"

	"github.com/fikalabs/fika/internal/common"
	"github.com/fikalabs/fika/internal/httpclient"
	"github.com/fikalabs/fika/internal/interfaces"
	"github.com/fikalabs/fika/internal/models"
)

// Service implements the Geocoder interface against the Google Geocoding API
type Service struct {
	config     *common.ProvidersConfig
	logger     arbor.ILogger
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewService creates a new geocoding service instance
func NewService(config *common.ProvidersConfig, logger arbor.ILogger) interfaces.Geocoder {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Service{
		config:     config,
		logger:     logger,
		apiKey:     config.APIKey,
		baseURL:    config.GeocodingBaseURL,
		httpClient: httpclient.NewDefaultHTTPClient(config.RequestTimeout),
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Resolve converts a free-text address into a coordinate. The provider's
// relevance ordering is trusted: only the first result is consumed.
func (s *Service) Resolve(ctx context.Context, address string) (models.Coordinate, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return models.Coordinate{}, fmt.Errorf("%w: empty address", models.ErrInvalidInput)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrTimeout, err)
	}

	params := url.Values{}
	params.Set("address", trimmed)
	params.Set("key", s.apiKey)

	fullURL := fmt.Sprintf("%s/json?%s", s.baseURL, params.Encode())

	// Redact API key in logs
	s.logger.Debug().
		Str("url", fmt.Sprintf("%s/json?address=%s&key=***REDACTED***", s.baseURL, url.QueryEscape(trimmed))).
		Msg("Calling geocoding API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return models.Coordinate{}, fmt.Errorf("%w: geocode %q: %v", models.ErrTimeout, trimmed, ctx.Err())
		}
		return models.Coordinate{}, fmt.Errorf("%w: %v", models.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.Coordinate{}, models.ProviderError(fmt.Sprintf("HTTP %d", resp.StatusCode), fmt.Errorf("%s", string(body)))
	}

	var apiResp GeocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return models.Coordinate{}, fmt.Errorf("%w: failed to decode response: %v", models.ErrProvider, err)
	}

	switch apiResp.Status {
	case "OK":
		// fall through to result extraction
	case "ZERO_RESULTS":
		return models.Coordinate{}, fmt.Errorf("%w: no results for %q", models.ErrNotFound, trimmed)
	case "OVER_QUERY_LIMIT":
		return models.Coordinate{}, fmt.Errorf("%w: %s", models.ErrRateLimited, apiResp.ErrorMessage)
	default:
		return models.Coordinate{}, models.ProviderError(apiResp.Status, fmt.Errorf("%s", apiResp.ErrorMessage))
	}

	if len(apiResp.Results) == 0 {
		return models.Coordinate{}, fmt.Errorf("%w: no results for %q", models.ErrNotFound, trimmed)
	}

	first := apiResp.Results[0]
	if first.Geometry == nil || first.Geometry.Location == nil {
		return models.Coordinate{}, models.ProviderError(apiResp.Status, fmt.Errorf("result missing geometry"))
	}

	coord := models.Coordinate{
		Latitude:  first.Geometry.Location.Lat,
		Longitude: first.Geometry.Location.Lng,
	}
	if !coord.Valid() {
		return models.Coordinate{}, models.ProviderError(apiResp.Status, fmt.Errorf("coordinate out of range: %v", coord))
	}

	s.logger.Info().
		Str("address", trimmed).
		Float64("latitude", coord.Latitude).
		Float64("longitude", coord.Longitude).
		Msg("Address geocoded")

	return coord, nil
}
