package places

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

// maxPhotoBytes bounds a single photo download.
const maxPhotoBytes = 10 * 1024 * 1024

// Service implements the PlacesClient interface against the Google Places API
type Service struct {
	config     *common.ProvidersConfig
	search     *common.SearchConfig
	logger     arbor.ILogger
	apiKey     string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewService creates a new places service instance
func NewService(config *common.ProvidersConfig, search *common.SearchConfig, logger arbor.ILogger) interfaces.PlacesClient {
	rps := config.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}

	return &Service{
		config:     config,
		search:     search,
		logger:     logger,
		apiKey:     config.APIKey,
		baseURL:    config.PlacesBaseURL,
		httpClient: httpclient.NewDefaultHTTPClient(config.RequestTimeout),
		limiter:    rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// Nearby performs a nearby search around the center. Provider order is
// preserved; candidates carry only ID, Name and Coordinate.
func (s *Service) Nearby(ctx context.Context, center models.Coordinate, radiusMeters int, category string) ([]models.PlaceCandidate, error) {
	if !center.Valid() {
		return nil, fmt.Errorf("%w: coordinate out of range: %v", models.ErrInvalidInput, center)
	}
	if radiusMeters <= 0 {
		radiusMeters = s.search.DefaultRadiusMeters
	}
	if category == "" {
		category = s.search.DefaultCategory
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", center.Latitude, center.Longitude))
	params.Set("radius", fmt.Sprintf("%d", radiusMeters))
	params.Set("type", category)
	params.Set("key", s.apiKey)

	var apiResp NearbySearchResponse
	if err := s.get(ctx, "/nearbysearch/json", params, &apiResp); err != nil {
		return nil, err
	}

	if err := checkStatus(apiResp.Status, apiResp.ErrorMessage); err != nil {
		return nil, err
	}

	results := apiResp.Results
	if max := s.search.MaxResults; max > 0 && len(results) > max {
		results = results[:max]
	}

	candidates := make([]models.PlaceCandidate, 0, len(results))
	for _, place := range results {
		if place.Geometry == nil || place.Geometry.Location == nil {
			continue
		}
		candidates = append(candidates, models.PlaceCandidate{
			ID:   place.PlaceID,
			Name: place.Name,
			Coordinate: models.Coordinate{
				Latitude:  place.Geometry.Location.Lat,
				Longitude: place.Geometry.Location.Lng,
			},
		})
	}

	s.logger.Info().
		Float64("latitude", center.Latitude).
		Float64("longitude", center.Longitude).
		Int("radius", radiusMeters).
		Str("category", category).
		Int("results_count", len(candidates)).
		Str("status", apiResp.Status).
		Msg("Nearby search completed")

	return candidates, nil
}

// Autocomplete returns ranked predictions for a free-text query
func (s *Service) Autocomplete(ctx context.Context, query string) ([]models.PlacePrediction, error) {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty query", models.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("input", trimmed)
	params.Set("key", s.apiKey)

	var apiResp AutocompleteResponse
	if err := s.get(ctx, "/autocomplete/json", params, &apiResp); err != nil {
		return nil, err
	}

	if err := checkStatus(apiResp.Status, apiResp.ErrorMessage); err != nil {
		return nil, err
	}

	predictions := make([]models.PlacePrediction, 0, len(apiResp.Predictions))
	for _, p := range apiResp.Predictions {
		matched := p.Description
		if p.StructuredFormatting != nil && p.StructuredFormatting.MainText != "" {
			matched = p.StructuredFormatting.MainText
		}
		predictions = append(predictions, models.PlacePrediction{
			ID:          p.PlaceID,
			MatchedText: matched,
		})
	}

	s.logger.Info().
		Str("query", trimmed).
		Int("results_count", len(predictions)).
		Msg("Autocomplete completed")

	return predictions, nil
}

// Details fetches name, formatted address and photo references for a place ID
func (s *Service) Details(ctx context.Context, placeID string) (models.PlaceDetail, error) {
	if placeID == "" {
		return models.PlaceDetail{}, fmt.Errorf("%w: empty place id", models.ErrInvalidInput)
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", "name,formatted_address,photos")
	params.Set("key", s.apiKey)

	var apiResp DetailsResponse
	if err := s.get(ctx, "/details/json", params, &apiResp); err != nil {
		return models.PlaceDetail{}, err
	}

	switch apiResp.Status {
	case "OK":
	case "ZERO_RESULTS", "NOT_FOUND", "INVALID_REQUEST":
		// INVALID_REQUEST is what the provider returns for an unknown id
		return models.PlaceDetail{}, fmt.Errorf("%w: place %s", models.ErrNotFound, placeID)
	case "OVER_QUERY_LIMIT":
		return models.PlaceDetail{}, fmt.Errorf("%w: %s", models.ErrRateLimited, apiResp.ErrorMessage)
	default:
		return models.PlaceDetail{}, models.ProviderError(apiResp.Status, fmt.Errorf("%s", apiResp.ErrorMessage))
	}

	if apiResp.Result == nil {
		return models.PlaceDetail{}, fmt.Errorf("%w: place %s", models.ErrNotFound, placeID)
	}

	detail := models.PlaceDetail{
		ID:      placeID,
		Name:    apiResp.Result.Name,
		Address: apiResp.Result.FormattedAddress,
	}
	for _, photo := range apiResp.Result.Photos {
		detail.PhotoRefs = append(detail.PhotoRefs, photo.PhotoReference)
	}

	return detail, nil
}

// Photo fetches raw image bytes for an opaque photo reference
func (s *Service) Photo(ctx context.Context, photoRef string, maxWidth, maxHeight int) ([]byte, string, error) {
	if photoRef == "" {
		return nil, "", fmt.Errorf("%w: empty photo reference", models.ErrInvalidInput)
	}

	if err := s.limiter.Wait(ctx); err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrTimeout, err)
	}

	params := url.Values{}
	params.Set("photoreference", photoRef)
	if maxWidth > 0 {
		params.Set("maxwidth", fmt.Sprintf("%d", maxWidth))
	}
	if maxHeight > 0 {
		params.Set("maxheight", fmt.Sprintf("%d", maxHeight))
	}
	params.Set("key", s.apiKey)

	fullURL := fmt.Sprintf("%s/photo?%s", s.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, "", fmt.Errorf("%w: photo fetch: %v", models.ErrTimeout, ctx.Err())
		}
		return nil, "", fmt.Errorf("%w: %v", models.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", models.ProviderError(fmt.Sprintf("HTTP %d", resp.StatusCode), nil)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPhotoBytes))
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading photo body: %v", models.ErrProvider, err)
	}

	return data, resp.Header.Get("Content-Type"), nil
}

// get performs a rate-limited GET against the places API and decodes the
// JSON response. API keys are redacted from logged URLs.
func (s *Service) get(ctx context.Context, path string, params url.Values, result interface{}) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", models.ErrTimeout, err)
	}

	fullURL := fmt.Sprintf("%s%s?%s", s.baseURL, path, params.Encode())

	redacted := url.Values{}
	for k, v := range params {
		if k == "key" {
			redacted.Set(k, "***REDACTED***")
			continue
		}
		redacted[k] = v
	}
	s.logger.Debug().
		Str("url", fmt.Sprintf("%s%s?%s", s.baseURL, path, redacted.Encode())).
		Msg("Calling places API")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", models.ErrProvider, err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %s: %v", models.ErrTimeout, path, ctx.Err())
		}
		return fmt.Errorf("%w: %v", models.ErrProvider, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return models.ProviderError(fmt.Sprintf("HTTP %d", resp.StatusCode), fmt.Errorf("%s", string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", models.ErrProvider, err)
	}

	return nil
}

// checkStatus maps a search response status to the error taxonomy.
// ZERO_RESULTS is a valid empty success for searches.
func checkStatus(status, message string) error {
	switch status {
	case "OK", "ZERO_RESULTS":
		return nil
	case "OVER_QUERY_LIMIT":
		return fmt.Errorf("%w: %s", models.ErrRateLimited, message)
	default:
		return models.ProviderError(status, fmt.Errorf("%s", message))
	}
}
