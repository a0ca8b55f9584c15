package places

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
)

const (
	googleBaseURL          = "https://maps.googleapis.com/maps/api"
	detailsFields          = "name,formatted_phone_number,rating,website,vicinity,opening_hours"
	defaultGeocodeCacheTTL = 60 * 60 * 24 * 30
	defaultHTTPTimeout     = 8 * time.Second
)

// GoogleProvider implements the PlacesProvider against the Google Maps
// Web Service with a server-held API key.
type GoogleProvider struct {
	apiKey     string
	httpClient *http.Client
	cache      providers.CacheProvider
	baseURL    string
}

// NewGoogleProvider creates a new Google places provider.
func NewGoogleProvider(apiKey string, cache providers.CacheProvider) providers.PlacesProvider {
	return NewGoogleProviderWithOptions(apiKey, cache, googleBaseURL, nil)
}

// NewGoogleProviderWithOptions allows overriding base URL and HTTP client (used for tests).
func NewGoogleProviderWithOptions(apiKey string, cache providers.CacheProvider, baseURL string, httpClient *http.Client) providers.PlacesProvider {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = googleBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &GoogleProvider{
		apiKey:     apiKey,
		httpClient: httpClient,
		cache:      cache,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
	}
}

// NearbySearch finds places around an origin by type or keyword.
func (g *GoogleProvider) NearbySearch(ctx context.Context, req providers.NearbySearchRequest) ([]entities.PlaceSummary, error) {
	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", req.Origin.Latitude, req.Origin.Longitude))
	params.Set("radius", fmt.Sprintf("%d", req.RadiusMeters))
	params.Set("language", "ja")
	if req.Type != "" {
		params.Set("type", req.Type)
	}
	if req.Keyword != "" {
		params.Set("keyword", req.Keyword)
	}

	payload, err := g.doSearchRequest(ctx, "/place/nearbysearch/json", params)
	if err != nil {
		return nil, err
	}
	return mapSearchResults(payload.Results), nil
}

// TextSearch finds places matching a free-text query biased around an origin.
func (g *GoogleProvider) TextSearch(ctx context.Context, req providers.TextSearchRequest) ([]entities.PlaceSummary, error) {
	params := url.Values{}
	params.Set("query", req.Query)
	params.Set("location", fmt.Sprintf("%f,%f", req.Origin.Latitude, req.Origin.Longitude))
	params.Set("radius", fmt.Sprintf("%d", req.RadiusMeters))
	params.Set("language", "ja")

	payload, err := g.doSearchRequest(ctx, "/place/textsearch/json", params)
	if err != nil {
		return nil, err
	}
	return mapSearchResults(payload.Results), nil
}

// GetDetails fetches enrichment detail for one place.
func (g *GoogleProvider) GetDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, apperrors.NewValidationError("place id is required")
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", detailsFields)
	params.Set("language", "ja")

	var payload googlePlaceDetailsResponse
	if err := g.doRequest(ctx, "/place/details/json", params, &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case "OK":
	case "NOT_FOUND", "ZERO_RESULTS", "INVALID_REQUEST":
		return nil, providers.ErrNotFound
	default:
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("place details request failed: %s", payload.Status), nil)
	}

	return mapPlaceDetails(payload.Result), nil
}

// Geocode converts an address or place name to coordinates. Results are
// cached since addresses rarely move.
func (g *GoogleProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	cacheKey := "geo:v1:geocode:" + hashKey(strings.ToLower(trimmed))
	if g.cache != nil {
		if cached, err := g.cache.Get(ctx, cacheKey); err == nil && len(cached) > 0 {
			var coords entities.Coordinates
			if err := json.Unmarshal(cached, &coords); err == nil && (coords.Latitude != 0 || coords.Longitude != 0) {
				return &coords, nil
			}
		}
	}

	params := url.Values{}
	params.Set("address", trimmed)
	params.Set("language", "ja")
	params.Set("region", "jp")

	var payload googleGeocodeResponse
	if err := g.doRequest(ctx, "/geocode/json", params, &payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return nil, providers.ErrNotFound
	}
	if payload.Status != "OK" {
		if payload.ErrorMessage != "" {
			return nil, apperrors.NewExternalError(
				fmt.Sprintf("geocode request failed: %s - %s", payload.Status, payload.ErrorMessage), nil)
		}
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("geocode request failed: %s", payload.Status), nil)
	}

	coords := entities.Coordinates{
		Latitude:  payload.Results[0].Geometry.Location.Lat,
		Longitude: payload.Results[0].Geometry.Location.Lng,
	}

	if g.cache != nil {
		if body, err := json.Marshal(coords); err == nil {
			_ = g.cache.Set(ctx, cacheKey, body, defaultGeocodeCacheTTL)
		}
	}

	return &coords, nil
}

func (g *GoogleProvider) doSearchRequest(ctx context.Context, path string, params url.Values) (*googlePlacesSearchResponse, error) {
	var payload googlePlacesSearchResponse
	if err := g.doRequest(ctx, path, params, &payload); err != nil {
		return nil, err
	}

	switch payload.Status {
	case "OK", "ZERO_RESULTS":
		return &payload, nil
	default:
		if payload.ErrorMessage != "" {
			return nil, apperrors.NewExternalError(
				fmt.Sprintf("places search failed: %s - %s", payload.Status, payload.ErrorMessage), nil)
		}
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("places search failed: %s", payload.Status), nil)
	}
}

func (g *GoogleProvider) doRequest(ctx context.Context, path string, params url.Values, out any) error {
	if g.apiKey == "" {
		return apperrors.NewInternalError("google maps api key is required", nil)
	}

	params.Set("key", g.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", g.baseURL, path, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return apperrors.NewInternalError("failed to build places request", err)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("places request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewExternalError(
			fmt.Sprintf("places request returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("failed to decode places response", err)
	}
	return nil
}

func hashKey(value string) string {
	sum := sha256.Sum256([]byte(value))
	return hex.EncodeToString(sum[:])
}
