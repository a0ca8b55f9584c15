package places

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
)

// ProxyProvider implements the PlacesProvider against a same-origin API
// proxy that holds the maps key server-side. The proxy passes the
// upstream payloads through unchanged, so responses decode with the
// same types as the direct provider.
type ProxyProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewProxyProvider creates a places provider that calls through the API proxy.
func NewProxyProvider(baseURL string, httpClient *http.Client) providers.PlacesProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &ProxyProvider{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type proxyNearbyRequest struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters int     `json:"radius_meters"`
	Type         string  `json:"type,omitempty"`
	Keyword      string  `json:"keyword,omitempty"`
}

type proxyTextRequest struct {
	Query        string  `json:"query"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters int     `json:"radius_meters"`
}

type proxyGeocodeRequest struct {
	Address string `json:"address"`
}

// NearbySearch finds places around an origin by type or keyword.
func (p *ProxyProvider) NearbySearch(ctx context.Context, req providers.NearbySearchRequest) ([]entities.PlaceSummary, error) {
	body := proxyNearbyRequest{
		Lat:          req.Origin.Latitude,
		Lon:          req.Origin.Longitude,
		RadiusMeters: req.RadiusMeters,
		Type:         req.Type,
		Keyword:      req.Keyword,
	}

	var payload googlePlacesSearchResponse
	if err := p.post(ctx, "/api/places/nearbysearch", body, &payload); err != nil {
		return nil, err
	}
	return p.searchResults(&payload)
}

// TextSearch finds places matching a free-text query biased around an origin.
func (p *ProxyProvider) TextSearch(ctx context.Context, req providers.TextSearchRequest) ([]entities.PlaceSummary, error) {
	body := proxyTextRequest{
		Query:        req.Query,
		Lat:          req.Origin.Latitude,
		Lon:          req.Origin.Longitude,
		RadiusMeters: req.RadiusMeters,
	}

	var payload googlePlacesSearchResponse
	if err := p.post(ctx, "/api/places/textsearch", body, &payload); err != nil {
		return nil, err
	}
	return p.searchResults(&payload)
}

// GetDetails fetches enrichment detail for one place.
func (p *ProxyProvider) GetDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	if strings.TrimSpace(placeID) == "" {
		return nil, apperrors.NewValidationError("place id is required")
	}

	reqURL := p.baseURL + "/api/places/details/" + url.PathEscape(placeID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build proxy request", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewExternalError("proxy request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, providers.ErrNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("proxy returned status %d", resp.StatusCode), nil)
	}

	var payload googlePlaceDetailsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, apperrors.NewExternalError("failed to decode proxy response", err)
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

// Geocode converts an address or place name to coordinates.
func (p *ProxyProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	trimmed := strings.TrimSpace(address)
	if trimmed == "" {
		return nil, apperrors.NewValidationError("address is required")
	}

	var payload googleGeocodeResponse
	if err := p.post(ctx, "/api/geocode", proxyGeocodeRequest{Address: trimmed}, &payload); err != nil {
		return nil, err
	}

	if payload.Status == "ZERO_RESULTS" || len(payload.Results) == 0 {
		return nil, providers.ErrNotFound
	}
	if payload.Status != "OK" {
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("geocode request failed: %s", payload.Status), nil)
	}

	return &entities.Coordinates{
		Latitude:  payload.Results[0].Geometry.Location.Lat,
		Longitude: payload.Results[0].Geometry.Location.Lng,
	}, nil
}

func (p *ProxyProvider) searchResults(payload *googlePlacesSearchResponse) ([]entities.PlaceSummary, error) {
	switch payload.Status {
	case "OK", "ZERO_RESULTS":
		return mapSearchResults(payload.Results), nil
	default:
		return nil, apperrors.NewExternalError(
			fmt.Sprintf("places search failed: %s", payload.Status), nil)
	}
}

func (p *ProxyProvider) post(ctx context.Context, path string, body any, out any) error {
	encoded, err := json.Marshal(body)
	if err != nil {
		return apperrors.NewInternalError("failed to encode proxy request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return apperrors.NewInternalError("failed to build proxy request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("proxy request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return apperrors.NewRateLimitedError("proxy rate limit exceeded")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.NewExternalError(
			fmt.Sprintf("proxy returned status %d", resp.StatusCode), nil)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("failed to decode proxy response", err)
	}
	return nil
}
