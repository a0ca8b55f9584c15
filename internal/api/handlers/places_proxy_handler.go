package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

const (
	googleAPIBase       = "https://maps.googleapis.com/maps/api"
	proxyUpstreamFields = "name,formatted_phone_number,rating,website,vicinity,opening_hours"
)

// PlacesProxyHandler forwards places and geocode requests to the Google
// Maps Web Service with the server-held API key, so the key never
// reaches the browser. Upstream payloads pass through unchanged.
type PlacesProxyHandler struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewPlacesProxyHandler creates a new places proxy handler.
func NewPlacesProxyHandler(apiKey string) *PlacesProxyHandler {
	return NewPlacesProxyHandlerWithOptions(apiKey, googleAPIBase, nil)
}

// NewPlacesProxyHandlerWithOptions allows overriding base URL and HTTP client (used for tests).
func NewPlacesProxyHandlerWithOptions(apiKey, baseURL string, httpClient *http.Client) *PlacesProxyHandler {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 8 * time.Second}
	}
	return &PlacesProxyHandler{
		apiKey:     apiKey,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

type nearbySearchRequest struct {
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters int     `json:"radius_meters"`
	Type         string  `json:"type"`
	Keyword      string  `json:"keyword"`
}

type textSearchRequest struct {
	Query        string  `json:"query"`
	Lat          float64 `json:"lat"`
	Lon          float64 `json:"lon"`
	RadiusMeters int     `json:"radius_meters"`
}

type geocodeRequest struct {
	Address string `json:"address"`
}

// NearbySearch handles POST /api/places/nearbysearch
func (h *PlacesProxyHandler) NearbySearch(w http.ResponseWriter, r *http.Request) {
	var payload nearbySearchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if !validCoordinates(payload.Lat, payload.Lon) {
		respondWithError(w, http.StatusBadRequest, "lat and lon are required")
		return
	}
	if payload.Type == "" && payload.Keyword == "" {
		respondWithError(w, http.StatusBadRequest, "type or keyword is required")
		return
	}

	params := url.Values{}
	params.Set("location", fmt.Sprintf("%f,%f", payload.Lat, payload.Lon))
	params.Set("radius", fmt.Sprintf("%d", clampRadius(payload.RadiusMeters)))
	params.Set("language", "ja")
	if payload.Type != "" {
		params.Set("type", payload.Type)
	}
	if payload.Keyword != "" {
		params.Set("keyword", payload.Keyword)
	}

	h.forward(w, r, "/place/nearbysearch/json", params)
}

// TextSearch handles POST /api/places/textsearch
func (h *PlacesProxyHandler) TextSearch(w http.ResponseWriter, r *http.Request) {
	var payload textSearchRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Query) == "" {
		respondWithError(w, http.StatusBadRequest, "query is required")
		return
	}

	params := url.Values{}
	params.Set("query", payload.Query)
	params.Set("language", "ja")
	if validCoordinates(payload.Lat, payload.Lon) {
		params.Set("location", fmt.Sprintf("%f,%f", payload.Lat, payload.Lon))
		params.Set("radius", fmt.Sprintf("%d", clampRadius(payload.RadiusMeters)))
	}

	h.forward(w, r, "/place/textsearch/json", params)
}

// GetDetails handles GET /api/places/details/{placeId}
func (h *PlacesProxyHandler) GetDetails(w http.ResponseWriter, r *http.Request) {
	placeID := strings.TrimSpace(r.PathValue("placeId"))
	if placeID == "" {
		respondWithError(w, http.StatusBadRequest, "place id is required")
		return
	}

	params := url.Values{}
	params.Set("place_id", placeID)
	params.Set("fields", proxyUpstreamFields)
	params.Set("language", "ja")

	h.forward(w, r, "/place/details/json", params)
}

// Geocode handles POST /api/geocode
func (h *PlacesProxyHandler) Geocode(w http.ResponseWriter, r *http.Request) {
	var payload geocodeRequest
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request payload")
		return
	}
	if strings.TrimSpace(payload.Address) == "" {
		respondWithError(w, http.StatusBadRequest, "address is required")
		return
	}

	params := url.Values{}
	params.Set("address", payload.Address)
	params.Set("language", "ja")
	params.Set("region", "jp")

	h.forward(w, r, "/geocode/json", params)
}

// forward proxies one upstream call and streams the body back as-is
func (h *PlacesProxyHandler) forward(w http.ResponseWriter, r *http.Request, path string, params url.Values) {
	if h.apiKey == "" {
		respondWithError(w, http.StatusInternalServerError, "maps api key is not configured")
		return
	}

	params.Set("key", h.apiKey)
	reqURL := fmt.Sprintf("%s%s?%s", h.baseURL, path, params.Encode())

	req, err := http.NewRequestWithContext(r.Context(), http.MethodGet, reqURL, nil)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Str("path", path).Msg("upstream request failed")
		respondWithError(w, http.StatusBadGateway, "upstream request failed")
		return
	}
	defer resp.Body.Close()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	if _, err := io.Copy(w, resp.Body); err != nil {
		observability.LoggerFromContext(r.Context()).Warn().Err(err).Msg("failed to stream upstream response")
	}
}

func validCoordinates(lat, lon float64) bool {
	if lat == 0 && lon == 0 {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// clampRadius keeps the radius inside the upstream's accepted bounds
func clampRadius(radius int) int {
	if radius <= 0 {
		return 3000
	}
	if radius > 50000 {
		return 50000
	}
	return radius
}
