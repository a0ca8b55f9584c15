package handlers

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

const (
	mapsScriptURL      = "https://maps.googleapis.com/maps/api/js"
	mapsScriptCacheKey = "maps:script:v1"
	mapsScriptCacheTTL = 3600
)

// MapsHandler proxies the Maps JavaScript loader so the browser never
// sees the API key. The loader body changes rarely, so it is cached.
type MapsHandler struct {
	apiKey     string
	scriptURL  string
	cache      providers.CacheProvider
	metrics    *observability.Metrics
	httpClient *http.Client
}

// NewMapsHandler creates a new maps handler.
func NewMapsHandler(apiKey string, cache providers.CacheProvider, metrics *observability.Metrics) *MapsHandler {
	h := NewMapsHandlerWithOptions(apiKey, cache, mapsScriptURL, nil)
	h.metrics = metrics
	return h
}

// NewMapsHandlerWithOptions allows overriding script URL and HTTP client (used for tests).
func NewMapsHandlerWithOptions(apiKey string, cache providers.CacheProvider, scriptURL string, httpClient *http.Client) *MapsHandler {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &MapsHandler{
		apiKey:     apiKey,
		scriptURL:  scriptURL,
		cache:      cache,
		httpClient: httpClient,
	}
}

// GetScript handles GET /api/maps/script
func (h *MapsHandler) GetScript(w http.ResponseWriter, r *http.Request) {
	if h.apiKey == "" {
		respondWithError(w, http.StatusInternalServerError, "maps api key is not configured")
		return
	}

	ctx := r.Context()

	if h.cache != nil {
		if cached, err := h.cache.Get(ctx, mapsScriptCacheKey); err == nil && len(cached) > 0 {
			observability.RecordCacheHit(ctx, h.metrics, mapsScriptCacheKey)
			writeScript(w, cached)
			return
		}
		observability.RecordCacheMiss(ctx, h.metrics, mapsScriptCacheKey)
	}

	params := url.Values{}
	params.Set("key", h.apiKey)
	params.Set("libraries", "places")
	params.Set("language", "ja")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s?%s", h.scriptURL, params.Encode()), nil)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "failed to build upstream request")
		return
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to load maps script")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respondWithError(w, http.StatusBadGateway, fmt.Sprintf("maps script upstream returned %d", resp.StatusCode))
		return
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "failed to read maps script")
		return
	}

	if h.cache != nil {
		_ = h.cache.Set(ctx, mapsScriptCacheKey, body, mapsScriptCacheTTL)
	}
	writeScript(w, body)
}

func writeScript(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/javascript; charset=utf-8")
	w.Header().Set("Cache-Control", fmt.Sprintf("public, max-age=%d", mapsScriptCacheTTL))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
