package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
)

// HospitalSearchService defines the search operations used by the handler.
type HospitalSearchService interface {
	Search(ctx context.Context, origin entities.Coordinates) ([]entities.PlaceSummary, error)
}

// HospitalEnrichmentService defines the enrichment operations used by the handler.
type HospitalEnrichmentService interface {
	Assemble(ctx context.Context, origin entities.Coordinates, candidates []entities.PlaceSummary, window entities.TimeWindow) []entities.HospitalRecord
	Present(ctx context.Context, presenter providers.ResultPresenter, records []entities.HospitalRecord) error
}

// SearchSessionService defines the per-session search lifecycle.
type SearchSessionService interface {
	Begin(parent context.Context, sessionID string) (context.Context, uint64)
	IsCurrent(sessionID string, generation uint64) bool
	End(sessionID string, generation uint64)
}

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*entities.Coordinates, error)
}

// HospitalHandler handles the night hospital search endpoint.
type HospitalHandler struct {
	search    HospitalSearchService
	enrich    HospitalEnrichmentService
	sessions  SearchSessionService
	geocoder  Geocoder
	presenter providers.ResultPresenter
	now       func() time.Time
}

// NewHospitalHandler creates a new hospital search handler.
func NewHospitalHandler(
	search HospitalSearchService,
	enrich HospitalEnrichmentService,
	sessions SearchSessionService,
	geocoder Geocoder,
	presenter providers.ResultPresenter,
) *HospitalHandler {
	return &HospitalHandler{
		search:    search,
		enrich:    enrich,
		sessions:  sessions,
		geocoder:  geocoder,
		presenter: presenter,
		now:       time.Now,
	}
}

// WithClock overrides the handler's clock (used for tests)
func (h *HospitalHandler) WithClock(now func() time.Time) *HospitalHandler {
	h.now = now
	return h
}

type careWindowResponse struct {
	StartSec int `json:"start_sec"`
	EndSec   int `json:"end_sec"`
	Weekday  int `json:"weekday"`
}

type hospitalSearchResponse struct {
	Hospitals  []entities.HospitalRecord `json:"hospitals"`
	CareWindow careWindowResponse        `json:"care_window"`
	Generation uint64                    `json:"generation"`
}

// SearchHospitals handles GET /api/hospitals/search. The origin comes
// either from lat/lon query parameters or from geocoding an address
// parameter. Each session runs at most one search; a newer request for
// the same session supersedes this one and its results are discarded.
func (h *HospitalHandler) SearchHospitals(w http.ResponseWriter, r *http.Request) {
	origin, err := h.resolveOrigin(r)
	if err != nil {
		if errors.Is(err, providers.ErrNotFound) {
			respondWithError(w, http.StatusNotFound, "address could not be resolved")
			return
		}
		respondWithAppError(w, err)
		return
	}

	sessionID := h.sessionID(r)
	ctx, generation := h.sessions.Begin(r.Context(), sessionID)
	defer h.sessions.End(sessionID, generation)

	window := entities.ComputeCareWindow(h.now())

	candidates, err := h.search.Search(ctx, origin)
	if err != nil {
		if ctx.Err() != nil && !h.sessions.IsCurrent(sessionID, generation) {
			respondWithError(w, http.StatusConflict, "search superseded by a newer request")
			return
		}
		respondWithAppError(w, err)
		return
	}

	records := h.enrich.Assemble(ctx, origin, candidates, window)

	// A newer search for this session may have started while enrichment
	// ran; stale results are never presented.
	if !h.sessions.IsCurrent(sessionID, generation) {
		respondWithError(w, http.StatusConflict, "search superseded by a newer request")
		return
	}

	if err := h.enrich.Present(ctx, h.presenter, records); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).Msg("presentation failed")
	}

	respondWithJSON(w, http.StatusOK, hospitalSearchResponse{
		Hospitals: records,
		CareWindow: careWindowResponse{
			StartSec: window.StartSec,
			EndSec:   window.EndSec,
			Weekday:  window.Weekday,
		},
		Generation: generation,
	})
}

func (h *HospitalHandler) resolveOrigin(r *http.Request) (entities.Coordinates, error) {
	query := r.URL.Query()

	latStr := query.Get("lat")
	lonStr := query.Get("lon")
	if latStr != "" || lonStr != "" {
		lat, latErr := strconv.ParseFloat(latStr, 64)
		lon, lonErr := strconv.ParseFloat(lonStr, 64)
		if latErr != nil || lonErr != nil {
			return entities.Coordinates{}, apperrors.NewValidationError("lat and lon must both be valid numbers")
		}
		if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
			return entities.Coordinates{}, apperrors.NewValidationError("lat or lon out of range")
		}
		return entities.Coordinates{Latitude: lat, Longitude: lon}, nil
	}

	address := strings.TrimSpace(query.Get("address"))
	if address == "" {
		return entities.Coordinates{}, apperrors.NewValidationError("lat/lon or address is required")
	}

	coords, err := h.geocoder.Geocode(r.Context(), address)
	if err != nil {
		return entities.Coordinates{}, err
	}
	return *coords, nil
}

func (h *HospitalHandler) sessionID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get("X-Session-ID")); id != "" {
		return id
	}
	if id := strings.TrimSpace(r.URL.Query().Get("session_id")); id != "" {
		return id
	}
	return clientIP(r)
}
