package providers

import (
	"context"
	"errors"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
)

// ErrNotFound is returned by Geocode when the provider has no match for
// the given address.
var ErrNotFound = errors.New("not found")

// NearbySearchRequest is a proximity search by place type or keyword.
type NearbySearchRequest struct {
	Origin       entities.Coordinates
	RadiusMeters int
	Type         string
	Keyword      string
}

// TextSearchRequest is a free-text query search biased around an origin.
type TextSearchRequest struct {
	Query        string
	Origin       entities.Coordinates
	RadiusMeters int
}

// PlacesProvider defines the places lookup capability consumed by the
// search pipeline. Implementations either call the maps provider
// directly or go through a same-origin proxy; both are interchangeable.
type PlacesProvider interface {
	// NearbySearch finds places around an origin by type or keyword
	NearbySearch(ctx context.Context, req NearbySearchRequest) ([]entities.PlaceSummary, error)

	// TextSearch finds places matching a free-text query
	TextSearch(ctx context.Context, req TextSearchRequest) ([]entities.PlaceSummary, error)

	// GetDetails fetches enrichment detail for one place
	GetDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error)

	// Geocode converts an address or place name to coordinates.
	// Returns ErrNotFound when the provider has no match.
	Geocode(ctx context.Context, address string) (*entities.Coordinates, error)
}
