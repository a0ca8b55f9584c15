package places

import (
	"context"
	"strings"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
)

// MockProvider implements a mock places provider for development and testing
type MockProvider struct{}

// NewMockProvider creates a new mock places provider
func NewMockProvider() providers.PlacesProvider {
	return &MockProvider{}
}

type mockPlace struct {
	summary entities.PlaceSummary
	details entities.PlaceDetails
}

// Places are laid out around Tokyo Station so a default search returns a
// believable spread of results.
var mockPlaces = []mockPlace{
	{
		summary: entities.PlaceSummary{
			ID:       "mock-night-emergency",
			Name:     "夜間救急どうぶつ病院",
			Types:    []string{"veterinary_care", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6840, Longitude: 139.7700},
			Vicinity: "東京都千代田区丸の内1-1-1",
		},
		details: entities.PlaceDetails{
			Name:        "夜間救急どうぶつ病院",
			PhoneNumber: "03-1234-5678",
			Rating:      4.2,
			Website:     "https://example.com/night-vet",
			HasHours:    true,
			Periods: []entities.OpeningPeriod{
				// Round-the-clock operation
				{OpenDay: 0, OpenTime: "0000", CloseDay: 0, CloseTime: "0000"},
			},
		},
	},
	{
		summary: entities.PlaceSummary{
			ID:       "mock-evening-clinic",
			Name:     "ペットクリニック東京 動物病院",
			Types:    []string{"veterinary_care", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6770, Longitude: 139.7630},
			Vicinity: "東京都中央区八重洲2-2-2",
		},
		details: entities.PlaceDetails{
			Name:        "ペットクリニック東京 動物病院",
			PhoneNumber: "03-2345-6789",
			Rating:      4.6,
			HasHours:    true,
			Periods: []entities.OpeningPeriod{
				{OpenDay: 1, OpenTime: "0900", CloseDay: 1, CloseTime: "2200"},
				{OpenDay: 2, OpenTime: "0900", CloseDay: 2, CloseTime: "2200"},
				{OpenDay: 3, OpenTime: "0900", CloseDay: 3, CloseTime: "2200"},
				{OpenDay: 4, OpenTime: "0900", CloseDay: 4, CloseTime: "2200"},
				{OpenDay: 5, OpenTime: "0900", CloseDay: 5, CloseTime: "2200"},
				{OpenDay: 6, OpenTime: "0900", CloseDay: 6, CloseTime: "1800"},
			},
		},
	},
	{
		summary: entities.PlaceSummary{
			ID:       "mock-daytime-clinic",
			Name:     "ひまわり動物病院",
			Types:    []string{"veterinary_care", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6900, Longitude: 139.7560},
			Vicinity: "東京都千代田区神田3-3-3",
		},
		details: entities.PlaceDetails{
			Name:        "ひまわり動物病院",
			PhoneNumber: "03-3456-7890",
			Rating:      4.8,
			HasHours:    true,
			Periods: []entities.OpeningPeriod{
				{OpenDay: 1, OpenTime: "0900", CloseDay: 1, CloseTime: "1700"},
				{OpenDay: 2, OpenTime: "0900", CloseDay: 2, CloseTime: "1700"},
				{OpenDay: 4, OpenTime: "0900", CloseDay: 4, CloseTime: "1700"},
				{OpenDay: 5, OpenTime: "0900", CloseDay: 5, CloseTime: "1700"},
			},
		},
	},
	{
		summary: entities.PlaceSummary{
			ID:       "mock-unknown-hours",
			Name:     "みなと獣医科センター",
			Types:    []string{"veterinary_care", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6580, Longitude: 139.7520},
			Vicinity: "東京都港区新橋4-4-4",
		},
		details: entities.PlaceDetails{
			Name:   "みなと獣医科センター",
			Rating: 3.9,
		},
	},
	{
		// Retail hit that the relevance filter should drop
		summary: entities.PlaceSummary{
			ID:       "mock-pet-shop",
			Name:     "ペットショップわんわん",
			Types:    []string{"pet_store", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6820, Longitude: 139.7650},
			Vicinity: "東京都中央区銀座5-5-5",
		},
		details: entities.PlaceDetails{
			Name:        "ペットショップわんわん",
			PhoneNumber: "03-4567-8901",
		},
	},
	{
		// Human hospital that the relevance filter should drop
		summary: entities.PlaceSummary{
			ID:       "mock-human-hospital",
			Name:     "中央総合病院",
			Types:    []string{"hospital", "health", "point_of_interest"},
			Location: entities.Coordinates{Latitude: 35.6750, Longitude: 139.7710},
			Vicinity: "東京都中央区築地6-6-6",
		},
		details: entities.PlaceDetails{
			Name:        "中央総合病院",
			PhoneNumber: "03-5678-9012",
		},
	},
}

var mockAddresses = map[string]entities.Coordinates{
	"東京駅": {Latitude: 35.6812, Longitude: 139.7671},
	"新宿駅": {Latitude: 35.6896, Longitude: 139.7006},
	"渋谷駅": {Latitude: 35.6580, Longitude: 139.7016},
	"横浜駅": {Latitude: 35.4660, Longitude: 139.6220},
}

// NearbySearch returns canned places within the requested radius
func (m *MockProvider) NearbySearch(ctx context.Context, req providers.NearbySearchRequest) ([]entities.PlaceSummary, error) {
	return m.withinRadius(req.Origin, req.RadiusMeters), nil
}

// TextSearch returns canned places whose name matches the query terms
func (m *MockProvider) TextSearch(ctx context.Context, req providers.TextSearchRequest) ([]entities.PlaceSummary, error) {
	candidates := m.withinRadius(req.Origin, req.RadiusMeters)
	out := make([]entities.PlaceSummary, 0, len(candidates))
	for _, c := range candidates {
		for _, term := range strings.Fields(req.Query) {
			if strings.Contains(c.Name, term) {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

// GetDetails returns the canned detail for a known mock place
func (m *MockProvider) GetDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	for _, p := range mockPlaces {
		if p.summary.ID == placeID {
			details := p.details
			return &details, nil
		}
	}
	return nil, providers.ErrNotFound
}

// Geocode resolves a few well-known station names
func (m *MockProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	for name, coords := range mockAddresses {
		if strings.Contains(address, name) {
			c := coords
			return &c, nil
		}
	}
	return nil, providers.ErrNotFound
}

func (m *MockProvider) withinRadius(origin entities.Coordinates, radiusMeters int) []entities.PlaceSummary {
	if radiusMeters <= 0 {
		radiusMeters = 3000
	}
	out := make([]entities.PlaceSummary, 0, len(mockPlaces))
	for _, p := range mockPlaces {
		if entities.DistanceKm(origin, p.summary.Location)*1000 <= float64(radiusMeters) {
			out = append(out, p.summary)
		}
	}
	return out
}
