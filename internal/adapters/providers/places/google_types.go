package places

import "github.com/moritahq/vet-night-map/backend/internal/domain/entities"

type googlePlacesSearchResponse struct {
	Status       string              `json:"status"`
	ErrorMessage string              `json:"error_message,omitempty"`
	Results      []googlePlaceResult `json:"results"`
}

type googlePlaceResult struct {
	PlaceID          string         `json:"place_id"`
	Name             string         `json:"name"`
	Types            []string       `json:"types"`
	Vicinity         string         `json:"vicinity"`
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

type googleGeometry struct {
	Location googleLocation `json:"location"`
}

type googleLocation struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type googlePlaceDetailsResponse struct {
	Status       string                   `json:"status"`
	ErrorMessage string                   `json:"error_message,omitempty"`
	Result       googlePlaceDetailsResult `json:"result"`
}

type googlePlaceDetailsResult struct {
	Name                 string              `json:"name"`
	FormattedPhoneNumber string              `json:"formatted_phone_number"`
	Rating               float64             `json:"rating"`
	Website              string              `json:"website"`
	Vicinity             string              `json:"vicinity"`
	OpeningHours         *googleOpeningHours `json:"opening_hours"`
}

type googleOpeningHours struct {
	Periods []googleOpeningPeriod `json:"periods"`
}

type googleOpeningPeriod struct {
	Open  googleDayTime  `json:"open"`
	Close *googleDayTime `json:"close"`
}

type googleDayTime struct {
	Day  int    `json:"day"`
	Time string `json:"time"`
}

type googleGeocodeResponse struct {
	Status       string                `json:"status"`
	ErrorMessage string                `json:"error_message,omitempty"`
	Results      []googleGeocodeResult `json:"results"`
}

type googleGeocodeResult struct {
	FormattedAddress string         `json:"formatted_address"`
	Geometry         googleGeometry `json:"geometry"`
}

func mapSearchResults(results []googlePlaceResult) []entities.PlaceSummary {
	out := make([]entities.PlaceSummary, 0, len(results))
	for _, r := range results {
		vicinity := r.Vicinity
		if vicinity == "" {
			vicinity = r.FormattedAddress
		}
		out = append(out, entities.PlaceSummary{
			ID:    r.PlaceID,
			Name:  r.Name,
			Types: r.Types,
			Location: entities.Coordinates{
				Latitude:  r.Geometry.Location.Lat,
				Longitude: r.Geometry.Location.Lng,
			},
			Vicinity: vicinity,
		})
	}
	return out
}

func mapPlaceDetails(result googlePlaceDetailsResult) *entities.PlaceDetails {
	details := &entities.PlaceDetails{
		Name:        result.Name,
		PhoneNumber: result.FormattedPhoneNumber,
		Rating:      result.Rating,
		Website:     result.Website,
		Vicinity:    result.Vicinity,
	}

	if result.OpeningHours != nil && len(result.OpeningHours.Periods) > 0 {
		details.HasHours = true
		for _, p := range result.OpeningHours.Periods {
			period := entities.OpeningPeriod{
				OpenDay:  p.Open.Day,
				OpenTime: p.Open.Time,
			}
			if p.Close != nil {
				period.CloseDay = p.Close.Day
				period.CloseTime = p.Close.Time
			} else {
				// Always-open places carry an open entry with no close;
				// open == close marks round-the-clock operation downstream.
				period.CloseDay = p.Open.Day
				period.CloseTime = p.Open.Time
			}
			details.Periods = append(details.Periods, period)
		}
	}

	return details
}
