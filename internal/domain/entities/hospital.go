package entities

// StrategyMode selects how a search strategy queries the places provider
type StrategyMode string

const (
	// StrategyModeType is a proximity search by place category tag
	StrategyModeType StrategyMode = "type"

	// StrategyModeKeyword is a proximity search by keyword
	StrategyModeKeyword StrategyMode = "keyword"

	// StrategyModeQuery is a free-text query search
	StrategyModeQuery StrategyMode = "query"
)

// SearchStrategy is one configured attempt in the search fallback chain.
// Strategies are evaluated in order; position is priority.
type SearchStrategy struct {
	Name         string
	Mode         StrategyMode
	Value        string
	RadiusMeters int
}

// PlaceSummary is a raw hit from the places provider, before enrichment.
type PlaceSummary struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Types    []string    `json:"types,omitempty"`
	Location Coordinates `json:"location"`
	Vicinity string      `json:"vicinity,omitempty"`
}

// PlaceDetails carries the optional enrichment fields fetched per place.
type PlaceDetails struct {
	Name        string          `json:"name"`
	PhoneNumber string          `json:"phone_number,omitempty"`
	Rating      float64         `json:"rating,omitempty"`
	Website     string          `json:"website,omitempty"`
	Vicinity    string          `json:"vicinity,omitempty"`
	Periods     []OpeningPeriod `json:"periods,omitempty"`
	HasHours    bool            `json:"has_hours"`
}

// Hospital is a search hit merged with its enrichment detail.
type Hospital struct {
	PlaceSummary
	PhoneNumber string          `json:"phone_number"`
	PhoneSample bool            `json:"phone_sample"`
	Rating      float64         `json:"rating,omitempty"`
	Website     string          `json:"website,omitempty"`
	Periods     []OpeningPeriod `json:"periods,omitempty"`
	HasHours    bool            `json:"has_hours"`
}

// HospitalRecord is the display-ready record handed to the presentation
// layer, in the orchestrator's sort order.
type HospitalRecord struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	DistanceKm    float64     `json:"distance_km"`
	DistanceLabel string      `json:"distance_label"`
	Address       string      `json:"address"`
	Schedule      string      `json:"schedule"`
	PhoneNumber   string      `json:"phone_number"`
	PhoneSample   bool        `json:"phone_sample"`
	Website       string      `json:"website,omitempty"`
	Location      Coordinates `json:"location"`
}
