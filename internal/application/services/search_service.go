package services

import (
	"context"
	"sort"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultStrategies returns the fallback chain for night and emergency
// veterinary care, most specific first. Position is priority.
func DefaultStrategies() []entities.SearchStrategy {
	return []entities.SearchStrategy{
		{Name: "night-emergency-query", Mode: entities.StrategyModeQuery, Value: "夜間救急動物病院 24時間", RadiusMeters: 15000},
		{Name: "night-keyword", Mode: entities.StrategyModeKeyword, Value: "夜間動物病院", RadiusMeters: 20000},
		{Name: "emergency-center-query", Mode: entities.StrategyModeQuery, Value: "動物救急センター 救急", RadiusMeters: 25000},
		{Name: "around-the-clock-keyword", Mode: entities.StrategyModeKeyword, Value: "24時間 動物病院", RadiusMeters: 30000},
		{Name: "veterinary-type", Mode: entities.StrategyModeType, Value: "veterinary_care", RadiusMeters: 10000},
	}
}

// SearchService runs the strategy fallback chain against the places
// provider and ranks the surviving candidates.
type SearchService struct {
	places     providers.PlacesProvider
	filter     *RelevanceFilter
	strategies []entities.SearchStrategy
	metrics    *observability.Metrics
}

// NewSearchService creates a new search service with the default strategy chain
func NewSearchService(places providers.PlacesProvider, filter *RelevanceFilter, metrics *observability.Metrics) *SearchService {
	return &SearchService{
		places:     places,
		filter:     filter,
		strategies: DefaultStrategies(),
		metrics:    metrics,
	}
}

// WithStrategies overrides the strategy chain (used for tests)
func (s *SearchService) WithStrategies(strategies []entities.SearchStrategy) *SearchService {
	s.strategies = strategies
	return s
}

// Search walks the strategy chain in order and returns the first
// non-empty set of relevant places, ranked emergency-first then by
// distance. Strategies are never retried; a failure advances the chain.
func (s *SearchService) Search(ctx context.Context, origin entities.Coordinates) ([]entities.PlaceSummary, error) {
	ctx, span := observability.StartSpan(ctx, "SearchService.Search")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	for i, strategy := range s.strategies {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		raw, err := s.dispatch(ctx, origin, strategy)
		observability.RecordProviderCall(ctx, s.metrics, strategy.Name, err != nil, time.Since(start))

		if err != nil {
			logger.Warn().
				Err(err).
				Str("strategy", strategy.Name).
				Int("position", i).
				Msg("search strategy failed, advancing")
			continue
		}

		relevant := s.filter.Filter(raw)
		logger.Debug().
			Str("strategy", strategy.Name).
			Int("raw", len(raw)).
			Int("relevant", len(relevant)).
			Msg("search strategy evaluated")

		if len(relevant) == 0 {
			continue
		}

		s.rank(origin, relevant)
		observability.RecordStrategyDepth(ctx, s.metrics, i)
		observability.SetSpanAttributes(span,
			attribute.String("search.strategy", strategy.Name),
			attribute.Int("search.results", len(relevant)),
		)
		return relevant, nil
	}

	return nil, apperrors.NewNoResultsError("no veterinary hospitals found for this area")
}

func (s *SearchService) dispatch(ctx context.Context, origin entities.Coordinates, strategy entities.SearchStrategy) ([]entities.PlaceSummary, error) {
	switch strategy.Mode {
	case entities.StrategyModeQuery:
		return s.places.TextSearch(ctx, providers.TextSearchRequest{
			Query:        strategy.Value,
			Origin:       origin,
			RadiusMeters: strategy.RadiusMeters,
		})
	case entities.StrategyModeKeyword:
		return s.places.NearbySearch(ctx, providers.NearbySearchRequest{
			Origin:       origin,
			RadiusMeters: strategy.RadiusMeters,
			Keyword:      strategy.Value,
		})
	default:
		return s.places.NearbySearch(ctx, providers.NearbySearchRequest{
			Origin:       origin,
			RadiusMeters: strategy.RadiusMeters,
			Type:         strategy.Value,
		})
	}
}

// rank sorts in place: emergency-named facilities first, then nearest
// first. Stable so provider order breaks remaining ties.
func (s *SearchService) rank(origin entities.Coordinates, places []entities.PlaceSummary) {
	type ranked struct {
		emergency bool
		distance  float64
	}
	keys := make(map[string]ranked, len(places))
	for _, p := range places {
		keys[p.ID] = ranked{
			emergency: s.filter.IsEmergency(p),
			distance:  entities.DistanceKm(origin, p.Location),
		}
	}

	sort.SliceStable(places, func(i, j int) bool {
		a, b := keys[places[i].ID], keys[places[j].ID]
		if a.emergency != b.emergency {
			return a.emergency
		}
		return a.distance < b.distance
	})
}
