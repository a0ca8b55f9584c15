package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

const scheduleUnknownLabel = "営業時間情報なし（お電話でご確認ください）"

// EnrichmentService turns ranked search candidates into display-ready
// hospital records: per-place detail fetch, care-window filtering and
// presentation-order assembly.
type EnrichmentService struct {
	places      providers.PlacesProvider
	concurrency int
}

// NewEnrichmentService creates a new enrichment service
func NewEnrichmentService(places providers.PlacesProvider, concurrency int) *EnrichmentService {
	if concurrency < 1 {
		concurrency = 1
	}
	return &EnrichmentService{
		places:      places,
		concurrency: concurrency,
	}
}

// Assemble enriches candidates concurrently, drops the ones closed for
// the whole care window, and returns records in candidate order. The
// output order always matches the input ranking regardless of which
// detail fetch finishes first. Detail failures degrade to a record with
// a marked placeholder phone number, never a fabricated one.
func (s *EnrichmentService) Assemble(ctx context.Context, origin entities.Coordinates, candidates []entities.PlaceSummary, window entities.TimeWindow) []entities.HospitalRecord {
	ctx, span := observability.StartSpan(ctx, "EnrichmentService.Assemble")
	defer span.End()

	logger := observability.LoggerFromContext(ctx)

	hospitals := make([]entities.Hospital, len(candidates))
	sem := make(chan struct{}, s.concurrency)
	var wg sync.WaitGroup

	for i, candidate := range candidates {
		wg.Add(1)
		go func(i int, candidate entities.PlaceSummary) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			hospitals[i] = s.enrich(ctx, i, candidate)
		}(i, candidate)
	}
	wg.Wait()

	records := make([]entities.HospitalRecord, 0, len(hospitals))
	for _, h := range hospitals {
		if h.HasHours && !entities.IsOpenDuringWindow(h.Periods, window) {
			logger.Debug().Str("hospital", h.Name).Msg("closed for the care window, dropped")
			continue
		}
		records = append(records, buildRecord(origin, h))
	}
	return records
}

// Present replays assembled records to the presenter in order
func (s *EnrichmentService) Present(ctx context.Context, presenter providers.ResultPresenter, records []entities.HospitalRecord) error {
	if presenter == nil {
		return nil
	}
	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := presenter.Show(ctx, record); err != nil {
			return err
		}
	}
	return nil
}

func (s *EnrichmentService) enrich(ctx context.Context, index int, candidate entities.PlaceSummary) entities.Hospital {
	hospital := entities.Hospital{PlaceSummary: candidate}

	details, err := s.places.GetDetails(ctx, candidate.ID)
	if err != nil {
		observability.LoggerFromContext(ctx).Warn().
			Err(err).
			Str("place_id", candidate.ID).
			Msg("detail fetch failed, using placeholder contact")
	} else {
		if details.Name != "" {
			hospital.Name = details.Name
		}
		if details.Vicinity != "" {
			hospital.Vicinity = details.Vicinity
		}
		hospital.PhoneNumber = details.PhoneNumber
		hospital.Rating = details.Rating
		hospital.Website = details.Website
		hospital.Periods = details.Periods
		hospital.HasHours = details.HasHours
	}

	if hospital.PhoneNumber == "" {
		hospital.PhoneNumber = placeholderPhone(index)
		hospital.PhoneSample = true
	}
	return hospital
}

// placeholderPhone builds an obviously fake but dialable-looking number
// so a missing phone is visible instead of blank.
func placeholderPhone(index int) string {
	return fmt.Sprintf("03-123-456%d (サンプル)", index+7)
}

func buildRecord(origin entities.Coordinates, h entities.Hospital) entities.HospitalRecord {
	distance := entities.DistanceKm(origin, h.Location)

	schedule := scheduleUnknownLabel
	if h.HasHours {
		schedule = entities.FormatSchedule(h.Periods)
	}

	return entities.HospitalRecord{
		ID:            h.ID,
		Name:          h.Name,
		DistanceKm:    distance,
		DistanceLabel: entities.DistanceLabel(distance),
		Address:       h.Vicinity,
		Schedule:      schedule,
		PhoneNumber:   h.PhoneNumber,
		PhoneSample:   h.PhoneSample,
		Website:       h.Website,
		Location:      h.Location,
	}
}
