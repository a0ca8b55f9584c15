package presenter

import (
	"context"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

// LogPresenter implements the ResultPresenter by writing presentation
// events to the structured log. The browser renders from the JSON
// response; this adapter makes the presentation stream observable
// server-side and keeps the session reset semantics honest.
type LogPresenter struct{}

// NewLogPresenter creates a new log presenter
func NewLogPresenter() providers.ResultPresenter {
	return &LogPresenter{}
}

// Reset marks the start of a fresh presentation
func (p *LogPresenter) Reset(ctx context.Context) error {
	observability.LoggerFromContext(ctx).Debug().Msg("presentation reset")
	return nil
}

// Show emits one record in presentation order
func (p *LogPresenter) Show(ctx context.Context, record entities.HospitalRecord) error {
	observability.LoggerFromContext(ctx).Info().
		Str("hospital", record.Name).
		Str("distance", record.DistanceLabel).
		Str("schedule", record.Schedule).
		Bool("phone_sample", record.PhoneSample).
		Msg("hospital presented")
	return nil
}
