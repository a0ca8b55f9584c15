package providers

import (
	"context"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
)

// ResultPresenter is the presentation collaborator fed by the result
// assembler: a map-and-list renderer, an HTTP response collector, or a
// test double. Records arrive in the orchestrator's sort order.
type ResultPresenter interface {
	// Reset clears artifacts of a previous search (markers, list rows)
	Reset(ctx context.Context) error

	// Show renders one accepted hospital record
	Show(ctx context.Context, record entities.HospitalRecord) error
}
