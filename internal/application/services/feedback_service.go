package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/repositories"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
)

// FeedbackService handles feedback submissions.
type FeedbackService struct {
	repo repositories.FeedbackRepository
}

// NewFeedbackService creates a new feedback service.
func NewFeedbackService(repo repositories.FeedbackRepository) *FeedbackService {
	return &FeedbackService{repo: repo}
}

// Create validates and stores feedback.
func (s *FeedbackService) Create(ctx context.Context, feedback *entities.Feedback) error {
	if feedback == nil {
		return apperrors.NewValidationError("feedback is required")
	}
	if feedback.Rating < 1 || feedback.Rating > 5 {
		return apperrors.NewValidationError("rating must be between 1 and 5")
	}
	if len(feedback.Message) > 2000 {
		return apperrors.NewValidationError("message is too long")
	}

	if feedback.ID == "" {
		feedback.ID = uuid.New().String()
	}
	if feedback.CreatedAt.IsZero() {
		feedback.CreatedAt = time.Now().UTC()
	}
	return s.repo.Create(ctx, feedback)
}
