package services

import (
	"context"
	"strings"
	"testing"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestFeedbackService_CreateAssignsIDAndTimestamp(t *testing.T) {
	repo := new(mockFeedbackRepository)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(f *entities.Feedback) bool {
		return f.ID != "" && !f.CreatedAt.IsZero()
	})).Return(nil).Once()

	svc := NewFeedbackService(repo)

	feedback := &entities.Feedback{
		Rating:       4,
		Message:      "営業時間が変わっていました",
		HospitalID:   "mock-evening-clinic",
		HospitalName: "ペットクリニック東京 動物病院",
	}
	require.NoError(t, svc.Create(context.Background(), feedback))
	repo.AssertExpectations(t)
}

func TestFeedbackService_RejectsInvalidRating(t *testing.T) {
	repo := new(mockFeedbackRepository)
	svc := NewFeedbackService(repo)

	for _, rating := range []int{0, -1, 6} {
		err := svc.Create(context.Background(), &entities.Feedback{Rating: rating})
		require.Error(t, err)
		assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestFeedbackService_RejectsOversizedMessage(t *testing.T) {
	svc := NewFeedbackService(new(mockFeedbackRepository))

	err := svc.Create(context.Background(), &entities.Feedback{
		Rating:  3,
		Message: strings.Repeat("あ", 2001),
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
