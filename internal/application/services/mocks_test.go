package services

import (
	"context"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/stretchr/testify/mock"
)

type mockPlacesProvider struct {
	mock.Mock
}

func (m *mockPlacesProvider) NearbySearch(ctx context.Context, req providers.NearbySearchRequest) ([]entities.PlaceSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PlaceSummary), args.Error(1)
}

func (m *mockPlacesProvider) TextSearch(ctx context.Context, req providers.TextSearchRequest) ([]entities.PlaceSummary, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entities.PlaceSummary), args.Error(1)
}

func (m *mockPlacesProvider) GetDetails(ctx context.Context, placeID string) (*entities.PlaceDetails, error) {
	args := m.Called(ctx, placeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.PlaceDetails), args.Error(1)
}

func (m *mockPlacesProvider) Geocode(ctx context.Context, address string) (*entities.Coordinates, error) {
	args := m.Called(ctx, address)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Coordinates), args.Error(1)
}

type mockPresenter struct {
	mock.Mock
}

func (m *mockPresenter) Reset(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockPresenter) Show(ctx context.Context, record entities.HospitalRecord) error {
	args := m.Called(ctx, record)
	return args.Error(0)
}

type mockFeedbackRepository struct {
	mock.Mock
}

func (m *mockFeedbackRepository) Create(ctx context.Context, feedback *entities.Feedback) error {
	args := m.Called(ctx, feedback)
	return args.Error(0)
}
