package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Window computed at 20:00 on a Monday
var testWindow = entities.TimeWindow{StartSec: 20 * 3600, EndSec: 9*3600 + 24*3600, Weekday: 1}

func details(phone string, periods ...entities.OpeningPeriod) *entities.PlaceDetails {
	return &entities.PlaceDetails{
		PhoneNumber: phone,
		Periods:     periods,
		HasHours:    len(periods) > 0,
	}
}

func TestEnrichmentService_OutputOrderMatchesInput(t *testing.T) {
	provider := new(mockPlacesProvider)
	// The first candidate's detail fetch is the slowest; order must not change
	provider.On("GetDetails", mock.Anything, "a").Run(func(args mock.Arguments) {
		time.Sleep(30 * time.Millisecond)
	}).Return(details("03-0000-0001"), nil).Once()
	provider.On("GetDetails", mock.Anything, "b").Return(details("03-0000-0002"), nil).Once()
	provider.On("GetDetails", mock.Anything, "c").Return(details("03-0000-0003"), nil).Once()

	svc := NewEnrichmentService(provider, 3)

	candidates := []entities.PlaceSummary{
		vetPlace("a", "夜間救急どうぶつ病院", 35.6840, 139.7700),
		vetPlace("b", "ひまわり動物病院", 35.6900, 139.7560),
		vetPlace("c", "みなと動物病院", 35.6820, 139.7680),
	}

	records := svc.Assemble(context.Background(), testOrigin, candidates, testWindow)
	require.Len(t, records, 3)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, "c", records[2].ID)
	provider.AssertExpectations(t)
}

func TestEnrichmentService_PlaceholderPhoneOnMissingNumber(t *testing.T) {
	provider := new(mockPlacesProvider)
	provider.On("GetDetails", mock.Anything, "a").Return(details(""), nil).Once()
	provider.On("GetDetails", mock.Anything, "b").Return(nil, errors.New("upstream timeout")).Once()

	svc := NewEnrichmentService(provider, 2)

	candidates := []entities.PlaceSummary{
		vetPlace("a", "ひまわり動物病院", 35.6900, 139.7560),
		vetPlace("b", "みなと動物病院", 35.6820, 139.7680),
	}

	records := svc.Assemble(context.Background(), testOrigin, candidates, testWindow)
	require.Len(t, records, 2)

	assert.Equal(t, "03-123-4567 (サンプル)", records[0].PhoneNumber)
	assert.True(t, records[0].PhoneSample)
	assert.Equal(t, "03-123-4568 (サンプル)", records[1].PhoneNumber)
	assert.True(t, records[1].PhoneSample)
}

func TestEnrichmentService_RealPhoneIsNeverMarkedSample(t *testing.T) {
	provider := new(mockPlacesProvider)
	provider.On("GetDetails", mock.Anything, "a").Return(details("03-1234-5678"), nil).Once()

	svc := NewEnrichmentService(provider, 1)

	records := svc.Assemble(context.Background(), testOrigin, []entities.PlaceSummary{
		vetPlace("a", "ひまわり動物病院", 35.6900, 139.7560),
	}, testWindow)

	require.Len(t, records, 1)
	assert.Equal(t, "03-1234-5678", records[0].PhoneNumber)
	assert.False(t, records[0].PhoneSample)
}

func TestEnrichmentService_DropsHospitalsClosedForTheWindow(t *testing.T) {
	provider := new(mockPlacesProvider)
	// Daytime-only on Mondays: misses a 20:00+ window
	provider.On("GetDetails", mock.Anything, "daytime").Return(
		details("03-1111-2222", entities.OpeningPeriod{OpenDay: 1, OpenTime: "0900", CloseDay: 1, CloseTime: "1800"}),
		nil).Once()
	// Around the clock
	provider.On("GetDetails", mock.Anything, "allnight").Return(
		details("03-3333-4444", entities.OpeningPeriod{OpenDay: 0, OpenTime: "0000", CloseDay: 0, CloseTime: "0000"}),
		nil).Once()
	// No hours listed: shown with the unknown-schedule label
	provider.On("GetDetails", mock.Anything, "unknown").Return(details("03-5555-6666"), nil).Once()

	svc := NewEnrichmentService(provider, 3)

	candidates := []entities.PlaceSummary{
		vetPlace("daytime", "ひまわり動物病院", 35.6900, 139.7560),
		vetPlace("allnight", "夜間救急どうぶつ病院", 35.6840, 139.7700),
		vetPlace("unknown", "みなと獣医科センター", 35.6580, 139.7520),
	}

	records := svc.Assemble(context.Background(), testOrigin, candidates, testWindow)
	require.Len(t, records, 2)
	assert.Equal(t, "allnight", records[0].ID)
	assert.Equal(t, "24時間対応", records[0].Schedule)
	assert.Equal(t, "unknown", records[1].ID)
	assert.Equal(t, scheduleUnknownLabel, records[1].Schedule)
}

func TestEnrichmentService_RecordFields(t *testing.T) {
	provider := new(mockPlacesProvider)
	provider.On("GetDetails", mock.Anything, "a").Return(&entities.PlaceDetails{
		Name:        "夜間救急どうぶつ病院 本院",
		PhoneNumber: "03-1234-5678",
		Website:     "https://example.com",
		Vicinity:    "東京都千代田区丸の内1-1-1",
		HasHours:    false,
	}, nil).Once()

	svc := NewEnrichmentService(provider, 1)

	records := svc.Assemble(context.Background(), testOrigin, []entities.PlaceSummary{
		vetPlace("a", "夜間救急どうぶつ病院", 35.6840, 139.7700),
	}, testWindow)

	require.Len(t, records, 1)
	record := records[0]
	assert.Equal(t, "夜間救急どうぶつ病院 本院", record.Name)
	assert.Equal(t, "東京都千代田区丸の内1-1-1", record.Address)
	assert.Equal(t, "https://example.com", record.Website)
	assert.Greater(t, record.DistanceKm, 0.0)
	assert.NotEmpty(t, record.DistanceLabel)
}

func TestEnrichmentService_PresentInOrder(t *testing.T) {
	presenter := new(mockPresenter)
	var shown []string
	presenter.On("Show", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
		shown = append(shown, args.Get(1).(entities.HospitalRecord).ID)
	}).Return(nil)

	svc := NewEnrichmentService(new(mockPlacesProvider), 1)

	records := []entities.HospitalRecord{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	require.NoError(t, svc.Present(context.Background(), presenter, records))
	assert.Equal(t, []string{"a", "b", "c"}, shown)
}
