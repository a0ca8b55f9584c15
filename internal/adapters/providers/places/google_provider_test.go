package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/moritahq/vet-night-map/backend/internal/domain/entities"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	apperrors "github.com/moritahq/vet-night-map/backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.entries[key]; ok {
		return v, nil
	}
	return nil, assert.AnError
}

func (c *memoryCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *memoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func TestGoogleProvider_NearbySearch(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/nearbysearch/json", r.URL.Path)
		assert.Equal(t, "夜間動物病院", r.URL.Query().Get("keyword"))
		assert.Equal(t, "20000", r.URL.Query().Get("radius"))
		assert.Equal(t, "ja", r.URL.Query().Get("language"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"place_id": "p1",
				"name": "夜間救急どうぶつ病院",
				"types": ["veterinary_care"],
				"vicinity": "東京都千代田区丸の内1-1-1",
				"geometry": {"location": {"lat": 35.684, "lng": 139.77}}
			}]
		}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	results, err := provider.NearbySearch(context.Background(), providers.NearbySearchRequest{
		Origin:       entities.Coordinates{Latitude: 35.6812, Longitude: 139.7671},
		RadiusMeters: 20000,
		Keyword:      "夜間動物病院",
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "p1", results[0].ID)
	assert.Equal(t, "夜間救急どうぶつ病院", results[0].Name)
	assert.Equal(t, "東京都千代田区丸の内1-1-1", results[0].Vicinity)
	assert.InDelta(t, 35.684, results[0].Location.Latitude, 1e-9)
}

func TestGoogleProvider_TextSearchUsesFormattedAddress(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/textsearch/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{
				"place_id": "p2",
				"name": "ひまわり動物病院",
				"formatted_address": "東京都中央区八重洲2-2-2",
				"geometry": {"location": {"lat": 35.677, "lng": 139.763}}
			}]
		}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	results, err := provider.TextSearch(context.Background(), providers.TextSearchRequest{
		Query:        "夜間救急動物病院 24時間",
		Origin:       entities.Coordinates{Latitude: 35.6812, Longitude: 139.7671},
		RadiusMeters: 15000,
	})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "東京都中央区八重洲2-2-2", results[0].Vicinity)
}

func TestGoogleProvider_SearchErrorStatus(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "key is invalid"}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	_, err := provider.NearbySearch(context.Background(), providers.NearbySearchRequest{
		Origin:       entities.Coordinates{Latitude: 35.6812, Longitude: 139.7671},
		RadiusMeters: 10000,
		Type:         "veterinary_care",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))
}

func TestGoogleProvider_GetDetailsMapsPeriods(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/place/details/json", r.URL.Path)
		assert.Equal(t, "p1", r.URL.Query().Get("place_id"))
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"result": {
				"name": "夜間救急どうぶつ病院",
				"formatted_phone_number": "03-1234-5678",
				"rating": 4.2,
				"opening_hours": {
					"periods": [
						{"open": {"day": 1, "time": "2100"}, "close": {"day": 2, "time": "0600"}},
						{"open": {"day": 0, "time": "0000"}}
					]
				}
			}
		}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	details, err := provider.GetDetails(context.Background(), "p1")
	require.NoError(t, err)
	assert.True(t, details.HasHours)
	require.Len(t, details.Periods, 2)
	assert.Equal(t, entities.OpeningPeriod{OpenDay: 1, OpenTime: "2100", CloseDay: 2, CloseTime: "0600"}, details.Periods[0])
	// A close-less period marks round-the-clock operation
	assert.Equal(t, details.Periods[1].OpenTime, details.Periods[1].CloseTime)
	assert.Equal(t, details.Periods[1].OpenDay, details.Periods[1].CloseDay)
}

func TestGoogleProvider_GetDetailsNotFound(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "NOT_FOUND"}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	_, err := provider.GetDetails(context.Background(), "missing")
	assert.ErrorIs(t, err, providers.ErrNotFound)
}

func TestGoogleProvider_GeocodeCachesResults(t *testing.T) {
	var calls int
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/geocode/json", r.URL.Path)
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [{"geometry": {"location": {"lat": 35.6812, "lng": 139.7671}}}]
		}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", newMemoryCache(), upstream.URL, upstream.Client())

	for i := 0; i < 3; i++ {
		coords, err := provider.Geocode(context.Background(), "東京駅")
		require.NoError(t, err)
		assert.InDelta(t, 35.6812, coords.Latitude, 1e-9)
	}
	assert.Equal(t, 1, calls)
}

func TestGoogleProvider_GeocodeZeroResults(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "ZERO_RESULTS", "results": []}`))
	}))
	defer upstream.Close()

	provider := NewGoogleProviderWithOptions("test-key", nil, upstream.URL, upstream.Client())

	_, err := provider.Geocode(context.Background(), "存在しない住所")
	assert.ErrorIs(t, err, providers.ErrNotFound)
}
