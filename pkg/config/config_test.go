package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_PlacesConfig(t *testing.T) {
	// Setup environment variables
	os.Setenv("PLACES_MODE", "direct")
	os.Setenv("GOOGLE_MAPS_API_KEY", "test-key")
	os.Setenv("PLACES_TIMEOUT_SECONDS", "3")
	defer func() {
		os.Unsetenv("PLACES_MODE")
		os.Unsetenv("GOOGLE_MAPS_API_KEY")
		os.Unsetenv("PLACES_TIMEOUT_SECONDS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "direct", cfg.Places.Mode)
	assert.Equal(t, "test-key", cfg.Places.APIKey)
	assert.Equal(t, 3*time.Second, cfg.Places.Timeout)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("PLACES_MODE")
	os.Unsetenv("GOOGLE_MAPS_API_KEY")
	os.Unsetenv("ALLOWED_ORIGINS")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "mock", cfg.Places.Mode)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 100, cfg.Search.RateLimit)
	assert.Equal(t, 15*time.Minute, cfg.Search.RateWindow)
}

func TestLoad_InvalidPlacesMode(t *testing.T) {
	os.Setenv("PLACES_MODE", "carrier-pigeon")
	defer os.Unsetenv("PLACES_MODE")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ProxyModeRequiresURL(t *testing.T) {
	os.Setenv("PLACES_MODE", "proxy")
	os.Unsetenv("PLACES_PROXY_URL")
	defer os.Unsetenv("PLACES_MODE")

	_, err := Load()
	assert.Error(t, err)
}
