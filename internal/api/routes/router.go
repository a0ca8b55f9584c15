package routes

import (
	"net/http"

	"github.com/moritahq/vet-night-map/backend/internal/api/handlers"
	"github.com/moritahq/vet-night-map/backend/internal/api/middleware"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	hospitalHandler *handlers.HospitalHandler
	placesHandler   *handlers.PlacesProxyHandler
	mapsHandler     *handlers.MapsHandler
	feedbackHandler *handlers.FeedbackHandler

	rateLimit      *middleware.RateLimitMiddleware
	allowedOrigins []string
	metrics        *observability.Metrics
}

// NewRouter creates a new router
func NewRouter(
	hospitalHandler *handlers.HospitalHandler,
	placesHandler *handlers.PlacesProxyHandler,
	mapsHandler *handlers.MapsHandler,
	feedbackHandler *handlers.FeedbackHandler,
	rateLimit *middleware.RateLimitMiddleware,
	allowedOrigins []string,
	metrics *observability.Metrics,
) *Router {
	return &Router{
		mux:             http.NewServeMux(),
		hospitalHandler: hospitalHandler,
		placesHandler:   placesHandler,
		mapsHandler:     mapsHandler,
		feedbackHandler: feedbackHandler,
		rateLimit:       rateLimit,
		allowedOrigins:  allowedOrigins,
		metrics:         metrics,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Hospital search
	r.mux.HandleFunc("GET /api/hospitals/search", r.hospitalHandler.SearchHospitals)

	// Places proxy endpoints (key stays server-side)
	if r.placesHandler != nil {
		r.mux.HandleFunc("POST /api/places/nearbysearch", r.placesHandler.NearbySearch)
		r.mux.HandleFunc("POST /api/places/textsearch", r.placesHandler.TextSearch)
		r.mux.HandleFunc("GET /api/places/details/{placeId}", r.placesHandler.GetDetails)
		r.mux.HandleFunc("POST /api/geocode", r.placesHandler.Geocode)
	}

	// Maps script loader
	if r.mapsHandler != nil {
		r.mux.HandleFunc("GET /api/maps/script", r.mapsHandler.GetScript)
	}

	// Feedback endpoints
	if r.feedbackHandler != nil {
		r.mux.HandleFunc("POST /api/feedback", r.feedbackHandler.SubmitFeedback)
	}

	// Apply middleware in reverse order (last middleware wraps first).
	// CORS must be outermost so rejected requests also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.rateLimit != nil {
		handler = r.rateLimit.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.CORSMiddleware(r.allowedOrigins)(handler)

	return handler
}
