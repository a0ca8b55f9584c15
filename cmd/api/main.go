package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/moritahq/vet-night-map/backend/internal/adapters/cache"
	"github.com/moritahq/vet-night-map/backend/internal/adapters/database"
	"github.com/moritahq/vet-night-map/backend/internal/adapters/presenter"
	"github.com/moritahq/vet-night-map/backend/internal/adapters/providers/places"
	"github.com/moritahq/vet-night-map/backend/internal/api/handlers"
	"github.com/moritahq/vet-night-map/backend/internal/api/middleware"
	"github.com/moritahq/vet-night-map/backend/internal/api/routes"
	"github.com/moritahq/vet-night-map/backend/internal/application/services"
	"github.com/moritahq/vet-night-map/backend/internal/domain/providers"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/clients/postgres"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/clients/redis"
	"github.com/moritahq/vet-night-map/backend/internal/infrastructure/observability"
	"github.com/moritahq/vet-night-map/backend/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, os.Getenv("APP_ENV"))

	// Set up context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(
			ctx,
			cfg.OTEL.ServiceName,
			cfg.OTEL.ServiceVersion,
			cfg.OTEL.Endpoint,
		)
		if err != nil {
			log.Printf("Warning: Failed to set up OpenTelemetry: %v", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Printf("Error shutting down OpenTelemetry: %v", err)
				}
			}()
			log.Println("OpenTelemetry initialized successfully")
		}
	}

	// Initialize metrics
	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatalf("Failed to initialize metrics: %v", err)
	}

	// Initialize Redis client. The service works without it: rate
	// limiting degrades to in-process state and caching is skipped.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Println("Redis client initialized successfully")
	}

	// Initialize the database client. Without Postgres only feedback
	// persistence is lost; search keeps working.
	var feedbackHandler *handlers.FeedbackHandler
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Printf("Warning: Failed to initialize PostgreSQL client: %v", err)
		log.Println("Feedback persistence disabled")
	} else {
		defer pgClient.Close()
		feedbackAdapter := database.NewFeedbackAdapter(pgClient)
		feedbackService := services.NewFeedbackService(feedbackAdapter)
		feedbackHandler = handlers.NewFeedbackHandler(feedbackService, cacheProvider)
		log.Println("PostgreSQL client initialized successfully")
	}

	// Select the places provider
	var placesProvider providers.PlacesProvider
	placesHTTPClient := &http.Client{Timeout: cfg.Places.Timeout}
	switch cfg.Places.Mode {
	case "direct":
		if cfg.Places.APIKey == "" {
			log.Println("Warning: GOOGLE_MAPS_API_KEY is not set; using mock places provider")
			placesProvider = places.NewMockProvider()
		} else {
			placesProvider = places.NewGoogleProviderWithOptions(cfg.Places.APIKey, cacheProvider, "", placesHTTPClient)
			log.Println("Places provider: google (direct)")
		}
	case "proxy":
		placesProvider = places.NewProxyProvider(cfg.Places.ProxyURL, placesHTTPClient)
		log.Printf("Places provider: proxy (%s)", cfg.Places.ProxyURL)
	default:
		placesProvider = places.NewMockProvider()
		log.Println("Places provider: mock")
	}

	// Initialize services
	resultPresenter := presenter.NewLogPresenter()
	searchService := services.NewSearchService(placesProvider, services.NewRelevanceFilter(), metrics)
	enrichmentService := services.NewEnrichmentService(placesProvider, cfg.Search.EnrichmentConcurrency)
	sessionService := services.NewSessionService(resultPresenter)

	// Initialize handlers
	hospitalHandler := handlers.NewHospitalHandler(
		searchService,
		enrichmentService,
		sessionService,
		placesProvider,
		resultPresenter,
	)

	var placesProxyHandler *handlers.PlacesProxyHandler
	var mapsHandler *handlers.MapsHandler
	if cfg.Places.APIKey != "" {
		placesProxyHandler = handlers.NewPlacesProxyHandler(cfg.Places.APIKey)
		mapsHandler = handlers.NewMapsHandler(cfg.Places.APIKey, cacheProvider, metrics)
	} else {
		log.Println("Warning: places proxy and maps script endpoints disabled (no API key)")
	}

	rateLimit := middleware.NewRateLimitMiddleware(cacheProvider, cfg.Search.RateLimit, cfg.Search.RateWindow)

	// Set up router
	router := routes.NewRouter(
		hospitalHandler,
		placesProxyHandler,
		mapsHandler,
		feedbackHandler,
		rateLimit,
		cfg.Server.AllowedOrigins,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", serverAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	// Graceful shutdown with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}

	log.Println("Server stopped")
}
