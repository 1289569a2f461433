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

	"github.com/yeonwoo-dev/bodycheck-backend/internal/adapters/cache"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/adapters/database"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/adapters/events"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/api/handlers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/api/routes"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/application/services"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/providers"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/domain/repositories"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/classifier"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/ollama"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/postgres"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/clients/redis"
	"github.com/yeonwoo-dev/bodycheck-backend/internal/infrastructure/observability"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/config"
	"github.com/yeonwoo-dev/bodycheck-backend/pkg/utils"
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
	var shutdown func(context.Context) error
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err = observability.Setup(
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

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize PostgreSQL client: %v", err)
	}
	defer pgClient.Close()
	log.Println("PostgreSQL client initialized successfully")

	// Initialize Redis client
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Printf("Warning: Failed to initialize Redis client: %v", err)
		// Continue without Redis - the application can work without caching
	} else {
		defer redisClient.Close()
		log.Println("Redis client initialized successfully")
	}

	var cacheProvider providers.CacheProvider
	if redisClient != nil {
		cacheProvider = cache.NewRedisAdapter(redisClient)
	}

	// Initialize event bus for prediction lifecycle events
	var eventBus providers.EventBus
	if redisClient != nil {
		eventBus = events.NewRedisEventBus(redisClient)
		log.Println("Event bus initialized successfully")
	} else {
		log.Println("Event bus disabled (Redis not available)")
	}

	// Initialize adapters
	recordAdapter := database.NewSymptomRecordAdapter(pgClient)

	basePredictionAdapter := database.NewPredictionAdapter(pgClient)
	var predictionAdapter repositories.PredictionRepository
	if cacheProvider != nil {
		predictionAdapter = database.NewCachedPredictionAdapter(basePredictionAdapter, cacheProvider, metrics)
		log.Println("Prediction adapter wrapped with caching layer")
	} else {
		predictionAdapter = basePredictionAdapter
		log.Println("Prediction adapter running without cache (Redis unavailable)")
	}

	// Initialize model clients
	completionClient, err := ollama.NewClient(&cfg.Completion)
	if err != nil {
		log.Fatalf("Failed to initialize completion client: %v", err)
	}

	classifierClient, err := classifier.NewHTTPClient(&cfg.Classifier)
	if err != nil {
		log.Fatalf("Failed to initialize classifier client: %v", err)
	}

	// Initialize services
	extractionService := services.NewExtractionService(
		completionClient,
		time.Duration(cfg.Completion.TimeoutSeconds)*time.Second,
	)
	riskService := services.NewRiskService(cfg.Scoring)
	diagnosisService := services.NewDiagnosisService(
		extractionService,
		utils.NewSymptomNormalizer(),
		classifierClient,
		riskService,
		recordAdapter,
		predictionAdapter,
		eventBus,
	)

	// Initialize handlers
	diagnosisHandler := handlers.NewDiagnosisHandler(diagnosisService)
	predictionHandler := handlers.NewPredictionHandler(predictionAdapter, diagnosisService)
	recordHandler := handlers.NewRecordHandler(recordAdapter)

	// Set up router
	router := routes.NewRouter(
		diagnosisHandler,
		predictionHandler,
		recordHandler,
		metrics,
	)

	handler := router.SetupRoutes()

	// Create HTTP server
	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
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

	// Close event bus
	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Printf("Error closing event bus: %v", err)
		}
	}

	log.Println("Server stopped")
}
