package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/gatherhq/gatherly/internal/adapters/cache"
	"github.com/gatherhq/gatherly/internal/adapters/database"
	"github.com/gatherhq/gatherly/internal/api/handlers"
	"github.com/gatherhq/gatherly/internal/api/routes"
	"github.com/gatherhq/gatherly/internal/application/services"
	"github.com/gatherhq/gatherly/internal/domain/providers"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/openai"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/postgres"
	"github.com/gatherhq/gatherly/internal/infrastructure/clients/redis"
	"github.com/gatherhq/gatherly/internal/infrastructure/observability"
	"github.com/gatherhq/gatherly/pkg/config"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

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
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	// Initialize database client
	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()
	log.Info().Msg("PostgreSQL client initialized")

	// Initialize Redis client. The application works without caching.
	var cacheProvider providers.CacheProvider
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize Redis client, continuing without cache")
	} else {
		defer redisClient.Close()
		cacheProvider = cache.NewRedisAdapter(redisClient)
		log.Info().Msg("Redis client initialized")
	}

	// Initialize the language model client. Without it, search still works
	// but intent parsing reports unavailable.
	var llmProvider providers.LanguageModelProvider
	openaiClient, err := openai.NewClient(&cfg.OpenAI)
	if err != nil {
		log.Warn().Err(err).Msg("Failed to initialize OpenAI client, intent parsing disabled")
	} else {
		llmProvider = openaiClient
		log.Info().Msg("OpenAI client initialized")
	}

	// Initialize adapters
	eventAdapter := database.NewEventAdapter(pgClient)
	userAdapter := database.NewUserAdapter(pgClient)
	communityAdapter := database.NewCommunityAdapter(pgClient)
	categoryAdapter := database.NewCategoryAdapter(pgClient)
	locationAdapter := database.NewLocationAdapter(pgClient)
	userContextAdapter := database.NewUserContextAdapter(pgClient)

	// Initialize services
	intentService := services.NewIntentService(llmProvider)
	if cacheProvider != nil {
		intentService.SetCache(cacheProvider)
	}

	resolverService := services.NewResolverService(categoryAdapter, locationAdapter)
	eventSearchService := services.NewEventSearchService(eventAdapter, resolverService)
	userSearchService := services.NewUserSearchService(userAdapter, resolverService)
	communitySearchService := services.NewCommunitySearchService(communityAdapter, resolverService)

	stirService := services.NewStirService(
		intentService,
		eventSearchService,
		userSearchService,
		communitySearchService,
		userContextAdapter,
	)

	// Initialize handlers
	searchHandler := handlers.NewSearchHandler(stirService)
	eventHandler := handlers.NewEventHandler(eventAdapter)
	communityHandler := handlers.NewCommunityHandler(communityAdapter)

	// Set up routes
	router := routes.NewRouter(searchHandler, eventHandler, communityHandler, metrics)
	handler := router.SetupRoutes()

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("Starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}
