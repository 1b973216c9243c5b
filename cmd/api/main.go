package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/storygen-hq/storygen/internal/api"
	"github.com/storygen-hq/storygen/internal/config"
	"github.com/storygen-hq/storygen/internal/generate"
	"github.com/storygen-hq/storygen/internal/llm"
	"github.com/storygen-hq/storygen/internal/prompt"
	"github.com/storygen-hq/storygen/internal/usage"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()

	client := llm.NewOpenAIClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, llm.OpenAIOptions{
		BaseURL:           cfg.OpenAI.BaseURL,
		Timeout:           cfg.OpenAI.RequestTimeout,
		RequestsPerSecond: cfg.OpenAI.RequestsPerSecond,
	})

	prompts, err := prompt.NewManager()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build prompt registry")
	}

	store, readyFn := buildUsageStore(ctx, cfg)
	tracker := usage.NewTracker(store)

	gen := generate.New(client, prompts, tracker, generate.Options{
		MaxTokens:           cfg.OpenAI.MaxTokens,
		Temperature:         cfg.OpenAI.Temperature,
		DailyCostLimitUSD:   cfg.DailyCostLimitUSD,
		MonthlyCostLimitUSD: cfg.MonthlyCostLimitUSD,
	})

	srv := api.NewServer(cfg, gen, readyFn)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 3 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Info().Msg("server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Fatal().Err(err).Msg("could not gracefully shutdown the server")
		}
		close(done)
	}()

	log.Info().Int("port", cfg.Port).Str("model", cfg.OpenAI.Model).Msg("starting API server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("could not listen on port")
	}

	<-done
	log.Info().Msg("server stopped")
}

// buildUsageStore picks the durable usage mirror from configuration:
// Redis when configured, Postgres as the alternative, in-memory only
// otherwise. The returned probe backs the /ready endpoint.
func buildUsageStore(ctx context.Context, cfg *config.Config) (usage.Store, func(context.Context) error) {
	if cfg.RedisURL != "" {
		store, err := usage.NewRedisStore(ctx, cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		return store, store.HealthCheck
	}

	if cfg.DatabaseURL != "" {
		store, err := usage.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		return store, store.HealthCheck
	}

	log.Warn().Msg("no usage store configured, tracking in memory only")
	return nil, nil
}
