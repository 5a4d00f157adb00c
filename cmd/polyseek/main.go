// PolySeek - prediction market analysis aggregator.
// Turns a Polymarket event URL into a composed report of market data,
// news articles, social discussion, and LLM-generated arguments.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/polyseek/polyseek/internal/aggregator"
	"github.com/polyseek/polyseek/internal/analysis"
	"github.com/polyseek/polyseek/internal/api"
	"github.com/polyseek/polyseek/internal/cache"
	"github.com/polyseek/polyseek/internal/config"
	"github.com/polyseek/polyseek/internal/llm"
	"github.com/polyseek/polyseek/internal/polymarket"
	"github.com/polyseek/polyseek/internal/reddit"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("PolySeek - Starting analysis service")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize Polymarket client
	pmClient := polymarket.NewClient(cfg.PolymarketBaseURL)
	log.Info().Msg("Polymarket client initialized")

	// Initialize Reddit client
	redditClient := reddit.NewClient(reddit.Config{
		ClientID:     cfg.RedditClientID,
		ClientSecret: cfg.RedditClientSecret,
		UserAgent:    cfg.RedditUserAgent,
	})
	log.Info().Msg("Reddit client initialized")

	// Initialize LLM client
	llmClient := llm.NewClient(llm.Config{
		APIKey:  cfg.AIAPIKey,
		BaseURL: cfg.AIBaseURL,
		Model:   cfg.AIModel,
	})
	log.Info().Str("model", cfg.AIModel).Msg("LLM client initialized")

	// Initialize analyzer
	analyzer := analysis.NewAnalyzer(llmClient, analysis.DefaultConfig())

	// Initialize cache; service runs uncached when Redis is unreachable
	var reportCache *cache.Cache
	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		reportCache, err = cache.New(ctx, cache.Config{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		cancel()
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
			reportCache = nil
		} else {
			defer reportCache.Close()
			log.Info().Str("addr", cfg.RedisAddr).Msg("Cache initialized")
		}
	}

	// Initialize aggregator
	aggConfig := aggregator.Config{
		MarketTimeout: cfg.MarketTimeout,
		EnrichTimeout: cfg.EnrichTimeout,
		PostLimit:     cfg.PostLimit,
	}
	agg := aggregator.New(pmClient, redditClient, analyzer, reportCache, aggConfig)
	log.Info().Msg("Aggregator initialized")

	// Initialize API server
	apiServer := api.NewServer(agg, pmClient, redditClient, cfg.HTTPAddr)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("PolySeek service running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	apiServer.Shutdown(shutdownCtx)

	log.Info().Msg("PolySeek service stopped")
}
