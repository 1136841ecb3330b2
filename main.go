package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"gapgram/adscraper/config"
	"gapgram/adscraper/internal/scraper"
	"gapgram/adscraper/internal/server"
	"gapgram/adscraper/logger"
	"gapgram/adscraper/services/publisher"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	godotenv.Load()

	// Initialize logger first
	logger.Init()
	log := logger.Default

	// Load and validate configuration
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	log.Info().
		Str("environment", cfg.Environment).
		Str("listen_addr", cfg.ListenAddr).
		Msg("Starting application")

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Initialize the optional batch publisher
	var pub publisher.Publisher
	if cfg.PublisherEnabled() {
		redisPublisher := publisher.NewRedisPublisher(
			ctx,
			cfg.RedisAddr,
			cfg.RedisDB,
			cfg.RedisStream,
			cfg.RedisStreamCount,
			cfg.RedisStreamMaxLength,
		)
		pub = redisPublisher
		defer redisPublisher.Close()

		logger.Info("Connected to Redis at %s (DB: %d, Stream: %s)",
			cfg.RedisAddr, cfg.RedisDB, cfg.RedisStream)
	}

	// Wire the scraper to the Firecrawl fetcher
	fetcher := scraper.NewFirecrawlClient(cfg.FirecrawlAPIURL, cfg.FirecrawlAPIKey, cfg.FetchTimeout)
	sc := scraper.New(fetcher)

	srv := server.NewServer(cfg.ListenAddr, sc, pub)

	// Start server in a goroutine
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- srv.Start()
	}()

	// Wait for shutdown signal or server error
	select {
	case sig := <-sigChan:
		log.Info().
			Str("signal", sig.String()).
			Msg("Received shutdown signal")
		cancel()
	case err := <-serverDone:
		if err != nil {
			log.Error().Err(err).Msg("Server exited with error")
		} else {
			log.Info().Msg("Server exited normally")
		}
	}

	// Graceful shutdown
	log.Info().Msg("Shutting down gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}

	if pub != nil {
		if err := pub.TrimStreams(); err != nil {
			logger.LogError("publisher", err, "Failed to trim streams")
		}
	}
}
