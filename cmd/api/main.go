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

	"github.com/Lohith2005/AICodeAnalyzer/internal/analysis"
	"github.com/Lohith2005/AICodeAnalyzer/internal/api"
	"github.com/Lohith2005/AICodeAnalyzer/internal/config"
	"github.com/Lohith2005/AICodeAnalyzer/internal/llm"
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

	// Pick the store: durable when DATABASE_URL is set, otherwise
	// in-memory for the lifetime of the process.
	var store analysis.Store
	if cfg.DatabaseURL != "" {
		pg, err := analysis.NewPostgresStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pg.Close()
		store = pg
	} else {
		log.Info().Msg("no DATABASE_URL set, using in-memory store")
		store = analysis.NewMemoryStore()
	}

	client, err := llm.NewClientFromConfig(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create llm client")
	}
	if !client.Available() {
		log.Warn().Str("provider", cfg.LLM.Provider).Msg("no provider API key configured, analyze requests will be rejected")
	}

	svc := analysis.NewService(store, client, cfg.AnalyzeCooldown)
	srv := api.NewServer(cfg, svc)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      srv.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 2 * time.Minute, // analyze requests wait on the provider
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

	log.Info().Int("port", cfg.Port).Str("provider", cfg.LLM.Provider).Msg("starting API server")
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("could not listen on port")
	}

	<-done
	log.Info().Msg("server stopped")
}
