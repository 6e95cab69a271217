package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/api"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/app"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/config"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/logger"
	"github.com/ndewijer/Advisory-Backoffice-Backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logg := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	log.Logger = logg

	ctx := context.Background()

	// Open database, migrate and wire services
	a, err := app.Open(ctx, cfg, logg)
	if err != nil {
		logg.Fatal().Err(err).Str("path", cfg.Database.Path).Msg("failed to open database")
	}
	defer a.Close()

	logg.Info().Str("path", cfg.Database.Path).Str("version", version.Version).Msg("connected to database")

	sched, err := a.Scheduler()
	if err != nil {
		logg.Fatal().Err(err).Msg("failed to set up scheduler")
	}
	if sched != nil {
		sched.Start()
		defer sched.Stop()
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(a.Services, cfg, logg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logg.Info().Str("addr", cfg.Server.Addr).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logg.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error().Err(err).Msg("server forced to shutdown")
	}

	logg.Info().Msg("server exited")
}
