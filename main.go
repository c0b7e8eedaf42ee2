package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/apilab/users-api/internal/api"
	"github.com/apilab/users-api/internal/auth"
	"github.com/apilab/users-api/internal/config"
	"github.com/apilab/users-api/internal/database"
	"github.com/apilab/users-api/internal/logger"
	"github.com/apilab/users-api/internal/store"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Environment)

	// Set up the user store
	var users store.Store
	switch cfg.StoreBackend {
	case "sqlite":
		db, err := database.New(cfg.DatabasePath)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize database")
		}
		defer db.Close()

		if err := database.Migrate(db); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply database migrations")
		}

		users, err = store.NewSQLiteStore(db)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize SQLite store")
		}
	case "memory":
		users = store.NewMemoryStore()
	default:
		log.Fatal().Str("backend", cfg.StoreBackend).Msg("Unknown store backend")
	}

	// Set up the token service and router
	tokens := auth.NewService(cfg.JWTSecret, cfg.TokenTTL)
	router := api.NewRouter(users, tokens, cfg.AllowedOrigins)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Str("backend", cfg.StoreBackend).
			Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
