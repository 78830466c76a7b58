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

	"github.com/rahulvj/atm-inventory-be/internal/api"
	"github.com/rahulvj/atm-inventory-be/internal/atm"
	"github.com/rahulvj/atm-inventory-be/internal/config"
	"github.com/rahulvj/atm-inventory-be/internal/logger"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// The logo is decorative; a missing file is fine.
	if _, err := os.Stat(cfg.LogoPath); err != nil {
		log.Info().Str("path", cfg.LogoPath).Msg("Logo asset not found, continuing without it")
	}

	// All account state lives in memory and resets on restart.
	store := atm.NewAccountStore()
	sessions := atm.NewSessionManager(store)

	router := api.NewATMRouter(store, sessions, cfg.LogoPath)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ATMPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ATMPort).Msg("ATM server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down ATM server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
