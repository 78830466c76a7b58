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
	"github.com/rahulvj/atm-inventory-be/internal/config"
	"github.com/rahulvj/atm-inventory-be/internal/database"
	"github.com/rahulvj/atm-inventory-be/internal/logger"
	"github.com/rahulvj/atm-inventory-be/internal/monitoring"
	"github.com/rahulvj/atm-inventory-be/internal/services"
	"github.com/rahulvj/atm-inventory-be/internal/websocket"
)

func main() {
	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}
	if err := database.SeedDefaultUser(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to seed default credential")
	}

	// Set up WebSocket hub for the change feed
	hub := websocket.NewHub()
	go hub.Run()

	// Set up services
	authService := services.NewAuthService(db)
	productService := services.NewProductService(db)
	eventService := services.NewEventService(db)

	// Set up and run the background low-stock monitor
	monitor, err := monitoring.NewStockMonitor(productService, eventService, hub, cfg.LowStockCron)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up stock monitor")
	}
	go monitor.Run()

	router := api.NewInventoryRouter(authService, productService, eventService, hub)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.InventoryPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.InventoryPort).Msg("Inventory server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down inventory server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Drain in-flight handlers first; they may still broadcast on the hub.
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	monitor.Stop()
	hub.Stop()

	log.Info().Msg("Server exiting")
}
