package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application configuration shared by both binaries.
type Config struct {
	ATMPort       int
	InventoryPort int
	DatabasePath  string
	LogoPath      string // Optional decorative asset for the ATM app
	LowStockCron  string // Standard cron expression for the stock monitor
}

// Load loads configuration from environment variables or sets defaults.
// A .env file in the working directory is read first if present.
func Load() (*Config, error) {
	// Missing .env is not an error; env vars and defaults still apply.
	_ = godotenv.Load()

	atmPort, err := strconv.Atoi(getEnv("ATM_PORT", "8080"))
	if err != nil {
		return nil, err
	}
	invPort, err := strconv.Atoi(getEnv("INVENTORY_PORT", "8081"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ATMPort:       atmPort,
		InventoryPort: invPort,
		DatabasePath:  getEnv("DATABASE_PATH", "./inventory.db"),
		LogoPath:      getEnv("LOGO_PATH", "./atm.jpg"),
		LowStockCron:  getEnv("LOW_STOCK_CRON", "*/5 * * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
