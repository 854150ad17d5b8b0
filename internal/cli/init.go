// Package cli provides common initialization utilities shared by
// cmd/caseledger and cmd/caseledger-seed.
package cli

import (
	"os"

	"github.com/joho/godotenv"

	"caseledger/internal/config"
	"caseledger/internal/log"
	"caseledger/internal/storage"
)

// SetupLogger initializes structured logging on stderr, keeping stdout free
// for report output. Returns the configured logger and sets it as the
// process default.
func SetupLogger(component string) *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Component = component
	logger := log.New(cfg)
	log.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development.
// Errors are ignored silently as this is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it.
// Returns the config or exits the process on validation failure.
func LoadAndValidateConfig(logger *log.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// StorageOptions builds the storage options for the configured backend.
func StorageOptions(cfg *config.Config) storage.Options {
	return storage.Options{
		Backend:     cfg.StorageBackend,
		PaymentsDSN: cfg.PaymentsDSN(),
		RefundsDSN:  cfg.RefundsDSN(),
	}
}

// OpenStores connects to both source databases.
// Returns the stores or exits the process on failure.
func OpenStores(logger *log.Logger, cfg *config.Config) *storage.Stores {
	stores, err := storage.Open(StorageOptions(cfg))
	if err != nil {
		logger.Error("Failed to open stores", log.FieldError, err, log.FieldBackend, cfg.StorageBackend)
		os.Exit(1)
	}
	return stores
}
