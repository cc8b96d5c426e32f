// Package bootstrap wires configuration into a storage backend and the
// service layer shared by the server and cronjob binaries.
package bootstrap

import (
	"context"
	"fmt"
	"time"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
	"tent-ledger-backend/internal/repository/filestore"
	"tent-ledger-backend/internal/repository/firestore"
	"tent-ledger-backend/internal/repository/postgres"
	"tent-ledger-backend/internal/security"
	"tent-ledger-backend/internal/service"
)

// OpenStore connects the configured storage backend.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database)
		store, err := postgres.Open(ctx, cfg.GetDatabaseConnectionString())
		if err != nil {
			return nil, err
		}
		logger.Info("Database connection established")
		return store, nil
	case config.BackendFirestore:
		logger.Info("Connecting to Firestore...", "project_id", cfg.Firestore.ProjectID, "user_id", cfg.Firestore.UserID)
		return firestore.Open(ctx, cfg.Firestore.ProjectID, cfg.Firestore.CredentialsFile, cfg.Firestore.UserID)
	case config.BackendFile:
		logger.Info("Using file storage", "path", cfg.Storage.FilePath)
		return filestore.Open(cfg.Storage.FilePath)
	default:
		return nil, fmt.Errorf("unknown storage backend: %q", cfg.Storage.Backend)
	}
}

type Services struct {
	Ledger    service.LedgerService
	Inventory service.InventoryService
	Bookings  service.BookingService
	Contacts  service.ContactService
	Invoices  service.InvoiceService
	Auth      service.AuthService
	Tokens    security.TokenManager
}

// NewServices builds every use case on top of store.
func NewServices(cfg *config.Config, store repository.Store) *Services {
	tokens := security.NewTokenManager(cfg.Auth.Secret, time.Duration(cfg.Auth.AccessTokenExpiry)*time.Minute)
	email := service.NewEmailService(cfg.SendGrid.APIKey, cfg.SendGrid.FromEmail, cfg.SendGrid.FromName)

	return &Services{
		Ledger:    service.NewLedgerService(store.Customers(), store.Summaries(), nil),
		Inventory: service.NewInventoryService(store.Inventory()),
		Bookings:  service.NewBookingService(store.Bookings()),
		Contacts:  service.NewContactService(store.Contacts()),
		Invoices:  service.NewInvoiceService(store.Customers(), email, cfg.Business, nil),
		Auth:      service.NewAuthService(cfg.Auth, tokens),
		Tokens:    tokens,
	}
}
