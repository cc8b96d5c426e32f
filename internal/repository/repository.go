package repository

import (
	"context"
	"errors"

	"tent-ledger-backend/internal/domain"
)

// ErrNotFound is returned when a lookup by id finds nothing.
var ErrNotFound = errors.New("not found")

// CustomerRepository stores authoritative ledger records. Put writes the
// record together with its single list-view projection and removes the
// record from the other view.
type CustomerRepository interface {
	Get(ctx context.Context, customerID string) (*domain.CustomerData, error)
	Put(ctx context.Context, record *domain.CustomerData, summary domain.AccountSummary) error
	Query(ctx context.Context, match func(*domain.CustomerData) bool) ([]domain.CustomerData, error)
}

type SummaryRepository interface {
	List(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error)
	// Replace discards both views and stores the given summaries.
	Replace(ctx context.Context, summaries []domain.AccountSummary) error
}

type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	List(ctx context.Context) ([]domain.InventoryItem, error)
}

type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) error
	List(ctx context.Context) ([]domain.Booking, error)
}

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
	List(ctx context.Context) ([]domain.Contact, error)
}

// Store bundles every repository a backend provides.
type Store interface {
	Customers() CustomerRepository
	Summaries() SummaryRepository
	Inventory() InventoryRepository
	Bookings() BookingRepository
	Contacts() ContactRepository
	Close() error
}
