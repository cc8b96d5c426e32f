package postgres

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

// Schema creates the tables used by the postgres store. Each record has at
// most one row in account_summaries; its view column says which list it
// is shown in.
const Schema = `
CREATE TABLE IF NOT EXISTS customers (
	customer_id    TEXT PRIMARY KEY,
	customer_name  TEXT NOT NULL,
	address        TEXT NOT NULL DEFAULT '',
	phone          TEXT NOT NULL DEFAULT '',
	email          TEXT NOT NULL DEFAULT '',
	payment_status TEXT NOT NULL,
	ledger_rows    JSONB NOT NULL DEFAULT '[]',
	grand_total    DOUBLE PRECISION NOT NULL DEFAULT 0,
	status         TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL,
	updated_at     TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS account_summaries (
	customer_id    TEXT PRIMARY KEY REFERENCES customers (customer_id),
	view           TEXT NOT NULL,
	customer_name  TEXT NOT NULL,
	start_date     TEXT NOT NULL DEFAULT '',
	end_date       TEXT NOT NULL DEFAULT '',
	grand_total    DOUBLE PRECISION NOT NULL DEFAULT 0,
	status         TEXT NOT NULL,
	payment_status TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS account_summaries_view_idx ON account_summaries (view);
CREATE TABLE IF NOT EXISTS inventory_items (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	size       TEXT NOT NULL DEFAULT '',
	stock      INTEGER NOT NULL DEFAULT 0,
	price      TEXT NOT NULL DEFAULT '',
	image      TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS bookings (
	id         TEXT PRIMARY KEY,
	customer   TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	date       TEXT NOT NULL DEFAULT '',
	items      TEXT NOT NULL DEFAULT '',
	amount     TEXT NOT NULL DEFAULT '',
	status     TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS contacts (
	id         TEXT PRIMARY KEY,
	name       TEXT NOT NULL,
	email      TEXT NOT NULL DEFAULT '',
	phone      TEXT NOT NULL DEFAULT '',
	location   TEXT NOT NULL DEFAULT '',
	orders     INTEGER NOT NULL DEFAULT 0,
	spent      DOUBLE PRECISION NOT NULL DEFAULT 0,
	created_at TIMESTAMPTZ NOT NULL
);`

type Store struct {
	db        *sql.DB
	customers repository.CustomerRepository
	summaries repository.SummaryRepository
	inventory repository.InventoryRepository
	bookings  repository.BookingRepository
	contacts  repository.ContactRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:        db,
		customers: NewCustomerRepository(db),
		summaries: NewSummaryRepository(db),
		inventory: NewInventoryRepository(db),
		bookings:  NewBookingRepository(db),
		contacts:  NewContactRepository(db),
	}
}

// Open connects to PostgreSQL and makes sure the schema exists.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	store := NewStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) EnsureSchema(ctx context.Context) error {
	logger.DatabaseCall("ensure_schema", "CREATE TABLE IF NOT EXISTS ...")
	_, err := s.db.ExecContext(ctx, Schema)
	logger.DatabaseResult("ensure_schema", 0, err)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

func (s *Store) Customers() repository.CustomerRepository  { return s.customers }
func (s *Store) Summaries() repository.SummaryRepository   { return s.summaries }
func (s *Store) Inventory() repository.InventoryRepository { return s.inventory }
func (s *Store) Bookings() repository.BookingRepository    { return s.bookings }
func (s *Store) Contacts() repository.ContactRepository    { return s.contacts }

func (s *Store) Close() error {
	return s.db.Close()
}
