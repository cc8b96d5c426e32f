// Package filestore keeps every collection in a single JSON document on
// disk. It suits demos and single-operator installs.
package filestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

// document is the on-disk layout. Customer records stay raw so one bad
// entry cannot make the whole file unreadable.
type document struct {
	Customers map[string]json.RawMessage       `json:"customers"`
	Running   map[string]domain.AccountSummary `json:"running"`
	History   map[string]domain.AccountSummary `json:"history"`
	Inventory []domain.InventoryItem           `json:"inventory"`
	Bookings  []domain.Booking                 `json:"bookings"`
	Contacts  []domain.Contact                 `json:"contacts"`
}

type Store struct {
	path string
	mu   sync.Mutex
}

// Open returns a store backed by path. The file is created on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("file store path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Customers() repository.CustomerRepository  { return customerRepository{s} }
func (s *Store) Summaries() repository.SummaryRepository   { return summaryRepository{s} }
func (s *Store) Inventory() repository.InventoryRepository { return inventoryRepository{s} }
func (s *Store) Bookings() repository.BookingRepository    { return bookingRepository{s} }
func (s *Store) Contacts() repository.ContactRepository    { return contactRepository{s} }

func (s *Store) Close() error { return nil }

// view runs fn against the current document without writing it back.
func (s *Store) view(ctx context.Context, fn func(*document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// update runs fn and persists the document if fn succeeds.
func (s *Store) update(ctx context.Context, fn func(*document) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) load() (*document, error) {
	doc := &document{}
	data, err := os.ReadFile(s.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	case len(data) > 0:
		if err := json.Unmarshal(data, doc); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", s.path, err)
		}
	}

	if doc.Customers == nil {
		doc.Customers = map[string]json.RawMessage{}
	}
	if doc.Running == nil {
		doc.Running = map[string]domain.AccountSummary{}
	}
	if doc.History == nil {
		doc.History = map[string]domain.AccountSummary{}
	}
	return doc, nil
}

func (s *Store) save(doc *document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode database: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".ledger-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

type customerRepository struct{ s *Store }

func (r customerRepository) Get(ctx context.Context, customerID string) (*domain.CustomerData, error) {
	var record *domain.CustomerData
	err := r.s.view(ctx, func(doc *document) error {
		raw, ok := doc.Customers[customerID]
		if !ok {
			return fmt.Errorf("customer %s: %w", customerID, repository.ErrNotFound)
		}
		var c domain.CustomerData
		if err := json.Unmarshal(raw, &c); err != nil {
			return fmt.Errorf("failed to decode customer %s: %w", customerID, err)
		}
		record = &c
		return nil
	})
	return record, err
}

func (r customerRepository) Put(ctx context.Context, record *domain.CustomerData, summary domain.AccountSummary) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode customer %s: %w", record.CustomerID, err)
	}
	return r.s.update(ctx, func(doc *document) error {
		doc.Customers[record.CustomerID] = raw
		delete(doc.Running, summary.ID)
		delete(doc.History, summary.ID)
		if summary.View == domain.SummaryViewRunning {
			doc.Running[summary.ID] = summary
		} else {
			doc.History[summary.ID] = summary
		}
		return nil
	})
}

func (r customerRepository) Query(ctx context.Context, match func(*domain.CustomerData) bool) ([]domain.CustomerData, error) {
	records := []domain.CustomerData{}
	err := r.s.view(ctx, func(doc *document) error {
		for id, raw := range doc.Customers {
			var c domain.CustomerData
			if err := json.Unmarshal(raw, &c); err != nil {
				logger.Warn("Skipping unreadable customer record", "customer_id", id, "error", err)
				continue
			}
			if match == nil || match(&c) {
				records = append(records, c)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt.After(records[j].UpdatedAt)
	})
	return records, nil
}

type summaryRepository struct{ s *Store }

func (r summaryRepository) List(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error) {
	summaries := []domain.AccountSummary{}
	err := r.s.view(ctx, func(doc *document) error {
		set := doc.History
		if view == domain.SummaryViewRunning {
			set = doc.Running
		}
		for id, s := range set {
			s.ID = id
			s.View = view
			summaries = append(summaries, s)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(summaries, func(i, j int) bool {
		if summaries[i].StartDate != summaries[j].StartDate {
			return summaries[i].StartDate > summaries[j].StartDate
		}
		return summaries[i].ID < summaries[j].ID
	})
	return summaries, nil
}

func (r summaryRepository) Replace(ctx context.Context, summaries []domain.AccountSummary) error {
	return r.s.update(ctx, func(doc *document) error {
		doc.Running = map[string]domain.AccountSummary{}
		doc.History = map[string]domain.AccountSummary{}
		for _, s := range summaries {
			if s.View == domain.SummaryViewRunning {
				doc.Running[s.ID] = s
			} else {
				doc.History[s.ID] = s
			}
		}
		return nil
	})
}

type inventoryRepository struct{ s *Store }

func (r inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	return r.s.update(ctx, func(doc *document) error {
		doc.Inventory = append(doc.Inventory, *item)
		return nil
	})
}

func (r inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.s.view(ctx, func(doc *document) error {
		items = append([]domain.InventoryItem{}, doc.Inventory...)
		return nil
	})
	return items, err
}

type bookingRepository struct{ s *Store }

func (r bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	return r.s.update(ctx, func(doc *document) error {
		doc.Bookings = append(doc.Bookings, *b)
		return nil
	})
}

func (r bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	var bookings []domain.Booking
	err := r.s.view(ctx, func(doc *document) error {
		bookings = append([]domain.Booking{}, doc.Bookings...)
		return nil
	})
	return bookings, err
}

type contactRepository struct{ s *Store }

func (r contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	return r.s.update(ctx, func(doc *document) error {
		doc.Contacts = append(doc.Contacts, *c)
		return nil
	})
}

func (r contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.s.view(ctx, func(doc *document) error {
		contacts = append([]domain.Contact{}, doc.Contacts...)
		return nil
	})
	return contacts, err
}
