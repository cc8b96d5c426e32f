package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

type inventoryService struct {
	repo repository.InventoryRepository
	now  func() time.Time
}

func NewInventoryService(repo repository.InventoryRepository) InventoryService {
	return &inventoryService{repo: repo, now: time.Now}
}

func (s *inventoryService) AddItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error) {
	created := *item
	created.Name = strings.TrimSpace(created.Name)
	if err := ledger.ValidateStruct(&created); err != nil {
		return nil, err
	}

	created.ID = uuid.NewString()
	created.CreatedAt = s.now().UTC()
	if created.Stock > 0 {
		created.Status = domain.StockStatusAvailable
	} else {
		created.Status = domain.StockStatusOutOfStock
	}

	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	logger.Info("Inventory item added", "id", created.ID, "name", created.Name, "stock", created.Stock)
	return &created, nil
}

func (s *inventoryService) ListItems(ctx context.Context) ([]domain.InventoryItem, error) {
	return s.repo.List(ctx)
}

type bookingService struct {
	repo repository.BookingRepository
	now  func() time.Time
}

func NewBookingService(repo repository.BookingRepository) BookingService {
	return &bookingService{repo: repo, now: time.Now}
}

func (s *bookingService) AddBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	created := *booking
	created.Customer = strings.TrimSpace(created.Customer)
	created.Email = strings.TrimSpace(created.Email)
	if err := ledger.ValidateStruct(&created); err != nil {
		return nil, err
	}

	created.ID = uuid.NewString()
	created.Status = domain.BookingStatusPending
	created.CreatedAt = s.now().UTC()

	if err := s.repo.Create(ctx, &created); err != nil {
		return nil, err
	}
	logger.Info("Booking added", "id", created.ID, "customer", created.Customer, "date", created.Date)
	return &created, nil
}

func (s *bookingService) ListBookings(ctx context.Context) ([]domain.Booking, error) {
	return s.repo.List(ctx)
}
