package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

type inventoryRepository struct {
	db *sql.DB
}

func NewInventoryRepository(db *sql.DB) repository.InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	query := `INSERT INTO inventory_items (id, name, size, stock, price, image, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	logger.DatabaseCall("create_inventory_item", query, "id", item.ID)
	res, err := r.db.ExecContext(ctx, query, item.ID, item.Name, item.Size, item.Stock, item.Price, item.Image, item.Status, item.CreatedAt)
	if err != nil {
		logger.DatabaseResult("create_inventory_item", 0, err)
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	n, _ := res.RowsAffected()
	logger.DatabaseResult("create_inventory_item", n, nil)
	return nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]domain.InventoryItem, error) {
	query := `SELECT id, name, size, stock, price, image, status, created_at FROM inventory_items ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	defer rows.Close()

	items := []domain.InventoryItem{}
	for rows.Next() {
		var it domain.InventoryItem
		if err := rows.Scan(&it.ID, &it.Name, &it.Size, &it.Stock, &it.Price, &it.Image, &it.Status, &it.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

type bookingRepository struct {
	db *sql.DB
}

func NewBookingRepository(db *sql.DB) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	query := `INSERT INTO bookings (id, customer, email, date, items, amount, status, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	logger.DatabaseCall("create_booking", query, "id", b.ID)
	_, err := r.db.ExecContext(ctx, query, b.ID, b.Customer, b.Email, b.Date, b.Items, b.Amount, b.Status, b.CreatedAt)
	logger.DatabaseResult("create_booking", 1, err)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}
	return nil
}

func (r *bookingRepository) List(ctx context.Context) ([]domain.Booking, error) {
	query := `SELECT id, customer, email, date, items, amount, status, created_at FROM bookings ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}
	defer rows.Close()

	bookings := []domain.Booking{}
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.Customer, &b.Email, &b.Date, &b.Items, &b.Amount, &b.Status, &b.CreatedAt); err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
