package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/repository/postgres"
)

func TestInventoryRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewInventoryRepository(db)
	ctx := context.Background()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Create", func(t *testing.T) {
		item := &domain.InventoryItem{ID: "i1", Name: "Pagoda Tent", Size: "20x20", Stock: 4, Price: "₹2500", Status: domain.StockStatusAvailable, CreatedAt: ts}
		mock.ExpectExec("INSERT INTO inventory_items").
			WithArgs("i1", "Pagoda Tent", "20x20", 4, "₹2500", "", domain.StockStatusAvailable, ts).
			WillReturnResult(sqlmock.NewResult(0, 1))

		assert.NoError(t, repo.Create(ctx, item))
	})

	t.Run("List", func(t *testing.T) {
		rows := sqlmock.NewRows([]string{"id", "name", "size", "stock", "price", "image", "status", "created_at"}).
			AddRow("i1", "Pagoda Tent", "20x20", 0, "₹2500", "", "Out of Stock", ts)
		mock.ExpectQuery("SELECT (.+) FROM inventory_items").WillReturnRows(rows)

		items, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, domain.StockStatusOutOfStock, items[0].Status)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBookingRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewBookingRepository(db)
	ctx := context.Background()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	b := &domain.Booking{ID: "b1", Customer: "Kiran", Date: "2024-03-10", Items: "2 tents", Amount: "₹5000", Status: domain.BookingStatusPending, CreatedAt: ts}
	mock.ExpectExec("INSERT INTO bookings").
		WithArgs("b1", "Kiran", "", "2024-03-10", "2 tents", "₹5000", domain.BookingStatusPending, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(ctx, b))

	rows := sqlmock.NewRows([]string{"id", "customer", "email", "date", "items", "amount", "status", "created_at"}).
		AddRow("b1", "Kiran", "", "2024-03-10", "2 tents", "₹5000", "Pending", ts)
	mock.ExpectQuery("SELECT (.+) FROM bookings").WillReturnRows(rows)

	bookings, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Booking{*b}, bookings)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestContactRepository(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("error opening mock database: %v", err)
	}
	defer db.Close()

	repo := postgres.NewContactRepository(db)
	ctx := context.Background()
	ts := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	c := &domain.Contact{ID: "k1", Name: "Asha", Phone: "12345", Location: "Pune", CreatedAt: ts}
	mock.ExpectExec("INSERT INTO contacts").
		WithArgs("k1", "Asha", "", "12345", "Pune", 0, 0.0, ts).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Create(ctx, c))

	rows := sqlmock.NewRows([]string{"id", "name", "email", "phone", "location", "orders", "spent", "created_at"}).
		AddRow("k1", "Asha", "", "12345", "Pune", 0, 0.0, ts)
	mock.ExpectQuery("SELECT (.+) FROM contacts").WillReturnRows(rows)

	contacts, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Contact{*c}, contacts)
	assert.NoError(t, mock.ExpectationsWereMet())
}
