package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

type customerRepository struct {
	db *sql.DB
}

func NewCustomerRepository(db *sql.DB) repository.CustomerRepository {
	return &customerRepository{db: db}
}

const customerColumns = `customer_id, customer_name, address, phone, email, payment_status, ledger_rows, grand_total, status, created_at, updated_at`

func (r *customerRepository) Get(ctx context.Context, customerID string) (*domain.CustomerData, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE customer_id = $1`
	logger.DatabaseCall("get_customer", query, "customer_id", customerID)

	record, err := scanCustomer(r.db.QueryRowContext(ctx, query, customerID))
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("get_customer", 0, nil)
		return nil, fmt.Errorf("customer %s: %w", customerID, repository.ErrNotFound)
	}
	logger.DatabaseResult("get_customer", 1, err)
	if err != nil {
		return nil, fmt.Errorf("failed to load customer %s: %w", customerID, err)
	}
	return record, nil
}

func (r *customerRepository) Put(ctx context.Context, record *domain.CustomerData, summary domain.AccountSummary) error {
	rows, err := json.Marshal(record.LedgerRows)
	if err != nil {
		return fmt.Errorf("failed to encode ledger rows: %w", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	upsertCustomer := `INSERT INTO customers (` + customerColumns + `)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (customer_id) DO UPDATE SET
	          customer_name = EXCLUDED.customer_name, address = EXCLUDED.address, phone = EXCLUDED.phone,
	          email = EXCLUDED.email, payment_status = EXCLUDED.payment_status, ledger_rows = EXCLUDED.ledger_rows,
	          grand_total = EXCLUDED.grand_total, status = EXCLUDED.status, updated_at = EXCLUDED.updated_at`
	logger.DatabaseCall("put_customer", upsertCustomer, "customer_id", record.CustomerID)
	_, err = tx.ExecContext(ctx, upsertCustomer,
		record.CustomerID, record.CustomerName, record.Address, record.Phone, record.Email,
		record.PaymentStatus, rows, record.GrandTotal, record.Status, record.CreatedAt, record.UpdatedAt)
	if err != nil {
		logger.DatabaseResult("put_customer", 0, err)
		return fmt.Errorf("failed to save customer %s: %w", record.CustomerID, err)
	}

	// The summary row is keyed by customer, so moving it between views
	// overwrites the old entry instead of leaving it behind.
	upsertSummary := `INSERT INTO account_summaries (customer_id, view, customer_name, start_date, end_date, grand_total, status, payment_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	          ON CONFLICT (customer_id) DO UPDATE SET
	          view = EXCLUDED.view, customer_name = EXCLUDED.customer_name, start_date = EXCLUDED.start_date,
	          end_date = EXCLUDED.end_date, grand_total = EXCLUDED.grand_total, status = EXCLUDED.status,
	          payment_status = EXCLUDED.payment_status`
	_, err = tx.ExecContext(ctx, upsertSummary,
		summary.ID, summary.View, summary.CustomerName, summary.StartDate, summary.EndDate,
		summary.GrandTotal, summary.Status, summary.PaymentStatus)
	if err != nil {
		logger.DatabaseResult("put_customer", 0, err)
		return fmt.Errorf("failed to save summary %s: %w", summary.ID, err)
	}

	err = tx.Commit()
	logger.DatabaseResult("put_customer", 2, err)
	if err != nil {
		return fmt.Errorf("failed to commit customer %s: %w", record.CustomerID, err)
	}
	return nil
}

// Query loads every record and keeps those match accepts. A nil match
// keeps all of them.
func (r *customerRepository) Query(ctx context.Context, match func(*domain.CustomerData) bool) ([]domain.CustomerData, error) {
	query := `SELECT ` + customerColumns + ` FROM customers ORDER BY updated_at DESC`
	logger.DatabaseCall("query_customers", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("query_customers", 0, err)
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	records := []domain.CustomerData{}
	for rows.Next() {
		record, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan customer: %w", err)
		}
		if match == nil || match(record) {
			records = append(records, *record)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read customers: %w", err)
	}
	logger.DatabaseResult("query_customers", int64(len(records)), nil)
	return records, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanCustomer(row scanner) (*domain.CustomerData, error) {
	var record domain.CustomerData
	var rows []byte
	err := row.Scan(&record.CustomerID, &record.CustomerName, &record.Address, &record.Phone, &record.Email,
		&record.PaymentStatus, &rows, &record.GrandTotal, &record.Status, &record.CreatedAt, &record.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		if err := json.Unmarshal(rows, &record.LedgerRows); err != nil {
			logger.Warn("Discarding unreadable ledger rows", "customer_id", record.CustomerID, "error", err)
			record.LedgerRows = nil
		}
	}
	return &record, nil
}
