package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

type contactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) repository.ContactRepository {
	return &contactRepository{db: db}
}

func (r *contactRepository) Create(ctx context.Context, c *domain.Contact) error {
	query := `INSERT INTO contacts (id, name, email, phone, location, orders, spent, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	logger.DatabaseCall("create_contact", query, "id", c.ID)
	_, err := r.db.ExecContext(ctx, query, c.ID, c.Name, c.Email, c.Phone, c.Location, c.Orders, c.Spent, c.CreatedAt)
	logger.DatabaseResult("create_contact", 1, err)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}
	return nil
}

func (r *contactRepository) List(ctx context.Context) ([]domain.Contact, error) {
	query := `SELECT id, name, email, phone, location, orders, spent, created_at FROM contacts ORDER BY name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer rows.Close()

	contacts := []domain.Contact{}
	for rows.Next() {
		var c domain.Contact
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.Location, &c.Orders, &c.Spent, &c.CreatedAt); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}
