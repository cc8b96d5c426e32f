package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
)

type summaryRepository struct {
	db *sql.DB
}

func NewSummaryRepository(db *sql.DB) repository.SummaryRepository {
	return &summaryRepository{db: db}
}

func (r *summaryRepository) List(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error) {
	query := `SELECT customer_id, view, customer_name, start_date, end_date, grand_total, status, payment_status
	          FROM account_summaries WHERE view = $1 ORDER BY start_date DESC, customer_id`
	logger.DatabaseCall("list_summaries", query, "view", view)

	rows, err := r.db.QueryContext(ctx, query, view)
	if err != nil {
		logger.DatabaseResult("list_summaries", 0, err)
		return nil, fmt.Errorf("failed to list %s summaries: %w", view, err)
	}
	defer rows.Close()

	summaries := []domain.AccountSummary{}
	for rows.Next() {
		var s domain.AccountSummary
		if err := rows.Scan(&s.ID, &s.View, &s.CustomerName, &s.StartDate, &s.EndDate, &s.GrandTotal, &s.Status, &s.PaymentStatus); err != nil {
			return nil, fmt.Errorf("failed to scan summary: %w", err)
		}
		summaries = append(summaries, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read summaries: %w", err)
	}
	logger.DatabaseResult("list_summaries", int64(len(summaries)), nil)
	return summaries, nil
}

func (r *summaryRepository) Replace(ctx context.Context, summaries []domain.AccountSummary) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	logger.DatabaseCall("replace_summaries", "DELETE FROM account_summaries", "count", len(summaries))
	if _, err := tx.ExecContext(ctx, `DELETE FROM account_summaries`); err != nil {
		return fmt.Errorf("failed to clear summaries: %w", err)
	}

	insert := `INSERT INTO account_summaries (customer_id, view, customer_name, start_date, end_date, grand_total, status, payment_status)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, s := range summaries {
		_, err := tx.ExecContext(ctx, insert, s.ID, s.View, s.CustomerName, s.StartDate, s.EndDate, s.GrandTotal, s.Status, s.PaymentStatus)
		if err != nil {
			return fmt.Errorf("failed to insert summary %s: %w", s.ID, err)
		}
	}

	err = tx.Commit()
	logger.DatabaseResult("replace_summaries", int64(len(summaries)), err)
	if err != nil {
		return fmt.Errorf("failed to commit summaries: %w", err)
	}
	return nil
}
