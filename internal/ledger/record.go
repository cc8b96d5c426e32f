package ledger

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/utils"
)

// Assemble turns a submitted form into a complete record ready to store.
// The draft is not modified. When existing is non-nil the record replaces
// it: the customer id and creation time carry over and everything derived
// is recomputed from the submitted rows.
func Assemble(draft *domain.CustomerData, existing *domain.CustomerData, now time.Time) (*domain.CustomerData, error) {
	record := &domain.CustomerData{
		CustomerID:    strings.TrimSpace(draft.CustomerID),
		CustomerName:  strings.TrimSpace(draft.CustomerName),
		Address:       strings.TrimSpace(draft.Address),
		Phone:         strings.TrimSpace(draft.Phone),
		Email:         strings.TrimSpace(draft.Email),
		PaymentStatus: draft.PaymentStatus,
		LedgerRows:    make([]domain.LedgerRow, len(draft.LedgerRows)),
	}
	copy(record.LedgerRows, draft.LedgerRows)

	if record.PaymentStatus == "" {
		record.PaymentStatus = domain.PaymentStatusUnPaid
	}
	for i := range record.LedgerRows {
		normalizeRow(&record.LedgerRows[i])
		if record.LedgerRows[i].ID == "" {
			record.LedgerRows[i].ID = uuid.NewString()
		}
	}

	if err := Validate(record); err != nil {
		return nil, err
	}

	today := utils.CalendarDate(now)
	now = now.UTC()
	if existing != nil {
		record.CustomerID = existing.CustomerID
		record.CreatedAt = existing.CreatedAt
	} else {
		if record.CustomerID == "" {
			record.CustomerID = uuid.NewString()
		}
		record.CreatedAt = now
	}
	record.UpdatedAt = now

	Derive(record, today)
	return record, nil
}

// Derive recomputes every derived field of a record in place.
func Derive(record *domain.CustomerData, today time.Time) {
	for i := range record.LedgerRows {
		record.LedgerRows[i].TotalPerDayRent = PerDayRent(record.LedgerRows[i])
	}
	totals := Calculate(record.LedgerRows, record.PaymentStatus, today)
	record.GrandTotal = totals.GrandTotal
	record.Status = totals.Status
}

// Normalize repairs a record read back from storage: missing rows become an
// empty ledger, defaults are filled in, and the per-day cache is re-derived.
// Status and grand total are left as saved.
func Normalize(record *domain.CustomerData) {
	if record.LedgerRows == nil {
		record.LedgerRows = []domain.LedgerRow{}
	}
	if record.PaymentStatus == "" {
		record.PaymentStatus = domain.PaymentStatusUnPaid
	}
	for i := range record.LedgerRows {
		normalizeRow(&record.LedgerRows[i])
	}
}

func normalizeRow(row *domain.LedgerRow) {
	row.StartDate = strings.TrimSpace(row.StartDate)
	row.EndDate = strings.TrimSpace(row.EndDate)
	if row.ItemType == "" {
		row.ItemType = domain.ItemTypeTent
	}
	if row.ItemStatus == "" {
		row.ItemStatus = domain.ItemStatusPending
	}
	row.TotalPerDayRent = PerDayRent(*row)
}
