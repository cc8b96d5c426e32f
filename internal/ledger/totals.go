package ledger

import (
	"math"
	"time"

	"tent-ledger-backend/internal/domain"
)

// Totals is the itemized breakdown shown beside a ledger form.
type Totals struct {
	Rows       []RowAccrual         `json:"rows"`
	GrandTotal float64              `json:"grandTotal"`
	Status     domain.AccountStatus `json:"status"`
}

// Calculate accrues every row in order and sums the grand total. Rows with
// a non-finite total contribute nothing.
func Calculate(rows []domain.LedgerRow, payment domain.PaymentStatus, today time.Time) Totals {
	totals := Totals{
		Rows:   make([]RowAccrual, 0, len(rows)),
		Status: DeriveStatus(rows, payment),
	}
	for _, row := range rows {
		accrual := Accrue(row, today)
		totals.Rows = append(totals.Rows, accrual)
		if !math.IsNaN(accrual.Total) && !math.IsInf(accrual.Total, 0) {
			totals.GrandTotal += accrual.Total
		}
	}
	return totals
}

// GrandTotal is the sum of row totals as of today.
func GrandTotal(rows []domain.LedgerRow, today time.Time) float64 {
	return Calculate(rows, domain.PaymentStatusUnPaid, today).GrandTotal
}
