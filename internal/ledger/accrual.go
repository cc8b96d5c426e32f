// Package ledger computes accruals, totals, account status and list-view
// projections for customer ledger records. It performs no I/O.
package ledger

import (
	"math"
	"strings"
	"time"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/utils"
)

// RowAccrual is the computed charge of one ledger row on a given day.
type RowAccrual struct {
	RowID      string  `json:"rowId"`
	ItemName   string  `json:"itemName"`
	Days       int     `json:"days"`
	PerDayRent float64 `json:"perDayRent"`
	Total      float64 `json:"rowTotal"`
	// Open is set when the row has no end date and accrues until today.
	Open bool `json:"open"`
	// Incomplete is set when a date is missing or unparseable.
	Incomplete bool `json:"incomplete"`
}

// PerDayRent derives quantity * perPieceRent. The stored totalPerDayRent
// on a row is never trusted.
func PerDayRent(row domain.LedgerRow) float64 {
	return float64(row.Quantity) * row.PerPieceRent
}

// RowDays returns the inclusive billable day count of a row as of today,
// and whether the row is still open. A row with a missing or unparseable
// date has zero days and ok set to false.
func RowDays(row domain.LedgerRow, today time.Time) (days int, open bool, ok bool) {
	open = isOpen(row)

	start, err := utils.ParseDate(row.StartDate)
	if err != nil {
		return 0, open, false
	}
	if open {
		return utils.InclusiveDays(start, today), true, true
	}

	end, err := utils.ParseDate(row.EndDate)
	if err != nil {
		return 0, false, false
	}
	return utils.InclusiveDays(start, end), false, true
}

func isOpen(row domain.LedgerRow) bool {
	return strings.TrimSpace(row.EndDate) == ""
}

// Accrue computes days and charge for a single row.
func Accrue(row domain.LedgerRow, today time.Time) RowAccrual {
	days, open, ok := RowDays(row, today)
	perDay := PerDayRent(row)

	total := float64(days) * perDay
	if math.IsNaN(total) || math.IsInf(total, 0) {
		total = 0
	}

	return RowAccrual{
		RowID:      row.ID,
		ItemName:   row.ItemName,
		Days:       days,
		PerDayRent: perDay,
		Total:      total,
		Open:       open,
		Incomplete: !ok,
	}
}

// PendingItems is the count of units still out with the customer, clamped
// at zero for display. Over-returns are not rejected.
func PendingItems(row domain.LedgerRow) int {
	pending := row.Quantity - row.ReturnItems
	if pending < 0 {
		return 0
	}
	return pending
}
