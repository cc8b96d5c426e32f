package ledger

import "tent-ledger-backend/internal/domain"

// HasOpenRow reports whether any row lacks an end date.
func HasOpenRow(rows []domain.LedgerRow) bool {
	for _, row := range rows {
		if isOpen(row) {
			return true
		}
	}
	return false
}

// DeriveStatus computes the account status. An open row dominates payment;
// otherwise a paid account is completed and an unpaid one pending.
func DeriveStatus(rows []domain.LedgerRow, payment domain.PaymentStatus) domain.AccountStatus {
	if HasOpenRow(rows) {
		return domain.AccountStatusRunning
	}
	if payment == domain.PaymentStatusPaid {
		return domain.AccountStatusCompleted
	}
	return domain.AccountStatusPending
}
