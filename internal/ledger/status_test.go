package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tent-ledger-backend/internal/domain"
)

func TestDeriveStatus(t *testing.T) {
	closed := row("2024-01-01", "2024-01-05", 1, 10)
	open := row("2024-01-01", "", 1, 10)

	tests := []struct {
		name     string
		rows     []domain.LedgerRow
		payment  domain.PaymentStatus
		expected domain.AccountStatus
	}{
		{"Open row unpaid", []domain.LedgerRow{closed, open}, domain.PaymentStatusUnPaid, domain.AccountStatusRunning},
		{"Open row paid", []domain.LedgerRow{open}, domain.PaymentStatusPaid, domain.AccountStatusRunning},
		{"All closed paid", []domain.LedgerRow{closed, closed}, domain.PaymentStatusPaid, domain.AccountStatusCompleted},
		{"All closed unpaid", []domain.LedgerRow{closed}, domain.PaymentStatusUnPaid, domain.AccountStatusPending},
		{"Blank end date is open", []domain.LedgerRow{row("2024-01-01", "  ", 1, 1)}, domain.PaymentStatusPaid, domain.AccountStatusRunning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveStatus(tt.rows, tt.payment))
		})
	}
}

func TestDeriveStatus_IgnoresItemStatus(t *testing.T) {
	r := row("2024-01-01", "2024-01-02", 1, 1)
	for _, s := range []domain.ItemStatus{domain.ItemStatusPending, domain.ItemStatusTake, domain.ItemStatusGet, domain.ItemStatusClear} {
		r.ItemStatus = s
		assert.Equal(t, domain.AccountStatusPending, DeriveStatus([]domain.LedgerRow{r}, domain.PaymentStatusUnPaid))
	}
}
