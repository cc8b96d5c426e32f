package grpc

import (
	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
)

type PreviewTotalsRequest struct {
	LedgerRows    []domain.LedgerRow   `json:"ledgerRows"`
	PaymentStatus domain.PaymentStatus `json:"paymentStatus"`
}

type PreviewTotalsResponse struct {
	Totals ledger.Totals `json:"totals"`
}

type SaveRecordRequest struct {
	Record domain.CustomerData `json:"record"`
}

type SaveRecordResponse struct {
	Record *domain.CustomerData `json:"record"`
}

type GetRecordRequest struct {
	CustomerID string `json:"customerId"`
}

type GetRecordResponse struct {
	Record *domain.CustomerData `json:"record"`
}

type ListAccountsRequest struct {
	View domain.SummaryView `json:"view"`
}

type ListAccountsResponse struct {
	Accounts []domain.AccountSummary `json:"accounts"`
}
