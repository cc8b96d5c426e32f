package service

import (
	"context"

	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
)

type LedgerService interface {
	// Preview computes live totals for an unsaved form. Nothing is written.
	Preview(rows []domain.LedgerRow, payment domain.PaymentStatus) ledger.Totals
	SaveRecord(ctx context.Context, draft *domain.CustomerData) (*domain.CustomerData, error)
	GetRecord(ctx context.Context, customerID string) (*domain.CustomerData, error)
	SearchRecords(ctx context.Context, filter domain.RecordFilter, query string) ([]domain.CustomerData, error)
	ListAccounts(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error)
	RebuildProjections(ctx context.Context) (int, error)
	RefreshRunningTotals(ctx context.Context) (int, error)
}

type InventoryService interface {
	AddItem(ctx context.Context, item *domain.InventoryItem) (*domain.InventoryItem, error)
	ListItems(ctx context.Context) ([]domain.InventoryItem, error)
}

type BookingService interface {
	AddBooking(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	ListBookings(ctx context.Context) ([]domain.Booking, error)
}

type ContactService interface {
	AddContact(ctx context.Context, contact *domain.Contact) (*domain.Contact, error)
	ListContacts(ctx context.Context) ([]domain.Contact, error)
}

type InvoiceService interface {
	Build(ctx context.Context, customerID string) (*domain.Invoice, error)
	// Send e-mails the invoice message. An empty to uses the customer's address.
	Send(ctx context.Context, customerID, to string) (*domain.Invoice, error)
}

type EmailService interface {
	SendInvoice(ctx context.Context, to, toName, subject, body string) error
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}
