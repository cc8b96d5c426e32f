package service

import (
	"context"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/mock"

	"tent-ledger-backend/internal/domain"
)

// MockCustomerRepo
type MockCustomerRepo struct {
	mock.Mock
}

func (m *MockCustomerRepo) Get(ctx context.Context, customerID string) (*domain.CustomerData, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CustomerData), args.Error(1)
}

func (m *MockCustomerRepo) Put(ctx context.Context, record *domain.CustomerData, summary domain.AccountSummary) error {
	args := m.Called(ctx, record, summary)
	return args.Error(0)
}

// Query applies match to the configured records, like a real store would.
func (m *MockCustomerRepo) Query(ctx context.Context, match func(*domain.CustomerData) bool) ([]domain.CustomerData, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	var out []domain.CustomerData
	for _, c := range args.Get(0).([]domain.CustomerData) {
		if match == nil || match(&c) {
			out = append(out, c)
		}
	}
	return out, args.Error(1)
}

// MockSummaryRepo
type MockSummaryRepo struct {
	mock.Mock
}

func (m *MockSummaryRepo) List(ctx context.Context, view domain.SummaryView) ([]domain.AccountSummary, error) {
	args := m.Called(ctx, view)
	return args.Get(0).([]domain.AccountSummary), args.Error(1)
}

func (m *MockSummaryRepo) Replace(ctx context.Context, summaries []domain.AccountSummary) error {
	args := m.Called(ctx, summaries)
	return args.Error(0)
}

// MockInventoryRepo
type MockInventoryRepo struct {
	mock.Mock
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *domain.InventoryItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockInventoryRepo) List(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

// MockBookingRepo
type MockBookingRepo struct {
	mock.Mock
}

func (m *MockBookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepo) List(ctx context.Context) ([]domain.Booking, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Booking), args.Error(1)
}

// MockContactRepo
type MockContactRepo struct {
	mock.Mock
}

func (m *MockContactRepo) Create(ctx context.Context, c *domain.Contact) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockContactRepo) List(ctx context.Context) ([]domain.Contact, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.Contact), args.Error(1)
}

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvoice(ctx context.Context, to, toName, subject, body string) error {
	args := m.Called(ctx, to, toName, subject, body)
	return args.Error(0)
}

// MockMailSender
type MockMailSender struct {
	mock.Mock
}

func (m *MockMailSender) Send(email *mail.SGMailV3) (*rest.Response, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*rest.Response), args.Error(1)
}
