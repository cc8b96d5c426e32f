package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/repository/filestore"
	"tent-ledger-backend/internal/security"
	"tent-ledger-backend/internal/service"
	"tent-ledger-backend/internal/storage"
)

const testSecret = "0123456789abcdef0123456789abcdef"

var fixedNow = func() time.Time { return time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC) }

// MockEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendInvoice(ctx context.Context, to, toName, subject, body string) error {
	args := m.Called(ctx, to, toName, subject, body)
	return args.Error(0)
}

type testServer struct {
	handler http.Handler
	email   *MockEmailService
	tokens  security.TokenManager
}

func newTestServer(t *testing.T, authCfg config.AuthConfig) *testServer {
	t.Helper()
	dir := t.TempDir()
	store, err := filestore.Open(filepath.Join(dir, "db.json"))
	require.NoError(t, err)
	images, err := storage.NewLocalImageStore("http://example.test", filepath.Join(dir, "images"), 1)
	require.NoError(t, err)

	email := new(MockEmailService)
	tokens := security.NewTokenManager(testSecret, time.Hour)
	business := config.BusinessConfig{Name: "Tent House", CurrencySymbol: "₹"}

	h := Handlers{
		Auth:     NewAuthHandler(service.NewAuthService(authCfg, tokens)),
		Ledger:   NewLedgerHandler(service.NewLedgerService(store.Customers(), store.Summaries(), fixedNow)),
		Invoices: NewInvoiceHandler(service.NewInvoiceService(store.Customers(), email, business, fixedNow)),
		Rental: NewRentalHandler(
			service.NewInventoryService(store.Inventory()),
			service.NewBookingService(store.Bookings()),
			service.NewContactService(store.Contacts()),
		),
		Images: NewImageHandler(images),
	}
	return &testServer{
		handler: NewRouter(h, AuthMiddleware(authCfg, tokens)),
		email:   email,
		tokens:  tokens,
	}
}

func bypassAuth() config.AuthConfig {
	return config.AuthConfig{Mode: config.AuthModeBypass, DemoOperatorID: "demo-owner-123"}
}

func (s *testServer) do(t *testing.T, method, path string, body any, header ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func openRecord() domain.CustomerData {
	return domain.CustomerData{
		CustomerName:  "Ravi Kumar",
		Phone:         "+91 98765 43210",
		Email:         "ravi@example.com",
		PaymentStatus: domain.PaymentStatusUnPaid,
		LedgerRows: []domain.LedgerRow{{
			StartDate:    "2024-01-01",
			ItemName:     "Shamiana",
			ItemType:     domain.ItemTypeTent,
			ItemStatus:   domain.ItemStatusTake,
			Quantity:     10,
			PerPieceRent: 50,
		}},
	}
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, bypassAuth())
	rec := s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPreview(t *testing.T) {
	s := newTestServer(t, bypassAuth())
	rec := s.do(t, http.MethodPost, "/api/v1/ledger/preview", previewRequest{
		LedgerRows: []domain.LedgerRow{
			{StartDate: "2024-01-01", EndDate: "2024-01-05", Quantity: 2, PerPieceRent: 100},
		},
		PaymentStatus: domain.PaymentStatusPaid,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var totals ledger.Totals
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &totals))
	assert.Equal(t, 1000.0, totals.GrandTotal)
	assert.Equal(t, domain.AccountStatusCompleted, totals.Status)
}

func TestRecordLifecycle(t *testing.T) {
	s := newTestServer(t, bypassAuth())

	rec := s.do(t, http.MethodPost, "/api/v1/records", openRecord())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created domain.CustomerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	require.NotEmpty(t, created.CustomerID)
	assert.Equal(t, 1500.0, created.GrandTotal)
	assert.Equal(t, domain.AccountStatusRunning, created.Status)

	rec = s.do(t, http.MethodGet, "/api/v1/accounts/running", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var running []domain.AccountSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &running))
	require.Len(t, running, 1)
	assert.Equal(t, created.CustomerID, running[0].ID)

	// Close the rental and mark it paid: the account moves to history.
	edit := created
	edit.LedgerRows[0].EndDate = "2024-01-02"
	edit.PaymentStatus = domain.PaymentStatusPaid
	rec = s.do(t, http.MethodPut, "/api/v1/records/"+created.CustomerID, edit)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated domain.CustomerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, 1000.0, updated.GrandTotal)
	assert.Equal(t, domain.AccountStatusCompleted, updated.Status)

	rec = s.do(t, http.MethodGet, "/api/v1/accounts/running", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/accounts/history", nil)
	var history []domain.AccountSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
	require.Len(t, history, 1)
	assert.Equal(t, "2024-01-02", history[0].EndDate)

	rec = s.do(t, http.MethodGet, "/api/v1/records/"+created.CustomerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/records?filter=Complete&q=ravi", nil)
	var found []domain.CustomerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &found))
	assert.Len(t, found, 1)

	rec = s.do(t, http.MethodGet, "/api/v1/records?filter=Running", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/accounts/rebuild", nil)
	assert.JSONEq(t, `{"rebuilt":1}`, rec.Body.String())
}

func TestRecordErrors(t *testing.T) {
	s := newTestServer(t, bypassAuth())

	t.Run("validation", func(t *testing.T) {
		draft := openRecord()
		draft.CustomerName = ""
		rec := s.do(t, http.MethodPost, "/api/v1/records", draft)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var body errorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "validation failed", body.Error)
		assert.Contains(t, body.Messages, "customerName is required")
	})

	t.Run("unknown record", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/records/nope", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = s.do(t, http.MethodPut, "/api/v1/records/nope", openRecord())
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("bad filter", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/api/v1/records?filter=Closed", nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/records", bytes.NewBufferString("{"))
		rec := httptest.NewRecorder()
		s.handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestInvoice(t *testing.T) {
	s := newTestServer(t, bypassAuth())
	rec := s.do(t, http.MethodPost, "/api/v1/records", openRecord())
	var created domain.CustomerData
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = s.do(t, http.MethodGet, "/api/v1/invoices/"+created.CustomerID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var inv domain.Invoice
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &inv))
	assert.Equal(t, 1500.0, inv.GrandTotal)
	assert.Contains(t, inv.Links[domain.ShareMethodWhatsapp], "https://wa.me/919876543210?text=")

	s.email.On("SendInvoice", mock.Anything, "ravi@example.com", "Ravi Kumar", mock.Anything, inv.Message).Return(nil).Once()
	rec = s.do(t, http.MethodPost, "/api/v1/invoices/"+created.CustomerID+"/send", nil)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	s.email.On("SendInvoice", mock.Anything, "other@example.com", mock.Anything, mock.Anything, mock.Anything).
		Return(errors.New("sendgrid down")).Once()
	rec = s.do(t, http.MethodPost, "/api/v1/invoices/"+created.CustomerID+"/send", sendInvoiceRequest{To: "other@example.com"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal error"}`, rec.Body.String())

	s.email.AssertExpectations(t)
}

func TestRentalScreens(t *testing.T) {
	s := newTestServer(t, bypassAuth())

	rec := s.do(t, http.MethodGet, "/api/v1/inventory", nil)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = s.do(t, http.MethodPost, "/api/v1/inventory", domain.InventoryItem{Name: "Chair", Stock: 0})
	require.Equal(t, http.StatusCreated, rec.Code)
	var item domain.InventoryItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, domain.StockStatusOutOfStock, item.Status)

	rec = s.do(t, http.MethodPost, "/api/v1/bookings", domain.Booking{Customer: "Meena", Date: "2024-02-10"})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/contacts", domain.Contact{Name: "Anil", Email: "not-an-email"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/bookings", nil)
	var bookings []domain.Booking
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.BookingStatusPending, bookings[0].Status)
}

func TestImages(t *testing.T) {
	s := newTestServer(t, bypassAuth())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory/images?name=tent.png", bytes.NewBufferString("png-data"))
	req.Header.Set("Content-Type", "image/png")
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var up uploadResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &up))
	assert.Equal(t, "http://example.test/api/v1/images/"+up.Key, up.URL)

	rec = s.do(t, http.MethodGet, "/api/v1/images/"+up.Key, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.Equal(t, "png-data", rec.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/v1/inventory/images", bytes.NewBufferString("text"))
	req.Header.Set("Content-Type", "text/plain")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/api/v1/inventory/images", bytes.NewReader(make([]byte, (1<<20)+1)))
	req.Header.Set("Content-Type", "image/jpeg")
	rec = httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/images/missing.png", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJWTAuth(t *testing.T) {
	hash, err := security.HashPassword("s3cret-pass")
	require.NoError(t, err)
	s := newTestServer(t, config.AuthConfig{
		Mode:              config.AuthModeJWT,
		Secret:            testSecret,
		AccessTokenExpiry: 60,
		Operators:         []config.Operator{{ID: "op-1", Email: "owner@tent.example", PasswordHash: hash}},
	})

	rec := s.do(t, http.MethodGet, "/api/v1/accounts/running", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/accounts/running", nil, "Authorization", "Bearer garbage")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: "owner@tent.example", Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/auth/login", loginRequest{Email: "Owner@Tent.example", Password: "s3cret-pass"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login service.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &login))
	assert.Equal(t, "op-1", login.OperatorID)
	require.NotEmpty(t, login.AccessToken)

	rec = s.do(t, http.MethodGet, "/api/v1/accounts/running", nil, "Authorization", "Bearer "+login.AccessToken)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddleware_InjectsOperator(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = OperatorIDFromContext(r.Context())
	})
	mw := AuthMiddleware(bypassAuth(), nil)

	rec := httptest.NewRecorder()
	mw(next).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/contacts", nil))
	assert.Equal(t, "demo-owner-123", seen)
}
