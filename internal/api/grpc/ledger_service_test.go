package grpc

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"tent-ledger-backend/internal/api/grpc/interceptor"
	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/domain"
	"tent-ledger-backend/internal/repository/filestore"
	"tent-ledger-backend/internal/security"
	"tent-ledger-backend/internal/service"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func startServer(t *testing.T, authCfg config.AuthConfig, tokens security.TokenManager) *LedgerClient {
	t.Helper()
	store, err := filestore.Open(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)

	now := func() time.Time { return time.Date(2024, 1, 3, 15, 0, 0, 0, time.UTC) }
	ledgerSvc := service.NewLedgerService(store.Customers(), store.Summaries(), now)

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer(grpc.UnaryInterceptor(interceptor.NewAuthInterceptor(authCfg, tokens).Unary()))
	RegisterLedgerServiceServer(srv, NewLedgerHandler(ledgerSvc))
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return NewLedgerClient(conn)
}

func draft() domain.CustomerData {
	return domain.CustomerData{
		CustomerName:  "Sita Devi",
		PaymentStatus: domain.PaymentStatusUnPaid,
		LedgerRows: []domain.LedgerRow{{
			StartDate:    "2024-01-01",
			EndDate:      "2024-01-02",
			ItemName:     "Plates",
			ItemType:     domain.ItemTypeCatering,
			ItemStatus:   domain.ItemStatusGet,
			Quantity:     100,
			PerPieceRent: 2,
		}},
	}
}

func TestLedgerService_RoundTrip(t *testing.T) {
	ctx := context.Background()
	client := startServer(t, config.AuthConfig{Mode: config.AuthModeBypass, DemoOperatorID: "demo-owner-123"}, nil)

	preview, err := client.PreviewTotals(ctx, &PreviewTotalsRequest{LedgerRows: draft().LedgerRows, PaymentStatus: domain.PaymentStatusUnPaid})
	require.NoError(t, err)
	assert.Equal(t, 400.0, preview.Totals.GrandTotal)
	assert.Equal(t, domain.AccountStatusPending, preview.Totals.Status)

	saved, err := client.SaveRecord(ctx, &SaveRecordRequest{Record: draft()})
	require.NoError(t, err)
	require.NotEmpty(t, saved.Record.CustomerID)
	assert.Equal(t, 400.0, saved.Record.GrandTotal)

	got, err := client.GetRecord(ctx, &GetRecordRequest{CustomerID: saved.Record.CustomerID})
	require.NoError(t, err)
	assert.Equal(t, "Sita Devi", got.Record.CustomerName)

	history, err := client.ListAccounts(ctx, &ListAccountsRequest{View: domain.SummaryViewHistory})
	require.NoError(t, err)
	require.Len(t, history.Accounts, 1)
	assert.Equal(t, domain.AccountStatusPending, history.Accounts[0].Status)
}

func TestLedgerService_ErrorCodes(t *testing.T) {
	ctx := context.Background()
	client := startServer(t, config.AuthConfig{Mode: config.AuthModeBypass, DemoOperatorID: "demo-owner-123"}, nil)

	bad := draft()
	bad.CustomerName = ""
	_, err := client.SaveRecord(ctx, &SaveRecordRequest{Record: bad})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.GetRecord(ctx, &GetRecordRequest{CustomerID: "missing"})
	assert.Equal(t, codes.NotFound, status.Code(err))

	_, err = client.GetRecord(ctx, &GetRecordRequest{})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))

	_, err = client.ListAccounts(ctx, &ListAccountsRequest{View: "archived"})
	assert.Equal(t, codes.InvalidArgument, status.Code(err))
}

func TestLedgerService_JWT(t *testing.T) {
	tokens := security.NewTokenManager(testSecret, time.Hour)
	client := startServer(t, config.AuthConfig{Mode: config.AuthModeJWT, Secret: testSecret}, tokens)

	_, err := client.ListAccounts(context.Background(), &ListAccountsRequest{View: domain.SummaryViewRunning})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	bad := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer nope")
	_, err = client.ListAccounts(bad, &ListAccountsRequest{View: domain.SummaryViewRunning})
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	token, err := tokens.GenerateAccessToken("op-7", "owner@tent.example")
	require.NoError(t, err)
	ctx := metadata.AppendToOutgoingContext(context.Background(), "authorization", "Bearer "+token)
	resp, err := client.ListAccounts(ctx, &ListAccountsRequest{View: domain.SummaryViewRunning})
	require.NoError(t, err)
	assert.Empty(t, resp.Accounts)
}

func TestGetOperatorIDFromContext(t *testing.T) {
	_, err := GetOperatorIDFromContext(context.Background())
	assert.Equal(t, codes.Unauthenticated, status.Code(err))

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs(OperatorIDHeader, "op-1"))
	id, err := GetOperatorIDFromContext(ctx)
	require.NoError(t, err)
	assert.Equal(t, "op-1", id)
}

func TestJSONCodec(t *testing.T) {
	c := jsonCodec{}
	data, err := c.Marshal(&GetRecordRequest{CustomerID: "abc"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"customerId":"abc"}`, string(data))

	var out GetRecordRequest
	require.NoError(t, c.Unmarshal(data, &out))
	assert.Equal(t, "abc", out.CustomerID)
	assert.Equal(t, "json", c.Name())
}
