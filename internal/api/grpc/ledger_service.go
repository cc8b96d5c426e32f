package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"tent-ledger-backend/internal/ledger"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/repository"
	"tent-ledger-backend/internal/security"
	"tent-ledger-backend/internal/service"
)

const ledgerServiceName = "tentledger.v1.LedgerService"

// LedgerServiceServer is the server API for tentledger.v1.LedgerService.
type LedgerServiceServer interface {
	PreviewTotals(context.Context, *PreviewTotalsRequest) (*PreviewTotalsResponse, error)
	SaveRecord(context.Context, *SaveRecordRequest) (*SaveRecordResponse, error)
	GetRecord(context.Context, *GetRecordRequest) (*GetRecordResponse, error)
	ListAccounts(context.Context, *ListAccountsRequest) (*ListAccountsResponse, error)
}

type LedgerHandler struct {
	ledgerSvc service.LedgerService
}

func NewLedgerHandler(ledgerSvc service.LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerSvc: ledgerSvc}
}

func (h *LedgerHandler) PreviewTotals(ctx context.Context, req *PreviewTotalsRequest) (*PreviewTotalsResponse, error) {
	return &PreviewTotalsResponse{Totals: h.ledgerSvc.Preview(req.LedgerRows, req.PaymentStatus)}, nil
}

func (h *LedgerHandler) SaveRecord(ctx context.Context, req *SaveRecordRequest) (*SaveRecordResponse, error) {
	operatorID, err := GetOperatorIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	record, err := h.ledgerSvc.SaveRecord(ctx, &req.Record)
	if err != nil {
		return nil, toStatus(err)
	}
	logger.Debug("Record saved over gRPC", "operator_id", operatorID, "customer_id", record.CustomerID)
	return &SaveRecordResponse{Record: record}, nil
}

func (h *LedgerHandler) GetRecord(ctx context.Context, req *GetRecordRequest) (*GetRecordResponse, error) {
	if req.CustomerID == "" {
		return nil, status.Error(codes.InvalidArgument, "customerId is required")
	}
	record, err := h.ledgerSvc.GetRecord(ctx, req.CustomerID)
	if err != nil {
		return nil, toStatus(err)
	}
	return &GetRecordResponse{Record: record}, nil
}

func (h *LedgerHandler) ListAccounts(ctx context.Context, req *ListAccountsRequest) (*ListAccountsResponse, error) {
	accounts, err := h.ledgerSvc.ListAccounts(ctx, req.View)
	if err != nil {
		return nil, toStatus(err)
	}
	return &ListAccountsResponse{Accounts: accounts}, nil
}

// toStatus converts service errors into gRPC status errors.
func toStatus(err error) error {
	var verr *ledger.ValidationError
	switch {
	case errors.As(err, &verr):
		return status.Error(codes.InvalidArgument, verr.Error())
	case errors.Is(err, repository.ErrNotFound):
		return status.Error(codes.NotFound, err.Error())
	case errors.Is(err, security.ErrInvalidToken), errors.Is(err, security.ErrExpiredToken):
		return status.Error(codes.Unauthenticated, err.Error())
	default:
		logger.Error("gRPC call failed", "error", err)
		return status.Error(codes.Internal, "internal error")
	}
}

// RegisterLedgerServiceServer registers srv on s.
func RegisterLedgerServiceServer(s grpc.ServiceRegistrar, srv LedgerServiceServer) {
	s.RegisterService(&LedgerServiceDesc, srv)
}

func unaryHandler[Req any](method string, call func(LedgerServiceServer, context.Context, *Req) (any, error)) func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
	fullMethod := "/" + ledgerServiceName + "/" + method
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(LedgerServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req any) (any, error) {
			return call(srv.(LedgerServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

// LedgerServiceDesc describes tentledger.v1.LedgerService for grpc.Server.
var LedgerServiceDesc = grpc.ServiceDesc{
	ServiceName: ledgerServiceName,
	HandlerType: (*LedgerServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "PreviewTotals",
			Handler: unaryHandler("PreviewTotals", func(s LedgerServiceServer, ctx context.Context, r *PreviewTotalsRequest) (any, error) {
				return s.PreviewTotals(ctx, r)
			}),
		},
		{
			MethodName: "SaveRecord",
			Handler: unaryHandler("SaveRecord", func(s LedgerServiceServer, ctx context.Context, r *SaveRecordRequest) (any, error) {
				return s.SaveRecord(ctx, r)
			}),
		},
		{
			MethodName: "GetRecord",
			Handler: unaryHandler("GetRecord", func(s LedgerServiceServer, ctx context.Context, r *GetRecordRequest) (any, error) {
				return s.GetRecord(ctx, r)
			}),
		},
		{
			MethodName: "ListAccounts",
			Handler: unaryHandler("ListAccounts", func(s LedgerServiceServer, ctx context.Context, r *ListAccountsRequest) (any, error) {
				return s.ListAccounts(ctx, r)
			}),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "tentledger/v1/ledger.json",
}

// LedgerClient calls tentledger.v1.LedgerService using the JSON codec.
type LedgerClient struct {
	cc grpc.ClientConnInterface
}

func NewLedgerClient(cc grpc.ClientConnInterface) *LedgerClient {
	return &LedgerClient{cc: cc}
}

func (c *LedgerClient) invoke(ctx context.Context, method string, in, out any, opts ...grpc.CallOption) error {
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	return c.cc.Invoke(ctx, "/"+ledgerServiceName+"/"+method, in, out, opts...)
}

func (c *LedgerClient) PreviewTotals(ctx context.Context, in *PreviewTotalsRequest, opts ...grpc.CallOption) (*PreviewTotalsResponse, error) {
	out := new(PreviewTotalsResponse)
	if err := c.invoke(ctx, "PreviewTotals", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerClient) SaveRecord(ctx context.Context, in *SaveRecordRequest, opts ...grpc.CallOption) (*SaveRecordResponse, error) {
	out := new(SaveRecordResponse)
	if err := c.invoke(ctx, "SaveRecord", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerClient) GetRecord(ctx context.Context, in *GetRecordRequest, opts ...grpc.CallOption) (*GetRecordResponse, error) {
	out := new(GetRecordResponse)
	if err := c.invoke(ctx, "GetRecord", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *LedgerClient) ListAccounts(ctx context.Context, in *ListAccountsRequest, opts ...grpc.CallOption) (*ListAccountsResponse, error) {
	out := new(ListAccountsResponse)
	if err := c.invoke(ctx, "ListAccounts", in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
