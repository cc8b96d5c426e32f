package grpc

import (
	"context"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"
)

// OperatorIDHeader is set by the auth interceptor after verification.
const OperatorIDHeader = "operator-id"

// GetOperatorIDFromContext extracts the operator ID from the gRPC metadata.
func GetOperatorIDFromContext(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Errorf(codes.Unauthenticated, "metadata is not provided")
	}

	ids := md.Get(OperatorIDHeader)
	if len(ids) == 0 || ids[0] == "" {
		return "", status.Errorf(codes.Unauthenticated, "operator id is not provided in metadata")
	}
	return ids[0], nil
}
