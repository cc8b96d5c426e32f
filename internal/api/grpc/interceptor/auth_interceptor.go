package interceptor

import (
	"context"
	"strings"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/security"
)

const operatorIDHeader = "operator-id"

type AuthInterceptor struct {
	cfg          config.AuthConfig
	tokenManager security.TokenManager
}

func NewAuthInterceptor(cfg config.AuthConfig, tm security.TokenManager) *AuthInterceptor {
	return &AuthInterceptor{cfg: cfg, tokenManager: tm}
}

// Unary returns a server interceptor function to authenticate unary RPCs
func (i *AuthInterceptor) Unary() grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		// Public endpoint - skip auth
		if config.GetSecurityLevel(info.FullMethod) == config.SecurityPublic {
			return handler(ctx, req)
		}

		operatorID := i.cfg.DemoOperatorID
		if i.cfg.Mode == config.AuthModeJWT {
			token, err := i.extractToken(ctx)
			if err != nil {
				return nil, err
			}
			claims, err := i.tokenManager.ValidateToken(token)
			if err != nil {
				return nil, status.Errorf(codes.Unauthenticated, "invalid token: %v", err)
			}
			if claims.Type != security.TokenTypeAccess {
				return nil, status.Error(codes.PermissionDenied, "access token required")
			}
			operatorID = claims.OperatorID
		}

		// Overwrite any client-supplied operator header.
		md, ok := metadata.FromIncomingContext(ctx)
		if !ok {
			md = metadata.New(nil)
		} else {
			md = md.Copy()
		}
		md.Set(operatorIDHeader, operatorID)

		return handler(metadata.NewIncomingContext(ctx, md), req)
	}
}

func (i *AuthInterceptor) extractToken(ctx context.Context) (string, error) {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return "", status.Error(codes.Unauthenticated, "metadata is not provided")
	}

	authHeader := md["authorization"]
	if len(authHeader) == 0 {
		return "", status.Error(codes.Unauthenticated, "authorization token is not provided")
	}

	token := authHeader[0]
	if len(token) > 7 && strings.EqualFold(token[:7], "bearer ") {
		token = token[7:]
	}
	return token, nil
}
