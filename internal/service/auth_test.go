package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/security"
)

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := security.HashPassword("tent-pass")
	require.NoError(t, err)

	cfg := config.AuthConfig{
		Mode:              config.AuthModeJWT,
		AccessTokenExpiry: 60,
		Operators:         []config.Operator{{ID: "owner-1", Email: "Owner@Example.com", PasswordHash: hash}},
	}
	tokens := security.NewTokenManager("0123456789abcdef0123456789abcdef", time.Hour)
	svc := NewAuthService(cfg, tokens)

	t.Run("Success", func(t *testing.T) {
		res, err := svc.Login(ctx, " owner@example.com ", "tent-pass")
		require.NoError(t, err)
		assert.Equal(t, "owner-1", res.OperatorID)

		claims, err := tokens.ValidateToken(res.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, "owner-1", claims.OperatorID)
	})

	t.Run("Wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "owner@example.com", "nope")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Unknown operator", func(t *testing.T) {
		_, err := svc.Login(ctx, "someone@example.com", "tent-pass")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Bypass mode", func(t *testing.T) {
		bypass := NewAuthService(config.AuthConfig{Mode: config.AuthModeBypass, DemoOperatorID: "demo-owner-123"}, nil)
		res, err := bypass.Login(ctx, "", "")
		require.NoError(t, err)
		assert.Equal(t, "demo-owner-123", res.OperatorID)
		assert.Empty(t, res.AccessToken)
	})
}
