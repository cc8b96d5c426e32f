package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"tent-ledger-backend/internal/config"
	"tent-ledger-backend/internal/logger"
	"tent-ledger-backend/internal/security"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type LoginResult struct {
	OperatorID  string    `json:"operatorId"`
	AccessToken string    `json:"accessToken,omitempty"`
	ExpiresAt   time.Time `json:"expiresAt,omitzero"`
}

type authService struct {
	cfg    config.AuthConfig
	tokens security.TokenManager
	now    func() time.Time
}

// NewAuthService authenticates the operators listed in config. In bypass
// mode every login resolves to the demo operator and no token is issued.
func NewAuthService(cfg config.AuthConfig, tokens security.TokenManager) AuthService {
	return &authService{cfg: cfg, tokens: tokens, now: time.Now}
}

func (s *authService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	if s.cfg.Mode != config.AuthModeJWT {
		return &LoginResult{OperatorID: s.cfg.DemoOperatorID}, nil
	}

	email = strings.ToLower(strings.TrimSpace(email))
	for _, op := range s.cfg.Operators {
		if strings.ToLower(op.Email) != email {
			continue
		}
		if err := security.CheckPassword(op.PasswordHash, password); err != nil {
			break
		}
		token, err := s.tokens.GenerateAccessToken(op.ID, op.Email)
		if err != nil {
			return nil, err
		}
		logger.Info("Operator logged in", "operator_id", op.ID)
		return &LoginResult{
			OperatorID:  op.ID,
			AccessToken: token,
			ExpiresAt:   s.now().Add(time.Duration(s.cfg.AccessTokenExpiry) * time.Minute).UTC(),
		}, nil
	}

	logger.Warn("Rejected operator login", "email", email)
	return nil, ErrInvalidCredentials
}
