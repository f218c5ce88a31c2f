package service

import (
	"context"

	"credauth/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, subject string) (*dto.TokenResponse, error)
	// Verify returns the token's subject, or one of the domain token
	// errors (bad signature, expired, malformed).
	Verify(ctx context.Context, token string) (string, error)
}
