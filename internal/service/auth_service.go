package service

import (
	"context"

	"credauth/internal/dto"
)

type AuthService interface {
	Login(ctx context.Context, r dto.LoginRequest) (*dto.TokenResponse, error)
	RequestOtp(ctx context.Context, r dto.OtpRequest) (*dto.OtpResponse, error)
	RecoverPassword(ctx context.Context, r dto.PasswordRecoveryRequest) (bool, error)
}
