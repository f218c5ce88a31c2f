package service

import (
	"context"

	"credauth/internal/domain"
)

type OtpService interface {
	// Issue creates a PENDING challenge for the subject, superseding
	// any prior PENDING one.
	Issue(ctx context.Context, email string) (*domain.OtpChallenge, error)
	// Validate consumes the subject's PENDING challenge. It fails with
	// ErrOtpNotFound, ErrOtpMismatch or ErrOtpExpired; success is
	// single-use.
	Validate(ctx context.Context, email, code string) error
}
