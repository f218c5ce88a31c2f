package otp

import (
	"context"

	"github.com/google/uuid"

	"credauth/internal/domain"
)

// ChallengeStore persists OTP challenges. Stores are plain CRUD; the
// OtpService owns status transitions and per-subject serialization.
type ChallengeStore interface {
	// Pending returns the subject's PENDING challenge, or nil if none.
	Pending(ctx context.Context, email string) (*domain.OtpChallenge, error)
	Save(ctx context.Context, ch *domain.OtpChallenge) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OtpStatus) error
}
