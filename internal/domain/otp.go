package domain

import (
	"time"

	"github.com/google/uuid"
)

type OtpStatus string

const (
	OtpPending  OtpStatus = "pending"
	OtpConsumed OtpStatus = "consumed"
	OtpExpired  OtpStatus = "expired"
)

// OtpChallenge is a single-use recovery code bound to a subject email.
// Status only moves forward: pending -> consumed or pending -> expired.
type OtpChallenge struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
	Status    OtpStatus `json:"status"`
}
