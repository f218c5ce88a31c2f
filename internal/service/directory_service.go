package service

import (
	"context"

	"credauth/internal/domain"
)

// UserDirectory is the outbound contract to the external user-record
// store. Implementations map every downstream failure into the domain
// error taxonomy before returning.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
	UpdatePassword(ctx context.Context, id int, newHash string) error
}
