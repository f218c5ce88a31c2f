package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrIncorrectPassword = errors.New("incorrect password")

	ErrOtpNotFound = errors.New("no pending otp challenge")
	ErrOtpMismatch = errors.New("otp code mismatch")
	ErrOtpExpired  = errors.New("otp challenge expired")

	ErrTokenBadSignature = errors.New("token signature invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
)

// ExternalServiceError wraps a downstream directory or delivery failure.
// Transient marks transport-level failures (timeout, refused connection)
// that a caller may retry; protocol-level rejections are not transient.
type ExternalServiceError struct {
	Status    int
	Message   string
	Transient bool
}

func (e *ExternalServiceError) Error() string {
	if e.Transient {
		return fmt.Sprintf("external service unreachable: %s", e.Message)
	}
	return fmt.Sprintf("external service error (status %d): %s", e.Status, e.Message)
}

// ValidationError is produced at the request boundary, before any
// domain request is constructed. It never reaches the orchestrator.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
