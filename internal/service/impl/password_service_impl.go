package impl

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceImpl hashes passwords with bcrypt. The digest embeds
// salt and cost, so the directory only ever stores a single string.
type PasswordServiceImpl struct {
	cost int
}

func NewPasswordServiceBcrypt() *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: bcrypt.DefaultCost}
}

// NewPasswordServiceBcryptCost exists for tests that cannot afford the
// default work factor.
func NewPasswordServiceBcryptCost(cost int) *PasswordServiceImpl {
	return &PasswordServiceImpl{cost: cost}
}

func (p *PasswordServiceImpl) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}
	digest, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Verify compares in time independent of where the mismatch occurs;
// bcrypt re-derives the full digest before comparing.
func (p *PasswordServiceImpl) Verify(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
