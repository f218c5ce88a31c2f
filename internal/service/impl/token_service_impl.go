package impl

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"credauth/internal/domain"
	"credauth/internal/dto"
	"credauth/internal/keymaterial"
	"credauth/internal/observability/metrics"
)

type TokenConfig struct {
	Issuer string        // e.g. "http://localhost:8085"
	TTL    time.Duration // e.g. 15 * time.Minute
}

// TokenServiceImpl issues and verifies EdDSA-signed session tokens.
// The private key never leaves the key material; verifiers only need
// the public half.
type TokenServiceImpl struct {
	cfg  TokenConfig
	keys *keymaterial.KeyMaterial
	now  func() time.Time
}

func NewTokenServiceEdDSA(cfg TokenConfig, keys *keymaterial.KeyMaterial) *TokenServiceImpl {
	return &TokenServiceImpl{cfg: cfg, keys: keys, now: time.Now}
}

func (t *TokenServiceImpl) Issue(ctx context.Context, subject string) (*dto.TokenResponse, error) {
	result := "success"
	defer func() {
		metrics.TokensIssuedTotal.WithLabelValues(result).Inc()
	}()

	if subject == "" {
		result = "failure"
		return nil, ErrEmptySubject
	}
	priv, err := t.keys.Signer()
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := t.now().UTC()
	claims := jwt.RegisteredClaims{
		Issuer:    t.cfg.Issuer,
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.cfg.TTL)),
		ID:        uuid.New().String(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodEdDSA, claims)
	token.Header["kid"] = t.keys.KeyID

	signed, err := token.SignedString(priv)
	if err != nil {
		result = "failure"
		return nil, err
	}
	return &dto.TokenResponse{
		Token:     signed,
		ExpiresIn: int64(t.cfg.TTL.Seconds()),
	}, nil
}

func (t *TokenServiceImpl) Verify(ctx context.Context, token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodEdDSA.Alg()}),
		jwt.WithIssuer(t.cfg.Issuer),
		jwt.WithTimeFunc(t.now),
	)
	_, err := parser.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return t.keys.Verifier(), nil
	})
	if err != nil {
		return "", translateTokenError(err)
	}
	return claims.Subject, nil
}

// translateTokenError collapses jwt/v5 parse failures into the closed
// token error taxonomy.
func translateTokenError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenBadSignature
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	default:
		return domain.ErrTokenMalformed
	}
}
