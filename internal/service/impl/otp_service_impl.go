package impl

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"

	"credauth/internal/domain"
	"credauth/internal/observability/metrics"
	"credauth/internal/otp"
)

type OtpConfig struct {
	TTL time.Duration // e.g. 10 * time.Minute
}

// OtpServiceImpl manages the challenge lifecycle. Issuance and
// validation for one subject are serialized through a per-subject
// lock, so two concurrent validations can never both consume the
// same challenge.
type OtpServiceImpl struct {
	cfg   OtpConfig
	store otp.ChallengeStore
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewOtpService(cfg OtpConfig, store otp.ChallengeStore) *OtpServiceImpl {
	return &OtpServiceImpl{
		cfg:   cfg,
		store: store,
		now:   time.Now,
		locks: make(map[string]*sync.Mutex),
	}
}

func (s *OtpServiceImpl) subjectLock(email string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[email]
	if !ok {
		m = &sync.Mutex{}
		s.locks[email] = m
	}
	return m
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

func (s *OtpServiceImpl) Issue(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	lock := s.subjectLock(email)
	lock.Lock()
	defer lock.Unlock()

	result := "success"
	defer func() {
		metrics.OtpIssuedTotal.WithLabelValues(result).Inc()
	}()

	// Supersession: a new challenge invalidates the prior pending one.
	prior, err := s.store.Pending(ctx, email)
	if err != nil {
		result = "failure"
		return nil, err
	}
	if prior != nil {
		if err := s.store.UpdateStatus(ctx, prior.ID, domain.OtpExpired); err != nil {
			result = "failure"
			return nil, err
		}
	}

	code, err := generateCode()
	if err != nil {
		result = "failure"
		return nil, err
	}

	now := s.now().UTC()
	ch := &domain.OtpChallenge{
		ID:        uuid.New(),
		Email:     email,
		Code:      code,
		CreatedAt: now,
		ExpiresAt: now.Add(s.cfg.TTL),
		Status:    domain.OtpPending,
	}
	if err := s.store.Save(ctx, ch); err != nil {
		result = "failure"
		return nil, err
	}
	return ch, nil
}

func (s *OtpServiceImpl) Validate(ctx context.Context, email, code string) error {
	lock := s.subjectLock(email)
	lock.Lock()
	defer lock.Unlock()

	result := "success"
	defer func() {
		metrics.OtpValidationsTotal.WithLabelValues(result).Inc()
	}()

	ch, err := s.store.Pending(ctx, email)
	if err != nil {
		result = "failure"
		return err
	}
	if ch == nil {
		result = "not_found"
		return domain.ErrOtpNotFound
	}

	if s.now().After(ch.ExpiresAt) {
		result = "expired"
		if err := s.store.UpdateStatus(ctx, ch.ID, domain.OtpExpired); err != nil {
			return err
		}
		return domain.ErrOtpExpired
	}

	if subtle.ConstantTimeCompare([]byte(ch.Code), []byte(code)) != 1 {
		result = "mismatch"
		return domain.ErrOtpMismatch
	}

	if err := s.store.UpdateStatus(ctx, ch.ID, domain.OtpConsumed); err != nil {
		result = "failure"
		return err
	}
	return nil
}
