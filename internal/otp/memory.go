package otp

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"credauth/internal/domain"
)

// MemoryStore keeps challenges in process memory. It is the default
// store for single-instance deployments and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*domain.OtpChallenge
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{byID: make(map[uuid.UUID]*domain.OtpChallenge)}
}

func (s *MemoryStore) Pending(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *domain.OtpChallenge
	for _, ch := range s.byID {
		if ch.Email != email || ch.Status != domain.OtpPending {
			continue
		}
		if latest == nil || ch.CreatedAt.After(latest.CreatedAt) {
			latest = ch
		}
	}
	if latest == nil {
		return nil, nil
	}
	cp := *latest
	return &cp, nil
}

func (s *MemoryStore) Save(ctx context.Context, ch *domain.OtpChallenge) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *ch
	s.byID[ch.ID] = &cp
	return nil
}

func (s *MemoryStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OtpStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ch, ok := s.byID[id]; ok {
		ch.Status = status
	}
	return nil
}
