package otp

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"credauth/internal/domain"
)

func challenge(email string, createdAt time.Time) *domain.OtpChallenge {
	return &domain.OtpChallenge{
		ID:        uuid.New(),
		Email:     email,
		Code:      "123456",
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(10 * time.Minute),
		Status:    domain.OtpPending,
	}
}

func TestMemoryStorePending(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	got, err := s.Pending(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if got != nil {
		t.Fatalf("expected no challenge, got %+v", got)
	}

	ch := challenge("user@example.com", time.Now().UTC())
	if err := s.Save(ctx, ch); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err = s.Pending(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if got == nil || got.ID != ch.ID {
		t.Fatalf("expected saved challenge, got %+v", got)
	}

	// Other subjects never observe it.
	other, err := s.Pending(ctx, "other@example.com")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if other != nil {
		t.Fatalf("challenge leaked across subjects: %+v", other)
	}
}

func TestMemoryStorePendingReturnsLatest(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	now := time.Now().UTC()
	old := challenge("user@example.com", now.Add(-time.Minute))
	recent := challenge("user@example.com", now)
	if err := s.Save(ctx, old); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.Save(ctx, recent); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := s.Pending(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if got.ID != recent.ID {
		t.Fatalf("expected latest challenge, got %+v", got)
	}
}

func TestMemoryStoreUpdateStatus(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch := challenge("user@example.com", time.Now().UTC())
	if err := s.Save(ctx, ch); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := s.UpdateStatus(ctx, ch.ID, domain.OtpConsumed); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := s.Pending(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("pending: %v", err)
	}
	if got != nil {
		t.Fatalf("consumed challenge still pending: %+v", got)
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	ch := challenge("user@example.com", time.Now().UTC())
	if err := s.Save(ctx, ch); err != nil {
		t.Fatalf("save: %v", err)
	}

	// Mutating the returned value must not touch the stored row.
	got, _ := s.Pending(ctx, "user@example.com")
	got.Status = domain.OtpConsumed

	again, _ := s.Pending(ctx, "user@example.com")
	if again == nil {
		t.Fatal("stored challenge mutated through returned copy")
	}
}
