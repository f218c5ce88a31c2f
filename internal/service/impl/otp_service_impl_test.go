package impl

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"credauth/internal/domain"
	"credauth/internal/otp"
)

func newOtpService(ttl time.Duration) *OtpServiceImpl {
	return NewOtpService(OtpConfig{TTL: ttl}, otp.NewMemoryStore())
}

func TestOtpIssueShape(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	ch, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if ch.Email != "user@example.com" {
		t.Fatalf("unexpected email: %q", ch.Email)
	}
	if ch.Status != domain.OtpPending {
		t.Fatalf("expected pending, got %q", ch.Status)
	}
	if len(ch.Code) != 6 {
		t.Fatalf("expected 6-digit code, got %q", ch.Code)
	}
	for _, c := range ch.Code {
		if c < '0' || c > '9' {
			t.Fatalf("non-digit in code: %q", ch.Code)
		}
	}
	if got := ch.ExpiresAt.Sub(ch.CreatedAt); got != 10*time.Minute {
		t.Fatalf("unexpected ttl: %v", got)
	}
}

func TestOtpValidateSingleUse(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	ch, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if err := svc.Validate(ctx, "user@example.com", ch.Code); err != nil {
		t.Fatalf("first validate: %v", err)
	}
	// Second use of the same correct code must not find a challenge.
	if err := svc.Validate(ctx, "user@example.com", ch.Code); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Fatalf("expected ErrOtpNotFound, got %v", err)
	}
}

func TestOtpValidateMismatch(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	ch, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	wrong := "000000"
	if wrong == ch.Code {
		wrong = "000001"
	}
	if err := svc.Validate(ctx, "user@example.com", wrong); !errors.Is(err, domain.ErrOtpMismatch) {
		t.Fatalf("expected ErrOtpMismatch, got %v", err)
	}
	// Mismatch does not consume; the right code still works.
	if err := svc.Validate(ctx, "user@example.com", ch.Code); err != nil {
		t.Fatalf("validate after mismatch: %v", err)
	}
}

func TestOtpValidateNoChallenge(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	if err := svc.Validate(context.Background(), "nobody@example.com", "123456"); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Fatalf("expected ErrOtpNotFound, got %v", err)
	}
}

func TestOtpSupersession(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	first, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue first: %v", err)
	}
	second, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue second: %v", err)
	}

	// The first challenge is gone; its code can only collide with the
	// second's by value.
	if first.Code != second.Code {
		err := svc.Validate(ctx, "user@example.com", first.Code)
		if !errors.Is(err, domain.ErrOtpMismatch) {
			t.Fatalf("expected ErrOtpMismatch for superseded code, got %v", err)
		}
	}
	if err := svc.Validate(ctx, "user@example.com", second.Code); err != nil {
		t.Fatalf("validate second: %v", err)
	}
}

func TestOtpSupersessionIsolatedPerSubject(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	a, err := svc.Issue(ctx, "a@example.com")
	if err != nil {
		t.Fatalf("issue a: %v", err)
	}
	if _, err := svc.Issue(ctx, "b@example.com"); err != nil {
		t.Fatalf("issue b: %v", err)
	}

	// b's issuance must not supersede a's challenge.
	if err := svc.Validate(ctx, "a@example.com", a.Code); err != nil {
		t.Fatalf("validate a: %v", err)
	}
}

func TestOtpExpiry(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	issuedAt := time.Now().UTC()
	svc.now = func() time.Time { return issuedAt }

	ch, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	// Validated at T0+11min with a 10-minute TTL.
	svc.now = func() time.Time { return issuedAt.Add(11 * time.Minute) }
	if err := svc.Validate(ctx, "user@example.com", ch.Code); !errors.Is(err, domain.ErrOtpExpired) {
		t.Fatalf("expected ErrOtpExpired, got %v", err)
	}
	// The expiry transition is sticky: the challenge is no longer found.
	if err := svc.Validate(ctx, "user@example.com", ch.Code); !errors.Is(err, domain.ErrOtpNotFound) {
		t.Fatalf("expected ErrOtpNotFound after expiry, got %v", err)
	}
}

func TestOtpConcurrentValidateSingleWinner(t *testing.T) {
	svc := newOtpService(10 * time.Minute)
	ctx := context.Background()

	ch, err := svc.Issue(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	const attempts = 32
	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := svc.Validate(ctx, "user@example.com", ch.Code); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if successes != 1 {
		t.Fatalf("expected exactly one successful validation, got %d", successes)
	}
}
