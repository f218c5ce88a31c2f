package otp

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"credauth/internal/domain"
)

type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore keeps challenges in an otp_challenges table so multiple
// instances can share supersession and single-use semantics.
type PostgresStore struct {
	pool querier
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) Pending(ctx context.Context, email string) (*domain.OtpChallenge, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, email, code, created_at, expires_at, status
		 FROM otp_challenges
		 WHERE email = $1 AND status = 'pending'
		 ORDER BY created_at DESC
		 LIMIT 1`, email)

	var ch domain.OtpChallenge
	err := row.Scan(&ch.ID, &ch.Email, &ch.Code, &ch.CreatedAt, &ch.ExpiresAt, &ch.Status)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (s *PostgresStore) Save(ctx context.Context, ch *domain.OtpChallenge) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO otp_challenges (id, email, code, created_at, expires_at, status)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		ch.ID, ch.Email, ch.Code, ch.CreatedAt, ch.ExpiresAt, ch.Status)
	return err
}

func (s *PostgresStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.OtpStatus) error {
	_, err := s.pool.Exec(ctx,
		`UPDATE otp_challenges SET status = $2 WHERE id = $1`, id, status)
	return err
}
