package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/notes-auth-service/internal/domain"
)

// TokenRepository persists the single token pair owned by each user.
type TokenRepository interface {
	// Create inserts the initial pair at signup, where no prior record exists.
	Create(ctx context.Context, pair *domain.TokenPair) error
	// Upsert replaces any existing pair for the user, last-write-wins.
	Upsert(ctx context.Context, pair *domain.TokenPair) error
	GetByUserID(ctx context.Context, userID string) (*domain.TokenPair, error)
}

type tokenRepository struct {
	pool *pgxpool.Pool
}

// NewTokenRepository returns a Postgres-backed implementation.
func NewTokenRepository(pool *pgxpool.Pool) TokenRepository {
	return &tokenRepository{pool: pool}
}

func (r *tokenRepository) Create(ctx context.Context, pair *domain.TokenPair) error {
	const query = `
        INSERT INTO token_pairs (user_id, access_token, access_expires_at, refresh_token, refresh_expires_at)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		pair.UserID,
		pair.AccessToken.Token,
		pair.AccessToken.ExpiresAt,
		pair.RefreshToken.Token,
		pair.RefreshToken.ExpiresAt,
	).Scan(&pair.ID, &pair.CreatedAt, &pair.UpdatedAt)
}

func (r *tokenRepository) Upsert(ctx context.Context, pair *domain.TokenPair) error {
	const query = `
        INSERT INTO token_pairs (user_id, access_token, access_expires_at, refresh_token, refresh_expires_at)
        VALUES ($1, $2, $3, $4, $5)
        ON CONFLICT (user_id) DO UPDATE SET
            access_token=EXCLUDED.access_token,
            access_expires_at=EXCLUDED.access_expires_at,
            refresh_token=EXCLUDED.refresh_token,
            refresh_expires_at=EXCLUDED.refresh_expires_at,
            updated_at=NOW()
        RETURNING id, created_at, updated_at`

	return r.pool.QueryRow(ctx, query,
		pair.UserID,
		pair.AccessToken.Token,
		pair.AccessToken.ExpiresAt,
		pair.RefreshToken.Token,
		pair.RefreshToken.ExpiresAt,
	).Scan(&pair.ID, &pair.CreatedAt, &pair.UpdatedAt)
}

func (r *tokenRepository) GetByUserID(ctx context.Context, userID string) (*domain.TokenPair, error) {
	const query = `
        SELECT id, user_id, access_token, access_expires_at, refresh_token, refresh_expires_at, created_at, updated_at
        FROM token_pairs WHERE user_id=$1`

	var pair domain.TokenPair
	if err := r.pool.QueryRow(ctx, query, userID).Scan(
		&pair.ID,
		&pair.UserID,
		&pair.AccessToken.Token,
		&pair.AccessToken.ExpiresAt,
		&pair.RefreshToken.Token,
		&pair.RefreshToken.ExpiresAt,
		&pair.CreatedAt,
		&pair.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &pair, nil
}
