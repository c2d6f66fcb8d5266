package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// sessionRepository implements the SessionRepository interface using PostgreSQL.
type sessionRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewSessionRepository creates a new PostgreSQL-backed session repository.
func NewSessionRepository(pool *pgxpool.Pool, logger zerolog.Logger) SessionRepository {
	return &sessionRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "session").Logger(),
	}
}

// Create stores token for userID until expiresAt.
func (r *sessionRepository) Create(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error {
	query := `
		INSERT INTO sessions (token, account_id, expires_at)
		VALUES ($1, $2, $3)
	`

	if _, err := r.pool.Exec(ctx, query, token, userID, expiresAt); err != nil {
		r.logger.Error().Err(err).Str("account_id", userID.String()).Msg("failed to create session")
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// Resolve returns the user owning an unexpired token.
func (r *sessionRepository) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	query := `
		SELECT account_id
		FROM sessions
		WHERE token = $1 AND expires_at > NOW()
	`

	var userID uuid.UUID
	err := r.pool.QueryRow(ctx, query, token).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, nil
		}
		r.logger.Error().Err(err).Msg("failed to resolve session")
		return uuid.Nil, fmt.Errorf("failed to resolve session: %w", err)
	}

	return userID, nil
}
