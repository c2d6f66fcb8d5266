package repository

import (
	"context"
	"errors"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// uniqueViolation is the PostgreSQL error code for a unique constraint failure.
const uniqueViolation = "23505"

// accountRepository implements the AccountRepository interface using PostgreSQL.
type accountRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewAccountRepository creates a new PostgreSQL-backed account repository.
func NewAccountRepository(pool *pgxpool.Pool, logger zerolog.Logger) AccountRepository {
	return &accountRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "account").Logger(),
	}
}

// Create inserts a new account.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	query := `
		INSERT INTO accounts (id, name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := r.pool.Exec(ctx, query, account.ID, account.Name, account.Email, account.PasswordHash, account.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			r.logger.Debug().Str("email", account.Email).Msg("email already registered")
			return model.ErrEmailTaken
		}
		r.logger.Error().Err(err).Str("account_id", account.ID.String()).Msg("failed to create account")
		return fmt.Errorf("failed to create account: %w", err)
	}

	r.logger.Debug().Str("account_id", account.ID.String()).Msg("account created")
	return nil
}

// GetByEmail retrieves an account by email.
func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	return r.getOne(ctx, "email", email)
}

// GetByID retrieves an account by ID.
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error) {
	return r.getOne(ctx, "id", id)
}

// getOne looks an account up by a unique column.
func (r *accountRepository) getOne(ctx context.Context, column string, value any) (*model.Account, error) {
	query := fmt.Sprintf(`
		SELECT id, name, email, password_hash, created_at
		FROM accounts
		WHERE %s = $1
	`, column)

	var a model.Account
	err := r.pool.QueryRow(ctx, query, value).Scan(&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("by", column).Msg("failed to query account")
		return nil, fmt.Errorf("failed to query account: %w", err)
	}

	return &a, nil
}
