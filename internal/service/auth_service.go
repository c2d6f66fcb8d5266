package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/alexedwards/argon2id"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	accounts repository.AccountRepository
	sessions repository.SessionRepository
	params   *argon2id.Params
	tokenTTL time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service. Passwords are hashed with
// params, or argon2id.DefaultParams when params is nil.
func NewAuthService(
	accounts repository.AccountRepository,
	sessions repository.SessionRepository,
	params *argon2id.Params,
	tokenTTL time.Duration,
	logger zerolog.Logger,
) AuthService {
	if params == nil {
		params = argon2id.DefaultParams
	}
	return &authService{
		accounts: accounts,
		sessions: sessions,
		params:   params,
		tokenTTL: tokenTTL,
		now:      time.Now,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// normaliseEmail makes email lookups case-insensitive.
func normaliseEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Signup creates an account and starts a session for it.
func (s *authService) Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("signup request is nil")
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = normaliseEmail(req.Email)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	hash, err := argon2id.CreateHash(req.Password, s.params)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	account := &model.Account{
		ID:           uuid.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    s.now().UTC(),
	}
	if err := s.accounts.Create(ctx, account); err != nil {
		if err == model.ErrEmailTaken {
			s.logger.Warn().Str("email", req.Email).Msg("signup with registered email")
			return nil, err
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info().Str("account_id", account.ID.String()).Msg("account created")

	return s.startSession(ctx, account)
}

// Login verifies credentials and starts a session.
func (s *authService) Login(ctx context.Context, creds *model.Credentials) (*model.AuthResponse, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials are nil")
	}
	creds.Email = normaliseEmail(creds.Email)
	if err := validateRequest(creds); err != nil {
		return nil, err
	}

	account, err := s.accounts.GetByEmail(ctx, creds.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if account == nil {
		s.logger.Debug().Str("email", creds.Email).Msg("login for unknown email")
		return nil, model.ErrInvalidCredentials
	}

	match, err := argon2id.ComparePasswordAndHash(creds.Password, account.PasswordHash)
	if err != nil {
		s.logger.Error().Err(err).Str("account_id", account.ID.String()).Msg("stored password hash is unreadable")
		return nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !match {
		s.logger.Debug().Str("account_id", account.ID.String()).Msg("wrong password")
		return nil, model.ErrInvalidCredentials
	}

	return s.startSession(ctx, account)
}

// Authenticate resolves a bearer token to its account ID.
func (s *authService) Authenticate(ctx context.Context, token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, model.ErrUnauthorised
	}

	userID, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to resolve token: %w", err)
	}
	if userID == uuid.Nil {
		return uuid.Nil, model.ErrUnauthorised
	}

	return userID, nil
}

func (s *authService) startSession(ctx context.Context, account *model.Account) (*model.AuthResponse, error) {
	token := uuid.NewString()
	expiresAt := s.now().Add(s.tokenTTL)

	if err := s.sessions.Create(ctx, token, account.ID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s.logger.Debug().
		Str("account_id", account.ID.String()).
		Time("expires_at", expiresAt).
		Msg("session started")

	return &model.AuthResponse{Token: token, User: account.Profile()}, nil
}
