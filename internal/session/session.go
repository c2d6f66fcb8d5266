// Package session keeps the authenticated identity of the storefront
// client in the local store.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"storefront/internal/client"
	"storefront/internal/model"
	"storefront/internal/storage"

	"github.com/rs/zerolog"
)

// Fallback messages shown when the server gives no reason.
const (
	MsgLoginFailed  = "Error logging in"
	MsgSignupFailed = "Error signing up"
)

// Authenticator is the remote auth endpoint.
type Authenticator interface {
	Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error)
	Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error)
}

// Manager owns the token and user keys of the local store.
type Manager struct {
	store  storage.Store
	auth   Authenticator
	logger zerolog.Logger
}

// NewManager creates a session manager.
func NewManager(store storage.Store, auth Authenticator, logger zerolog.Logger) *Manager {
	return &Manager{
		store:  store,
		auth:   auth,
		logger: logger.With().Str("component", "session").Logger(),
	}
}

// Current returns the stored session, or nil in anonymous mode. A stored
// user that cannot be decoded leaves the profile empty; the token alone
// decides whether a session exists.
func (m *Manager) Current(ctx context.Context) *model.Session {
	token, err := m.store.Get(ctx, storage.KeyToken)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			m.logger.Warn().Err(err).Msg("failed to read token, treating as anonymous")
		}
		return nil
	}
	if token == "" {
		return nil
	}

	sess := &model.Session{Token: token}

	raw, err := m.store.Get(ctx, storage.KeyUser)
	if err == nil {
		if err := json.Unmarshal([]byte(raw), &sess.User); err != nil {
			m.logger.Warn().Err(err).Msg("stored user is malformed")
			sess.User = model.User{}
		}
	}
	return sess
}

// Login authenticates and stores the new session.
func (m *Manager) Login(ctx context.Context, email, password string) (*model.Session, error) {
	resp, err := m.auth.Login(ctx, model.Credentials{Email: email, Password: password})
	if err != nil {
		m.logger.Warn().Err(err).Str("email", email).Msg("login failed")
		return nil, withFallbackMessage(err, MsgLoginFailed)
	}
	return m.save(ctx, resp)
}

// Signup creates an account and stores the new session.
func (m *Manager) Signup(ctx context.Context, name, email, password string) (*model.Session, error) {
	resp, err := m.auth.Signup(ctx, model.SignupRequest{Name: name, Email: email, Password: password})
	if err != nil {
		m.logger.Warn().Err(err).Str("email", email).Msg("signup failed")
		return nil, withFallbackMessage(err, MsgSignupFailed)
	}
	return m.save(ctx, resp)
}

// Logout removes the token and user. The cart is left untouched.
func (m *Manager) Logout(ctx context.Context) error {
	if err := m.store.Delete(ctx, storage.KeyToken); err != nil {
		return fmt.Errorf("failed to remove token: %w", err)
	}
	if err := m.store.Delete(ctx, storage.KeyUser); err != nil {
		return fmt.Errorf("failed to remove user: %w", err)
	}
	m.logger.Info().Msg("logged out")
	return nil
}

func (m *Manager) save(ctx context.Context, resp *model.AuthResponse) (*model.Session, error) {
	user, err := json.Marshal(resp.User)
	if err != nil {
		return nil, fmt.Errorf("failed to encode user: %w", err)
	}

	if err := m.store.Set(ctx, storage.KeyToken, resp.Token); err != nil {
		return nil, fmt.Errorf("failed to store token: %w", err)
	}
	if err := m.store.Set(ctx, storage.KeyUser, string(user)); err != nil {
		return nil, fmt.Errorf("failed to store user: %w", err)
	}

	m.logger.Info().Str("email", resp.User.Email).Msg("session started")
	return &model.Session{Token: resp.Token, User: resp.User}, nil
}

// AuthError is returned by Login and Signup. Message is safe to show to
// the user.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

// withFallbackMessage wraps err with the server's message, or fallback
// when the server gave none.
func withFallbackMessage(err error, fallback string) error {
	msg := fallback
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		msg = apiErr.Message
	}
	return &AuthError{Message: msg, Err: err}
}
