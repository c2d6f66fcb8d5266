package handler

import (
	"net/http"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// AuthHandler handles signup and login requests.
type AuthHandler struct {
	service service.AuthService
	logger  zerolog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(service service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{
		service: service,
		logger:  logger.With().Str("handler", "auth").Logger(),
	}
}

// Signup handles POST /auth/signup requests.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var req model.SignupRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Signup(r.Context(), &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Login handles POST /auth/login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	var creds model.Credentials
	if err := decodeJSON(w, r, &creds); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	resp, err := h.service.Login(r.Context(), &creds)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
