package handler

import (
	"net/http"

	"storefront/internal/middleware"
	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// CartHandler handles server-side cart requests. Routes must be wrapped in
// middleware.BearerAuth.
type CartHandler struct {
	service service.CartService
	logger  zerolog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(service service.CartService, logger zerolog.Logger) *CartHandler {
	return &CartHandler{
		service: service,
		logger:  logger.With().Str("handler", "cart").Logger(),
	}
}

// Add handles POST /cart/add requests.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodPost, h.logger) {
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrUnauthorised, h.logger)
		return
	}

	var req model.AddToCartRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	cart, err := h.service.Add(r.Context(), userID, &req)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Cart: cart})
}

// Get handles GET /cart requests.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	userID, ok := middleware.UserID(r.Context())
	if !ok {
		writeServiceError(w, r, model.ErrUnauthorised, h.logger)
		return
	}

	cart, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, model.CartResponse{Cart: cart})
}
