package handler

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/model"
	"storefront/internal/service"

	"github.com/rs/zerolog"
)

// ProductHandler handles catalog HTTP requests.
type ProductHandler struct {
	service service.ProductService
	logger  zerolog.Logger
}

// NewProductHandler creates a new product handler.
func NewProductHandler(service service.ProductService, logger zerolog.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		logger:  logger.With().Str("handler", "product").Logger(),
	}
}

// List handles GET /items?category=&minPrice=&maxPrice= requests.
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	query := r.URL.Query()
	filter := model.ProductFilter{Category: strings.TrimSpace(query.Get("category"))}

	var err error
	if filter.MinPrice, err = parsePrice(query.Get("minPrice")); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPrice, "invalid minPrice parameter", h.logger)
		return
	}
	if filter.MaxPrice, err = parsePrice(query.Get("maxPrice")); err != nil {
		writeError(w, r, http.StatusBadRequest, model.ErrCodeInvalidPrice, "invalid maxPrice parameter", h.logger)
		return
	}

	products, err := h.service.List(r.Context(), filter)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, products)
}

// Categories handles GET /items/categories requests.
func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	if !allowMethod(w, r, http.MethodGet, h.logger) {
		return
	}

	categories, err := h.service.Categories(r.Context())
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}

	writeJSON(w, http.StatusOK, categories)
}

// parsePrice parses an optional non-negative price parameter.
func parsePrice(raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, strconv.ErrRange
	}
	return &v, nil
}
