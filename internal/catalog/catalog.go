// Package catalog queries the remote product catalog on behalf of the
// storefront client.
package catalog

import (
	"context"
	"net/url"
	"strconv"
	"sync"

	"storefront/internal/model"

	"github.com/rs/zerolog"
)

// DefaultPriceCeiling is the max-price value that means "no upper bound".
const DefaultPriceCeiling = 2000

// Filters selects products. Zero values are defaults and are not sent:
// an empty Category, MinPrice <= 0, and MaxPrice <= 0 or at/above the
// ceiling.
type Filters struct {
	Category string
	MinPrice float64
	MaxPrice float64
}

// Source is the remote catalog endpoint.
type Source interface {
	ListItems(ctx context.Context, params url.Values) ([]model.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// Service defines catalog operations used by the storefront.
type Service interface {
	// Query returns matching products. Failures yield an empty list.
	Query(ctx context.Context, filters Filters) []model.Product

	// Last returns the result set of the most recent Query.
	Last() []model.Product

	// ListCategories returns the distinct category labels, or
	// model.FallbackCategories when the remote cannot supply them.
	ListCategories(ctx context.Context) []string
}

// service implements Service.
type service struct {
	source  Source
	ceiling float64
	logger  zerolog.Logger

	mu   sync.RWMutex
	last []model.Product
}

// NewService creates a catalog service. A non-positive ceiling uses
// DefaultPriceCeiling.
func NewService(source Source, ceiling float64, logger zerolog.Logger) Service {
	if ceiling <= 0 {
		ceiling = DefaultPriceCeiling
	}
	return &service{
		source:  source,
		ceiling: ceiling,
		logger:  logger.With().Str("service", "catalog").Logger(),
		last:    []model.Product{},
	}
}

// Params returns the query parameters for filters, omitting defaults.
func Params(filters Filters, ceiling float64) url.Values {
	params := url.Values{}
	if filters.Category != "" {
		params.Set("category", filters.Category)
	}
	if filters.MinPrice > 0 {
		params.Set("minPrice", formatPrice(filters.MinPrice))
	}
	if filters.MaxPrice > 0 && filters.MaxPrice < ceiling {
		params.Set("maxPrice", formatPrice(filters.MaxPrice))
	}
	return params
}

// Query returns matching products, or an empty list if the remote call
// fails. An empty result and a failed query look the same to the caller.
func (s *service) Query(ctx context.Context, filters Filters) []model.Product {
	params := Params(filters, s.ceiling)

	products, err := s.source.ListItems(ctx, params)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("query", params.Encode()).
			Msg("catalog query failed, returning no items")
		products = nil
	}
	if products == nil {
		products = []model.Product{}
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("query", params.Encode()).
		Msg("retrieved products")

	s.mu.Lock()
	s.last = products
	s.mu.Unlock()

	return products
}

// Last returns the result set of the most recent Query.
func (s *service) Last() []model.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.last
}

// ListCategories returns remote categories, or the fallback set on failure.
func (s *service) ListCategories(ctx context.Context) []string {
	categories, err := s.source.ListCategories(ctx)
	if err != nil {
		s.logger.Debug().Err(err).Msg("categories unavailable, using fallback set")
		return fallbackCategories()
	}
	return categories
}

func fallbackCategories() []string {
	out := make([]string, len(model.FallbackCategories))
	copy(out, model.FallbackCategories)
	return out
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
