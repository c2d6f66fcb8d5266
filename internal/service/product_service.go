package service

import (
	"context"
	"fmt"
	"math"
	"strings"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/rs/zerolog"
)

// productService implements ProductService.
type productService struct {
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(productRepo repository.ProductRepository, logger zerolog.Logger) ProductService {
	return &productService{
		productRepo: productRepo,
		logger:      logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves the products matching filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error) {
	if filter.MinPrice != nil && filter.MaxPrice != nil && *filter.MinPrice > *filter.MaxPrice {
		s.logger.Warn().
			Float64("min_price", *filter.MinPrice).
			Float64("max_price", *filter.MaxPrice).
			Msg("invalid price range")
		return nil, model.ErrInvalidPriceRange
	}

	products, err := s.productRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error().Err(err).Str("category", filter.Category).Msg("failed to list products")
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	s.logger.Debug().
		Int("count", len(products)).
		Str("category", filter.Category).
		Msg("retrieved products")

	return products, nil
}

// Categories retrieves the distinct product categories.
func (s *productService) Categories(ctx context.Context) ([]string, error) {
	categories, err := s.productRepo.Categories(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to list categories")
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetByID retrieves a single product by ID.
func (s *productService) GetByID(ctx context.Context, id string) (*model.Product, error) {
	if id == "" {
		s.logger.Warn().Msg("product ID is empty")
		return nil, model.ErrProductNotFound
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error().Err(err).Str("product_id", id).Msg("failed to get product by ID")
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		s.logger.Debug().Str("product_id", id).Msg("product not found")
		return nil, model.ErrProductNotFound
	}

	return product, nil
}

// Seed writes products into the catalog. Entries without an ID, name or
// category, or with a negative or non-finite price, are skipped.
func (s *productService) Seed(ctx context.Context, products []model.Product) (int, error) {
	valid := make([]model.Product, 0, len(products))
	for _, p := range products {
		p.ID = strings.TrimSpace(p.ID)
		p.Name = strings.TrimSpace(p.Name)
		p.Category = strings.TrimSpace(p.Category)
		if p.ID == "" || p.Name == "" || p.Category == "" || p.Price < 0 || math.IsNaN(p.Price) || math.IsInf(p.Price, 0) {
			s.logger.Warn().Str("product_id", p.ID).Msg("skipping invalid seed product")
			continue
		}
		valid = append(valid, p)
	}

	n, err := s.productRepo.Upsert(ctx, valid)
	if err != nil {
		s.logger.Error().Err(err).Int("written", n).Msg("failed to seed products")
		return n, fmt.Errorf("failed to seed products: %w", err)
	}

	s.logger.Info().
		Int("received", len(products)).
		Int("written", n).
		Msg("catalog seeded")

	return n, nil
}
