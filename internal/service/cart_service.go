package service

import (
	"context"
	"fmt"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// Add adds an item to the user's cart. A zero quantity means one unit.
func (s *cartService) Add(ctx context.Context, userID uuid.UUID, req *model.AddToCartRequest) (model.Cart, error) {
	if req == nil {
		return nil, fmt.Errorf("add to cart request is nil")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 {
		s.logger.Warn().Int("quantity", req.Quantity).Msg("invalid quantity")
		return nil, model.ErrInvalidQuantity
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, req.ItemID)
	if err != nil {
		return nil, fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil {
		s.logger.Debug().Str("product_id", req.ItemID).Msg("add to cart for unknown product")
		return nil, model.ErrProductNotFound
	}

	if err := s.cartRepo.AddItem(ctx, userID, product.ID, req.Quantity); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	s.logger.Info().
		Str("account_id", userID.String()).
		Str("product_id", product.ID).
		Int("quantity", req.Quantity).
		Msg("item added to cart")

	return s.Get(ctx, userID)
}

// Get retrieves the user's cart.
func (s *cartService) Get(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	cart, err := s.cartRepo.GetCart(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}
	return cart, nil
}
