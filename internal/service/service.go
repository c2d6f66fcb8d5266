package service

import (
	"context"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductService defines operations for the product catalog.
type ProductService interface {
	// List retrieves the products matching filter.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Categories retrieves the distinct product categories.
	Categories(ctx context.Context) ([]string, error)

	// GetByID retrieves a single product by ID.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Seed writes products into the catalog, skipping invalid entries.
	Seed(ctx context.Context, products []model.Product) (int, error)
}

// AuthService defines shopper account and session operations.
type AuthService interface {
	// Signup creates an account and starts a session for it.
	Signup(ctx context.Context, req *model.SignupRequest) (*model.AuthResponse, error)

	// Login verifies credentials and starts a session.
	Login(ctx context.Context, creds *model.Credentials) (*model.AuthResponse, error)

	// Authenticate resolves a bearer token to its account ID.
	Authenticate(ctx context.Context, token string) (uuid.UUID, error)
}

// CartService defines operations on server-side carts.
type CartService interface {
	// Add adds an item to the user's cart and returns the updated cart.
	Add(ctx context.Context, userID uuid.UUID, req *model.AddToCartRequest) (model.Cart, error)

	// Get retrieves the user's cart.
	Get(ctx context.Context, userID uuid.UUID) (model.Cart, error)
}
