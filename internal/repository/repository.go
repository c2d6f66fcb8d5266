package repository

import (
	"context"
	"time"

	"storefront/internal/model"

	"github.com/google/uuid"
)

// ProductRepository defines the interface for catalog data access operations.
type ProductRepository interface {
	// List retrieves the products matching filter, ordered by name.
	List(ctx context.Context, filter model.ProductFilter) ([]model.Product, error)

	// Categories retrieves the distinct product categories in sorted order.
	Categories(ctx context.Context) ([]string, error)

	// GetByID retrieves a single product by its ID. Returns nil, nil when
	// the product does not exist.
	GetByID(ctx context.Context, id string) (*model.Product, error)

	// Upsert inserts products, replacing existing rows with the same ID.
	// Returns the number of rows written.
	Upsert(ctx context.Context, products []model.Product) (int, error)
}

// AccountRepository defines the interface for shopper account storage.
type AccountRepository interface {
	// Create inserts a new account. Returns model.ErrEmailTaken when the
	// email is already registered.
	Create(ctx context.Context, account *model.Account) error

	// GetByEmail retrieves an account by email. Returns nil, nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.Account, error)

	// GetByID retrieves an account by ID. Returns nil, nil when absent.
	GetByID(ctx context.Context, id uuid.UUID) (*model.Account, error)
}

// SessionRepository defines the interface for bearer token storage.
type SessionRepository interface {
	// Create stores token for userID until expiresAt.
	Create(ctx context.Context, token string, userID uuid.UUID, expiresAt time.Time) error

	// Resolve returns the user owning an unexpired token, or uuid.Nil when
	// the token is unknown or expired.
	Resolve(ctx context.Context, token string) (uuid.UUID, error)
}

// CartRepository defines the interface for server-side carts.
type CartRepository interface {
	// AddItem adds quantity units of productID to the user's cart.
	AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error

	// GetCart retrieves the user's cart lines in the order they were first added.
	GetCart(ctx context.Context, userID uuid.UUID) (model.Cart, error)
}
