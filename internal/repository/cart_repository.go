package repository

import (
	"context"
	"fmt"

	"storefront/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// AddItem adds quantity units of productID, creating the line if needed.
func (r *cartRepository) AddItem(ctx context.Context, userID uuid.UUID, productID string, quantity int) error {
	query := `
		INSERT INTO cart_items (account_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (account_id, product_id) DO UPDATE
		SET quantity = cart_items.quantity + EXCLUDED.quantity
	`

	if _, err := r.pool.Exec(ctx, query, userID, productID, quantity); err != nil {
		r.logger.Error().Err(err).
			Str("account_id", userID.String()).
			Str("product_id", productID).
			Int("quantity", quantity).
			Msg("failed to add cart item")
		return fmt.Errorf("failed to add cart item: %w", err)
	}

	r.logger.Debug().
		Str("account_id", userID.String()).
		Str("product_id", productID).
		Msg("cart item added")

	return nil
}

// GetCart retrieves the user's cart joined with current product details.
func (r *cartRepository) GetCart(ctx context.Context, userID uuid.UUID) (model.Cart, error) {
	query := `
		SELECT p.id, p.name, p.price, p.image, p.category, c.quantity
		FROM cart_items c
		JOIN products p ON p.id = c.product_id
		WHERE c.account_id = $1
		ORDER BY c.added_at, p.id
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Str("account_id", userID.String()).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	cart := model.Cart{}
	for rows.Next() {
		var line model.CartLine
		if err := rows.Scan(&line.ProductID, &line.Name, &line.Price, &line.Image, &line.Category, &line.Quantity); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}
		cart = append(cart, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart: %w", err)
	}

	return cart, nil
}
