package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"storefront/internal/model"
)

// ListItems calls GET /items with the given query parameters.
func (c *Client) ListItems(ctx context.Context, params url.Values) ([]model.Product, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/items", query: params})
	if err != nil {
		return nil, err
	}

	var products []model.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return products, nil
}

// ListCategories calls GET /items/categories. A body that is not an array
// of strings is an error.
func (c *Client) ListCategories(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, request{method: http.MethodGet, path: "/items/categories"})
	if err != nil {
		return nil, err
	}

	var categories []string
	if err := json.Unmarshal(data, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if categories == nil {
		return nil, fmt.Errorf("categories response is not an array")
	}
	return categories, nil
}

// AddToCart calls POST /cart/add. When the response carries a cart, either
// as {cart: [...]} or a bare array, it is returned with ok set. Any other
// success body yields ok == false and no error.
func (c *Client) AddToCart(ctx context.Context, token, itemID string, quantity int) (cart model.Cart, ok bool, err error) {
	data, err := c.do(ctx, request{
		method: http.MethodPost,
		path:   "/cart/add",
		token:  token,
		body: map[string]interface{}{
			"itemId":   itemID,
			"quantity": quantity,
		},
	})
	if err != nil {
		return nil, false, err
	}

	cart, ok = decodeCart(data)
	if !ok {
		c.logger.Debug().Str("item_id", itemID).Msg("add to cart returned no usable cart")
	}
	return cart, ok, nil
}

// Login calls POST /auth/login.
func (c *Client) Login(ctx context.Context, creds model.Credentials) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/login", creds)
}

// Signup calls POST /auth/signup.
func (c *Client) Signup(ctx context.Context, req model.SignupRequest) (*model.AuthResponse, error) {
	return c.authenticate(ctx, "/auth/signup", req)
}

func (c *Client) authenticate(ctx context.Context, path string, body interface{}) (*model.AuthResponse, error) {
	data, err := c.do(ctx, request{method: http.MethodPost, path: path, body: body})
	if err != nil {
		return nil, err
	}

	var resp model.AuthResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to decode auth response: %w", err)
	}
	if resp.Token == "" {
		return nil, fmt.Errorf("auth response has no token")
	}
	return &resp, nil
}

// decodeCart recognises {cart: [...]} or a bare array of cart lines.
func decodeCart(data []byte) (model.Cart, bool) {
	var wrapped struct {
		Cart json.RawMessage `json:"cart"`
	}
	if err := json.Unmarshal(data, &wrapped); err == nil && len(wrapped.Cart) > 0 {
		return decodeLines(wrapped.Cart)
	}
	return decodeLines(data)
}

func decodeLines(data []byte) (model.Cart, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, false
	}
	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return nil, false
	}
	if cart == nil {
		cart = model.Cart{}
	}
	return cart, true
}
