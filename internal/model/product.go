package model

import (
	"encoding/json"
	"time"
)

// FallbackCategories is used when the catalog cannot list its categories.
var FallbackCategories = []string{
	"Electronics",
	"Clothing",
	"Footwear",
	"Accessories",
}

// Product represents an item in the remote catalog.
type Product struct {
	ID        string    `json:"_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     float64   `json:"price" db:"price"`
	Category  string    `json:"category" db:"category"`
	Image     string    `json:"image" db:"image"`
	CreatedAt time.Time `json:"createdAt,omitempty" db:"created_at"`
}

// ProductFilter holds catalog query filters. Zero values mean "no filter".
type ProductFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
}

// UnmarshalJSON accepts both "_id" and "id" as the product identifier and
// tolerates non-numeric prices.
func (p *Product) UnmarshalJSON(data []byte) error {
	var raw struct {
		UnderscoreID string          `json:"_id"`
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Price        json.RawMessage `json:"price"`
		Category     string          `json:"category"`
		Image        string          `json:"image"`
		CreatedAt    time.Time       `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = Product{
		ID:        firstNonEmpty(raw.UnderscoreID, raw.ID),
		Name:      raw.Name,
		Price:     parsePrice(raw.Price),
		Category:  raw.Category,
		Image:     raw.Image,
		CreatedAt: raw.CreatedAt,
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
