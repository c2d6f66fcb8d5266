package model

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// CartLine is one product entry in a cart. Product fields are a
// denormalized snapshot taken when the line was created.
type CartLine struct {
	ProductID string  `json:"_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Category  string  `json:"category"`
	Quantity  int     `json:"quantity"`
}

// NewCartLine snapshots a product into a cart line.
func NewCartLine(p Product, quantity int) CartLine {
	return CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Category:  p.Category,
		Quantity:  quantity,
	}
}

// Subtotal returns price × quantity for the line.
func (l CartLine) Subtotal() float64 {
	return l.Price * float64(l.Quantity)
}

// UnmarshalJSON decodes both the flat shape written by the client and the
// nested {item: {...}, quantity} shape some servers return. A missing
// quantity decodes as 1 and a non-numeric price as 0.
func (l *CartLine) UnmarshalJSON(data []byte) error {
	type snapshot struct {
		UnderscoreID string          `json:"_id"`
		ID           string          `json:"id"`
		ProductID    string          `json:"productId"`
		Name         string          `json:"name"`
		Price        json.RawMessage `json:"price"`
		Image        string          `json:"image"`
		Category     string          `json:"category"`
	}
	var raw struct {
		snapshot
		Item     *snapshot       `json:"item"`
		Quantity json.RawMessage `json:"quantity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	src := raw.snapshot
	id := firstNonEmpty(src.UnderscoreID, src.ID, src.ProductID)
	if raw.Item != nil {
		src = *raw.Item
		id = firstNonEmpty(src.UnderscoreID, src.ID, src.ProductID, raw.ProductID)
	}

	*l = CartLine{
		ProductID: id,
		Name:      src.Name,
		Price:     parsePrice(src.Price),
		Image:     src.Image,
		Category:  src.Category,
		Quantity:  parseQuantity(raw.Quantity),
	}
	return nil
}

// Cart is an ordered collection of cart lines, at most one per product.
type Cart []CartLine

// Find returns the index of the line for productID, or -1.
func (c Cart) Find(productID string) int {
	for i, line := range c {
		if line.ProductID == productID {
			return i
		}
	}
	return -1
}

// Count returns the number of lines in the cart.
func (c Cart) Count() int {
	return len(c)
}

// Total returns the sum of price × quantity across all lines.
func (c Cart) Total() float64 {
	var total float64
	for _, line := range c {
		total += line.Subtotal()
	}
	return total
}

// Clone returns a copy that shares no backing array with c.
func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	copy(out, c)
	return out
}

// Normalize coalesces duplicate product lines (summing quantities, keeping
// the first snapshot and position), clamps quantities to at least 1 and
// drops lines without a product identifier.
func (c Cart) Normalize() Cart {
	out := make(Cart, 0, len(c))
	index := make(map[string]int, len(c))
	for _, line := range c {
		if line.ProductID == "" {
			continue
		}
		if line.Quantity < 1 {
			line.Quantity = 1
		}
		if i, ok := index[line.ProductID]; ok {
			out[i].Quantity += line.Quantity
			continue
		}
		index[line.ProductID] = len(out)
		out = append(out, line)
	}
	return out
}

// parsePrice reads a JSON price leniently. Anything that is not a finite
// number, or a string holding one, is zero.
func parsePrice(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return 0
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err == nil {
		return finiteOrZero(v)
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return finiteOrZero(f)
		}
	}
	return 0
}

// parseQuantity reads a JSON quantity; missing or invalid values are 1.
func parseQuantity(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 1
	}

	var v float64
	if err := json.Unmarshal(raw, &v); err != nil || math.IsNaN(v) || v < 1 {
		return 1
	}
	if v > math.MaxInt32 {
		return math.MaxInt32
	}
	return int(v)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
