package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartLine_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected CartLine
	}{
		{
			name:  "Flat shape",
			input: `{"_id":"p1","name":"Lamp","price":12.5,"image":"lamp.png","category":"Home","quantity":3}`,
			expected: CartLine{
				ProductID: "p1", Name: "Lamp", Price: 12.5, Image: "lamp.png", Category: "Home", Quantity: 3,
			},
		},
		{
			name:  "Nested item shape",
			input: `{"_id":"line-9","item":{"_id":"p2","name":"Shoe","price":40,"category":"Footwear"},"quantity":2}`,
			expected: CartLine{
				ProductID: "p2", Name: "Shoe", Price: 40, Category: "Footwear", Quantity: 2,
			},
		},
		{
			name:     "Alternate id key",
			input:    `{"id":"p3","price":1}`,
			expected: CartLine{ProductID: "p3", Price: 1, Quantity: 1},
		},
		{
			name:     "Missing quantity defaults to one",
			input:    `{"_id":"p4","price":5}`,
			expected: CartLine{ProductID: "p4", Price: 5, Quantity: 1},
		},
		{
			name:     "Zero quantity defaults to one",
			input:    `{"_id":"p4","price":5,"quantity":0}`,
			expected: CartLine{ProductID: "p4", Price: 5, Quantity: 1},
		},
		{
			name:     "Numeric string price parses",
			input:    `{"_id":"p5","price":"19.99","quantity":1}`,
			expected: CartLine{ProductID: "p5", Price: 19.99, Quantity: 1},
		},
		{
			name:     "Non-numeric price is zero",
			input:    `{"_id":"p6","price":"free","quantity":2}`,
			expected: CartLine{ProductID: "p6", Price: 0, Quantity: 2},
		},
		{
			name:     "Missing price is zero",
			input:    `{"_id":"p7","quantity":2}`,
			expected: CartLine{ProductID: "p7", Price: 0, Quantity: 2},
		},
		{
			name:     "Object price is zero",
			input:    `{"_id":"p8","price":{"amount":3},"quantity":1}`,
			expected: CartLine{ProductID: "p8", Price: 0, Quantity: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var line CartLine
			require.NoError(t, json.Unmarshal([]byte(tt.input), &line))
			assert.Equal(t, tt.expected, line)
		})
	}
}

func TestCartLine_MarshalFlatShape(t *testing.T) {
	line := CartLine{ProductID: "p1", Name: "Lamp", Price: 10, Image: "i.png", Category: "Home", Quantity: 2}

	data, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(t, `{"_id":"p1","name":"Lamp","price":10,"image":"i.png","category":"Home","quantity":2}`, string(data))
}

func TestCart_Total(t *testing.T) {
	cart := Cart{
		{ProductID: "a", Price: 10, Quantity: 2},
		{ProductID: "b", Price: 2.5, Quantity: 4},
		{ProductID: "c", Price: 0, Quantity: 7},
	}
	assert.InDelta(t, 30.0, cart.Total(), 1e-9)

	reversed := Cart{cart[2], cart[1], cart[0]}
	assert.InDelta(t, cart.Total(), reversed.Total(), 1e-9)

	assert.Zero(t, Cart{}.Total())
}

func TestCart_Find(t *testing.T) {
	cart := Cart{{ProductID: "a"}, {ProductID: "b"}}

	assert.Equal(t, 1, cart.Find("b"))
	assert.Equal(t, -1, cart.Find("z"))
}

func TestCart_Normalize(t *testing.T) {
	cart := Cart{
		{ProductID: "a", Name: "first", Quantity: 1},
		{ProductID: "b", Quantity: 0},
		{ProductID: "", Quantity: 5},
		{ProductID: "a", Name: "second", Quantity: 2},
	}

	got := cart.Normalize()

	require.Len(t, got, 2)
	assert.Equal(t, CartLine{ProductID: "a", Name: "first", Quantity: 3}, got[0])
	assert.Equal(t, CartLine{ProductID: "b", Quantity: 1}, got[1])
}

func TestCart_CloneIsIndependent(t *testing.T) {
	cart := Cart{{ProductID: "a", Quantity: 1}}
	clone := cart.Clone()
	clone[0].Quantity = 9

	assert.Equal(t, 1, cart[0].Quantity)
}

func TestProduct_UnmarshalJSON(t *testing.T) {
	var products []Product
	input := `[{"_id":"p1","name":"TV","price":499,"category":"Electronics","image":"tv.png"},{"id":"p2","name":"Hat","price":"12"}]`

	require.NoError(t, json.Unmarshal([]byte(input), &products))
	require.Len(t, products, 2)
	assert.Equal(t, "p1", products[0].ID)
	assert.Equal(t, 499.0, products[0].Price)
	assert.Equal(t, "p2", products[1].ID)
	assert.Equal(t, 12.0, products[1].Price)
}
