package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockFlagUnmarshal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		inStock bool
	}{
		{name: "null is out of stock", input: `{"inStock": null}`, inStock: false},
		{name: "absent is out of stock", input: `{}`, inStock: false},
		{name: "zero is out of stock", input: `{"inStock": 0}`, inStock: false},
		{name: "false is out of stock", input: `{"inStock": false}`, inStock: false},
		{name: "one is in stock", input: `{"inStock": 1}`, inStock: true},
		{name: "true is in stock", input: `{"inStock": true}`, inStock: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p CatalogProduct
			require.NoError(t, json.Unmarshal([]byte(tt.input), &p))
			assert.Equal(t, tt.inStock, p.InStock.InStock())
		})
	}
}

func TestStockFlagUnmarshalRejectsStrings(t *testing.T) {
	var f StockFlag
	assert.Error(t, json.Unmarshal([]byte(`"yes"`), &f))
}

func TestStockFlagMarshalPreservesTriState(t *testing.T) {
	raw, err := json.Marshal(StockFlag{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))

	raw, err = json.Marshal(StockFlag{Known: true, Value: true})
	require.NoError(t, err)
	assert.Equal(t, "true", string(raw))

	raw, err = json.Marshal(StockFlag{Known: true, Value: false})
	require.NoError(t, err)
	assert.Equal(t, "false", string(raw))
}

func TestFieldAccessors(t *testing.T) {
	p := CatalogProduct{Name: "Dolo 650", PricingNew: 31.5, Quantity: 12}

	v, ok := p.Field(FieldName)
	require.True(t, ok)
	assert.Equal(t, "Dolo 650", v)

	v, ok = p.Field(FieldPricingNew)
	require.True(t, ok)
	assert.Equal(t, 31.5, v)

	_, ok = p.Field("product_id")
	assert.False(t, ok, "server-assigned fields are not editable")

	require.True(t, p.SetField(FieldManufacturer, "Micro Labs"))
	assert.Equal(t, "Micro Labs", p.Manufacturer)

	// JSON decodes integers as float64; quantity must accept both.
	require.True(t, p.SetField(FieldQuantity, float64(40)))
	assert.Equal(t, 40, p.Quantity)
	require.True(t, p.SetField(FieldQuantity, 55))
	assert.Equal(t, 55, p.Quantity)

	assert.False(t, p.SetField(FieldPricingOld, "not a number"))
	assert.False(t, p.SetField("unknown_column", "x"))
	assert.False(t, p.SetField(FieldName, 7))
}

func TestIsMatched(t *testing.T) {
	p := CatalogProduct{}
	assert.False(t, p.IsMatched())
	p.RCProductName = "DOLO 650MG TAB"
	assert.True(t, p.IsMatched())
}

func TestCandidateDisplayName(t *testing.T) {
	c := MatchCandidate{Name: "Dolo 650"}
	assert.Equal(t, "Dolo 650", c.DisplayName())
	c.RCProductName = "DOLO 650MG TAB"
	assert.Equal(t, "DOLO 650MG TAB", c.DisplayName())
}
