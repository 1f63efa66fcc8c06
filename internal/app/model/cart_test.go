package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func milkProduct() Product {
	return Product{
		Title:  "Latte",
		Option: "Milk",
		Items: []ProductItem{
			{Name: "skim"}, {Name: "semi"}, {Name: "whole"},
		},
	}
}

func TestCartEntry_CustomizationMap(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    map[string]string
	}{
		{
			name:    "Valid payload",
			payload: `{"item":"skim"}`,
			want:    map[string]string{"item": "skim"},
		},
		{
			name:    "Empty payload",
			payload: "",
			want:    map[string]string{},
		},
		{
			name:    "Malformed payload decodes to empty map",
			payload: `{"item":`,
			want:    map[string]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CartEntry{Customization: tt.payload}
			assert.Equal(t, tt.want, entry.CustomizationMap())
		})
	}
}

func TestCartEntry_SelectedItem(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		product Product
		want    string
	}{
		{
			name:    "Known item",
			payload: `{"item":"skim"}`,
			product: milkProduct(),
			want:    "skim",
		},
		{
			name:    "Unknown item renders placeholder",
			payload: `{"item":"oat"}`,
			product: milkProduct(),
			want:    UnknownItemLabel,
		},
		{
			name:    "No selection renders placeholder",
			payload: "",
			product: milkProduct(),
			want:    UnknownItemLabel,
		},
		{
			name:    "Product without items renders placeholder",
			payload: `{"item":"skim"}`,
			product: Product{Title: "Tea"},
			want:    UnknownItemLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry := CartEntry{Customization: tt.payload, Product: tt.product}
			assert.Equal(t, tt.want, entry.SelectedItem())
		})
	}
}

func TestEncodeCustomization(t *testing.T) {
	encoded, err := EncodeCustomization(map[string]string{"item": "whole"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"item":"whole"}`, encoded)

	encoded, err = EncodeCustomization(nil)
	require.NoError(t, err)
	assert.Empty(t, encoded)

	encoded, err = EncodeCustomization(map[string]string{})
	require.NoError(t, err)
	assert.Empty(t, encoded)
}
