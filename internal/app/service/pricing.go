package service

import (
	"github.com/mohammadh73/restbucks-backend/internal/app/model"
	"github.com/shopspring/decimal"
)

// CartProduct is one cart line rendered for the client: the product's
// catalog data plus the item the customer selected for it.
type CartProduct struct {
	Title        string          `json:"title"`
	Price        decimal.Decimal `json:"price"`
	Option       string          `json:"option"`
	Items        []string        `json:"items"`
	SelectedItem string          `json:"selected_item"`
	ID           uint            `json:"id"`
}

// CartSummary is the priced view of a cart. TotalPrice is the exact
// decimal sum of the line prices, never a float.
type CartSummary struct {
	Count      int             `json:"count"`
	TotalPrice decimal.Decimal `json:"total_price"`
	Products   []CartProduct   `json:"products"`
}

// Summarize prices a set of cart entries. Entries must have their
// Product association (including Items) preloaded. An empty slice yields
// a zero total and an empty product list.
func Summarize(entries []model.CartEntry) CartSummary {
	summary := CartSummary{
		Count:      len(entries),
		TotalPrice: decimal.Zero,
		Products:   make([]CartProduct, 0, len(entries)),
	}

	for _, entry := range entries {
		summary.TotalPrice = summary.TotalPrice.Add(entry.Product.Price)
		summary.Products = append(summary.Products, CartProduct{
			Title:        entry.Product.Title,
			Price:        entry.Product.Price,
			Option:       entry.Product.Option,
			Items:        entry.Product.ItemNames(),
			SelectedItem: entry.SelectedItem(),
			ID:           entry.ProductID,
		})
	}

	return summary
}
