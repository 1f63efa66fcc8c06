package model

import (
	"encoding/json"
	"time"
)

// CustomizationItemKey is the customization key holding the chosen option
// value (e.g. {"item": "skim"} for a product whose option is "Milk").
const CustomizationItemKey = "item"

// UnknownItemLabel is rendered when a customization does not resolve to one
// of the product's items.
const UnknownItemLabel = "n/a"

// CartEntry is one pre-checkout selection. A user holds at most one entry
// per product; re-adding replaces the customization. Entries are hard
// deleted (checkout clears them), so no soft-delete column here or the
// composite unique index would trip over tombstones.
type CartEntry struct {
	ID            uint      `gorm:"primarykey" json:"id"`
	UserID        uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID     uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Customization string    `gorm:"type:text" json:"customization"` // JSON object of user-chosen options
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	// Relationships
	User    User    `gorm:"foreignKey:UserID" json:"-"`
	Product Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

func (CartEntry) TableName() string {
	return "cart_entries"
}

// CustomizationMap decodes the customization payload. A malformed or empty
// payload decodes to an empty map rather than failing.
func (e *CartEntry) CustomizationMap() map[string]string {
	m := map[string]string{}
	if e.Customization == "" {
		return m
	}
	if err := json.Unmarshal([]byte(e.Customization), &m); err != nil {
		return map[string]string{}
	}
	return m
}

// SelectedItem renders the chosen item for display. Requires Product (and
// its Items) to be preloaded; anything that does not resolve to a known
// item renders UnknownItemLabel.
func (e *CartEntry) SelectedItem() string {
	name := e.CustomizationMap()[CustomizationItemKey]
	if name != "" && e.Product.HasItem(name) {
		return name
	}
	return UnknownItemLabel
}

// EncodeCustomization serializes a customization payload for storage.
func EncodeCustomization(customization map[string]string) (string, error) {
	if len(customization) == 0 {
		return "", nil
	}
	raw, err := json.Marshal(customization)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}
