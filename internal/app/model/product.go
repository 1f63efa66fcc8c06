package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a menu entry. The catalog is read-only at runtime; rows come
// from seeding or the xlsx importer.
type Product struct {
	ID        uint            `gorm:"primarykey" json:"id"`
	Title     string          `gorm:"not null" json:"title"`
	Price     decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	Option    string          `gorm:"type:varchar(100)" json:"option"` // variant selector, e.g. "Milk", "Size"
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	DeletedAt gorm.DeletedAt  `gorm:"index" json:"-"`

	// Relationships
	Items []ProductItem `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (Product) TableName() string {
	return "products"
}

// ProductItem is one value of a product's option, e.g. "skim" for "Milk".
type ProductItem struct {
	ID        uint   `gorm:"primarykey" json:"id"`
	ProductID uint   `gorm:"not null;index" json:"product_id"`
	Name      string `gorm:"not null" json:"name"`

	Product Product `gorm:"foreignKey:ProductID" json:"-"`
}

func (ProductItem) TableName() string {
	return "product_items"
}

// ItemNames flattens the option values for presentation.
func (p *Product) ItemNames() []string {
	names := make([]string, 0, len(p.Items))
	for _, item := range p.Items {
		names = append(names, item.Name)
	}
	return names
}

// HasItem reports whether name is one of the product's option values.
func (p *Product) HasItem(name string) bool {
	for _, item := range p.Items {
		if item.Name == name {
			return true
		}
	}
	return false
}
