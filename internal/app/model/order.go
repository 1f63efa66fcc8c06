package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// StatusLabels maps status codes to their display labels. The set is
// deployment-defined; fulfillment owns every transition past pending.
var StatusLabels = map[OrderStatus]string{
	OrderStatusPending:   "Pending",
	OrderStatusPaid:      "Paid",
	OrderStatusShipped:   "Shipped",
	OrderStatusCancelled: "Cancelled",
}

// OrderDateLayout formats order timestamps for presentation.
const OrderDateLayout = "02 Jan 2006-15:04"

// Order is the durable replacement for a checked-out cart. TotalPrice is a
// snapshot taken at checkout; later product price changes never touch it.
type Order struct {
	ID         uint            `gorm:"primarykey" json:"id"`
	UserID     uint            `gorm:"not null;index" json:"user_id"`
	Status     OrderStatus     `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Location   string          `gorm:"type:varchar(255);not null" json:"location"`
	TotalPrice decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total_price"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
	DeletedAt  gorm.DeletedAt  `gorm:"index" json:"-"`

	// Label carries a pre-computed status label when the order was
	// materialized by a projection; never persisted.
	Label string `gorm:"-" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}

func (Order) TableName() string {
	return "orders"
}

// StatusLabel returns the display label for the order's status. A label
// already materialized on the entity wins; otherwise the configured label,
// falling back to the raw code for unmapped statuses.
func (o *Order) StatusLabel() string {
	if o.Label != "" {
		return o.Label
	}
	if label, ok := StatusLabels[o.Status]; ok {
		return label
	}
	return string(o.Status)
}

// StatusLabelFromPayload projects a status label out of a raw dictionary
// payload. A missing status key returns ok=false; an unmapped code passes
// through unchanged.
func StatusLabelFromPayload(payload map[string]string) (string, bool) {
	code, ok := payload["status"]
	if !ok {
		return "", false
	}
	if label, mapped := StatusLabels[OrderStatus(code)]; mapped {
		return label, true
	}
	return code, true
}
