package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is one line of a comanda. MenuItemID is nullable so the
// waitstaff can ring up ad-hoc items; price is whatever the caller sends.
type OrderItem struct {
	gorm.Model
	OrderID uint  `gorm:"not null;index" json:"orderId"`
	Order   Order `json:"-"`

	MenuItemID *uint     `json:"menuItemId"`
	MenuItem   *MenuItem `json:"-"`

	MeatType       *string         `json:"meatType"`
	Customizations *string         `json:"customizations"`
	Quantity       int             `gorm:"not null" json:"quantity"`
	UnitPrice      decimal.Decimal `gorm:"type:decimal(12,2)" json:"unitPrice"`
	Notes          string          `json:"notes"`
}

// LineTotal is quantity x unit price.
func (it *OrderItem) LineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity)))
}
