package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	OrderOpen          = "open"
	OrderInPreparation = "in_preparation"
	OrderReady         = "ready"
	OrderPaid          = "paid"
	OrderCancelled     = "cancelled"
)

const (
	OrderDineIn   = "dine_in"
	OrderTakeaway = "takeaway"
	OrderDelivery = "delivery"
)

// ActiveOrderStatuses are the non-terminal statuses.
var ActiveOrderStatuses = []string{OrderOpen, OrderInPreparation, OrderReady}

func ValidOrderStatus(s string) bool {
	switch s {
	case OrderOpen, OrderInPreparation, OrderReady, OrderPaid, OrderCancelled:
		return true
	}
	return false
}

func ValidOrderType(t string) bool {
	switch t {
	case OrderDineIn, OrderTakeaway, OrderDelivery:
		return true
	}
	return false
}

// TerminalOrderStatus reports whether s permits no further mutation.
func TerminalOrderStatus(s string) bool {
	return s == OrderPaid || s == OrderCancelled
}

// Order is a comanda. TableID is set iff the order is dine_in; ShiftID is
// bound at creation from the currently open shift.
type Order struct {
	gorm.Model
	TableID *uint  `json:"tableId"`
	Table   *Table `json:"-"`

	ShiftID *uint  `json:"shiftId"`
	Shift   *Shift `json:"-"`

	OrderType string `gorm:"not null" json:"orderType"`

	WaiterID uint `gorm:"not null" json:"waiterId"`
	Waiter   User `gorm:"foreignKey:WaiterID" json:"-"`

	Status      string          `gorm:"not null;default:open" json:"status"`
	OpenedAt    time.Time       `gorm:"not null" json:"openedAt"`
	ClosedAt    *time.Time      `json:"closedAt"`
	Notes       string          `json:"notes"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalAmount"`

	Items []OrderItem `gorm:"foreignKey:OrderID" json:"-"`
}
