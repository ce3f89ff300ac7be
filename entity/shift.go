package entity

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ShiftOpen   = "open"
	ShiftClosed = "closed"
)

// Shift is one cash-accounting period (turno). At most one shift is open
// at any time; TotalSales is settled once, at close, from the paid orders
// bound to it.
type Shift struct {
	gorm.Model
	OpenedBy   uint            `gorm:"not null" json:"openedBy"`
	ClosedBy   *uint           `json:"closedBy"`
	OpenedAt   time.Time       `gorm:"not null" json:"openedAt"`
	ClosedAt   *time.Time      `json:"closedAt"`
	Status     string          `gorm:"not null;default:open" json:"status"`
	TotalSales decimal.Decimal `gorm:"type:decimal(12,2)" json:"totalSales"`

	Orders []Order `gorm:"foreignKey:ShiftID" json:"-"`
}
