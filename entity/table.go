package entity

import (
	"gorm.io/gorm"
)

const (
	TableFree            = "free"
	TableOccupied        = "occupied"
	TableAwaitingPayment = "awaiting_payment"
)

func ValidTableStatus(s string) bool {
	switch s {
	case TableFree, TableOccupied, TableAwaitingPayment:
		return true
	}
	return false
}

// Table is a physical table in the dining room. Status is driven by the
// order lifecycle; the registry itself does not guard transitions.
type Table struct {
	gorm.Model
	TableNumber int    `gorm:"uniqueIndex;not null" json:"tableNumber"`
	Status      string `gorm:"not null;default:free" json:"status"`

	Orders []Order `gorm:"foreignKey:TableID" json:"-"`
}

func (Table) TableName() string { return "restaurant_tables" }
