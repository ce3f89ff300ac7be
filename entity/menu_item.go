package entity

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type MenuItem struct {
	gorm.Model
	Name      string          `gorm:"not null" json:"name"`
	BasePrice decimal.Decimal `gorm:"type:decimal(12,2)" json:"basePrice"`
	IsActive  bool            `gorm:"not null;default:true" json:"isActive"`

	CategoryID *uint         `json:"categoryId"`
	Category   *MenuCategory `json:"-"` // preload only for listings with category names
}
