package entity

import (
	"gorm.io/gorm"
)

type MenuCategory struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Items []MenuItem `gorm:"foreignKey:CategoryID" json:"-"`
}
