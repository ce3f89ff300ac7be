package entity

import (
	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	FullName string `gorm:"not null" json:"fullName"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	PinHash  string `gorm:"not null" json:"-"`

	RoleID uint `gorm:"not null" json:"roleId"`
	Role   Role `json:"-"` // preload only when the role name is needed
}
