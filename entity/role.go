package entity

import (
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleMesera  = "mesera"
	RoleTaquero = "taquero"
)

type Role struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`

	Users []User `json:"-"`
}

func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleMesera, RoleTaquero:
		return true
	}
	return false
}
