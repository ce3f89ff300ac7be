package configs

import (
	"github.com/danyunou/taco-platform/entity"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

// SeedRoles inserts the fixed staff roles.
func SeedRoles() error {
	for _, name := range []string{entity.RoleAdmin, entity.RoleMesera, entity.RoleTaquero} {
		if err := db.FirstOrCreate(&entity.Role{}, entity.Role{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// SeedAdmin creates the first admin account from env, once.
func SeedAdmin(cfg *Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPin == "" {
		log.Warn().Msg("skip seeding admin: missing ADMIN_USERNAME/ADMIN_PIN")
		return nil
	}

	var count int64
	if err := db.Model(&entity.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info().Str("username", cfg.AdminUsername).Msg("admin already exists")
		return nil
	}

	var role entity.Role
	if err := db.Where("name = ?", entity.RoleAdmin).First(&role).Error; err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPin), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := entity.User{
		FullName: "Admin",
		Username: cfg.AdminUsername,
		PinHash:  string(hash),
		RoleID:   role.ID,
	}
	return db.Create(&admin).Error
}
