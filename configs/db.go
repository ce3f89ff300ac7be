package configs

import (
	"fmt"

	"github.com/danyunou/taco-platform/entity"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var db *gorm.DB

func DB() *gorm.DB {
	return db
}

func ConnectDB(cfg *Config) error {
	var dial gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dial = postgres.Open(cfg.DBSource)
	case "sqlite":
		dial = sqlite.Open(cfg.DBSource)
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", cfg.DBDriver)
	}

	database, err := gorm.Open(dial, &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	db = database
	return nil
}

func SetupDatabase() error {
	if err := db.AutoMigrate(
		&entity.Role{}, &entity.User{},
		&entity.Table{},
		&entity.Shift{},
		&entity.MenuCategory{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
	); err != nil {
		return err
	}

	// at most one open shift, enforced by the store itself; both drivers
	// support partial unique indexes
	return db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_open ON shifts (status) WHERE status = 'open' AND deleted_at IS NULL`,
	).Error
}
