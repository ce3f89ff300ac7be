package services

import (
	"testing"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// one connection, otherwise every pooled conn gets its own :memory: db
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&entity.Role{}, &entity.User{},
		&entity.Table{},
		&entity.Shift{},
		&entity.MenuCategory{}, &entity.MenuItem{},
		&entity.Order{}, &entity.OrderItem{},
	))
	require.NoError(t, db.Exec(
		`CREATE UNIQUE INDEX IF NOT EXISTS idx_shifts_one_open ON shifts (status) WHERE status = 'open' AND deleted_at IS NULL`,
	).Error)
	return db
}

type fixture struct {
	db     *gorm.DB
	tables *TableService
	shifts *ShiftService
	orders *OrderService
	menu   *MenuService
	users  *UserService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := newTestDB(t)

	userRepo := repository.NewUserRepository(db)
	tableRepo := repository.NewTableRepository(db)
	shiftRepo := repository.NewShiftRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	menuRepo := repository.NewMenuRepository(db)

	return &fixture{
		db:     db,
		tables: NewTableService(db, tableRepo),
		shifts: NewShiftService(db, shiftRepo, userRepo),
		orders: NewOrderService(db, orderRepo, tableRepo, shiftRepo, userRepo),
		menu:   NewMenuService(menuRepo),
		users:  NewUserService(userRepo),
	}
}

func (f *fixture) seedUser(t *testing.T, username, roleName string) *entity.User {
	t.Helper()
	role := entity.Role{Name: roleName}
	require.NoError(t, f.db.FirstOrCreate(&role, entity.Role{Name: roleName}).Error)
	user := entity.User{FullName: "Test " + username, Username: username, PinHash: "x", RoleID: role.ID}
	require.NoError(t, f.db.Create(&user).Error)
	return &user
}

func requireKind(t *testing.T, err error, kind apperr.Kind) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, kind, apperr.KindOf(err), "unexpected error kind for: %v", err)
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
