package services

import (
	"testing"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpenShift(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	shift, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)
	require.Equal(t, entity.ShiftOpen, shift.Status)
	require.Equal(t, cashier.ID, shift.OpenedBy)
	require.True(t, shift.TotalSales.IsZero())
}

func TestOpenShiftAlreadyOpen(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	_, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	_, err = f.shifts.Open(cashier.ID, nil)
	requireKind(t, err, apperr.KindConflict)
}

// the partial unique index rejects a second open row even when the
// service's own check is bypassed.
func TestOpenShiftUniqueIndexBackstop(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	_, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	second := entity.Shift{
		OpenedBy:   cashier.ID,
		OpenedAt:   time.Now(),
		Status:     entity.ShiftOpen,
		TotalSales: decimal.Zero,
	}
	err = f.db.Create(&second).Error
	require.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	// closed shifts are not constrained
	_, err = f.shifts.Close(cashier.ID, nil)
	require.NoError(t, err)
	_, err = f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)
}

func TestOpenShiftUnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.shifts.Open(42, nil)
	requireKind(t, err, apperr.KindInvalidInput)

	_, err = f.shifts.Open(0, nil)
	requireKind(t, err, apperr.KindInvalidInput)
}

func TestCurrentShift(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	current, err := f.shifts.Current()
	require.NoError(t, err)
	require.Nil(t, current)

	opened, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	current, err = f.shifts.Current()
	require.NoError(t, err)
	require.NotNil(t, current)
	require.Equal(t, opened.ID, current.ID)
}

func TestCloseShiftNoneOpen(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	_, err := f.shifts.Close(cashier.ID, nil)
	requireKind(t, err, apperr.KindConflict)
}

func TestCloseShiftUnknownUser(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)
	_, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	_, err = f.shifts.Close(42, nil)
	requireKind(t, err, apperr.KindInvalidInput)
}

// settlement sums paid orders only; cancelled ones contribute nothing.
func TestCloseShiftSettlement(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	shift, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	mkOrder := func(status, total string) {
		o := entity.Order{
			ShiftID:     &shift.ID,
			OrderType:   entity.OrderTakeaway,
			WaiterID:    cashier.ID,
			Status:      status,
			OpenedAt:    time.Now(),
			TotalAmount: dec(t, total),
		}
		require.NoError(t, f.db.Create(&o).Error)
	}
	mkOrder(entity.OrderPaid, "60.00")
	mkOrder(entity.OrderPaid, "40.00")
	mkOrder(entity.OrderCancelled, "25.00")

	result, err := f.shifts.Close(cashier.ID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(2), result.PaidOrders)
	require.Equal(t, "100.00", result.Shift.TotalSales.StringFixed(2))
	require.Equal(t, entity.ShiftClosed, result.Shift.Status)
	require.NotNil(t, result.Shift.ClosedAt)
	require.Equal(t, cashier.ID, *result.Shift.ClosedBy)

	// the shift is gone from "current"
	current, err := f.shifts.Current()
	require.NoError(t, err)
	require.Nil(t, current)

	// and closing again conflicts
	_, err = f.shifts.Close(cashier.ID, nil)
	requireKind(t, err, apperr.KindConflict)
}

// orders that somehow lost their shift binding are swept into the closing
// shift when they were opened inside its window.
func TestCloseShiftAdoptsOrphanOrders(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	openedAt := time.Now().Add(-time.Hour)
	shift, err := f.shifts.Open(cashier.ID, &openedAt)
	require.NoError(t, err)

	orphan := entity.Order{
		ShiftID:     nil,
		OrderType:   entity.OrderTakeaway,
		WaiterID:    cashier.ID,
		Status:      entity.OrderPaid,
		OpenedAt:    time.Now().Add(-30 * time.Minute),
		TotalAmount: dec(t, "10.00"),
	}
	require.NoError(t, f.db.Create(&orphan).Error)

	// opened before the shift window: must not be adopted
	tooOld := entity.Order{
		ShiftID:     nil,
		OrderType:   entity.OrderTakeaway,
		WaiterID:    cashier.ID,
		Status:      entity.OrderPaid,
		OpenedAt:    time.Now().Add(-2 * time.Hour),
		TotalAmount: dec(t, "99.00"),
	}
	require.NoError(t, f.db.Create(&tooOld).Error)

	result, err := f.shifts.Close(cashier.ID, nil)
	require.NoError(t, err)
	require.Equal(t, int64(1), result.PaidOrders)
	require.Equal(t, "10.00", result.Shift.TotalSales.StringFixed(2))

	var adopted entity.Order
	require.NoError(t, f.db.First(&adopted, orphan.ID).Error)
	require.NotNil(t, adopted.ShiftID)
	require.Equal(t, shift.ID, *adopted.ShiftID)

	var skipped entity.Order
	require.NoError(t, f.db.First(&skipped, tooOld.ID).Error)
	require.Nil(t, skipped.ShiftID)
}

func TestShiftSummary(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	shift, err := f.shifts.Open(cashier.ID, nil)
	require.NoError(t, err)

	mkOrder := func(status, total string) {
		o := entity.Order{
			ShiftID:     &shift.ID,
			OrderType:   entity.OrderTakeaway,
			WaiterID:    cashier.ID,
			Status:      status,
			OpenedAt:    time.Now(),
			TotalAmount: dec(t, total),
		}
		require.NoError(t, f.db.Create(&o).Error)
	}
	mkOrder(entity.OrderPaid, "30.00")
	mkOrder(entity.OrderCancelled, "12.00")
	mkOrder(entity.OrderOpen, "8.00")
	mkOrder(entity.OrderInPreparation, "9.00")

	got, summary, err := f.shifts.Summary(shift.ID)
	require.NoError(t, err)
	require.Equal(t, shift.ID, got.ID)
	require.Equal(t, int64(4), summary.TotalOrders)
	require.Equal(t, int64(1), summary.PaidOrders)
	require.Equal(t, int64(1), summary.CancelledOrders)
	require.Equal(t, int64(2), summary.ActiveOrders)
	require.Equal(t, "30.00", summary.TotalSales.StringFixed(2))
}

func TestShiftSummaryNotFound(t *testing.T) {
	f := newFixture(t)

	_, _, err := f.shifts.Summary(404)
	requireKind(t, err, apperr.KindNotFound)
}

func TestShiftHistoryNewestFirst(t *testing.T) {
	f := newFixture(t)
	cashier := f.seedUser(t, "cashier", entity.RoleMesera)

	first := time.Now().Add(-3 * time.Hour)
	_, err := f.shifts.Open(cashier.ID, &first)
	require.NoError(t, err)
	_, err = f.shifts.Close(cashier.ID, nil)
	require.NoError(t, err)

	second := time.Now().Add(-time.Hour)
	latest, err := f.shifts.Open(cashier.ID, &second)
	require.NoError(t, err)

	history, err := f.shifts.History()
	require.NoError(t, err)
	require.Len(t, history, 2)
	require.Equal(t, latest.ID, history[0].ID)
}
