package repository

import (
	"time"

	"github.com/danyunou/taco-platform/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ShiftRepository struct {
	DB *gorm.DB
}

func NewShiftRepository(db *gorm.DB) *ShiftRepository {
	return &ShiftRepository{DB: db}
}

func (r *ShiftRepository) Create(tx *gorm.DB, s *entity.Shift) error {
	return tx.Create(s).Error
}

// CurrentOpen returns the open shift, or nil when there is none.
func (r *ShiftRepository) CurrentOpen(q *gorm.DB) (*entity.Shift, error) {
	var s entity.Shift
	res := q.Where("status = ?", entity.ShiftOpen).
		Order("opened_at DESC").
		Limit(1).
		Find(&s)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *ShiftRepository) GetByID(id uint) (*entity.Shift, error) {
	var s entity.Shift
	if err := r.DB.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ShiftRepository) History() ([]entity.Shift, error) {
	var shifts []entity.Shift
	err := r.DB.Order("opened_at DESC").Find(&shifts).Error
	return shifts, err
}

// AdoptOrphanOrders binds shift-less orders opened inside the window to
// the closing shift so they are not lost from settlement.
func (r *ShiftRepository) AdoptOrphanOrders(tx *gorm.DB, shiftID uint, from, to time.Time) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("shift_id IS NULL AND opened_at >= ? AND opened_at <= ?", from, to).
		Update("shift_id", shiftID)
	return res.RowsAffected, res.Error
}

// PaidOrders returns the paid orders bound to a shift; settlement sums
// their totals in decimal arithmetic.
func (r *ShiftRepository) PaidOrders(q *gorm.DB, shiftID uint) ([]entity.Order, error) {
	var orders []entity.Order
	err := q.Where("shift_id = ? AND status = ?", shiftID, entity.OrderPaid).Find(&orders).Error
	return orders, err
}

func (r *ShiftRepository) Close(tx *gorm.DB, shiftID, closedBy uint, closedAt time.Time, totalSales decimal.Decimal) error {
	return tx.Model(&entity.Shift{}).Where("id = ?", shiftID).Updates(map[string]any{
		"status":      entity.ShiftClosed,
		"closed_by":   closedBy,
		"closed_at":   closedAt,
		"total_sales": totalSales,
	}).Error
}

func (r *ShiftRepository) CountOrders(shiftID uint, statuses ...string) (int64, error) {
	q := r.DB.Model(&entity.Order{}).Where("shift_id = ?", shiftID)
	if len(statuses) > 0 {
		q = q.Where("status IN ?", statuses)
	}
	var cnt int64
	err := q.Count(&cnt).Error
	return cnt, err
}
