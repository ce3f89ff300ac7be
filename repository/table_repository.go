package repository

import (
	"github.com/danyunou/taco-platform/entity"

	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) Create(t *entity.Table) error {
	return r.DB.Create(t).Error
}

func (r *TableRepository) GetByID(q *gorm.DB, id uint) (*entity.Table, error) {
	var t entity.Table
	if err := q.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) List() ([]entity.Table, error) {
	var tables []entity.Table
	err := r.DB.Order("table_number ASC").Find(&tables).Error
	return tables, err
}

// SetStatus writes the status unconditionally; transition guards live in
// the order lifecycle.
func (r *TableRepository) SetStatus(tx *gorm.DB, id uint, status string) error {
	return tx.Model(&entity.Table{}).Where("id = ?", id).Update("status", status).Error
}

// OccupyIfFree flips free -> occupied in one guarded update. RowsAffected
// 0 means the table was taken by a concurrent order.
func (r *TableRepository) OccupyIfFree(tx *gorm.DB, id uint) (int64, error) {
	res := tx.Model(&entity.Table{}).
		Where("id = ? AND status = ?", id, entity.TableFree).
		Update("status", entity.TableOccupied)
	return res.RowsAffected, res.Error
}
