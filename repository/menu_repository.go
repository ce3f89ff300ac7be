package repository

import (
	"github.com/danyunou/taco-platform/entity"

	"gorm.io/gorm"
)

type MenuRepository struct {
	DB *gorm.DB
}

func NewMenuRepository(db *gorm.DB) *MenuRepository {
	return &MenuRepository{DB: db}
}

// ---------------- Categories ----------------

func (r *MenuRepository) CreateCategory(c *entity.MenuCategory) error {
	return r.DB.Create(c).Error
}

func (r *MenuRepository) GetCategory(id uint) (*entity.MenuCategory, error) {
	var c entity.MenuCategory
	if err := r.DB.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *MenuRepository) ListCategories() ([]entity.MenuCategory, error) {
	var cats []entity.MenuCategory
	err := r.DB.Order("name ASC").Find(&cats).Error
	return cats, err
}

func (r *MenuRepository) UpdateCategoryName(id uint, name string) error {
	return r.DB.Model(&entity.MenuCategory{}).Where("id = ?", id).Update("name", name).Error
}

func (r *MenuRepository) DeleteCategory(id uint) error {
	return r.DB.Delete(&entity.MenuCategory{}, id).Error
}

func (r *MenuRepository) CountItemsInCategory(id uint) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.MenuItem{}).Where("category_id = ?", id).Count(&cnt).Error
	return cnt, err
}

// ---------------- Items ----------------

func (r *MenuRepository) CreateItem(it *entity.MenuItem) error {
	return r.DB.Create(it).Error
}

func (r *MenuRepository) GetItem(id uint) (*entity.MenuItem, error) {
	var it entity.MenuItem
	if err := r.DB.First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

// ListItems filters by active flag and category when given.
func (r *MenuRepository) ListItems(active *bool, categoryID *uint) ([]entity.MenuItem, error) {
	q := r.DB.Model(&entity.MenuItem{})
	if active != nil {
		q = q.Where("is_active = ?", *active)
	}
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var items []entity.MenuItem
	err := q.Order("name ASC").Find(&items).Error
	return items, err
}

func (r *MenuRepository) UpdateItem(id uint, updates map[string]any) error {
	return r.DB.Model(&entity.MenuItem{}).Where("id = ?", id).Updates(updates).Error
}
