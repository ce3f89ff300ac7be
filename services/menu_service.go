package services

import (
	"errors"
	"strings"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuService maintains the catalog the waitstaff order from. Plain CRUD;
// the order lifecycle trusts prices as sent by the caller.
type MenuService struct {
	Repo *repository.MenuRepository
}

func NewMenuService(repo *repository.MenuRepository) *MenuService {
	return &MenuService{Repo: repo}
}

// ----- Categories -----

func (s *MenuService) CreateCategory(name string) (*entity.MenuCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("category name is required")
	}
	c := &entity.MenuCategory{Name: name}
	if err := s.Repo.CreateCategory(c); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a category with that name already exists")
		}
		return nil, err
	}
	return c, nil
}

func (s *MenuService) ListCategories() ([]entity.MenuCategory, error) {
	return s.Repo.ListCategories()
}

func (s *MenuService) UpdateCategory(id uint, name string) (*entity.MenuCategory, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Invalid("category name is required")
	}
	c, err := s.Repo.GetCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("category not found")
		}
		return nil, err
	}
	if err := s.Repo.UpdateCategoryName(c.ID, name); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a category with that name already exists")
		}
		return nil, err
	}
	c.Name = name
	return c, nil
}

func (s *MenuService) DeleteCategory(id uint) error {
	c, err := s.Repo.GetCategory(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperr.NotFound("category not found")
		}
		return err
	}
	cnt, err := s.Repo.CountItemsInCategory(c.ID)
	if err != nil {
		return err
	}
	if cnt > 0 {
		return apperr.Conflict("category still has menu items")
	}
	return s.Repo.DeleteCategory(c.ID)
}

// ----- Items -----

type CreateMenuItemReq struct {
	Name       string           `json:"name"`
	CategoryID *uint            `json:"categoryId"`
	BasePrice  *decimal.Decimal `json:"basePrice"`
}

func (s *MenuService) CreateItem(req *CreateMenuItemReq) (*entity.MenuItem, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.Invalid("item name is required")
	}
	if req.BasePrice == nil || req.BasePrice.IsNegative() {
		return nil, apperr.Invalid("base_price must be a non-negative number")
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Invalid("category_id does not exist")
			}
			return nil, err
		}
	}

	it := &entity.MenuItem{
		Name:       name,
		CategoryID: req.CategoryID,
		BasePrice:  *req.BasePrice,
		IsActive:   true,
	}
	if err := s.Repo.CreateItem(it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *MenuService) ListItems(active *bool, categoryID *uint) ([]entity.MenuItem, error) {
	return s.Repo.ListItems(active, categoryID)
}

type UpdateMenuItemReq struct {
	Name       *string          `json:"name"`
	CategoryID *uint            `json:"categoryId"`
	BasePrice  *decimal.Decimal `json:"basePrice"`
}

func (s *MenuService) UpdateItem(id uint, req *UpdateMenuItemReq) (*entity.MenuItem, error) {
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		return nil, apperr.Invalid("item name must not be empty")
	}
	if req.BasePrice != nil && req.BasePrice.IsNegative() {
		return nil, apperr.Invalid("base_price must be a non-negative number")
	}
	if req.CategoryID != nil {
		if _, err := s.Repo.GetCategory(*req.CategoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, apperr.Invalid("category_id does not exist")
			}
			return nil, err
		}
	}

	if _, err := s.Repo.GetItem(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}

	updates := map[string]any{}
	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.CategoryID != nil {
		updates["category_id"] = *req.CategoryID
	}
	if req.BasePrice != nil {
		updates["base_price"] = *req.BasePrice
	}
	if len(updates) > 0 {
		if err := s.Repo.UpdateItem(id, updates); err != nil {
			return nil, err
		}
	}
	return s.Repo.GetItem(id)
}

// ToggleItem flips is_active, or sets it when explicitly given.
func (s *MenuService) ToggleItem(id uint, isActive *bool) (*entity.MenuItem, error) {
	it, err := s.Repo.GetItem(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("menu item not found")
		}
		return nil, err
	}

	next := !it.IsActive
	if isActive != nil {
		next = *isActive
	}
	if err := s.Repo.UpdateItem(id, map[string]any{"is_active": next}); err != nil {
		return nil, err
	}
	it.IsActive = next
	return it, nil
}
