package repository

import (
	"time"

	"github.com/danyunou/taco-platform/entity"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{DB: db}
}

// Exists answers the "is this a known user" question for the shift and
// order actors (opened_by / closed_by / waiter_id).
func (r *UserRepository) Exists(id uint) (bool, error) {
	var cnt int64
	if err := r.DB.Model(&entity.User{}).Where("id = ?", id).Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *UserRepository) FindByUsername(username string) (*entity.User, error) {
	var u entity.User
	if err := r.DB.Preload("Role").Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) CountByUsername(username string) (int64, error) {
	var cnt int64
	err := r.DB.Model(&entity.User{}).Where("username = ?", username).Count(&cnt).Error
	return cnt, err
}

func (r *UserRepository) Create(u *entity.User) error {
	return r.DB.Create(u).Error
}

type UserSummary struct {
	ID        uint      `json:"id"`
	FullName  string    `json:"fullName"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *UserRepository) List() ([]UserSummary, error) {
	var out []UserSummary
	err := r.DB.Table("users AS u").
		Select("u.id, u.full_name, u.username, r.name AS role, u.created_at").
		Joins("JOIN roles r ON r.id = u.role_id").
		Where("u.deleted_at IS NULL").
		Order("u.id ASC").
		Scan(&out).Error
	return out, err
}

func (r *UserRepository) RoleByName(name string) (*entity.Role, error) {
	var role entity.Role
	if err := r.DB.Where("name = ?", name).First(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *UserRepository) ListRoles() ([]entity.Role, error) {
	var roles []entity.Role
	err := r.DB.Order("id ASC").Find(&roles).Error
	return roles, err
}
