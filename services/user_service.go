package services

import (
	"strings"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"golang.org/x/crypto/bcrypt"
)

// UserService is the staff directory behind the admin panel.
type UserService struct {
	Repo *repository.UserRepository
}

func NewUserService(repo *repository.UserRepository) *UserService {
	return &UserService{Repo: repo}
}

func (s *UserService) List() ([]repository.UserSummary, error) {
	return s.Repo.List()
}

func (s *UserService) ListRoles() ([]entity.Role, error) {
	return s.Repo.ListRoles()
}

type CreateUserReq struct {
	FullName string `json:"fullName"`
	Username string `json:"username"`
	Pin      string `json:"pin"`
	Role     string `json:"role"`
}

func (s *UserService) Create(req *CreateUserReq) (*entity.User, error) {
	req.Username = strings.ToLower(strings.TrimSpace(req.Username))
	if req.FullName == "" || req.Username == "" || req.Pin == "" || req.Role == "" {
		return nil, apperr.Invalid("full_name, username, pin and role are required")
	}
	if !entity.ValidRole(req.Role) {
		return nil, apperr.Invalid("invalid role %q", req.Role)
	}

	count, err := s.Repo.CountByUsername(req.Username)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, apperr.Conflict("username already exists")
	}

	role, err := s.Repo.RoleByName(req.Role)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		FullName: strings.TrimSpace(req.FullName),
		Username: req.Username,
		PinHash:  string(hash),
		RoleID:   role.ID,
		Role:     *role,
	}
	if err := s.Repo.Create(user); err != nil {
		return nil, err
	}
	return user, nil
}
