package services

import (
	"strings"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"
	"github.com/danyunou/taco-platform/utils"

	"golang.org/x/crypto/bcrypt"
)

// AuthService handles the username+PIN login used by the staff tablets.
type AuthService struct {
	userRepo  *repository.UserRepository
	jwtSecret string
	jwtTTL    time.Duration
}

func NewAuthService(repo *repository.UserRepository, secret string, ttl time.Duration) *AuthService {
	return &AuthService{userRepo: repo, jwtSecret: secret, jwtTTL: ttl}
}

// Login checks the PIN and issues a JWT carrying the user's role.
func (s *AuthService) Login(username, pin string) (string, *entity.User, error) {
	username = strings.ToLower(strings.TrimSpace(username))
	if username == "" || pin == "" {
		return "", nil, apperr.Invalid("username and pin are required")
	}

	user, err := s.userRepo.FindByUsername(username)
	if err != nil {
		return "", nil, apperr.Invalid("invalid credentials")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
		return "", nil, apperr.Invalid("invalid credentials")
	}

	token, err := utils.GenerateToken(user.ID, user.Role.Name, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}
