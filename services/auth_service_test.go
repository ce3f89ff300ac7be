package services

import (
	"testing"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&entity.Role{Name: entity.RoleMesera}).Error)

	_, err := f.users.Create(&CreateUserReq{
		FullName: "Ana López",
		Username: "Ana",
		Pin:      "1234",
		Role:     entity.RoleMesera,
	})
	require.NoError(t, err)

	auth := NewAuthService(repository.NewUserRepository(f.db), "test-secret", time.Hour)

	// username is matched case-insensitively
	token, user, err := auth.Login(" ANA ", "1234")
	require.NoError(t, err)
	require.Equal(t, "ana", user.Username)
	require.Equal(t, entity.RoleMesera, user.Role.Name)

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	require.Equal(t, entity.RoleMesera, claims["role"])

	// wrong PIN and unknown user fail identically
	_, _, err = auth.Login("ana", "9999")
	requireKind(t, err, apperr.KindInvalidInput)
	_, _, err = auth.Login("nobody", "1234")
	requireKind(t, err, apperr.KindInvalidInput)
	_, _, err = auth.Login("", "")
	requireKind(t, err, apperr.KindInvalidInput)
}

func TestCreateUser(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Create(&entity.Role{Name: entity.RoleTaquero}).Error)

	user, err := f.users.Create(&CreateUserReq{
		FullName: "Luis Ramírez",
		Username: "luis",
		Pin:      "4321",
		Role:     entity.RoleTaquero,
	})
	require.NoError(t, err)
	require.NotEqual(t, "4321", user.PinHash)

	_, err = f.users.Create(&CreateUserReq{
		FullName: "Otro Luis",
		Username: "LUIS",
		Pin:      "0000",
		Role:     entity.RoleTaquero,
	})
	requireKind(t, err, apperr.KindConflict)

	_, err = f.users.Create(&CreateUserReq{FullName: "X", Username: "x", Pin: "1", Role: "chef"})
	requireKind(t, err, apperr.KindInvalidInput)

	_, err = f.users.Create(&CreateUserReq{Username: "y", Pin: "1", Role: entity.RoleTaquero})
	requireKind(t, err, apperr.KindInvalidInput)
}
