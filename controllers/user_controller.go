package controllers

import (
	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	Service *services.UserService
}

func NewUserController(svc *services.UserService) *UserController {
	return &UserController{Service: svc}
}

func (uc *UserController) List(c *gin.Context) {
	users, err := uc.Service.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, users)
}

func (uc *UserController) Create(c *gin.Context) {
	var req services.CreateUserReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	user, err := uc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, gin.H{
		"id":        user.ID,
		"fullName":  user.FullName,
		"username":  user.Username,
		"role":      user.Role.Name,
		"createdAt": user.CreatedAt,
	})
}

func (uc *UserController) ListRoles(c *gin.Context) {
	roles, err := uc.Service.ListRoles()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, roles)
}
