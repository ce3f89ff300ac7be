package controllers

import (
	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	Service *services.AuthService
}

func NewAuthController(svc *services.AuthService) *AuthController {
	return &AuthController{Service: svc}
}

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Pin      string `json:"pin" binding:"required"`
}

func (ac *AuthController) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	token, user, err := ac.Service.Login(req.Username, req.Pin)
	if err != nil {
		// do not leak which part of the credentials was wrong
		resp.Unauthorized(c, "invalid credentials")
		return
	}

	resp.OK(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"fullName": user.FullName,
			"username": user.Username,
			"role":     user.Role.Name,
		},
	})
}
