package controllers

import (
	"strconv"

	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"

	"github.com/gin-gonic/gin"
)

type MenuController struct {
	Service *services.MenuService
}

func NewMenuController(svc *services.MenuService) *MenuController {
	return &MenuController{Service: svc}
}

// ----- Categories -----

type categoryReq struct {
	Name string `json:"name" binding:"required"`
}

func (mc *MenuController) ListCategories(c *gin.Context) {
	cats, err := mc.Service.ListCategories()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cats)
}

func (mc *MenuController) CreateCategory(c *gin.Context) {
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := mc.Service.CreateCategory(req.Name)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, cat)
}

func (mc *MenuController) UpdateCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req categoryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	cat, err := mc.Service.UpdateCategory(id, req.Name)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, cat)
}

func (mc *MenuController) DeleteCategory(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := mc.Service.DeleteCategory(id); err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"deleted": true})
}

// ----- Items -----

func (mc *MenuController) ListItems(c *gin.Context) {
	var active *bool
	if v := c.Query("active"); v == "true" || v == "false" {
		b := v == "true"
		active = &b
	}
	var categoryID *uint
	if v := c.Query("category_id"); v != "" {
		id, err := strconv.Atoi(v)
		if err != nil || id <= 0 {
			resp.BadRequest(c, "invalid category_id")
			return
		}
		u := uint(id)
		categoryID = &u
	}

	items, err := mc.Service.ListItems(active, categoryID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, items)
}

func (mc *MenuController) CreateItem(c *gin.Context) {
	var req services.CreateMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := mc.Service.CreateItem(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, it)
}

func (mc *MenuController) UpdateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.UpdateMenuItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := mc.Service.UpdateItem(id, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, it)
}

type toggleItemReq struct {
	IsActive *bool `json:"isActive"`
}

func (mc *MenuController) ToggleItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req toggleItemReq
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		resp.BadRequest(c, err.Error())
		return
	}
	it, err := mc.Service.ToggleItem(id, req.IsActive)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, it)
}
