package controllers

import (
	"strconv"

	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"

	"github.com/gin-gonic/gin"
)

type TableController struct {
	Service *services.TableService
}

func NewTableController(svc *services.TableService) *TableController {
	return &TableController{Service: svc}
}

func (tc *TableController) List(c *gin.Context) {
	tables, err := tc.Service.List()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, tables)
}

func (tc *TableController) Detail(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}
	t, err := tc.Service.Get(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}

type createTableReq struct {
	TableNumber int `json:"tableNumber" binding:"required"`
}

func (tc *TableController) Create(c *gin.Context) {
	var req createTableReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t, err := tc.Service.Create(req.TableNumber)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, t)
}

type tableStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (tc *TableController) UpdateStatus(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid table id")
		return
	}
	var req tableStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	t, err := tc.Service.SetStatus(uint(id), req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, t)
}
