package controllers

import (
	"strconv"
	"time"

	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"
	"github.com/danyunou/taco-platform/utils"

	"github.com/gin-gonic/gin"
)

type ShiftController struct {
	Service *services.ShiftService
}

func NewShiftController(svc *services.ShiftService) *ShiftController {
	return &ShiftController{Service: svc}
}

type openShiftReq struct {
	OpenedBy uint       `json:"openedBy"`
	OpenedAt *time.Time `json:"openedAt"`
}

func (sc *ShiftController) Open(c *gin.Context) {
	var req openShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.OpenedBy == 0 {
		req.OpenedBy = utils.CurrentUserID(c)
	}
	shift, err := sc.Service.Open(req.OpenedBy, req.OpenedAt)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.Created(c, shift)
}

func (sc *ShiftController) Current(c *gin.Context) {
	shift, err := sc.Service.Current()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"shift": shift})
}

type closeShiftReq struct {
	ClosedBy uint       `json:"closedBy"`
	ClosedAt *time.Time `json:"closedAt"`
}

func (sc *ShiftController) Close(c *gin.Context) {
	var req closeShiftReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.ClosedBy == 0 {
		req.ClosedBy = utils.CurrentUserID(c)
	}
	result, err := sc.Service.Close(req.ClosedBy, req.ClosedAt)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, result)
}

func (sc *ShiftController) History(c *gin.Context) {
	shifts, err := sc.Service.History()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, shifts)
}

func (sc *ShiftController) Summary(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		resp.BadRequest(c, "invalid shift id")
		return
	}
	shift, summary, err := sc.Service.Summary(uint(id))
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"shift": shift, "summary": summary})
}
