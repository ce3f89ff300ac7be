package controllers

import (
	"strconv"

	"github.com/danyunou/taco-platform/pkg/resp"
	"github.com/danyunou/taco-platform/services"
	"github.com/danyunou/taco-platform/utils"
	"github.com/danyunou/taco-platform/ws"

	"github.com/gin-gonic/gin"
)

type OrderController struct {
	Service *services.OrderService
	Hub     *ws.KitchenHub // nil disables push
}

func NewOrderController(svc *services.OrderService, hub *ws.KitchenHub) *OrderController {
	return &OrderController{Service: svc, Hub: hub}
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

// ----- Create -----

func (oc *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if req.WaiterID == 0 {
		req.WaiterID = utils.CurrentUserID(c)
	}

	order, err := oc.Service.Create(&req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.Publish("order_created", order)
	resp.Created(c, order)
}

// ----- Items -----

func (oc *OrderController) AddItem(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req services.AddItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Service.AddItem(orderID, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.Publish("order_items_changed", gin.H{"orderId": orderID, "item": item})
	resp.Created(c, item)
}

func (oc *OrderController) UpdateItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	var req services.UpdateItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	item, err := oc.Service.UpdateItem(itemID, &req)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.Publish("order_items_changed", gin.H{"orderId": item.OrderID, "item": item})
	resp.OK(c, item)
}

func (oc *OrderController) DeleteItem(c *gin.Context) {
	itemID, ok := paramID(c, "itemId")
	if !ok {
		return
	}
	if err := oc.Service.DeleteItem(itemID); err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.Publish("order_items_changed", gin.H{"itemId": itemID, "deleted": true})
	resp.OK(c, gin.H{"itemId": itemID, "deleted": true})
}

// ----- Status -----

type orderStatusReq struct {
	Status string `json:"status" binding:"required"`
}

func (oc *OrderController) UpdateStatus(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req orderStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	order, err := oc.Service.UpdateStatus(orderID, req.Status)
	if err != nil {
		resp.Error(c, err)
		return
	}
	oc.Hub.Publish("order_status_changed", order)
	resp.OK(c, order)
}

func (oc *OrderController) RequestPayment(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	order, err := oc.Service.RequestPayment(orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "check requested", "orderId": order.ID})
}

// ----- Reads -----

func (oc *OrderController) Detail(c *gin.Context) {
	orderID, ok := paramID(c, "id")
	if !ok {
		return
	}
	detail, err := oc.Service.GetByID(orderID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, detail)
}

func (oc *OrderController) Active(c *gin.Context) {
	rows, err := oc.Service.Active()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}

func (oc *OrderController) ActiveByTable(c *gin.Context) {
	tableID, ok := paramID(c, "tableId")
	if !ok {
		return
	}
	detail, err := oc.Service.ActiveByTable(tableID)
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, detail)
}

func (oc *OrderController) Kitchen(c *gin.Context) {
	rows, err := oc.Service.Kitchen()
	if err != nil {
		resp.Error(c, err)
		return
	}
	resp.OK(c, rows)
}
