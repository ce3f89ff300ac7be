package services

import (
	"errors"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderService is the comanda state machine. It drives table occupancy
// and shift association; every multi-row effect runs in one transaction.
type OrderService struct {
	DB        *gorm.DB
	Repo      *repository.OrderRepository
	TableRepo *repository.TableRepository
	ShiftRepo *repository.ShiftRepository
	UserRepo  *repository.UserRepository
}

func NewOrderService(
	db *gorm.DB,
	repo *repository.OrderRepository,
	tableRepo *repository.TableRepository,
	shiftRepo *repository.ShiftRepository,
	userRepo *repository.UserRepository,
) *OrderService {
	return &OrderService{DB: db, Repo: repo, TableRepo: tableRepo, ShiftRepo: shiftRepo, UserRepo: userRepo}
}

// ----- DTOs from controllers -----

type CreateOrderReq struct {
	TableID   *uint  `json:"tableId"`
	OrderType string `json:"orderType"`
	WaiterID  uint   `json:"waiterId"`
	Notes     string `json:"notes"`
}

type AddItemReq struct {
	MenuItemID     *uint            `json:"menuItemId"`
	MeatType       *string          `json:"meatType"`
	Customizations *string          `json:"customizations"`
	Quantity       int              `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	Notes          string           `json:"notes"`
}

// UpdateItemReq uses pointers: omitted fields keep their prior value.
type UpdateItemReq struct {
	MeatType       *string          `json:"meatType"`
	Customizations *string          `json:"customizations"`
	Quantity       *int             `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	Notes          *string          `json:"notes"`
}

// ----- Create -----

// Create opens a comanda bound to the current open shift. Dine-in orders
// additionally claim a free table; the claim is a guarded update so two
// concurrent requests cannot double-book the table.
func (s *OrderService) Create(req *CreateOrderReq) (*entity.Order, error) {
	if !entity.ValidOrderType(req.OrderType) {
		return nil, apperr.Invalid("invalid order type %q", req.OrderType)
	}
	if req.WaiterID == 0 {
		return nil, apperr.Invalid("waiter_id is required")
	}
	ok, err := s.UserRepo.Exists(req.WaiterID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperr.Invalid("waiter_id does not resolve to a known user")
	}
	if req.OrderType == entity.OrderDineIn && req.TableID == nil {
		return nil, apperr.Invalid("table_id is required for dine_in orders")
	}

	var order *entity.Order
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		shift, err := s.ShiftRepo.CurrentOpen(tx)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperr.Conflict("no open shift; open one before creating orders")
		}

		var tableID *uint
		if req.OrderType == entity.OrderDineIn {
			if _, err := s.TableRepo.GetByID(tx, *req.TableID); err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperr.NotFound("table not found")
				}
				return err
			}
			claimed, err := s.TableRepo.OccupyIfFree(tx, *req.TableID)
			if err != nil {
				return err
			}
			if claimed == 0 {
				return apperr.Conflict("table is not available (occupied or awaiting payment)")
			}
			tableID = req.TableID
		}

		order = &entity.Order{
			TableID:     tableID,
			ShiftID:     &shift.ID,
			OrderType:   req.OrderType,
			WaiterID:    req.WaiterID,
			Status:      entity.OrderOpen,
			OpenedAt:    time.Now(),
			Notes:       req.Notes,
			TotalAmount: decimal.Zero,
		}
		return s.Repo.Create(tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// ----- Line items -----

// getMutable loads an order that may still be edited, holding its row
// lock for the rest of the transaction.
func (s *OrderService) getMutable(tx *gorm.DB, orderID uint) (*entity.Order, error) {
	o, err := s.Repo.GetForUpdate(tx, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	if entity.TerminalOrderStatus(o.Status) {
		return nil, apperr.InvalidState("order is %s and can no longer be modified", o.Status)
	}
	return o, nil
}

// recalcTotal rewrites total_amount from the order's current items.
// Exact decimal arithmetic, floored at zero.
func (s *OrderService) recalcTotal(tx *gorm.DB, orderID uint) error {
	items, err := s.Repo.Items(tx, orderID)
	if err != nil {
		return err
	}
	total := decimal.Zero
	for i := range items {
		total = total.Add(items[i].LineTotal())
	}
	if total.IsNegative() {
		total = decimal.Zero
	}
	return s.Repo.SetTotal(tx, orderID, total)
}

func (s *OrderService) AddItem(orderID uint, req *AddItemReq) (*entity.OrderItem, error) {
	if req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than 0")
	}
	if req.UnitPrice == nil {
		return nil, apperr.Invalid("unit_price is required")
	}
	if req.UnitPrice.IsNegative() {
		return nil, apperr.Invalid("unit_price must not be negative")
	}

	var item *entity.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := s.getMutable(tx, orderID); err != nil {
			return err
		}

		item = &entity.OrderItem{
			OrderID:        orderID,
			MenuItemID:     req.MenuItemID,
			MeatType:       req.MeatType,
			Customizations: req.Customizations,
			Quantity:       req.Quantity,
			UnitPrice:      *req.UnitPrice,
			Notes:          req.Notes,
		}
		if err := s.Repo.CreateItem(tx, item); err != nil {
			return err
		}
		return s.recalcTotal(tx, orderID)
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) UpdateItem(itemID uint, req *UpdateItemReq) (*entity.OrderItem, error) {
	if req.Quantity != nil && *req.Quantity <= 0 {
		return nil, apperr.Invalid("quantity must be greater than 0")
	}
	if req.UnitPrice != nil && req.UnitPrice.IsNegative() {
		return nil, apperr.Invalid("unit_price must not be negative")
	}

	var item *entity.OrderItem
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		it, err := s.Repo.GetItem(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order item not found")
			}
			return err
		}
		if _, err := s.getMutable(tx, it.OrderID); err != nil {
			return err
		}

		updates := map[string]any{}
		if req.Quantity != nil {
			updates["quantity"] = *req.Quantity
		}
		if req.UnitPrice != nil {
			updates["unit_price"] = *req.UnitPrice
		}
		if req.MeatType != nil {
			updates["meat_type"] = *req.MeatType
		}
		if req.Customizations != nil {
			updates["customizations"] = *req.Customizations
		}
		if req.Notes != nil {
			updates["notes"] = *req.Notes
		}
		if len(updates) > 0 {
			if err := s.Repo.UpdateItem(tx, itemID, updates); err != nil {
				return err
			}
		}
		if err := s.recalcTotal(tx, it.OrderID); err != nil {
			return err
		}

		item, err = s.Repo.GetItem(tx, itemID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (s *OrderService) DeleteItem(itemID uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		it, err := s.Repo.GetItem(tx, itemID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order item not found")
			}
			return err
		}
		if _, err := s.getMutable(tx, it.OrderID); err != nil {
			return err
		}
		if err := s.Repo.DeleteItem(tx, itemID); err != nil {
			return err
		}
		return s.recalcTotal(tx, it.OrderID)
	})
}

// ----- Reads -----

type OrderDetail struct {
	Order *entity.Order      `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) GetByID(orderID uint) (*OrderDetail, error) {
	o, err := s.Repo.GetByID(s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("order not found")
		}
		return nil, err
	}
	items, err := s.Repo.Items(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) Active() ([]repository.ActiveOrderRow, error) {
	return s.Repo.ActiveOrders()
}

// ActiveByTable returns a nil Order when the table has no active comanda;
// that is a normal answer, not a failure.
func (s *OrderService) ActiveByTable(tableID uint) (*OrderDetail, error) {
	o, err := s.Repo.ActiveByTable(tableID)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return &OrderDetail{Order: nil, Items: []entity.OrderItem{}}, nil
	}
	items, err := s.Repo.Items(s.DB, o.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: o, Items: items}, nil
}

func (s *OrderService) Kitchen() ([]repository.KitchenRow, error) {
	return s.Repo.KitchenRows()
}
