package repository

import (
	"time"

	"github.com/danyunou/taco-platform/entity"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

// ---------------- Orders ----------------

func (r *OrderRepository) Create(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) GetByID(q *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := q.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

// GetForUpdate loads the order row under FOR UPDATE so concurrent
// mutations of one comanda serialize and the recomputed total always
// sees every committed line item. The sqlite driver drops the locking
// clause; its single writer gives the same guarantee.
func (r *OrderRepository) GetForUpdate(tx *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) SetStatus(tx *gorm.DB, id uint, status string, closedAt *time.Time) error {
	updates := map[string]any{"status": status}
	if closedAt != nil {
		updates["closed_at"] = *closedAt
	}
	return tx.Model(&entity.Order{}).Where("id = ?", id).Updates(updates).Error
}

func (r *OrderRepository) SetTotal(tx *gorm.DB, id uint, total decimal.Decimal) error {
	return tx.Model(&entity.Order{}).Where("id = ?", id).Update("total_amount", total).Error
}

// ---------------- Order items ----------------

func (r *OrderRepository) CreateItem(tx *gorm.DB, it *entity.OrderItem) error {
	return tx.Create(it).Error
}

func (r *OrderRepository) GetItem(q *gorm.DB, id uint) (*entity.OrderItem, error) {
	var it entity.OrderItem
	if err := q.First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *OrderRepository) Items(q *gorm.DB, orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := q.Where("order_id = ?", orderID).Order("id ASC").Find(&items).Error
	return items, err
}

func (r *OrderRepository) UpdateItem(tx *gorm.DB, id uint, updates map[string]any) error {
	return tx.Model(&entity.OrderItem{}).Where("id = ?", id).Updates(updates).Error
}

func (r *OrderRepository) DeleteItem(tx *gorm.DB, id uint) error {
	return tx.Delete(&entity.OrderItem{}, id).Error
}

// ---------------- Projections ----------------

// ActiveOrderRow is the waitstaff dashboard header: one row per active
// order with its table number when dine_in.
type ActiveOrderRow struct {
	ID          uint            `json:"id"`
	TableID     *uint           `json:"tableId"`
	TableNumber *int            `json:"tableNumber"`
	OrderType   string          `json:"orderType"`
	WaiterID    uint            `json:"waiterId"`
	Status      string          `json:"status"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	OpenedAt    time.Time       `json:"openedAt"`
	Notes       string          `json:"notes"`
}

func (r *OrderRepository) ActiveOrders() ([]ActiveOrderRow, error) {
	var rows []ActiveOrderRow
	err := r.DB.Table("orders AS o").
		Select("o.id, o.table_id, t.table_number, o.order_type, o.waiter_id, o.status, o.total_amount, o.opened_at, o.notes").
		Joins("LEFT JOIN restaurant_tables t ON t.id = o.table_id").
		Where("o.status IN ? AND o.deleted_at IS NULL", entity.ActiveOrderStatuses).
		Order("o.opened_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ActiveByTable returns the table's current active order, or nil.
func (r *OrderRepository) ActiveByTable(tableID uint) (*entity.Order, error) {
	var o entity.Order
	res := r.DB.Where("table_id = ? AND status IN ?", tableID, entity.ActiveOrderStatuses).
		Order("opened_at DESC").
		Limit(1).
		Find(&o)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &o, nil
}

// KitchenRow flattens active orders to one row per line item for the
// kitchen display. Orders without items still produce one row.
type KitchenRow struct {
	OrderID        uint             `json:"orderId"`
	OrderType      string           `json:"orderType"`
	Status         string           `json:"status"`
	OpenedAt       time.Time        `json:"openedAt"`
	TableID        *uint            `json:"tableId"`
	TableNumber    *int             `json:"tableNumber"`
	Notes          string           `json:"notes"`
	ItemID         *uint            `json:"itemId"`
	MenuItemID     *uint            `json:"menuItemId"`
	MeatType       *string          `json:"meatType"`
	Customizations *string          `json:"customizations"`
	Quantity       *int             `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	ItemNotes      *string          `json:"itemNotes"`
}

func (r *OrderRepository) KitchenRows() ([]KitchenRow, error) {
	var rows []KitchenRow
	err := r.DB.Table("orders AS o").
		Select(`o.id AS order_id, o.order_type, o.status, o.opened_at, o.table_id, t.table_number, o.notes,
			oi.id AS item_id, oi.menu_item_id, oi.meat_type, oi.customizations, oi.quantity, oi.unit_price, oi.notes AS item_notes`).
		Joins("LEFT JOIN restaurant_tables t ON t.id = o.table_id").
		Joins("LEFT JOIN order_items oi ON oi.order_id = o.id AND oi.deleted_at IS NULL").
		Where("o.status IN ? AND o.deleted_at IS NULL", entity.ActiveOrderStatuses).
		Order("o.opened_at ASC, oi.id ASC").
		Scan(&rows).Error
	return rows, err
}
