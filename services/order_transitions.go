package services

import (
	"errors"
	"time"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"

	"gorm.io/gorm"
)

// ----- Status transitions -----
//
// open -> in_preparation -> ready -> paid
// any non-terminal status may also jump straight to paid or cancelled;
// paid/cancelled accept nothing further.

// UpdateStatus moves a comanda to newStatus. Entering a terminal status
// stamps closed_at and frees the order's table in the same transaction.
func (s *OrderService) UpdateStatus(orderID uint, newStatus string) (*entity.Order, error) {
	if !entity.ValidOrderStatus(newStatus) {
		return nil, apperr.Invalid("invalid order status %q", newStatus)
	}

	var order *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.getMutable(tx, orderID)
		if err != nil {
			return err
		}

		var closedAt *time.Time
		if entity.TerminalOrderStatus(newStatus) {
			now := time.Now()
			closedAt = &now
		}
		if err := s.Repo.SetStatus(tx, o.ID, newStatus, closedAt); err != nil {
			return err
		}

		if closedAt != nil && o.TableID != nil {
			if err := s.TableRepo.SetStatus(tx, *o.TableID, entity.TableFree); err != nil {
				return err
			}
		}

		o.Status = newStatus
		o.ClosedAt = closedAt
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

// RequestPayment flags the order's table as awaiting_payment. The order
// itself stays in its current status; staff mark it paid separately.
func (s *OrderService) RequestPayment(orderID uint) (*entity.Order, error) {
	var order *entity.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		o, err := s.Repo.GetByID(tx, orderID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperr.NotFound("order not found")
			}
			return err
		}
		if entity.TerminalOrderStatus(o.Status) {
			return apperr.Invalid("the check can only be requested for an active order")
		}
		if o.TableID == nil {
			return apperr.Invalid("requesting the check only applies to dine_in orders")
		}

		if err := s.TableRepo.SetStatus(tx, *o.TableID, entity.TableAwaitingPayment); err != nil {
			return err
		}
		order = o
		return nil
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}
