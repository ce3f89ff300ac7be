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

// ShiftService owns the single open shift and settles its revenue at
// close time. Totals are computed once, at close, from the paid orders
// bound to the shift, never accumulated incrementally.
type ShiftService struct {
	DB       *gorm.DB
	Repo     *repository.ShiftRepository
	UserRepo *repository.UserRepository
}

func NewShiftService(db *gorm.DB, repo *repository.ShiftRepository, userRepo *repository.UserRepository) *ShiftService {
	return &ShiftService{DB: db, Repo: repo, UserRepo: userRepo}
}

func (s *ShiftService) ensureUser(id uint, field string) error {
	if id == 0 {
		return apperr.Invalid("%s is required", field)
	}
	ok, err := s.UserRepo.Exists(id)
	if err != nil {
		return err
	}
	if !ok {
		return apperr.Invalid("%s does not resolve to a known user", field)
	}
	return nil
}

// Open starts a new shift. Fails with conflict while another shift is
// still open; the invariant is re-checked inside the transaction so it is
// recovered purely from persisted rows after a restart.
func (s *ShiftService) Open(openedBy uint, openedAt *time.Time) (*entity.Shift, error) {
	if err := s.ensureUser(openedBy, "opened_by"); err != nil {
		return nil, err
	}

	var shift *entity.Shift
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		current, err := s.Repo.CurrentOpen(tx)
		if err != nil {
			return err
		}
		if current != nil {
			return apperr.Conflict("a shift is already open")
		}

		at := time.Now()
		if openedAt != nil {
			at = *openedAt
		}
		shift = &entity.Shift{
			OpenedBy:   openedBy,
			OpenedAt:   at,
			Status:     entity.ShiftOpen,
			TotalSales: decimal.Zero,
		}
		if err := s.Repo.Create(tx, shift); err != nil {
			// partial unique index on open shifts catches the race the
			// check above cannot see
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return apperr.Conflict("a shift is already open")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return shift, nil
}

// Current returns the open shift, or nil when none is open. Never fails
// on "no shift".
func (s *ShiftService) Current() (*entity.Shift, error) {
	return s.Repo.CurrentOpen(s.DB)
}

type CloseShiftResult struct {
	Shift      *entity.Shift `json:"shift"`
	PaidOrders int64         `json:"paidOrders"`
}

// Close settles the open shift: adopts shift-less orders opened inside
// the shift window, sums the totals of paid orders, and marks the shift
// closed. All of it in one transaction.
func (s *ShiftService) Close(closedBy uint, closedAt *time.Time) (*CloseShiftResult, error) {
	if err := s.ensureUser(closedBy, "closed_by"); err != nil {
		return nil, err
	}

	var result CloseShiftResult
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		shift, err := s.Repo.CurrentOpen(tx)
		if err != nil {
			return err
		}
		if shift == nil {
			return apperr.Conflict("no open shift to close")
		}

		effective := time.Now()
		if closedAt != nil {
			effective = *closedAt
		}

		if _, err := s.Repo.AdoptOrphanOrders(tx, shift.ID, shift.OpenedAt, effective); err != nil {
			return err
		}

		paid, err := s.Repo.PaidOrders(tx, shift.ID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, o := range paid {
			total = total.Add(o.TotalAmount)
		}

		if err := s.Repo.Close(tx, shift.ID, closedBy, effective, total); err != nil {
			return err
		}

		shift.Status = entity.ShiftClosed
		shift.ClosedBy = &closedBy
		shift.ClosedAt = &effective
		shift.TotalSales = total
		result = CloseShiftResult{Shift: shift, PaidOrders: int64(len(paid))}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

type ShiftSummary struct {
	TotalOrders     int64           `json:"totalOrders"`
	PaidOrders      int64           `json:"paidOrders"`
	CancelledOrders int64           `json:"cancelledOrders"`
	ActiveOrders    int64           `json:"activeOrders"`
	TotalSales      decimal.Decimal `json:"totalSales"`
}

// Summary computes shift statistics on demand from the order records; it
// is never cached, so it stays correct while the shift is still open.
func (s *ShiftService) Summary(id uint) (*entity.Shift, *ShiftSummary, error) {
	shift, err := s.Repo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, apperr.NotFound("shift not found")
		}
		return nil, nil, err
	}

	total, err := s.Repo.CountOrders(id)
	if err != nil {
		return nil, nil, err
	}
	paidCnt, err := s.Repo.CountOrders(id, entity.OrderPaid)
	if err != nil {
		return nil, nil, err
	}
	cancelled, err := s.Repo.CountOrders(id, entity.OrderCancelled)
	if err != nil {
		return nil, nil, err
	}
	active, err := s.Repo.CountOrders(id, entity.ActiveOrderStatuses...)
	if err != nil {
		return nil, nil, err
	}

	paid, err := s.Repo.PaidOrders(s.DB, id)
	if err != nil {
		return nil, nil, err
	}
	sales := decimal.Zero
	for _, o := range paid {
		sales = sales.Add(o.TotalAmount)
	}

	return shift, &ShiftSummary{
		TotalOrders:     total,
		PaidOrders:      paidCnt,
		CancelledOrders: cancelled,
		ActiveOrders:    active,
		TotalSales:      sales,
	}, nil
}

func (s *ShiftService) History() ([]entity.Shift, error) {
	return s.Repo.History()
}
