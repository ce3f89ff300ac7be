package services

import (
	"errors"

	"github.com/danyunou/taco-platform/entity"
	"github.com/danyunou/taco-platform/pkg/apperr"
	"github.com/danyunou/taco-platform/repository"

	"gorm.io/gorm"
)

// TableService owns table existence and the occupancy flag. It does not
// guard transitions; freeing/occupying during service happens through the
// order lifecycle.
type TableService struct {
	DB   *gorm.DB
	Repo *repository.TableRepository
}

func NewTableService(db *gorm.DB, repo *repository.TableRepository) *TableService {
	return &TableService{DB: db, Repo: repo}
}

func (s *TableService) Create(number int) (*entity.Table, error) {
	if number <= 0 {
		return nil, apperr.Invalid("table number must be a positive integer")
	}

	t := &entity.Table{TableNumber: number, Status: entity.TableFree}
	if err := s.Repo.Create(t); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("a table with number %d already exists", number)
		}
		return nil, err
	}
	return t, nil
}

func (s *TableService) Get(id uint) (*entity.Table, error) {
	t, err := s.Repo.GetByID(s.DB, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("table not found")
		}
		return nil, err
	}
	return t, nil
}

func (s *TableService) List() ([]entity.Table, error) {
	return s.Repo.List()
}

func (s *TableService) SetStatus(id uint, status string) (*entity.Table, error) {
	if !entity.ValidTableStatus(status) {
		return nil, apperr.Invalid("invalid table status %q", status)
	}

	t, err := s.Get(id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.SetStatus(s.DB, t.ID, status); err != nil {
		return nil, err
	}
	t.Status = status
	return t, nil
}
