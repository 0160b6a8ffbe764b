package services

import (
	"context"
	"strings"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type UnitService struct {
	unitRepo repositories.UnitRepository
}

func NewUnitService(ur repositories.UnitRepository) *UnitService {
	return &UnitService{unitRepo: ur}
}

func (s *UnitService) CreateUnit(ctx context.Context, req dtos.CreateUnitRequest) (*models.Unit, error) {
	unit := &models.Unit{
		UnitNumber:  strings.TrimSpace(req.UnitNumber),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
	}
	created, err := s.unitRepo.Create(ctx, unit)
	if err != nil {
		return nil, mapUnitError(err)
	}
	return created, nil
}

func (s *UnitService) UpdateUnit(ctx context.Context, id int, req dtos.UpdateUnitRequest) (*models.Unit, error) {
	unit := &models.Unit{
		UnitNumber:  strings.TrimSpace(req.UnitNumber),
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		Price:       req.Price,
	}
	updated, err := s.unitRepo.Update(ctx, id, unit)
	if err != nil {
		return nil, mapUnitError(err)
	}
	return updated, nil
}

func (s *UnitService) DeleteUnit(ctx context.Context, id int) error {
	affected, err := s.unitRepo.Delete(ctx, id)
	if err != nil {
		return mapUnitError(err)
	}
	if affected == 0 {
		return utils.NotFound("Unit not found.", utils.ErrUnitNotFound)
	}
	return nil
}

func (s *UnitService) GetUnit(ctx context.Context, id int) (*models.Unit, error) {
	u, err := s.unitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapUnitError(err)
	}
	return u, nil
}

func (s *UnitService) ListUnits(ctx context.Context) ([]*models.Unit, error) {
	us, err := s.unitRepo.List(ctx)
	if err != nil {
		return nil, mapUnitError(err)
	}
	return us, nil
}

func (s *UnitService) SearchUnits(ctx context.Context, keyword string) ([]*models.Unit, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return s.ListUnits(ctx)
	}
	us, err := s.unitRepo.Search(ctx, keyword)
	if err != nil {
		return nil, mapUnitError(err)
	}
	return us, nil
}

// ReconcileOccupantCounts re-derives every unit's stored count. Called by
// the cron sweep; safe to run at any time.
func (s *UnitService) ReconcileOccupantCounts(ctx context.Context) error {
	if err := s.unitRepo.RecountAll(ctx); err != nil {
		return mapUnitError(err)
	}
	return nil
}

func mapUnitError(err error) error {
	switch err {
	case utils.ErrUnitNotFound:
		return utils.NotFound("Unit not found.", err)
	case utils.ErrUnitExists:
		return utils.Conflict("A unit with this unit number and name already exists.", err)
	default:
		return utils.StorageFailure("Failed to persist unit change.", err)
	}
}
