package services

import (
	"context"
	"strings"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type SubTenantService struct {
	subTenantRepo repositories.SubTenantRepository
}

func NewSubTenantService(str repositories.SubTenantRepository) *SubTenantService {
	return &SubTenantService{subTenantRepo: str}
}

func (s *SubTenantService) AddSubTenant(ctx context.Context, req dtos.CreateSubTenantRequest) (*models.SubTenant, error) {
	st := &models.SubTenant{
		LastName:      strings.TrimSpace(req.LastName),
		FirstName:     strings.TrimSpace(req.FirstName),
		MiddleInitial: req.MiddleInitial,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		MessengerLink: req.MessengerLink,
		MainTenantID:  req.MainTenantID,
	}
	created, err := s.subTenantRepo.Create(ctx, st)
	if err != nil {
		return nil, mapSubTenantError(err)
	}
	return created, nil
}

func (s *SubTenantService) UpdateSubTenant(ctx context.Context, id int, req dtos.UpdateSubTenantRequest) (*models.SubTenant, error) {
	st := &models.SubTenant{
		LastName:      strings.TrimSpace(req.LastName),
		FirstName:     strings.TrimSpace(req.FirstName),
		MiddleInitial: req.MiddleInitial,
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		MessengerLink: req.MessengerLink,
		MainTenantID:  req.MainTenantID,
	}
	updated, err := s.subTenantRepo.Update(ctx, id, st)
	if err != nil {
		return nil, mapSubTenantError(err)
	}
	return updated, nil
}

func (s *SubTenantService) DeleteSubTenant(ctx context.Context, id int) error {
	affected, err := s.subTenantRepo.Delete(ctx, id)
	if err != nil {
		return mapSubTenantError(err)
	}
	if affected == 0 {
		return utils.NotFound("Sub-tenant not found.", utils.ErrSubTenantNotFound)
	}
	return nil
}

func (s *SubTenantService) GetSubTenant(ctx context.Context, id int) (*models.SubTenant, error) {
	st, err := s.subTenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapSubTenantError(err)
	}
	return st, nil
}

func (s *SubTenantService) ListSubTenants(ctx context.Context) ([]*models.SubTenant, error) {
	sts, err := s.subTenantRepo.List(ctx)
	if err != nil {
		return nil, mapSubTenantError(err)
	}
	return sts, nil
}

func (s *SubTenantService) ListByMainTenant(ctx context.Context, mainTenantID int) ([]*models.SubTenant, error) {
	sts, err := s.subTenantRepo.ListByMainTenantID(ctx, mainTenantID)
	if err != nil {
		return nil, mapSubTenantError(err)
	}
	return sts, nil
}

func mapSubTenantError(err error) error {
	switch err {
	case utils.ErrSubTenantNotFound:
		return utils.NotFound("Sub-tenant not found.", err)
	case utils.ErrTenantNotFound:
		return utils.NotFound("Main tenant not found.", err)
	case utils.ErrPhoneExists:
		return utils.Conflict("The phone number is already taken.", err)
	case utils.ErrMessengerExists:
		return utils.Conflict("The messenger link is already taken.", err)
	default:
		return utils.StorageFailure("Failed to persist sub-tenant change.", err)
	}
}
