package services

import (
	"context"
	"strings"
	"time"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

const dateLayout = "2006-01-02"

// OccupancyService drives every tenant mutation. Validation happens here,
// in a fixed order so callers get deterministic failures; the invariant
// checks themselves (vacancy, uniqueness) are re-verified by the
// repository inside its transaction, and this layer maps the repository's
// sentinel errors onto the public taxonomy.
type OccupancyService struct {
	tenantRepo    repositories.TenantRepository
	subTenantRepo repositories.SubTenantRepository
}

func NewOccupancyService(tr repositories.TenantRepository, str repositories.SubTenantRepository) *OccupancyService {
	return &OccupancyService{tenantRepo: tr, subTenantRepo: str}
}

/* ---------- add ---------- */

func (s *OccupancyService) AddTenant(ctx context.Context, req dtos.CreateTenantRequest) (*models.Tenant, error) {
	moveInDate, err := time.Parse(dateLayout, strings.TrimSpace(req.MoveInDate))
	if err != nil {
		return nil, utils.InvalidInput("Move-in date is required and must be a valid date (YYYY-MM-DD).", err)
	}
	if appErr := validateTenantFields(req.LastName, req.FirstName, req.Email, req.PhoneNumber, req.UnitID); appErr != nil {
		return nil, appErr
	}

	tenant := &models.Tenant{
		LastName:      strings.TrimSpace(req.LastName),
		FirstName:     strings.TrimSpace(req.FirstName),
		MiddleInitial: req.MiddleInitial,
		Email:         strings.TrimSpace(req.Email),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		MessengerLink: req.MessengerLink,
		UnitID:        req.UnitID,
		MoveInDate:    moveInDate,
	}

	created, err := s.tenantRepo.Create(ctx, tenant)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return created, nil
}

/* ---------- update ---------- */

func (s *OccupancyService) UpdateTenant(ctx context.Context, id int, req dtos.UpdateTenantRequest) (*models.Tenant, error) {
	moveInDate, err := time.Parse(dateLayout, strings.TrimSpace(req.MoveInDate))
	if err != nil {
		return nil, utils.InvalidInput("Move-in date is required and must be a valid date (YYYY-MM-DD).", err)
	}
	if appErr := validateTenantFields(req.LastName, req.FirstName, req.Email, req.PhoneNumber, req.UnitID); appErr != nil {
		return nil, appErr
	}

	var moveOutDate *time.Time
	if req.MoveOutDate != nil && strings.TrimSpace(*req.MoveOutDate) != "" {
		parsed, parseErr := time.Parse(dateLayout, strings.TrimSpace(*req.MoveOutDate))
		if parseErr != nil {
			return nil, utils.InvalidInput("Move-out date must be a valid date (YYYY-MM-DD).", parseErr)
		}
		moveOutDate = &parsed
	}

	tenant := &models.Tenant{
		LastName:      strings.TrimSpace(req.LastName),
		FirstName:     strings.TrimSpace(req.FirstName),
		MiddleInitial: req.MiddleInitial,
		Email:         strings.TrimSpace(req.Email),
		PhoneNumber:   strings.TrimSpace(req.PhoneNumber),
		MessengerLink: req.MessengerLink,
		UnitID:        req.UnitID,
		MoveInDate:    moveInDate,
		MoveOutDate:   moveOutDate,
	}

	updated, err := s.tenantRepo.Update(ctx, id, tenant)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return updated, nil
}

/* ---------- delete ---------- */

func (s *OccupancyService) DeleteTenant(ctx context.Context, id int) error {
	affected, err := s.tenantRepo.Delete(ctx, id)
	if err != nil {
		return mapOccupancyError(err)
	}
	if affected == 0 {
		return utils.NotFound("Tenant not found.", utils.ErrTenantNotFound)
	}
	return nil
}

/* ---------- move out ---------- */

func (s *OccupancyService) MoveOutTenant(ctx context.Context, id int, req dtos.MoveOutTenantRequest) (*models.Tenant, error) {
	moveOutDate, err := time.Parse(dateLayout, strings.TrimSpace(req.MoveOutDate))
	if err != nil {
		return nil, utils.InvalidInput("Move-out date is required and must be a valid date (YYYY-MM-DD).", err)
	}
	// Compare at date precision; a move-out dated today is fine.
	today := time.Now().Truncate(24 * time.Hour)
	if moveOutDate.After(today) {
		return nil, utils.InvalidInput("Move-out date cannot be in the future.", nil)
	}

	tenant, err := s.tenantRepo.MoveOut(ctx, id, moveOutDate)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return tenant, nil
}

/* ---------- reads ---------- */

func (s *OccupancyService) GetTenant(ctx context.Context, id int) (*models.Tenant, error) {
	t, err := s.tenantRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return t, nil
}

func (s *OccupancyService) ListTenants(ctx context.Context) ([]*models.Tenant, error) {
	ts, err := s.tenantRepo.List(ctx)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return ts, nil
}

func (s *OccupancyService) ListMovedIn(ctx context.Context) ([]*models.Tenant, error) {
	ts, err := s.tenantRepo.ListMovedIn(ctx)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return ts, nil
}

func (s *OccupancyService) ListMovedOut(ctx context.Context) ([]*models.Tenant, error) {
	ts, err := s.tenantRepo.ListMovedOut(ctx)
	if err != nil {
		return nil, mapOccupancyError(err)
	}
	return ts, nil
}

// ListByUnit returns the unit's tenants, each with their sub-tenants.
func (s *OccupancyService) ListByUnit(ctx context.Context, unitID int) ([]dtos.TenantWithSubTenantsDTO, error) {
	tenants, err := s.tenantRepo.ListByUnitID(ctx, unitID)
	if err != nil {
		return nil, mapOccupancyError(err)
	}

	out := make([]dtos.TenantWithSubTenantsDTO, 0, len(tenants))
	for _, t := range tenants {
		subs, subErr := s.subTenantRepo.ListByMainTenantID(ctx, t.ID)
		if subErr != nil {
			return nil, mapOccupancyError(subErr)
		}
		out = append(out, dtos.TenantWithSubTenantsDTO{Tenant: t, SubTenants: subs})
	}
	return out, nil
}

/* ---------- internals ---------- */

func validateTenantFields(lastName, firstName, email, phone string, unitID int) *utils.AppError {
	switch {
	case strings.TrimSpace(lastName) == "":
		return utils.InvalidInput("Last name is required.", nil)
	case strings.TrimSpace(firstName) == "":
		return utils.InvalidInput("First name is required.", nil)
	case strings.TrimSpace(email) == "":
		return utils.InvalidInput("Email is required.", nil)
	case strings.TrimSpace(phone) == "":
		return utils.InvalidInput("Phone number is required.", nil)
	case unitID <= 0:
		return utils.InvalidInput("A valid unit_id is required.", nil)
	}
	return nil
}

func mapOccupancyError(err error) error {
	switch err {
	case utils.ErrUnitNotFound:
		return utils.NotFound("Unit not found.", err)
	case utils.ErrTenantNotFound:
		return utils.NotFound("Tenant not found.", err)
	case utils.ErrUnitOccupied:
		return utils.Conflict("Unit is already occupied.", err)
	case utils.ErrEmailExists:
		return utils.Conflict("The email is already taken.", err)
	case utils.ErrPhoneExists:
		return utils.Conflict("The phone number is already taken.", err)
	case utils.ErrMessengerExists:
		return utils.Conflict("The messenger link is already taken.", err)
	default:
		return utils.StorageFailure("Failed to persist occupancy change.", err)
	}
}
