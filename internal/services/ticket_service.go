package services

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/models"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/repositories"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

// SystemUpdater is recorded as status_updated_by when a ticket arrives
// through the public intake with no authenticated actor behind it.
const SystemUpdater = "SYSTEM"

type TicketService struct {
	ticketRepo repositories.TicketRepository
	recaptcha  utils.RecaptchaVerifier
}

func NewTicketService(tr repositories.TicketRepository, rv utils.RecaptchaVerifier) *TicketService {
	return &TicketService{ticketRepo: tr, recaptcha: rv}
}

/* ---------- submit ---------- */

// SubmitTicket runs the public intake pipeline: recaptcha gate first,
// then field validation, then the transactional duplicate-check+insert.
func (s *TicketService) SubmitTicket(ctx context.Context, req dtos.SubmitTicketRequest) (*dtos.SubmitTicketResponse, error) {
	if !s.recaptcha.Verify(ctx, req.RecaptchaToken) {
		return nil, &utils.AppError{
			StatusCode: http.StatusForbidden,
			Code:       utils.ErrCodeRecaptcha,
			Message:    "reCAPTCHA verification failed.",
		}
	}

	if appErr := validateTicketFields(req); appErr != nil {
		return nil, appErr
	}

	category, err := models.ParseCategory(req.Category)
	if err != nil {
		return nil, utils.InvalidInput("Unknown ticket category.", err)
	}

	status := models.StatusPending
	if req.Status != nil && strings.TrimSpace(*req.Status) != "" {
		parsed, parseErr := models.ParseStatus(*req.Status)
		if parseErr != nil {
			return nil, utils.InvalidInput("Unknown ticket status.", parseErr)
		}
		status = parsed
	}

	submittedAt, err := parseInstant(req.SubmittedAt)
	if err != nil {
		return nil, utils.InvalidInput("submitted_at must be a valid timestamp.", err)
	}

	updatedBy := SystemUpdater
	if req.StatusUpdatedBy != nil && strings.TrimSpace(*req.StatusUpdatedBy) != "" {
		updatedBy = strings.TrimSpace(*req.StatusUpdatedBy)
	}

	ticket := &models.Ticket{
		UnitNumber:      strings.TrimSpace(req.UnitNumber),
		ApartmentName:   strings.TrimSpace(req.ApartmentName),
		Name:            strings.TrimSpace(req.Name),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Email:           req.Email,
		MessengerLink:   req.MessengerLink,
		Category:        category,
		Subject:         strings.TrimSpace(req.Subject),
		Body:            req.Body,
		Status:          status,
		SubmittedAt:     submittedAt,
		StatusUpdatedAt: submittedAt,
		StatusUpdatedBy: updatedBy,
	}

	created, err := s.ticketRepo.Create(ctx, ticket)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return &dtos.SubmitTicketResponse{ID: created.ID}, nil
}

/* ---------- status update ---------- */

// UpdateStatus parses and applies a status change. principal is the
// authenticated actor; it backs status_updated_by when the payload does
// not name one. Any status may follow any other, Closed tickets included.
func (s *TicketService) UpdateStatus(ctx context.Context, id int, req dtos.UpdateTicketStatusRequest, principal string) (*models.Ticket, error) {
	status, err := models.ParseStatus(req.Status)
	if err != nil {
		return nil, utils.InvalidInput("Unknown ticket status.", err)
	}

	updatedAt, err := parseInstant(req.UpdatedAt)
	if err != nil {
		return nil, utils.InvalidInput("status_updated_at must be a valid timestamp.", err)
	}

	updatedBy := strings.TrimSpace(principal)
	if req.UpdatedBy != nil && strings.TrimSpace(*req.UpdatedBy) != "" {
		updatedBy = strings.TrimSpace(*req.UpdatedBy)
	}
	if updatedBy == "" {
		return nil, utils.InvalidInput("status_updated_by is required.", nil)
	}

	ticket, err := s.ticketRepo.UpdateStatus(ctx, id, status, updatedAt, updatedBy)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return ticket, nil
}

/* ---------- reads / delete ---------- */

func (s *TicketService) GetTicket(ctx context.Context, id int) (*models.Ticket, error) {
	t, err := s.ticketRepo.GetByID(ctx, id)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return t, nil
}

// ListTickets returns all tickets, or only those in the given status when
// statusFilter is non-blank. The filter label is parsed the same way the
// update path parses labels.
func (s *TicketService) ListTickets(ctx context.Context, statusFilter string) ([]*models.Ticket, error) {
	if strings.TrimSpace(statusFilter) == "" {
		ts, err := s.ticketRepo.List(ctx)
		if err != nil {
			return nil, mapTicketError(err)
		}
		return ts, nil
	}

	status, err := models.ParseStatus(statusFilter)
	if err != nil {
		return nil, utils.InvalidInput("Unknown ticket status.", err)
	}
	ts, err := s.ticketRepo.ListByStatus(ctx, status)
	if err != nil {
		return nil, mapTicketError(err)
	}
	return ts, nil
}

func (s *TicketService) DeleteTicket(ctx context.Context, id int) error {
	affected, err := s.ticketRepo.Delete(ctx, id)
	if err != nil {
		return mapTicketError(err)
	}
	if affected == 0 {
		return utils.NotFound("Ticket not found.", utils.ErrTicketNotFound)
	}
	return nil
}

/* ---------- internals ---------- */

func validateTicketFields(req dtos.SubmitTicketRequest) *utils.AppError {
	switch {
	case strings.TrimSpace(req.UnitNumber) == "":
		return utils.InvalidInput("Unit number is required.", nil)
	case strings.TrimSpace(req.ApartmentName) == "":
		return utils.InvalidInput("Apartment name is required.", nil)
	case strings.TrimSpace(req.Name) == "":
		return utils.InvalidInput("Name is required.", nil)
	case strings.TrimSpace(req.PhoneNumber) == "":
		return utils.InvalidInput("Phone number is required.", nil)
	case strings.TrimSpace(req.Category) == "":
		return utils.InvalidInput("Category is required.", nil)
	case strings.TrimSpace(req.Subject) == "":
		return utils.InvalidInput("Subject is required.", nil)
	case strings.TrimSpace(req.Body) == "":
		return utils.InvalidInput("Body is required.", nil)
	case strings.TrimSpace(req.SubmittedAt) == "":
		return utils.InvalidInput("submitted_at is required.", nil)
	}
	return nil
}

// parseInstant accepts RFC 3339 with or without sub-second precision.
func parseInstant(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}

func mapTicketError(err error) error {
	switch err {
	case utils.ErrTicketNotFound:
		return utils.NotFound("Ticket not found.", err)
	case utils.ErrDuplicatePendingTicket:
		return utils.Conflict("A pending ticket with this phone number and subject already exists.", err)
	default:
		return utils.StorageFailure("Failed to persist ticket change.", err)
	}
}
