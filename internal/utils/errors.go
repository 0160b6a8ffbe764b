package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the repository layer to provide
// fine-grained failure reasons. Services map these onto AppErrors.
var (
	ErrUnitNotFound      = errors.New("unit_not_found")
	ErrTenantNotFound    = errors.New("tenant_not_found")
	ErrSubTenantNotFound = errors.New("sub_tenant_not_found")
	ErrTicketNotFound    = errors.New("ticket_not_found")

	// Occupancy and uniqueness conflicts
	ErrUnitOccupied    = errors.New("unit_occupied")
	ErrUnitExists      = errors.New("unit_exists")
	ErrEmailExists     = errors.New("email_exists")
	ErrPhoneExists     = errors.New("phone_exists")
	ErrMessengerExists = errors.New("messenger_exists")

	// A Pending ticket with the same phone number and subject already exists.
	ErrDuplicatePendingTicket = errors.New("duplicate_pending_ticket")
)

// AppError carries a ready-to-serve status/code/message from the service
// layer up to the controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		// Fallback for unexpected error types
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}

// Shorthand constructors for the common taxonomy.

func InvalidInput(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusBadRequest, Code: ErrCodeValidation, Message: message, Err: err}
}

func NotFound(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusNotFound, Code: ErrCodeNotFound, Message: message, Err: err}
}

func Conflict(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusConflict, Code: ErrCodeConflict, Message: message, Err: err}
}

func StorageFailure(message string, err error) *AppError {
	return &AppError{StatusCode: http.StatusInternalServerError, Code: ErrCodeInternal, Message: message, Err: err}
}
