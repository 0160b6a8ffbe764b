package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/middleware"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

// formatValidationErrors converts validator errors into a user-friendly format.
func formatValidationErrors(errs validator.ValidationErrors) []dtos.ValidationErrorDetail {
	var details []dtos.ValidationErrorDetail
	for _, err := range errs {
		var message string
		switch err.Tag() {
		case "required":
			message = fmt.Sprintf("Field '%s' is required", err.Field())
		case "email":
			message = fmt.Sprintf("Field '%s' must be a valid email address", err.Field())
		case "gt", "gte":
			message = fmt.Sprintf("Field '%s' must be greater than %s", err.Field(), err.Param())
		default:
			message = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", err.Field(), err.Tag())
		}
		details = append(details, dtos.ValidationErrorDetail{
			Field:   err.Field(),
			Message: message,
			Code:    "validation_" + err.Tag(),
		})
	}
	return details
}

// pathID pulls an integer path parameter out of the mux vars.
func pathID(r *http.Request, name string) (int, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok {
		return 0, fmt.Errorf("missing path parameter %q", name)
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid path parameter %q: %q", name, raw)
	}
	return id, nil
}

// principal returns the authenticated user from the request context, or
// "" on public routes.
func principal(r *http.Request) string {
	if v := r.Context().Value(middleware.ContextKeyUserID); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func respondInvalidID(w http.ResponseWriter, err error) {
	utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid id in path", nil, err)
}
