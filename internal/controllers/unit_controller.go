package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/services"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type UnitController struct {
	unitService *services.UnitService
	validate    *validator.Validate
}

func NewUnitController(us *services.UnitService) *UnitController {
	return &UnitController{
		unitService: us,
		validate:    validator.New(),
	}
}

// POST /api/v1/units
func (c *UnitController) CreateUnitHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return
	}

	unit, err := c.unitService.CreateUnit(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, unit)
}

// GET /api/v1/units
func (c *UnitController) ListUnitsHandler(w http.ResponseWriter, r *http.Request) {
	units, err := c.unitService.ListUnits(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// GET /api/v1/units/search?q=
func (c *UnitController) SearchUnitsHandler(w http.ResponseWriter, r *http.Request) {
	units, err := c.unitService.SearchUnits(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, units)
}

// GET /api/v1/units/{id}
func (c *UnitController) GetUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	unit, svcErr := c.unitService.GetUnit(r.Context(), id)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// PATCH /api/v1/units/{id}
func (c *UnitController) UpdateUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	var req dtos.UpdateUnitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.validate.Struct(req); err != nil {
		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", formatValidationErrors(validationErrs))
		} else {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation error", nil, err)
		}
		return
	}

	unit, svcErr := c.unitService.UpdateUnit(r.Context(), id, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, unit)
}

// DELETE /api/v1/units/{id}
func (c *UnitController) DeleteUnitHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	if svcErr := c.unitService.DeleteUnit(r.Context(), id); svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Unit deleted"})
}
