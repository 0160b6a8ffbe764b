package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/services"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type SubTenantController struct {
	subTenantService *services.SubTenantService
	validate         *validator.Validate
}

func NewSubTenantController(sts *services.SubTenantService) *SubTenantController {
	return &SubTenantController{
		subTenantService: sts,
		validate:         validator.New(),
	}
}

// POST /api/v1/sub-tenants
func (c *SubTenantController) AddSubTenantHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreateSubTenantRequest
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

	st, svcErr := c.subTenantService.AddSubTenant(r.Context(), req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, st)
}

// PATCH /api/v1/sub-tenants/{id}
func (c *SubTenantController) UpdateSubTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	var req dtos.UpdateSubTenantRequest
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

	st, svcErr := c.subTenantService.UpdateSubTenant(r.Context(), id, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, st)
}

// DELETE /api/v1/sub-tenants/{id}
func (c *SubTenantController) DeleteSubTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	if svcErr := c.subTenantService.DeleteSubTenant(r.Context(), id); svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Sub-tenant deleted"})
}

// GET /api/v1/sub-tenants
func (c *SubTenantController) ListSubTenantsHandler(w http.ResponseWriter, r *http.Request) {
	sts, err := c.subTenantService.ListSubTenants(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sts)
}

// GET /api/v1/sub-tenants/tenant/{tenantId}
func (c *SubTenantController) ListByMainTenantHandler(w http.ResponseWriter, r *http.Request) {
	tenantID, err := pathID(r, "tenantId")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	sts, svcErr := c.subTenantService.ListByMainTenant(r.Context(), tenantID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, sts)
}
