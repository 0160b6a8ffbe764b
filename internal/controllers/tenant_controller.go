package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/services"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

// TenantController fronts the occupancy engine. Field validation is
// deliberately left to the service so failures come back in a fixed
// order (date first, then required fields, then store checks).
type TenantController struct {
	occupancyService *services.OccupancyService
}

func NewTenantController(os *services.OccupancyService) *TenantController {
	return &TenantController{occupancyService: os}
}

// POST /api/v1/tenants
func (c *TenantController) AddTenantHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "AddTenantHandler")

	var req dtos.CreateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	tenant, err := c.occupancyService.AddTenant(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	logger.WithField("tenantID", tenant.ID).Info("Tenant added")
	utils.RespondWithJSON(w, http.StatusCreated, tenant)
}

// PATCH /api/v1/tenants/{id}
func (c *TenantController) UpdateTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	var req dtos.UpdateTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	tenant, svcErr := c.occupancyService.UpdateTenant(r.Context(), id, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// PATCH /api/v1/tenants/{id}/move-out
func (c *TenantController) MoveOutTenantHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "MoveOutTenantHandler")

	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	var req dtos.MoveOutTenantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	tenant, svcErr := c.occupancyService.MoveOutTenant(r.Context(), id, req)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	logger.WithField("tenantID", id).Info("Tenant moved out")
	utils.RespondWithJSON(w, http.StatusOK, tenant)
}

// DELETE /api/v1/tenants/{id}
func (c *TenantController) DeleteTenantHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	if svcErr := c.occupancyService.DeleteTenant(r.Context(), id); svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Tenant deleted"})
}

// GET /api/v1/tenants
func (c *TenantController) ListTenantsHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := c.occupancyService.ListTenants(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// GET /api/v1/tenants/moved-in
func (c *TenantController) ListMovedInHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := c.occupancyService.ListMovedIn(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// GET /api/v1/tenants/moved-out
func (c *TenantController) ListMovedOutHandler(w http.ResponseWriter, r *http.Request) {
	tenants, err := c.occupancyService.ListMovedOut(r.Context())
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}

// GET /api/v1/tenants/unit/{unitId}
func (c *TenantController) ListByUnitHandler(w http.ResponseWriter, r *http.Request) {
	unitID, err := pathID(r, "unitId")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	tenants, svcErr := c.occupancyService.ListByUnit(r.Context(), unitID)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tenants)
}
