package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/dtos"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/services"
	"github.com/jjapartments/JJ-Apartments-Property-Management-System/internal/utils"
)

type TicketController struct {
	ticketService *services.TicketService
}

func NewTicketController(ts *services.TicketService) *TicketController {
	return &TicketController{ticketService: ts}
}

// POST /api/v1/tickets/submit (public)
func (c *TicketController) SubmitTicketHandler(w http.ResponseWriter, r *http.Request) {
	logger := utils.Logger.WithField("handler", "SubmitTicketHandler")

	var req dtos.SubmitTicketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	resp, err := c.ticketService.SubmitTicket(r.Context(), req)
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	logger.WithField("ticketID", resp.ID).Info("Ticket submitted")
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// PATCH /api/v1/tickets/{id}/status
func (c *TicketController) UpdateStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	var req dtos.UpdateTicketStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	ticket, svcErr := c.ticketService.UpdateStatus(r.Context(), id, req, principal(r))
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// GET /api/v1/tickets?status=
func (c *TicketController) ListTicketsHandler(w http.ResponseWriter, r *http.Request) {
	tickets, err := c.ticketService.ListTickets(r.Context(), r.URL.Query().Get("status"))
	if err != nil {
		utils.HandleAppError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, tickets)
}

// GET /api/v1/tickets/{id}
func (c *TicketController) GetTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	ticket, svcErr := c.ticketService.GetTicket(r.Context(), id)
	if svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, ticket)
}

// DELETE /api/v1/tickets/{id}
func (c *TicketController) DeleteTicketHandler(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondInvalidID(w, err)
		return
	}

	if svcErr := c.ticketService.DeleteTicket(r.Context(), id); svcErr != nil {
		utils.HandleAppError(w, svcErr)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"message": "Ticket deleted"})
}
