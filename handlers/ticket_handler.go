package handlers

import (
	"net/http"

	"tickethub/middleware"
	"tickethub/models"
	"tickethub/services"

	"github.com/pocketbase/pocketbase/core"
)

type TicketHandler struct {
	tickets *services.TicketService
}

func NewTicketHandler(tickets *services.TicketService) *TicketHandler {
	return &TicketHandler{tickets: tickets}
}

// CreateCategory handles POST /events/{id}/ticket-categories.
func (h *TicketHandler) CreateCategory(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.CreateTicketCategoryRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	category, err := h.tickets.CreateCategory(e.Request.Context(), e.Request.PathValue("id"), req, identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusCreated, "Ticket category created", category)
}

// ListCategories handles GET /events/{id}/ticket-categories.
func (h *TicketHandler) ListCategories(e *core.RequestEvent) error {
	categories, err := h.tickets.ListCategoriesByEvent(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket categories", categories)
}

func (h *TicketHandler) GetCategory(e *core.RequestEvent) error {
	category, err := h.tickets.GetCategory(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket category", category)
}

func (h *TicketHandler) UpdateCategory(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.UpdateTicketCategoryRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	category, err := h.tickets.UpdateCategory(e.Request.Context(), e.Request.PathValue("id"), req, identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket category updated", category)
}

func (h *TicketHandler) DeleteCategory(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	if err := h.tickets.DeleteCategory(e.Request.Context(), e.Request.PathValue("id"), identity.ID); err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket category deleted", nil)
}

// Generate handles POST /tickets/categories/{id}/generate.
func (h *TicketHandler) Generate(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	result, err := h.tickets.Generate(e.Request.Context(), e.Request.PathValue("id"), identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusCreated, "Tickets generated", result)
}

// ListByCategory handles GET /tickets/categories/{id}/tickets.
func (h *TicketHandler) ListByCategory(e *core.RequestEvent) error {
	tickets, err := h.tickets.ListTickets(e.Request.Context(), models.TicketFilter{
		TicketCategoryID: e.Request.PathValue("id"),
		Status:           e.Request.URL.Query().Get("status"),
		Limit:            queryInt(e, "limit", 0),
		Offset:           queryInt(e, "offset", 0),
	})
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Tickets", tickets)
}

// MyTickets handles GET /tickets/my-tickets.
func (h *TicketHandler) MyTickets(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	tickets, err := h.tickets.ListTickets(e.Request.Context(), models.TicketFilter{
		UserID: identity.ID,
		Status: e.Request.URL.Query().Get("status"),
		Limit:  queryInt(e, "limit", 0),
		Offset: queryInt(e, "offset", 0),
	})
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Your tickets", tickets)
}

func (h *TicketHandler) GetTicket(e *core.RequestEvent) error {
	ticket, err := h.tickets.GetTicket(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket", ticket)
}

func (h *TicketHandler) UpdateTicket(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.UpdateTicketRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	ticket, err := h.tickets.UpdateTicket(e.Request.Context(), e.Request.PathValue("id"), req, identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Ticket updated", ticket)
}
