package handlers

import (
	"net/http"
	"strconv"
	"time"

	"tickethub/middleware"
	"tickethub/models"
	"tickethub/services"

	"github.com/pocketbase/pocketbase/core"
)

type EventHandler struct {
	events *services.EventService
}

func NewEventHandler(events *services.EventService) *EventHandler {
	return &EventHandler{events: events}
}

func (h *EventHandler) Create(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.CreateEventRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	event, err := h.events.Create(e.Request.Context(), req, identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusCreated, "Event created", event)
}

// List is public and supports start_date, end_date, location, limit, offset.
func (h *EventHandler) List(e *core.RequestEvent) error {
	filter, err := eventFilterFromQuery(e)
	if err != nil {
		return fail(e, err)
	}

	events, total, err := h.events.List(e.Request.Context(), filter)
	if err != nil {
		return fail(e, err)
	}

	return okPaged(e, "Events", events, &models.Pagination{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (h *EventHandler) MyEvents(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	filter, err := eventFilterFromQuery(e)
	if err != nil {
		return fail(e, err)
	}
	filter.AdminID = identity.ID

	events, total, err := h.events.List(e.Request.Context(), filter)
	if err != nil {
		return fail(e, err)
	}

	return okPaged(e, "Your events", events, &models.Pagination{
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	})
}

func (h *EventHandler) GetByID(e *core.RequestEvent) error {
	event, err := h.events.GetByID(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Event", event)
}

func (h *EventHandler) Update(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.UpdateEventRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	event, err := h.events.Update(e.Request.Context(), e.Request.PathValue("id"), req, identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Event updated", event)
}

func (h *EventHandler) Delete(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	if err := h.events.Delete(e.Request.Context(), e.Request.PathValue("id"), identity.ID); err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Event deleted", nil)
}

func eventFilterFromQuery(e *core.RequestEvent) (models.EventFilter, error) {
	query := e.Request.URL.Query()
	filter := models.EventFilter{
		Location: query.Get("location"),
		Limit:    queryInt(e, "limit", 0),
		Offset:   queryInt(e, "offset", 0),
	}

	if raw := query.Get("start_date"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			return filter, err
		}
		filter.StartDate = t
	}
	if raw := query.Get("end_date"); raw != "" {
		t, err := parseQueryDate(raw)
		if err != nil {
			return filter, err
		}
		filter.EndDate = t
	}

	return filter, nil
}

func parseQueryDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errBadDate
}

func queryInt(e *core.RequestEvent, name string, fallback int) int {
	raw := e.Request.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return fallback
	}
	return n
}
