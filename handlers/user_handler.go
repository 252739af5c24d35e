package handlers

import (
	"net/http"

	"tickethub/middleware"
	"tickethub/models"
	"tickethub/services"

	"github.com/pocketbase/pocketbase/core"
)

type UserHandler struct {
	profiles *services.ProfileService
}

func NewUserHandler(profiles *services.ProfileService) *UserHandler {
	return &UserHandler{profiles: profiles}
}

func (h *UserHandler) Me(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	profile, err := h.profiles.GetByID(e.Request.Context(), identity.ID)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Profile", profile)
}

func (h *UserHandler) UpdateMe(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.UpdateProfileRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}
	// Self-service edits never touch the role, whatever the body says.
	req.Role = ""

	profile, err := h.profiles.Update(e.Request.Context(), identity.ID, req, callerProfile(identity))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Profile updated", profile)
}

// List handles GET /users (admin only).
func (h *UserHandler) List(e *core.RequestEvent) error {
	query := e.Request.URL.Query()
	profiles, pagination, err := h.profiles.List(e.Request.Context(), models.ProfileFilter{
		Role:   query.Get("role"),
		Search: query.Get("search"),
		Page:   queryInt(e, "page", 0),
		Limit:  queryInt(e, "limit", 0),
	})
	if err != nil {
		return fail(e, err)
	}
	return okPaged(e, "Profiles", profiles, pagination)
}

func (h *UserHandler) GetByID(e *core.RequestEvent) error {
	profile, err := h.profiles.GetByID(e.Request.Context(), e.Request.PathValue("id"))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Profile", profile)
}

func (h *UserHandler) Update(e *core.RequestEvent) error {
	identity, okAuth := middleware.GetIdentity(e)
	if !okAuth {
		return fail(e, errUnauthenticated)
	}

	var req models.UpdateProfileRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	profile, err := h.profiles.Update(e.Request.Context(), e.Request.PathValue("id"), req, callerProfile(identity))
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Profile updated", profile)
}

func callerProfile(identity middleware.Identity) models.Profile {
	return models.Profile{ID: identity.ID, Role: identity.Role}
}
