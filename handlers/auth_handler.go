package handlers

import (
	"net/http"

	"tickethub/middleware"
	"tickethub/models"
	"tickethub/services"

	"github.com/pocketbase/pocketbase/core"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(e *core.RequestEvent) error {
	var req models.RegisterRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	user, err := h.auth.Register(e.Request.Context(), req)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusCreated, "Account created", user)
}

func (h *AuthHandler) Login(e *core.RequestEvent) error {
	var req models.LoginRequest
	if err := e.BindBody(&req); err != nil {
		return badRequest(e, "Invalid request body")
	}

	result, err := h.auth.Login(e.Request.Context(), req)
	if err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Logged in", result)
}

func (h *AuthHandler) Logout(e *core.RequestEvent) error {
	token := middleware.BearerToken(e)
	if err := h.auth.Logout(e.Request.Context(), token); err != nil {
		return fail(e, err)
	}
	return ok(e, http.StatusOK, "Logged out", nil)
}
