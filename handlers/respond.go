package handlers

import (
	"log/slog"
	"net/http"

	"tickethub/internal/status"
	"tickethub/models"

	"github.com/pocketbase/pocketbase/core"
)

// response is the envelope every endpoint returns.
type response struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       any                `json:"data,omitempty"`
	Pagination *models.Pagination `json:"pagination,omitempty"`
}

func ok(e *core.RequestEvent, code int, message string, data any) error {
	return e.JSON(code, response{Success: true, Message: message, Data: data})
}

func okPaged(e *core.RequestEvent, message string, data any, pagination *models.Pagination) error {
	return e.JSON(http.StatusOK, response{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
	})
}

// fail translates a service error into the envelope. Internal causes are
// logged, never echoed to the client.
func fail(e *core.RequestEvent, err error) error {
	kind := status.KindOf(err)
	code := status.HTTPStatus(kind)

	if code >= http.StatusInternalServerError {
		slog.Error("request failed",
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
			"error", err,
		)
	} else {
		slog.Warn("request rejected",
			"method", e.Request.Method,
			"path", e.Request.URL.Path,
			"status", code,
			"reason", status.MessageOf(err),
		)
	}

	return e.JSON(code, response{Success: false, Message: status.MessageOf(err)})
}

func badRequest(e *core.RequestEvent, message string) error {
	return fail(e, status.BadRequest(message))
}

var (
	errUnauthenticated = status.Unauthorized("Authentication required")
	errBadDate         = status.BadRequest("Dates must be RFC3339 or YYYY-MM-DD")
)
