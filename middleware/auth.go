package middleware

import (
	"errors"
	"net/http"
	"strings"

	"tickethub/models"
	"tickethub/services"
	"tickethub/store"
	"tickethub/utils"

	"github.com/pocketbase/pocketbase/core"
)

const identityKey = "authIdentity"

// Identity is the resolved caller attached to the request after RequireAuth.
// Role comes from the profile record, not the token, so demotions and
// promotions apply immediately.
type Identity struct {
	ID    string
	Email string
	Role  string
}

type Auth struct {
	auth      *services.AuthService
	profiles  services.ProfileStore
	jwtSecret string
}

func NewAuth(auth *services.AuthService, profiles services.ProfileStore, jwtSecret string) *Auth {
	return &Auth{auth: auth, profiles: profiles, jwtSecret: jwtSecret}
}

// RequireAuth validates the bearer token and loads the caller's profile.
func (a *Auth) RequireAuth() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		token := BearerToken(e)
		if token == "" {
			return unauthorized(e, "Missing authorization token")
		}

		claims, err := utils.ParseToken(a.jwtSecret, token)
		if err != nil {
			return unauthorized(e, "Invalid or expired token")
		}
		if a.auth.IsRevoked(e.Request.Context(), token) {
			return unauthorized(e, "Token has been revoked")
		}

		profile, err := a.profiles.GetByID(e.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return unauthorized(e, "Account no longer exists")
			}
			return e.JSON(http.StatusInternalServerError, map[string]any{
				"success": false,
				"message": "Failed to resolve account",
			})
		}

		e.Set(identityKey, Identity{
			ID:    profile.ID,
			Email: claims.Email,
			Role:  profile.Role,
		})
		return e.Next()
	}
}

// RequireAdmin rejects callers whose profile is not an admin. Must run after
// RequireAuth.
func (a *Auth) RequireAdmin() func(e *core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		identity, ok := GetIdentity(e)
		if !ok {
			return unauthorized(e, "Missing authorization token")
		}
		if identity.Role != models.RoleAdmin {
			return e.JSON(http.StatusForbidden, map[string]any{
				"success": false,
				"message": "Admin access required",
			})
		}
		return e.Next()
	}
}

// GetIdentity returns the caller resolved by RequireAuth.
func GetIdentity(e *core.RequestEvent) (Identity, bool) {
	identity, ok := e.Get(identityKey).(Identity)
	return identity, ok
}

// BearerToken extracts the raw token from the Authorization header.
func BearerToken(e *core.RequestEvent) string {
	auth := e.Request.Header.Get("Authorization")
	token, ok := strings.CutPrefix(auth, "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func unauthorized(e *core.RequestEvent, message string) error {
	return e.JSON(http.StatusUnauthorized, map[string]any{
		"success": false,
		"message": message,
	})
}
