package models

import (
	"time"
)

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

func IsValidRole(r string) bool {
	return r == RoleAdmin || r == RoleUser
}

// Profile is the application-side record for an auth identity. Its ID matches
// the auth user's ID one to one.
type Profile struct {
	ID      string    `json:"id"`
	Name    string    `json:"name"`
	Role    string    `json:"role"`
	Created time.Time `json:"created"`
	Updated time.Time `json:"updated"`
}

type UpdateProfileRequest struct {
	Name string `json:"name"`
	Role string `json:"role,omitempty"`
}

type ProfileFilter struct {
	Role   string
	Search string
	Page   int
	Limit  int
}
