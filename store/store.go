// Package store contains the data access wrappers over the PocketBase app.
// Each store receives the app handle explicitly so tests can substitute the
// whole layer behind the service-side interfaces.
package store

import "errors"

var (
	// ErrNotFound is returned when the target record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrCodeTaken is returned when a ticket code collides with the unique
	// index. Callers retry with a fresh code.
	ErrCodeTaken = errors.New("ticket code already taken")
)
