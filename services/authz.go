package services

import (
	"context"
	"errors"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/store"
)

// requireEventOwner is the single ownership predicate behind every event,
// category, and ticket mutation path. A missing event reports NotFound before
// any Forbidden, so callers cannot probe ownership of absent resources.
func requireEventOwner(ctx context.Context, events EventStore, eventID, callerID string) (*models.Event, error) {
	event, err := events.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Event not found")
		}
		return nil, status.Internal("Failed to load event", err)
	}

	if event.AdminID != callerID {
		return nil, status.Forbidden("You do not have permission to manage this event")
	}

	return event, nil
}
