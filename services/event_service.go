package services

import (
	"context"
	"errors"
	"time"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/store"
)

type EventService struct {
	events   EventStore
	notifier *Notifier
}

func NewEventService(events EventStore, notifier *Notifier) *EventService {
	return &EventService{events: events, notifier: notifier}
}

func (s *EventService) Create(ctx context.Context, req models.CreateEventRequest, adminID string) (*models.Event, error) {
	if req.Title == "" || req.EventDate == "" || req.Location == "" {
		return nil, status.BadRequest("Missing required event information")
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		return nil, err
	}

	event, err := s.events.Create(ctx, &models.Event{
		AdminID:     adminID,
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Location:    req.Location,
	})
	if err != nil {
		return nil, status.Internal("Failed to create event", err)
	}

	s.notifier.EventChanged(ctx, event.ID, "created")
	return event, nil
}

func (s *EventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	event, err := s.events.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Event not found")
		}
		return nil, status.Internal("Failed to load event", err)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context, filter models.EventFilter) ([]models.Event, int64, error) {
	events, err := s.events.List(ctx, filter)
	if err != nil {
		return nil, 0, status.Internal("Failed to load events", err)
	}
	total, err := s.events.Count(ctx, filter)
	if err != nil {
		return nil, 0, status.Internal("Failed to count events", err)
	}
	return events, total, nil
}

func (s *EventService) Update(ctx context.Context, id string, req models.UpdateEventRequest, callerID string) (*models.Event, error) {
	event, err := requireEventOwner(ctx, s.events, id, callerID)
	if err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Title != nil {
		if *req.Title == "" {
			return nil, status.BadRequest("Title must not be empty")
		}
		changes["title"] = *req.Title
	}
	if req.Description != nil {
		changes["description"] = *req.Description
	}
	if req.EventDate != nil {
		eventDate, err := parseEventDate(*req.EventDate)
		if err != nil {
			return nil, err
		}
		changes["event_date"] = eventDate
	}
	if req.Location != nil {
		if *req.Location == "" {
			return nil, status.BadRequest("Location must not be empty")
		}
		changes["location"] = *req.Location
	}
	if len(changes) == 0 {
		return event, nil
	}

	updated, err := s.events.Update(ctx, id, changes)
	if err != nil {
		return nil, status.Internal("Failed to update event", err)
	}

	s.notifier.EventChanged(ctx, id, "updated")
	return updated, nil
}

// Delete removes an event the caller owns. Categories and tickets under it
// go with it through the cascading relations.
func (s *EventService) Delete(ctx context.Context, id, callerID string) error {
	if _, err := requireEventOwner(ctx, s.events, id, callerID); err != nil {
		return err
	}
	if err := s.events.Delete(ctx, id); err != nil {
		return status.Internal("Failed to delete event", err)
	}

	s.notifier.EventChanged(ctx, id, "deleted")
	return nil
}

func parseEventDate(raw string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, status.BadRequest("event_date must be an RFC3339 or YYYY-MM-DD date")
}
