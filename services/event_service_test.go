package services

import (
	"context"
	"testing"

	"tickethub/internal/status"
	"tickethub/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventCreateRequiresFields(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), nil)

	_, err := svc.Create(context.Background(), models.CreateEventRequest{
		Title: "No date or location",
	}, "admin1")
	require.Error(t, err)
	assert.Equal(t, status.KindBadRequest, status.KindOf(err))
}

func TestEventCreateParsesDates(t *testing.T) {
	events := newFakeEventStore()
	svc := NewEventService(events, nil)

	for _, raw := range []string{"2026-10-01", "2026-10-01T19:30:00Z"} {
		event, err := svc.Create(context.Background(), models.CreateEventRequest{
			Title:     "Concert",
			EventDate: raw,
			Location:  "Vientiane",
		}, "admin1")
		require.NoError(t, err, raw)
		assert.Equal(t, "admin1", event.AdminID)
		assert.False(t, event.EventDate.IsZero())
	}

	_, err := svc.Create(context.Background(), models.CreateEventRequest{
		Title:     "Concert",
		EventDate: "next tuesday",
		Location:  "Vientiane",
	}, "admin1")
	require.Error(t, err)
	assert.Equal(t, status.KindBadRequest, status.KindOf(err))
}

func TestEventUpdateOwnership(t *testing.T) {
	events := newFakeEventStore()
	svc := NewEventService(events, nil)
	event := events.add(&models.Event{AdminID: "admin1", Title: "Original"})

	title := "Renamed"
	_, err := svc.Update(context.Background(), event.ID, models.UpdateEventRequest{Title: &title}, "intruder")
	require.Error(t, err)
	assert.Equal(t, status.KindForbidden, status.KindOf(err))

	updated, err := svc.Update(context.Background(), event.ID, models.UpdateEventRequest{Title: &title}, "admin1")
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestEventUpdateMissingIsNotFound(t *testing.T) {
	svc := NewEventService(newFakeEventStore(), nil)

	title := "Renamed"
	_, err := svc.Update(context.Background(), "missing", models.UpdateEventRequest{Title: &title}, "anyone")
	require.Error(t, err)
	assert.Equal(t, status.KindNotFound, status.KindOf(err))
}

func TestEventDeleteOwnership(t *testing.T) {
	events := newFakeEventStore()
	svc := NewEventService(events, nil)
	event := events.add(&models.Event{AdminID: "admin1", Title: "Doomed"})

	err := svc.Delete(context.Background(), event.ID, "intruder")
	require.Error(t, err)
	assert.Equal(t, status.KindForbidden, status.KindOf(err))

	require.NoError(t, svc.Delete(context.Background(), event.ID, "admin1"))

	_, err = svc.GetByID(context.Background(), event.ID)
	require.Error(t, err)
	assert.Equal(t, status.KindNotFound, status.KindOf(err))
}

func TestEventListFiltersByAdmin(t *testing.T) {
	events := newFakeEventStore()
	svc := NewEventService(events, nil)
	events.add(&models.Event{AdminID: "admin1", Title: "Mine"})
	events.add(&models.Event{AdminID: "admin2", Title: "Theirs"})

	mine, total, err := svc.List(context.Background(), models.EventFilter{AdminID: "admin1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, "Mine", mine[0].Title)
}
