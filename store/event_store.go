package store

import (
	"context"
	"database/sql"
	"errors"

	"tickethub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/tools/types"
)

type EventStore struct {
	app core.App
}

func NewEventStore(app core.App) *EventStore {
	return &EventStore{app: app}
}

func (s *EventStore) Create(ctx context.Context, ev *models.Event) (*models.Event, error) {
	collection, err := s.app.FindCollectionByNameOrId("events")
	if err != nil {
		return nil, err
	}

	rec := core.NewRecord(collection)
	rec.Set("admin_id", ev.AdminID)
	rec.Set("title", ev.Title)
	rec.Set("description", ev.Description)
	rec.Set("event_date", ev.EventDate.UTC().Format(types.DefaultDateLayout))
	rec.Set("location", ev.Location)

	if err := s.app.Save(rec); err != nil {
		return nil, err
	}

	return eventFromRecord(rec), nil
}

func (s *EventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	rec, err := s.app.FindRecordById("events", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return eventFromRecord(rec), nil
}

// Update applies the given field changes. admin_id is never touched here; it
// is immutable after creation.
func (s *EventStore) Update(ctx context.Context, id string, changes map[string]any) (*models.Event, error) {
	rec, err := s.app.FindRecordById("events", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	for field, value := range changes {
		rec.Set(field, value)
	}

	if err := s.app.Save(rec); err != nil {
		return nil, err
	}

	return eventFromRecord(rec), nil
}

// Delete removes the event. Its categories and their tickets go with it via
// the cascade relations set up in migrations.
func (s *EventStore) Delete(ctx context.Context, id string) error {
	rec, err := s.app.FindRecordById("events", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.app.Delete(rec)
}

// List returns events matching the filter, ordered by event date ascending so
// repeated pages stay consistent absent concurrent writes.
func (s *EventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}

	q := s.app.RecordQuery("events").
		OrderBy("event_date ASC").
		Limit(int64(limit)).
		Offset(int64(offset)).
		WithContext(ctx)

	for _, expr := range eventFilterExprs(filter) {
		q.AndWhere(expr)
	}

	records := []*core.Record{}
	if err := q.All(&records); err != nil {
		return nil, err
	}

	events := make([]models.Event, 0, len(records))
	for _, rec := range records {
		events = append(events, *eventFromRecord(rec))
	}
	return events, nil
}

// Count runs the same filter as List without pagination, for the pagination
// metadata block.
func (s *EventStore) Count(ctx context.Context, filter models.EventFilter) (int64, error) {
	return s.app.CountRecords("events", eventFilterExprs(filter)...)
}

func eventFilterExprs(filter models.EventFilter) []dbx.Expression {
	exprs := []dbx.Expression{}

	if !filter.StartDate.IsZero() {
		exprs = append(exprs, dbx.NewExp("event_date >= {:startDate}", dbx.Params{
			"startDate": filter.StartDate.UTC().Format(types.DefaultDateLayout),
		}))
	}
	if !filter.EndDate.IsZero() {
		exprs = append(exprs, dbx.NewExp("event_date <= {:endDate}", dbx.Params{
			"endDate": filter.EndDate.UTC().Format(types.DefaultDateLayout),
		}))
	}
	if filter.Location != "" {
		exprs = append(exprs, dbx.Like("location", filter.Location))
	}
	if filter.AdminID != "" {
		exprs = append(exprs, dbx.HashExp{"admin_id": filter.AdminID})
	}

	return exprs
}
