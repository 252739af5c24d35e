package store

import (
	"context"
	"database/sql"
	"errors"

	"tickethub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

type ProfileStore struct {
	app core.App
}

func NewProfileStore(app core.App) *ProfileStore {
	return &ProfileStore{app: app}
}

// Create stores the profile under the auth user's ID so the two stay 1:1.
func (s *ProfileStore) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	collection, err := s.app.FindCollectionByNameOrId("profiles")
	if err != nil {
		return nil, err
	}

	rec := core.NewRecord(collection)
	rec.Id = profile.ID
	rec.Set("user", profile.ID)
	rec.Set("name", profile.Name)
	rec.Set("role", profile.Role)

	if err := s.app.Save(rec); err != nil {
		return nil, err
	}

	return profileFromRecord(rec), nil
}

func (s *ProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	rec, err := s.app.FindRecordById("profiles", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return profileFromRecord(rec), nil
}

func (s *ProfileStore) Update(ctx context.Context, id string, changes map[string]any) (*models.Profile, error) {
	rec, err := s.app.FindRecordById("profiles", id)
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

	return profileFromRecord(rec), nil
}

// List pages profiles newest first.
func (s *ProfileStore) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	page := filter.Page
	if page <= 0 {
		page = 1
	}
	limit := filter.Limit
	if limit <= 0 {
		limit = 10
	}

	q := s.app.RecordQuery("profiles").
		OrderBy("created DESC").
		Limit(int64(limit)).
		Offset(int64((page - 1) * limit)).
		WithContext(ctx)

	for _, expr := range profileFilterExprs(filter) {
		q.AndWhere(expr)
	}

	records := []*core.Record{}
	if err := q.All(&records); err != nil {
		return nil, err
	}

	profiles := make([]models.Profile, 0, len(records))
	for _, rec := range records {
		profiles = append(profiles, *profileFromRecord(rec))
	}
	return profiles, nil
}

func (s *ProfileStore) Count(ctx context.Context, filter models.ProfileFilter) (int64, error) {
	return s.app.CountRecords("profiles", profileFilterExprs(filter)...)
}

func profileFilterExprs(filter models.ProfileFilter) []dbx.Expression {
	exprs := []dbx.Expression{}

	if filter.Role != "" {
		exprs = append(exprs, dbx.HashExp{"role": filter.Role})
	}
	if filter.Search != "" {
		exprs = append(exprs, dbx.Like("name", filter.Search))
	}

	return exprs
}
