package store

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"tickethub/models"

	"github.com/pocketbase/dbx"
	"github.com/pocketbase/pocketbase/core"
)

type TicketStore struct {
	app core.App
}

func NewTicketStore(app core.App) *TicketStore {
	return &TicketStore{app: app}
}

func (s *TicketStore) CreateCategory(ctx context.Context, cat *models.TicketCategory) (*models.TicketCategory, error) {
	collection, err := s.app.FindCollectionByNameOrId("ticket_categories")
	if err != nil {
		return nil, err
	}

	price, _ := cat.Price.Float64()

	rec := core.NewRecord(collection)
	rec.Set("event_id", cat.EventID)
	rec.Set("name", cat.Name)
	rec.Set("price", price)
	rec.Set("stock", cat.Stock)
	rec.Set("available", 0)

	if err := s.app.Save(rec); err != nil {
		return nil, err
	}

	return categoryFromRecord(rec), nil
}

func (s *TicketStore) GetCategory(ctx context.Context, id string) (*models.TicketCategory, error) {
	rec, err := s.app.FindRecordById("ticket_categories", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return categoryFromRecord(rec), nil
}

func (s *TicketStore) UpdateCategory(ctx context.Context, id string, changes map[string]any) (*models.TicketCategory, error) {
	rec, err := s.app.FindRecordById("ticket_categories", id)
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

	return categoryFromRecord(rec), nil
}

func (s *TicketStore) DeleteCategory(ctx context.Context, id string) error {
	rec, err := s.app.FindRecordById("ticket_categories", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return s.app.Delete(rec)
}

func (s *TicketStore) ListCategoriesByEvent(ctx context.Context, eventID string) ([]models.TicketCategory, error) {
	records, err := s.app.FindRecordsByFilter(
		"ticket_categories",
		"event_id = {:eventId}",
		"created",
		0,
		0,
		dbx.Params{"eventId": eventID},
	)
	if err != nil {
		return nil, err
	}

	categories := make([]models.TicketCategory, 0, len(records))
	for _, rec := range records {
		categories = append(categories, *categoryFromRecord(rec))
	}
	return categories, nil
}

// CountByCategory counts every ticket row in the category regardless of
// status; this is the number the stock cap is checked against.
func (s *TicketStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	var count int
	err := s.app.DB().
		Select("count(*)").
		From("tickets").
		Where(dbx.HashExp{"ticket_category_id": categoryID}).
		WithContext(ctx).
		Row(&count)
	return count, err
}

// BulkInsert creates one AVAILABLE, unassigned ticket per code inside a
// single transaction, so a partial failure leaves no rows behind.
func (s *TicketStore) BulkInsert(ctx context.Context, categoryID string, codes []string) error {
	if len(codes) == 0 {
		return nil
	}

	return s.app.RunInTransaction(func(txApp core.App) error {
		collection, err := txApp.FindCollectionByNameOrId("tickets")
		if err != nil {
			return err
		}

		for _, code := range codes {
			rec := core.NewRecord(collection)
			rec.Set("ticket_category_id", categoryID)
			rec.Set("ticket_code", code)
			rec.Set("status", models.TicketStatusAvailable)

			if err := txApp.Save(rec); err != nil {
				if isUniqueViolation(err) {
					return ErrCodeTaken
				}
				return err
			}
		}
		return nil
	})
}

// RefreshAvailable recomputes the category's available counter from the
// AVAILABLE ticket rows in one conditional UPDATE at the store boundary.
func (s *TicketStore) RefreshAvailable(ctx context.Context, categoryID string) (int, error) {
	_, err := s.app.DB().NewQuery(
		`UPDATE ticket_categories
		 SET available = (
		     SELECT COUNT(*) FROM tickets
		     WHERE ticket_category_id = {:id} AND status = {:status}
		 )
		 WHERE id = {:id}`,
	).Bind(dbx.Params{
		"id":     categoryID,
		"status": models.TicketStatusAvailable,
	}).WithContext(ctx).Execute()
	if err != nil {
		return 0, err
	}

	var available int
	err = s.app.DB().
		Select("available").
		From("ticket_categories").
		Where(dbx.HashExp{"id": categoryID}).
		WithContext(ctx).
		Row(&available)
	return available, err
}

func (s *TicketStore) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	rec, err := s.app.FindRecordById("tickets", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return ticketFromRecord(rec), nil
}

func (s *TicketStore) UpdateTicket(ctx context.Context, id string, changes map[string]any) (*models.Ticket, error) {
	rec, err := s.app.FindRecordById("tickets", id)
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

	return ticketFromRecord(rec), nil
}

func (s *TicketStore) ListTickets(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, error) {
	q := s.app.RecordQuery("tickets").
		OrderBy("created DESC").
		WithContext(ctx)

	if filter.UserID != "" {
		q.AndWhere(dbx.HashExp{"user_id": filter.UserID})
	}
	if filter.TicketCategoryID != "" {
		q.AndWhere(dbx.HashExp{"ticket_category_id": filter.TicketCategoryID})
	}
	if filter.Status != "" {
		q.AndWhere(dbx.HashExp{"status": filter.Status})
	}
	if filter.Limit > 0 {
		q.Limit(int64(filter.Limit))
		q.Offset(int64(filter.Offset))
	}

	records := []*core.Record{}
	if err := q.All(&records); err != nil {
		return nil, err
	}

	tickets := make([]models.Ticket, 0, len(records))
	for _, rec := range records {
		tickets = append(tickets, *ticketFromRecord(rec))
	}
	return tickets, nil
}

// isUniqueViolation matches both shapes a duplicate code can take: the record
// validator's "must be unique" field error and the raw SQLite constraint.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "must be unique") ||
		strings.Contains(msg, "UNIQUE constraint")
}
