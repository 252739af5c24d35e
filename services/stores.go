package services

import (
	"context"

	"tickethub/models"
)

// The store interfaces are what the services consume; the concrete
// implementations live in the store package and tests plug in fakes.

type EventStore interface {
	Create(ctx context.Context, ev *models.Event) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, changes map[string]any) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, filter models.EventFilter) ([]models.Event, error)
	Count(ctx context.Context, filter models.EventFilter) (int64, error)
}

type TicketStore interface {
	CreateCategory(ctx context.Context, cat *models.TicketCategory) (*models.TicketCategory, error)
	GetCategory(ctx context.Context, id string) (*models.TicketCategory, error)
	UpdateCategory(ctx context.Context, id string, changes map[string]any) (*models.TicketCategory, error)
	DeleteCategory(ctx context.Context, id string) error
	ListCategoriesByEvent(ctx context.Context, eventID string) ([]models.TicketCategory, error)
	CountByCategory(ctx context.Context, categoryID string) (int, error)
	BulkInsert(ctx context.Context, categoryID string, codes []string) error
	RefreshAvailable(ctx context.Context, categoryID string) (int, error)
	GetTicket(ctx context.Context, id string) (*models.Ticket, error)
	UpdateTicket(ctx context.Context, id string, changes map[string]any) (*models.Ticket, error)
	ListTickets(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, error)
}

type ProfileStore interface {
	Create(ctx context.Context, profile *models.Profile) (*models.Profile, error)
	GetByID(ctx context.Context, id string) (*models.Profile, error)
	Update(ctx context.Context, id string, changes map[string]any) (*models.Profile, error)
	List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error)
	Count(ctx context.Context, filter models.ProfileFilter) (int64, error)
}
