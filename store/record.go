package store

import (
	"tickethub/models"

	"github.com/pocketbase/pocketbase/core"
	"github.com/shopspring/decimal"
)

func eventFromRecord(rec *core.Record) *models.Event {
	return &models.Event{
		ID:          rec.Id,
		AdminID:     rec.GetString("admin_id"),
		Title:       rec.GetString("title"),
		Description: rec.GetString("description"),
		EventDate:   rec.GetDateTime("event_date").Time(),
		Location:    rec.GetString("location"),
		Created:     rec.GetDateTime("created").Time(),
		Updated:     rec.GetDateTime("updated").Time(),
	}
}

func categoryFromRecord(rec *core.Record) *models.TicketCategory {
	return &models.TicketCategory{
		ID:        rec.Id,
		EventID:   rec.GetString("event_id"),
		Name:      rec.GetString("name"),
		Price:     decimal.NewFromFloat(rec.GetFloat("price")),
		Stock:     rec.GetInt("stock"),
		Available: rec.GetInt("available"),
		Created:   rec.GetDateTime("created").Time(),
		Updated:   rec.GetDateTime("updated").Time(),
	}
}

func ticketFromRecord(rec *core.Record) *models.Ticket {
	return &models.Ticket{
		ID:               rec.Id,
		TicketCategoryID: rec.GetString("ticket_category_id"),
		UserID:           rec.GetString("user_id"),
		TicketCode:       rec.GetString("ticket_code"),
		Status:           rec.GetString("status"),
		Created:          rec.GetDateTime("created").Time(),
		Updated:          rec.GetDateTime("updated").Time(),
	}
}

func profileFromRecord(rec *core.Record) *models.Profile {
	return &models.Profile{
		ID:      rec.Id,
		Name:    rec.GetString("name"),
		Role:    rec.GetString("role"),
		Created: rec.GetDateTime("created").Time(),
		Updated: rec.GetDateTime("updated").Time(),
	}
}
