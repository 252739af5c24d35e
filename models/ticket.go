package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	TicketStatusAvailable = "available"
	TicketStatusUsed      = "used"
	TicketStatusCancelled = "cancelled"
)

func IsValidTicketStatus(s string) bool {
	switch s {
	case TicketStatusAvailable, TicketStatusUsed, TicketStatusCancelled:
		return true
	}
	return false
}

type Ticket struct {
	ID               string    `json:"id"`
	TicketCategoryID string    `json:"ticket_category_id"`
	UserID           string    `json:"user_id,omitempty"` // empty until claimed
	TicketCode       string    `json:"ticket_code"`
	Status           string    `json:"status"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

type TicketCategory struct {
	ID        string          `json:"id"`
	EventID   string          `json:"event_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Stock     int             `json:"stock"`
	Available int             `json:"available"`
	Created   time.Time       `json:"created"`
	Updated   time.Time       `json:"updated"`
}

type CreateTicketCategoryRequest struct {
	Name  string  `json:"name"`
	Price *string `json:"price"`
	Stock *int    `json:"stock"`
}

type UpdateTicketCategoryRequest struct {
	Name  *string `json:"name"`
	Price *string `json:"price"`
	Stock *int    `json:"stock"`
}

type UpdateTicketRequest struct {
	Status *string `json:"status"`
}

// GenerateResult reports one run of ticket generation for a category.
type GenerateResult struct {
	GeneratedCount int `json:"generated_count"`
	TotalCount     int `json:"total_count"`
}

type TicketFilter struct {
	UserID           string
	TicketCategoryID string
	Status           string
	Limit            int
	Offset           int
}
