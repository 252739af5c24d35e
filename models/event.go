package models

import (
	"time"
)

type Event struct {
	ID          string    `json:"id"`
	AdminID     string    `json:"admin_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Location    string    `json:"location"`
	Created     time.Time `json:"created"`
	Updated     time.Time `json:"updated"`
}

type CreateEventRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	EventDate   string `json:"event_date"`
	Location    string `json:"location"`
}

type UpdateEventRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	EventDate   *string `json:"event_date"`
	Location    *string `json:"location"`
}

// EventFilter narrows and pages event listings. Zero values mean "no filter";
// Limit and Offset fall back to the listing defaults.
type EventFilter struct {
	StartDate time.Time
	EndDate   time.Time
	Location  string
	AdminID   string
	Limit     int
	Offset    int
}
