package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tickethub/internal/status"
	"tickethub/models"
	"tickethub/monitoring"
	"tickethub/store"
	"tickethub/utils"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
)

const generateLockPrefix = "lock:generate:"

// releaseLockScript deletes the generation lock only when the stored token
// still matches, so an expired lease never releases a successor's lock.
const releaseLockScript = `if redis.call("get", KEYS[1]) == ARGV[1] then return redis.call("del", KEYS[1]) else return 0 end`

type TicketService struct {
	tickets  TicketStore
	events   EventStore
	Redis    *redis.Client
	notifier *Notifier

	lockTTL       time.Duration
	insertRetries int
}

func NewTicketService(tickets TicketStore, events EventStore, redisClient *redis.Client, notifier *Notifier, lockTTL time.Duration, insertRetries int) *TicketService {
	if lockTTL <= 0 {
		lockTTL = 30 * time.Second
	}
	if insertRetries <= 0 {
		insertRetries = 3
	}
	return &TicketService{
		tickets:       tickets,
		events:        events,
		Redis:         redisClient,
		notifier:      notifier,
		lockTTL:       lockTTL,
		insertRetries: insertRetries,
	}
}

// Generate fills the category up to its stock cap with fresh AVAILABLE
// tickets and refreshes the category's available counter. Runs for the same
// category are serialized through a Redis lease; a held lease maps to
// Conflict rather than waiting.
func (s *TicketService) Generate(ctx context.Context, categoryID, callerID string) (*models.GenerateResult, error) {
	category, err := s.tickets.GetCategory(ctx, categoryID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Ticket category not found")
		}
		return nil, status.Internal("Failed to load ticket category", err)
	}

	event, err := s.events.GetByID(ctx, category.EventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Event not found for the ticket category")
		}
		return nil, status.Internal("Failed to load event", err)
	}

	if event.AdminID != callerID {
		return nil, status.Forbidden("You do not have permission to generate tickets for this category")
	}

	release, err := s.acquireGenerateLock(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	defer release()

	existing, err := s.tickets.CountByCategory(ctx, categoryID)
	if err != nil {
		return nil, status.Internal("Failed to count existing tickets", err)
	}

	toGenerate := category.Stock - existing
	if toGenerate <= 0 {
		monitoring.TrackSaturation(categoryID)
		return &models.GenerateResult{GeneratedCount: 0, TotalCount: existing}, nil
	}

	start := time.Now()
	if err := s.insertWithRetry(ctx, categoryID, toGenerate); err != nil {
		return nil, err
	}

	available, err := s.tickets.RefreshAvailable(ctx, categoryID)
	if err != nil {
		return nil, status.Internal("Failed to update available count", err)
	}

	monitoring.TrackGeneration(categoryID, toGenerate, time.Since(start))
	s.notifier.TicketsGenerated(ctx, event.ID, categoryID, toGenerate)

	slog.Info("generated tickets",
		"category_id", categoryID,
		"generated", toGenerate,
		"available", available,
	)

	return &models.GenerateResult{
		GeneratedCount: toGenerate,
		TotalCount:     existing + toGenerate,
	}, nil
}

// acquireGenerateLock takes the per-category lease. The returned release func
// is safe to call after the request context is cancelled.
func (s *TicketService) acquireGenerateLock(ctx context.Context, categoryID string) (func(), error) {
	token, err := utils.GenerateCode(8)
	if err != nil {
		return nil, status.Internal("Failed to create lock token", err)
	}

	key := generateLockPrefix + categoryID
	ok, err := s.Redis.SetNX(ctx, key, token, s.lockTTL).Result()
	if err != nil {
		return nil, status.Internal("Failed to acquire generation lock", err)
	}
	if !ok {
		return nil, status.Conflict("Ticket generation already in progress for this category")
	}

	release := func() {
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 2*time.Second)
		defer cancel()
		if err := s.Redis.Eval(releaseCtx, releaseLockScript, []string{key}, token).Err(); err != nil && err != redis.Nil {
			slog.Warn("failed to release generation lock", "key", key, "error", err)
		}
	}
	return release, nil
}

// insertWithRetry bulk-inserts count tickets, retrying the whole batch with
// fresh codes when one collides with the unique index.
func (s *TicketService) insertWithRetry(ctx context.Context, categoryID string, count int) error {
	for attempt := 0; attempt < s.insertRetries; attempt++ {
		codes := make([]string, count)
		for i := range codes {
			code, err := utils.GenerateTicketCode()
			if err != nil {
				return status.Internal("Failed to generate ticket code", err)
			}
			codes[i] = code
		}

		err := s.tickets.BulkInsert(ctx, categoryID, codes)
		if err == nil {
			return nil
		}
		if errors.Is(err, store.ErrCodeTaken) {
			slog.Warn("ticket code collision, retrying batch", "category_id", categoryID, "attempt", attempt+1)
			continue
		}
		return status.Internal("Failed to generate tickets", err)
	}
	return status.Internal("Failed to generate tickets", store.ErrCodeTaken)
}

// CreateCategory creates a priced, capacity-bounded ticket class for an event
// the caller owns. available always starts at zero.
func (s *TicketService) CreateCategory(ctx context.Context, eventID string, req models.CreateTicketCategoryRequest, callerID string) (*models.TicketCategory, error) {
	if _, err := requireEventOwner(ctx, s.events, eventID, callerID); err != nil {
		return nil, err
	}

	if req.Name == "" || req.Price == nil || req.Stock == nil {
		return nil, status.BadRequest("Missing required category information")
	}

	price, err := parsePrice(*req.Price)
	if err != nil {
		return nil, err
	}
	if *req.Stock < 0 {
		return nil, status.BadRequest("Stock must not be negative")
	}

	category, err := s.tickets.CreateCategory(ctx, &models.TicketCategory{
		EventID: eventID,
		Name:    req.Name,
		Price:   price,
		Stock:   *req.Stock,
	})
	if err != nil {
		return nil, status.Internal("Failed to create ticket category", err)
	}
	return category, nil
}

func (s *TicketService) GetCategory(ctx context.Context, id string) (*models.TicketCategory, error) {
	category, err := s.tickets.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Ticket category not found")
		}
		return nil, status.Internal("Failed to load ticket category", err)
	}
	return category, nil
}

func (s *TicketService) ListCategoriesByEvent(ctx context.Context, eventID string) ([]models.TicketCategory, error) {
	categories, err := s.tickets.ListCategoriesByEvent(ctx, eventID)
	if err != nil {
		return nil, status.Internal("Failed to load ticket categories", err)
	}
	return categories, nil
}

func (s *TicketService) UpdateCategory(ctx context.Context, id string, req models.UpdateTicketCategoryRequest, callerID string) (*models.TicketCategory, error) {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return nil, err
	}
	if _, err := requireEventOwner(ctx, s.events, category.EventID, callerID); err != nil {
		return nil, err
	}

	changes := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, status.BadRequest("Name must not be empty")
		}
		changes["name"] = *req.Name
	}
	if req.Price != nil {
		price, err := parsePrice(*req.Price)
		if err != nil {
			return nil, err
		}
		priceFloat, _ := price.Float64()
		changes["price"] = priceFloat
	}
	if req.Stock != nil {
		if *req.Stock < 0 {
			return nil, status.BadRequest("Stock must not be negative")
		}
		changes["stock"] = *req.Stock
	}
	if len(changes) == 0 {
		return category, nil
	}

	updated, err := s.tickets.UpdateCategory(ctx, id, changes)
	if err != nil {
		return nil, status.Internal("Failed to update ticket category", err)
	}
	return updated, nil
}

func (s *TicketService) DeleteCategory(ctx context.Context, id, callerID string) error {
	category, err := s.GetCategory(ctx, id)
	if err != nil {
		return err
	}
	if _, err := requireEventOwner(ctx, s.events, category.EventID, callerID); err != nil {
		return err
	}

	if err := s.tickets.DeleteCategory(ctx, id); err != nil {
		return status.Internal("Failed to delete ticket category", err)
	}
	return nil
}

func (s *TicketService) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	ticket, err := s.tickets.GetTicket(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, status.NotFound("Ticket not found")
		}
		return nil, status.Internal("Failed to load ticket", err)
	}
	return ticket, nil
}

func (s *TicketService) ListTickets(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, error) {
	tickets, err := s.tickets.ListTickets(ctx, filter)
	if err != nil {
		return nil, status.Internal("Failed to load tickets", err)
	}
	return tickets, nil
}

// UpdateTicket changes a ticket's status. The caller must already hold the
// ticket; an unassigned ticket is claimed for the caller on first touch.
func (s *TicketService) UpdateTicket(ctx context.Context, id string, req models.UpdateTicketRequest, callerID string) (*models.Ticket, error) {
	ticket, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}

	if ticket.UserID != "" && ticket.UserID != callerID {
		return nil, status.Forbidden("You do not have permission to update this ticket")
	}

	changes := map[string]any{}
	if ticket.UserID == "" {
		changes["user_id"] = callerID
	}
	if req.Status != nil {
		if !models.IsValidTicketStatus(*req.Status) {
			return nil, status.BadRequest("Invalid ticket status")
		}
		changes["status"] = *req.Status
	}

	updated, err := s.tickets.UpdateTicket(ctx, id, changes)
	if err != nil {
		return nil, status.Internal("Failed to update ticket", err)
	}

	// A status flip changes how many tickets count as available.
	if req.Status != nil {
		if _, err := s.tickets.RefreshAvailable(ctx, ticket.TicketCategoryID); err != nil {
			slog.Warn("failed to refresh available count", "category_id", ticket.TicketCategoryID, "error", err)
		}
	}

	return updated, nil
}

func parsePrice(raw string) (decimal.Decimal, error) {
	price, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, status.BadRequest("Price must be a decimal number")
	}
	if price.IsNegative() {
		return decimal.Zero, status.BadRequest("Price must not be negative")
	}
	return price, nil
}
