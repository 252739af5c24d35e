package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"tickethub/models"
	"tickethub/store"
)

// In-memory stand-ins for the store layer. They keep just enough behavior
// for the service tests: lookups by id, filtered listing, and the available
// counter recomputation.

type fakeEventStore struct {
	events map[string]*models.Event
	nextID int
	err    error
}

func newFakeEventStore() *fakeEventStore {
	return &fakeEventStore{events: map[string]*models.Event{}}
}

func (f *fakeEventStore) add(ev *models.Event) *models.Event {
	if ev.ID == "" {
		f.nextID++
		ev.ID = fmt.Sprintf("evt%d", f.nextID)
	}
	f.events[ev.ID] = ev
	return ev
}

func (f *fakeEventStore) Create(ctx context.Context, ev *models.Event) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.add(ev), nil
}

func (f *fakeEventStore) GetByID(ctx context.Context, id string) (*models.Event, error) {
	if f.err != nil {
		return nil, f.err
	}
	ev, okFound := f.events[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	copied := *ev
	return &copied, nil
}

func (f *fakeEventStore) Update(ctx context.Context, id string, changes map[string]any) (*models.Event, error) {
	ev, okFound := f.events[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	if title, okVal := changes["title"].(string); okVal {
		ev.Title = title
	}
	if desc, okVal := changes["description"].(string); okVal {
		ev.Description = desc
	}
	if loc, okVal := changes["location"].(string); okVal {
		ev.Location = loc
	}
	copied := *ev
	return &copied, nil
}

func (f *fakeEventStore) Delete(ctx context.Context, id string) error {
	if _, okFound := f.events[id]; !okFound {
		return store.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventStore) List(ctx context.Context, filter models.EventFilter) ([]models.Event, error) {
	var out []models.Event
	for _, ev := range f.events {
		if filter.AdminID != "" && ev.AdminID != filter.AdminID {
			continue
		}
		out = append(out, *ev)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (f *fakeEventStore) Count(ctx context.Context, filter models.EventFilter) (int64, error) {
	events, _ := f.List(ctx, filter)
	return int64(len(events)), nil
}

type fakeTicketStore struct {
	categories map[string]*models.TicketCategory
	tickets    map[string]*models.Ticket
	nextID     int

	// rejectCodes makes BulkInsert fail with ErrCodeTaken this many times.
	rejectCodes int
	bulkErr     error
	bulkCalls   int
}

func newFakeTicketStore() *fakeTicketStore {
	return &fakeTicketStore{
		categories: map[string]*models.TicketCategory{},
		tickets:    map[string]*models.Ticket{},
	}
}

func (f *fakeTicketStore) addCategory(cat *models.TicketCategory) *models.TicketCategory {
	if cat.ID == "" {
		f.nextID++
		cat.ID = fmt.Sprintf("cat%d", f.nextID)
	}
	f.categories[cat.ID] = cat
	return cat
}

func (f *fakeTicketStore) CreateCategory(ctx context.Context, cat *models.TicketCategory) (*models.TicketCategory, error) {
	return f.addCategory(cat), nil
}

func (f *fakeTicketStore) GetCategory(ctx context.Context, id string) (*models.TicketCategory, error) {
	cat, okFound := f.categories[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	copied := *cat
	return &copied, nil
}

func (f *fakeTicketStore) UpdateCategory(ctx context.Context, id string, changes map[string]any) (*models.TicketCategory, error) {
	cat, okFound := f.categories[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	if name, okVal := changes["name"].(string); okVal {
		cat.Name = name
	}
	if stock, okVal := changes["stock"].(int); okVal {
		cat.Stock = stock
	}
	copied := *cat
	return &copied, nil
}

func (f *fakeTicketStore) DeleteCategory(ctx context.Context, id string) error {
	if _, okFound := f.categories[id]; !okFound {
		return store.ErrNotFound
	}
	delete(f.categories, id)
	return nil
}

func (f *fakeTicketStore) ListCategoriesByEvent(ctx context.Context, eventID string) ([]models.TicketCategory, error) {
	var out []models.TicketCategory
	for _, cat := range f.categories {
		if cat.EventID == eventID {
			out = append(out, *cat)
		}
	}
	return out, nil
}

func (f *fakeTicketStore) CountByCategory(ctx context.Context, categoryID string) (int, error) {
	count := 0
	for _, t := range f.tickets {
		if t.TicketCategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (f *fakeTicketStore) BulkInsert(ctx context.Context, categoryID string, codes []string) error {
	f.bulkCalls++
	if f.bulkErr != nil {
		return f.bulkErr
	}
	if f.rejectCodes > 0 {
		f.rejectCodes--
		return store.ErrCodeTaken
	}
	for _, code := range codes {
		f.nextID++
		id := fmt.Sprintf("tix%d", f.nextID)
		f.tickets[id] = &models.Ticket{
			ID:               id,
			TicketCategoryID: categoryID,
			TicketCode:       code,
			Status:           models.TicketStatusAvailable,
		}
	}
	return nil
}

func (f *fakeTicketStore) RefreshAvailable(ctx context.Context, categoryID string) (int, error) {
	cat, okFound := f.categories[categoryID]
	if !okFound {
		return 0, store.ErrNotFound
	}
	available := 0
	for _, t := range f.tickets {
		if t.TicketCategoryID == categoryID && t.Status == models.TicketStatusAvailable {
			available++
		}
	}
	cat.Available = available
	return available, nil
}

func (f *fakeTicketStore) GetTicket(ctx context.Context, id string) (*models.Ticket, error) {
	t, okFound := f.tickets[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketStore) UpdateTicket(ctx context.Context, id string, changes map[string]any) (*models.Ticket, error) {
	t, okFound := f.tickets[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	if userID, okVal := changes["user_id"].(string); okVal {
		t.UserID = userID
	}
	if st, okVal := changes["status"].(string); okVal {
		t.Status = st
	}
	copied := *t
	return &copied, nil
}

func (f *fakeTicketStore) ListTickets(ctx context.Context, filter models.TicketFilter) ([]models.Ticket, error) {
	var out []models.Ticket
	for _, t := range f.tickets {
		if filter.UserID != "" && t.UserID != filter.UserID {
			continue
		}
		if filter.TicketCategoryID != "" && t.TicketCategoryID != filter.TicketCategoryID {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		out = append(out, *t)
	}
	return out, nil
}

func (f *fakeTicketStore) codesByCategory(categoryID string) []string {
	var codes []string
	for _, t := range f.tickets {
		if t.TicketCategoryID == categoryID {
			codes = append(codes, t.TicketCode)
		}
	}
	sort.Strings(codes)
	return codes
}

type fakeProfileStore struct {
	profiles map[string]*models.Profile
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: map[string]*models.Profile{}}
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.Profile) (*models.Profile, error) {
	f.profiles[profile.ID] = profile
	return profile, nil
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id string) (*models.Profile, error) {
	p, okFound := f.profiles[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) Update(ctx context.Context, id string, changes map[string]any) (*models.Profile, error) {
	p, okFound := f.profiles[id]
	if !okFound {
		return nil, store.ErrNotFound
	}
	if name, okVal := changes["name"].(string); okVal {
		p.Name = name
	}
	if role, okVal := changes["role"].(string); okVal {
		p.Role = role
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) List(ctx context.Context, filter models.ProfileFilter) ([]models.Profile, error) {
	var out []models.Profile
	for _, p := range f.profiles {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	start := (filter.Page - 1) * filter.Limit
	if start >= len(out) {
		return nil, nil
	}
	end := start + filter.Limit
	if end > len(out) {
		end = len(out)
	}
	return out[start:end], nil
}

func (f *fakeProfileStore) Count(ctx context.Context, filter models.ProfileFilter) (int64, error) {
	count := int64(0)
	for _, p := range f.profiles {
		if filter.Role != "" && p.Role != filter.Role {
			continue
		}
		if filter.Search != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Search)) {
			continue
		}
		count++
	}
	return count, nil
}
