package store

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"event_booking_go/models"
)

// Memory is an in-process Store. Same semantics as Mongo, nothing survives
// a restart.
type Memory struct {
	mu       sync.RWMutex
	events   map[primitive.ObjectID]models.Event
	users    map[primitive.ObjectID]models.User
	bookings map[primitive.ObjectID]models.Booking
}

func NewMemory() *Memory {
	return &Memory{
		events:   make(map[primitive.ObjectID]models.Event),
		users:    make(map[primitive.ObjectID]models.User),
		bookings: make(map[primitive.ObjectID]models.Booking),
	}
}

func (m *Memory) ListEvents(_ context.Context, page Page) ([]models.Event, int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := make([]models.Event, 0, len(m.events))
	for _, e := range m.events {
		events = append(events, e)
	}
	sort.Slice(events, func(i, j int) bool {
		if events[i].Date.Equal(events[j].Date) {
			return events[i].ID.Hex() < events[j].ID.Hex()
		}
		return events[i].Date.Before(events[j].Date)
	})

	total := int64(len(events))
	start := min(page.Skip, total)
	end := total
	if page.Limit > 0 {
		end = min(start+page.Limit, total)
	}
	return events[start:end], total, nil
}

func (m *Memory) FindEvent(_ context.Context, id primitive.ObjectID) (models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.events[id]
	if !ok {
		return models.Event{}, ErrNotFound
	}
	return e, nil
}

func (m *Memory) FindEvents(_ context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	events := []models.Event{}
	for _, id := range ids {
		if e, ok := m.events[id]; ok {
			events = append(events, e)
		}
	}
	return events, nil
}

func (m *Memory) CreateEvent(_ context.Context, event *models.Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, ok := m.events[event.ID]; ok {
		return ErrDuplicate
	}
	m.events[event.ID] = *event
	return nil
}

func (m *Memory) FindUser(_ context.Context, id primitive.ObjectID) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.users[id]
	if !ok {
		return models.User{}, ErrNotFound
	}
	return u, nil
}

func (m *Memory) FindUserByEmail(_ context.Context, email string) (models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return models.User{}, ErrNotFound
}

func (m *Memory) CreateUser(_ context.Context, user *models.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, u := range m.users {
		if u.Email == user.Email {
			return ErrDuplicate
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedEvents == nil {
		user.CreatedEvents = []primitive.ObjectID{}
	}
	m.users[user.ID] = *user
	return nil
}

func (m *Memory) AddCreatedEvent(_ context.Context, userID, eventID primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.users[userID]
	if !ok {
		return ErrNotFound
	}
	u.CreatedEvents = append(append([]primitive.ObjectID{}, u.CreatedEvents...), eventID)
	m.users[userID] = u
	return nil
}

func (m *Memory) ListUserBookings(_ context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bookings := []models.Booking{}
	for _, b := range m.bookings {
		if b.UserID == userID {
			bookings = append(bookings, m.populate(b))
		}
	}
	sort.Slice(bookings, func(i, j int) bool {
		if bookings[i].CreatedAt.Equal(bookings[j].CreatedAt) {
			return bookings[i].ID.Hex() < bookings[j].ID.Hex()
		}
		return bookings[i].CreatedAt.Before(bookings[j].CreatedAt)
	})
	return bookings, nil
}

func (m *Memory) FindBooking(_ context.Context, id primitive.ObjectID) (models.Booking, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.bookings[id]
	if !ok {
		return models.Booking{}, ErrNotFound
	}
	return m.populate(b), nil
}

func (m *Memory) CreateBooking(_ context.Context, booking *models.Booking) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	stored := *booking
	stored.Event = nil
	m.bookings[booking.ID] = stored
	return nil
}

func (m *Memory) DeleteBooking(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.bookings[id]; !ok {
		return ErrNotFound
	}
	delete(m.bookings, id)
	return nil
}

// populate must be called with the lock held.
func (m *Memory) populate(b models.Booking) models.Booking {
	if e, ok := m.events[b.EventID]; ok {
		b.Event = &e
	}
	return b
}
