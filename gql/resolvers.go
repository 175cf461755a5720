package gql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event_booking_go/analytics"
	"event_booking_go/middlewares"
	"event_booking_go/models"
	"event_booking_go/store"
	"event_booking_go/utils"
	"event_booking_go/validations"
)

var (
	errUnauthenticated    = errors.New("unauthenticated")
	errInvalidCredentials = errors.New("invalid credentials")
	errUserExists         = errors.New("user exists already")
	errNotOwner           = errors.New("booking belongs to another user")
)

type Resolver struct {
	Store   store.Store
	Tokens  *utils.TokenIssuer
	Buckets analytics.BucketSet
}

func requireUser(ctx context.Context) (primitive.ObjectID, error) {
	userID, ok := middlewares.UserFromContext(ctx)
	if !ok {
		return primitive.NilObjectID, errUnauthenticated
	}
	return userID, nil
}

// internal hides store failures from clients and logs them instead.
func internal(op string, err error) error {
	log.Error().Err(err).Str("op", op).Msg("graphql resolver failed")
	return fmt.Errorf("%s failed", op)
}

// ========== TRANSFORMS ==========

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func transformEvent(e models.Event) map[string]interface{} {
	return map[string]interface{}{
		"_id":         e.ID.Hex(),
		"title":       e.Title,
		"description": e.Description,
		"price":       e.Price,
		"date":        formatTime(e.Date),
		"creatorId":   e.CreatorID,
	}
}

func transformUser(u models.User) map[string]interface{} {
	return map[string]interface{}{
		"_id":             u.ID.Hex(),
		"email":           u.Email,
		"createdEventIds": u.CreatedEvents,
	}
}

func transformBooking(b models.Booking) map[string]interface{} {
	return map[string]interface{}{
		"_id":       b.ID.Hex(),
		"createdAt": formatTime(b.CreatedAt),
		"updatedAt": formatTime(b.UpdatedAt),
		"eventId":   b.EventID,
		"userId":    b.UserID,
		"eventDoc":  b.Event,
	}
}

func source(p graphql.ResolveParams) map[string]interface{} {
	src, _ := p.Source.(map[string]interface{})
	return src
}

// ========== RELATIONS ==========

func (r *Resolver) eventCreator(p graphql.ResolveParams) (interface{}, error) {
	id, _ := source(p)["creatorId"].(primitive.ObjectID)
	user, err := r.Store.FindUser(p.Context, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("creator not found")
		}
		return nil, internal("creator", err)
	}
	return transformUser(user), nil
}

func (r *Resolver) userCreatedEvents(p graphql.ResolveParams) (interface{}, error) {
	ids, _ := source(p)["createdEventIds"].([]primitive.ObjectID)
	events, err := r.Store.FindEvents(p.Context, ids)
	if err != nil {
		return nil, internal("createdEvents", err)
	}
	out := make([]interface{}, len(events))
	for i, e := range events {
		out[i] = transformEvent(e)
	}
	return out, nil
}

func (r *Resolver) bookingEvent(p graphql.ResolveParams) (interface{}, error) {
	src := source(p)
	if e, ok := src["eventDoc"].(*models.Event); ok && e != nil {
		return transformEvent(*e), nil
	}
	id, _ := src["eventId"].(primitive.ObjectID)
	event, err := r.Store.FindEvent(p.Context, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, internal("event", err)
	}
	return transformEvent(event), nil
}

func (r *Resolver) bookingUser(p graphql.ResolveParams) (interface{}, error) {
	id, _ := source(p)["userId"].(primitive.ObjectID)
	user, err := r.Store.FindUser(p.Context, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, internal("user", err)
	}
	return transformUser(user), nil
}

// ========== QUERIES ==========

func (r *Resolver) events(p graphql.ResolveParams) (interface{}, error) {
	events, _, err := r.Store.ListEvents(p.Context, store.Page{})
	if err != nil {
		return nil, internal("events", err)
	}
	out := make([]interface{}, len(events))
	for i, e := range events {
		out[i] = transformEvent(e)
	}
	return out, nil
}

func (r *Resolver) bookings(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireUser(p.Context)
	if err != nil {
		return nil, err
	}
	bookings, err := r.Store.ListUserBookings(p.Context, userID)
	if err != nil {
		return nil, internal("bookings", err)
	}
	out := make([]interface{}, len(bookings))
	for i, b := range bookings {
		out[i] = transformBooking(b)
	}
	return out, nil
}

func (r *Resolver) login(p graphql.ResolveParams) (interface{}, error) {
	email, _ := p.Args["email"].(string)
	password, _ := p.Args["password"].(string)

	user, err := r.Store.FindUserByEmail(p.Context, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, internal("login", err)
	}
	if !utils.CheckPassword(user.Password, password) {
		return nil, errInvalidCredentials
	}

	token, err := r.Tokens.GenerateToken(user.ID.Hex(), user.Email)
	if err != nil {
		return nil, internal("login", err)
	}
	return map[string]interface{}{
		"userId":          user.ID.Hex(),
		"token":           token,
		"tokenExpiration": r.Tokens.TTLHours(),
	}, nil
}

func (r *Resolver) bookingStats(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireUser(p.Context)
	if err != nil {
		return nil, err
	}
	bookings, err := r.Store.ListUserBookings(p.Context, userID)
	if err != nil {
		return nil, internal("bookingStats", err)
	}

	data := analytics.Bucketize(bookings, r.Buckets)
	out := make([]interface{}, len(r.Buckets))
	for i, b := range r.Buckets {
		out[i] = map[string]interface{}{
			"label": b.Label,
			"min":   b.Min,
			"max":   b.Max,
			"count": data.Datasets[i],
		}
	}
	return out, nil
}

// ========== MUTATIONS ==========

func (r *Resolver) createEvent(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	in, _ := p.Args["eventInput"].(map[string]interface{})
	req := validations.CreateEventRequest{}
	req.Title, _ = in["title"].(string)
	req.Description, _ = in["description"].(string)
	if price, ok := in["price"].(float64); ok {
		req.Price = &price
	}
	if raw, _ := in["date"].(string); raw != "" {
		date, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("date must be RFC 3339: %q", raw)
		}
		req.Date = date
	}
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	now := time.Now()
	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Price:       *req.Price,
		Date:        req.Date,
		CreatorID:   userID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := r.Store.CreateEvent(p.Context, &event); err != nil {
		return nil, internal("createEvent", err)
	}
	if err := r.Store.AddCreatedEvent(p.Context, userID, event.ID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("user not found")
		}
		return nil, internal("createEvent", err)
	}
	return transformEvent(event), nil
}

func (r *Resolver) createUser(p graphql.ResolveParams) (interface{}, error) {
	in, _ := p.Args["userInput"].(map[string]interface{})
	req := validations.RegisterRequest{}
	req.Email, _ = in["email"].(string)
	req.Password, _ = in["password"].(string)
	if err := validations.Struct(req); err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, internal("createUser", err)
	}

	now := time.Now()
	user := models.User{
		Email:     req.Email,
		Password:  hashed,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Store.CreateUser(p.Context, &user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, errUserExists
		}
		return nil, internal("createUser", err)
	}
	return transformUser(user), nil
}

func (r *Resolver) bookEvent(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	raw, _ := p.Args["eventId"].(string)
	eventID, err := store.ParseID(raw)
	if err != nil {
		return nil, errors.New("invalid eventId")
	}
	event, err := r.Store.FindEvent(p.Context, eventID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("event not found")
		}
		return nil, internal("bookEvent", err)
	}

	now := time.Now()
	booking := models.Booking{
		EventID:   event.ID,
		UserID:    userID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := r.Store.CreateBooking(p.Context, &booking); err != nil {
		return nil, internal("bookEvent", err)
	}
	booking.Event = &event
	return transformBooking(booking), nil
}

func (r *Resolver) cancelBooking(p graphql.ResolveParams) (interface{}, error) {
	userID, err := requireUser(p.Context)
	if err != nil {
		return nil, err
	}

	raw, _ := p.Args["bookingId"].(string)
	bookingID, err := store.ParseID(raw)
	if err != nil {
		return nil, errors.New("invalid bookingId")
	}
	booking, err := r.Store.FindBooking(p.Context, bookingID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("booking not found")
		}
		return nil, internal("cancelBooking", err)
	}
	if booking.UserID != userID {
		return nil, errNotOwner
	}
	if booking.Event == nil {
		return nil, errors.New("event not found")
	}

	if err := r.Store.DeleteBooking(p.Context, bookingID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, errors.New("booking not found")
		}
		return nil, internal("cancelBooking", err)
	}
	return transformEvent(*booking.Event), nil
}
