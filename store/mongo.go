package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"event_booking_go/config"
	"event_booking_go/models"
)

// Mongo stores events, users and bookings in their own collections.
type Mongo struct {
	Events   *mongo.Collection
	Users    *mongo.Collection
	Bookings *mongo.Collection
}

func NewMongo(client *mongo.Client, database string) *Mongo {
	return &Mongo{
		Events:   config.GetCollection(client, database, "events"),
		Users:    config.GetCollection(client, database, "users"),
		Bookings: config.GetCollection(client, database, "bookings"),
	}
}

// EnsureIndexes creates the indexes the queries below rely on.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	_, err := m.Users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("users index: %w", err)
	}
	_, err = m.Bookings.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("bookings index: %w", err)
	}
	_, err = m.Events.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "date", Value: 1}},
	})
	if err != nil {
		return fmt.Errorf("events index: %w", err)
	}
	return nil
}

// ========== EVENTS ==========

func (m *Mongo) ListEvents(ctx context.Context, page Page) ([]models.Event, int64, error) {
	total, err := m.Events.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("count events: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "date", Value: 1}}).
		SetSkip(page.Skip)
	if page.Limit > 0 {
		opts.SetLimit(page.Limit)
	}

	cursor, err := m.Events.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find events: %w", err)
	}
	defer cursor.Close(ctx)

	events := []models.Event{}
	if err := cursor.All(ctx, &events); err != nil {
		return nil, 0, fmt.Errorf("decode events: %w", err)
	}
	return events, total, nil
}

func (m *Mongo) FindEvent(ctx context.Context, id primitive.ObjectID) (models.Event, error) {
	var event models.Event
	err := m.Events.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		return models.Event{}, notFound(err, "event")
	}
	return event, nil
}

func (m *Mongo) FindEvents(ctx context.Context, ids []primitive.ObjectID) ([]models.Event, error) {
	events := []models.Event{}
	if len(ids) == 0 {
		return events, nil
	}
	cursor, err := m.Events.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find events: %w", err)
	}
	defer cursor.Close(ctx)

	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (m *Mongo) CreateEvent(ctx context.Context, event *models.Event) error {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := m.Events.InsertOne(ctx, event); err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

// ========== USERS ==========

func (m *Mongo) FindUser(ctx context.Context, id primitive.ObjectID) (models.User, error) {
	var user models.User
	if err := m.Users.FindOne(ctx, bson.M{"_id": id}).Decode(&user); err != nil {
		return models.User{}, notFound(err, "user")
	}
	return user, nil
}

func (m *Mongo) FindUserByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	if err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&user); err != nil {
		return models.User{}, notFound(err, "user")
	}
	return user, nil
}

func (m *Mongo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.CreatedEvents == nil {
		user.CreatedEvents = []primitive.ObjectID{}
	}
	if _, err := m.Users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (m *Mongo) AddCreatedEvent(ctx context.Context, userID, eventID primitive.ObjectID) error {
	result, err := m.Users.UpdateOne(ctx,
		bson.M{"_id": userID},
		bson.M{"$push": bson.M{"createdEvents": eventID}},
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ========== BOOKINGS ==========

// bookingPipeline matches bookings and joins the booked event in as eventDoc.
func bookingPipeline(match bson.D) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: 1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: "events"},
			{Key: "localField", Value: "event"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "eventDoc"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$eventDoc"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (m *Mongo) ListUserBookings(ctx context.Context, userID primitive.ObjectID) ([]models.Booking, error) {
	cursor, err := m.Bookings.Aggregate(ctx, bookingPipeline(bson.D{{Key: "user", Value: userID}}))
	if err != nil {
		return nil, fmt.Errorf("aggregate bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("decode bookings: %w", err)
	}
	return bookings, nil
}

func (m *Mongo) FindBooking(ctx context.Context, id primitive.ObjectID) (models.Booking, error) {
	cursor, err := m.Bookings.Aggregate(ctx, bookingPipeline(bson.D{{Key: "_id", Value: id}}))
	if err != nil {
		return models.Booking{}, fmt.Errorf("aggregate booking: %w", err)
	}
	defer cursor.Close(ctx)

	if !cursor.Next(ctx) {
		if err := cursor.Err(); err != nil {
			return models.Booking{}, fmt.Errorf("read booking: %w", err)
		}
		return models.Booking{}, ErrNotFound
	}
	var booking models.Booking
	if err := cursor.Decode(&booking); err != nil {
		return models.Booking{}, fmt.Errorf("decode booking: %w", err)
	}
	return booking, nil
}

func (m *Mongo) CreateBooking(ctx context.Context, booking *models.Booking) error {
	if booking.ID.IsZero() {
		booking.ID = primitive.NewObjectID()
	}
	doc := *booking
	doc.Event = nil
	if _, err := m.Bookings.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert booking: %w", err)
	}
	return nil
}

func (m *Mongo) DeleteBooking(ctx context.Context, id primitive.ObjectID) error {
	result, err := m.Bookings.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete booking: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func notFound(err error, what string) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ErrNotFound
	}
	return fmt.Errorf("find %s: %w", what, err)
}
