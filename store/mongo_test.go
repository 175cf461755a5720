package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"event_booking_go/models"
)

const testDB = "events-test"

func TestBookingPipelineStages(t *testing.T) {
	userID := primitive.NewObjectID()
	pipeline := bookingPipeline(bson.D{{Key: "user", Value: userID}})

	want := []string{"$match", "$sort", "$lookup", "$unwind"}
	if len(pipeline) != len(want) {
		t.Fatalf("stages = %d, want %d", len(pipeline), len(want))
	}
	for i, stage := range pipeline {
		if len(stage) != 1 || stage[0].Key != want[i] {
			t.Fatalf("stage %d = %v, want %s", i, stage, want[i])
		}
	}

	lookup := pipeline[2][0].Value.(bson.D).Map()
	if lookup["from"] != "events" || lookup["localField"] != "event" ||
		lookup["foreignField"] != "_id" || lookup["as"] != "eventDoc" {
		t.Fatalf("lookup = %v", lookup)
	}
	unwind := pipeline[3][0].Value.(bson.D).Map()
	if unwind["path"] != "$eventDoc" || unwind["preserveNullAndEmptyArrays"] != true {
		t.Fatalf("unwind = %v", unwind)
	}
}

func TestMongoEvents(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list counts and pages", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		date := time.Date(2026, 5, 1, 20, 0, 0, 0, time.UTC)
		mt.AddMockResponses(
			mtest.CreateCursorResponse(0, testDB+".events", mtest.FirstBatch, bson.D{{Key: "n", Value: 2}}),
			mtest.CreateCursorResponse(0, testDB+".events", mtest.FirstBatch, bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "title", Value: "concert"},
				{Key: "price", Value: 150.0},
				{Key: "date", Value: date},
			}),
		)

		events, total, err := m.ListEvents(context.Background(), Page{Skip: 1, Limit: 1})
		if err != nil {
			mt.Fatalf("ListEvents: %v", err)
		}
		if total != 2 || len(events) != 1 || events[0].Title != "concert" || events[0].Price != 150 {
			mt.Fatalf("events = %+v, total = %d", events, total)
		}
		if !events[0].Date.Equal(date) {
			mt.Fatalf("date = %v", events[0].Date)
		}
	})

	mt.Run("missing event is ErrNotFound", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".events", mtest.FirstBatch))

		if _, err := m.FindEvent(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("FindEvent err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("no ids skips the query", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		events, err := m.FindEvents(context.Background(), nil)
		if err != nil || len(events) != 0 {
			mt.Fatalf("FindEvents = %v, %v", events, err)
		}
		if ev := mt.GetStartedEvent(); ev != nil {
			mt.Fatalf("unexpected command %s", ev.CommandName)
		}
	})
}

func TestMongoUsers(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("create assigns id", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		u := &models.User{Email: "a@b.c", Password: "hash"}
		if err := m.CreateUser(context.Background(), u); err != nil {
			mt.Fatalf("CreateUser: %v", err)
		}
		if u.ID.IsZero() || u.CreatedEvents == nil {
			mt.Fatalf("user = %+v", u)
		}
	})

	mt.Run("duplicate email is ErrDuplicate", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error collection: users index: email_1",
		}))

		err := m.CreateUser(context.Background(), &models.User{Email: "a@b.c"})
		if !errors.Is(err, ErrDuplicate) {
			mt.Fatalf("CreateUser err = %v, want ErrDuplicate", err)
		}
	})

	mt.Run("other write errors are wrapped", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Index: 0, Code: 121, Message: "validation failed"}))

		err := m.CreateUser(context.Background(), &models.User{Email: "a@b.c"})
		if err == nil || errors.Is(err, ErrDuplicate) {
			mt.Fatalf("CreateUser err = %v", err)
		}
	})

	mt.Run("missing email is ErrNotFound", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".users", mtest.FirstBatch))

		if _, err := m.FindUserByEmail(context.Background(), "nobody@b.c"); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("FindUserByEmail err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("add created event to unknown user", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 0},
			bson.E{Key: "nModified", Value: 0},
		))

		err := m.AddCreatedEvent(context.Background(), primitive.NewObjectID(), primitive.NewObjectID())
		if !errors.Is(err, ErrNotFound) {
			mt.Fatalf("AddCreatedEvent err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("add created event", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		if err := m.AddCreatedEvent(context.Background(), primitive.NewObjectID(), primitive.NewObjectID()); err != nil {
			mt.Fatalf("AddCreatedEvent: %v", err)
		}
	})
}

func TestMongoBookings(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("list populates the event", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		userID, eventID := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".bookings", mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "event", Value: eventID},
				{Key: "user", Value: userID},
				{Key: "eventDoc", Value: bson.D{
					{Key: "_id", Value: eventID},
					{Key: "title", Value: "concert"},
					{Key: "price", Value: 150.0},
				}},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "event", Value: primitive.NewObjectID()},
				{Key: "user", Value: userID},
			},
		))

		bookings, err := m.ListUserBookings(context.Background(), userID)
		if err != nil {
			mt.Fatalf("ListUserBookings: %v", err)
		}
		if len(bookings) != 2 {
			mt.Fatalf("bookings = %+v", bookings)
		}
		if price, ok := bookings[0].EventPrice(); !ok || price != 150 || bookings[0].EventID != eventID {
			mt.Fatalf("first booking = %+v", bookings[0])
		}
		if _, ok := bookings[1].EventPrice(); ok {
			mt.Fatalf("booking with a deleted event should have no price: %+v", bookings[1])
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "aggregate" {
			mt.Fatalf("command = %v", started)
		}
		stages, err := started.Command.Lookup("pipeline").Array().Values()
		if err != nil {
			mt.Fatalf("pipeline: %v", err)
		}
		match := stages[0].Document().Lookup("$match", "user")
		if got, ok := match.ObjectIDOK(); !ok || got != userID {
			mt.Fatalf("$match user = %v", match)
		}
	})

	mt.Run("missing booking is ErrNotFound", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, testDB+".bookings", mtest.FirstBatch))

		if _, err := m.FindBooking(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("FindBooking err = %v, want ErrNotFound", err)
		}
	})

	mt.Run("create does not store the event", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		b := &models.Booking{
			EventID: primitive.NewObjectID(),
			UserID:  primitive.NewObjectID(),
			Event:   &models.Event{Title: "concert"},
		}
		if err := m.CreateBooking(context.Background(), b); err != nil {
			mt.Fatalf("CreateBooking: %v", err)
		}
		if b.ID.IsZero() {
			mt.Fatal("CreateBooking did not assign an id")
		}

		started := mt.GetStartedEvent()
		if started == nil || started.CommandName != "insert" {
			mt.Fatalf("command = %v", started)
		}
		doc := started.Command.Lookup("documents").Array().Index(0).Value().Document()
		if _, err := doc.LookupErr("eventDoc"); err == nil {
			mt.Fatalf("populated event was written: %v", doc)
		}
	})

	mt.Run("delete of unknown booking", func(mt *mtest.T) {
		m := NewMongo(mt.Client, testDB)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 0}))

		if err := m.DeleteBooking(context.Background(), primitive.NewObjectID()); !errors.Is(err, ErrNotFound) {
			mt.Fatalf("DeleteBooking err = %v, want ErrNotFound", err)
		}
	})
}
