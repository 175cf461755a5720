package gql

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/graphql-go/graphql"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"event_booking_go/analytics"
	"event_booking_go/middlewares"
	"event_booking_go/store"
	"event_booking_go/utils"
)

type harness struct {
	t      *testing.T
	schema graphql.Schema
	store  *store.Memory
	tokens *utils.TokenIssuer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		t:      t,
		store:  store.NewMemory(),
		tokens: utils.NewTokenIssuer("secret", time.Hour),
	}
	schema, err := NewSchema(&Resolver{Store: h.store, Tokens: h.tokens, Buckets: analytics.DefaultBuckets()})
	if err != nil {
		t.Fatalf("NewSchema: %v", err)
	}
	h.schema = schema
	return h
}

// do runs query and decodes data into out. It fails the test on errors
// unless wantErr is set, in which case it returns the first message.
func (h *harness) do(ctx context.Context, query string, vars map[string]interface{}, out interface{}) string {
	h.t.Helper()
	res := Execute(ctx, h.schema, Request{Query: query, Variables: vars})
	if len(res.Errors) > 0 {
		return res.Errors[0].Message
	}
	if out != nil {
		raw, err := json.Marshal(res.Data)
		if err != nil {
			h.t.Fatalf("marshal data: %v", err)
		}
		if err := json.Unmarshal(raw, out); err != nil {
			h.t.Fatalf("unmarshal data: %v", err)
		}
	}
	return ""
}

func (h *harness) mustDo(ctx context.Context, query string, vars map[string]interface{}, out interface{}) {
	h.t.Helper()
	if msg := h.do(ctx, query, vars, out); msg != "" {
		h.t.Fatalf("query failed: %s", msg)
	}
}

func (h *harness) signUp(email string) context.Context {
	h.t.Helper()
	var created struct {
		CreateUser struct {
			ID       string  `json:"_id"`
			Password *string `json:"password"`
		} `json:"createUser"`
	}
	h.mustDo(context.Background(),
		`mutation($e: String!, $p: String!) { createUser(userInput: {email: $e, password: $p}) { _id password } }`,
		map[string]interface{}{"e": email, "p": "secret1"}, &created)
	if created.CreateUser.Password != nil {
		h.t.Fatal("password leaked through the API")
	}
	id, err := primitive.ObjectIDFromHex(created.CreateUser.ID)
	if err != nil {
		h.t.Fatalf("bad user id %q", created.CreateUser.ID)
	}
	return middlewares.ContextWithUser(context.Background(), id)
}

func (h *harness) createEvent(ctx context.Context, title string, price float64) string {
	h.t.Helper()
	var out struct {
		CreateEvent struct {
			ID string `json:"_id"`
		} `json:"createEvent"`
	}
	h.mustDo(ctx,
		`mutation($t: String!, $p: Float!) {
			createEvent(eventInput: {title: $t, description: "d", price: $p, date: "2026-05-01T20:00:00Z"}) { _id }
		}`,
		map[string]interface{}{"t": title, "p": price}, &out)
	return out.CreateEvent.ID
}

func TestLogin(t *testing.T) {
	h := newHarness(t)
	h.signUp("a@b.co")

	var out struct {
		Login struct {
			UserID          string `json:"userId"`
			Token           string `json:"token"`
			TokenExpiration int    `json:"tokenExpiration"`
		} `json:"login"`
	}
	h.mustDo(context.Background(), `{ login(email: "a@b.co", password: "secret1") { userId token tokenExpiration } }`, nil, &out)
	if out.Login.TokenExpiration != 1 {
		t.Fatalf("tokenExpiration = %d", out.Login.TokenExpiration)
	}
	userID, err := h.tokens.ValidateToken(out.Login.Token)
	if err != nil || userID != out.Login.UserID {
		t.Fatalf("token user = %q, %v", userID, err)
	}

	for _, q := range []string{
		`{ login(email: "a@b.co", password: "wrong") { token } }`,
		`{ login(email: "x@b.co", password: "secret1") { token } }`,
	} {
		if msg := h.do(context.Background(), q, nil, nil); msg != "invalid credentials" {
			t.Errorf("%s: error = %q", q, msg)
		}
	}
}

func TestCreateUserRejects(t *testing.T) {
	h := newHarness(t)
	h.signUp("a@b.co")

	q := `mutation($e: String!, $p: String!) { createUser(userInput: {email: $e, password: $p}) { _id } }`
	tests := []struct {
		email, password, want string
	}{
		{email: "a@b.co", password: "secret1", want: "user exists already"},
		{email: "not-an-email", password: "secret1", want: "email must be a valid email"},
		{email: "c@b.co", password: "123", want: "password must be at least 6"},
	}
	for _, tt := range tests {
		msg := h.do(context.Background(), q, map[string]interface{}{"e": tt.email, "p": tt.password}, nil)
		if !strings.Contains(msg, tt.want) {
			t.Errorf("createUser(%s) error = %q, want %q", tt.email, msg, tt.want)
		}
	}
}

func TestAuthOnlyFields(t *testing.T) {
	h := newHarness(t)
	for _, q := range []string{
		`{ bookings { _id } }`,
		`{ bookingStats { label } }`,
		`mutation { createEvent(eventInput: {title: "t", description: "d", price: 1, date: "2026-01-01T00:00:00Z"}) { _id } }`,
		`mutation { bookEvent(eventId: "000000000000000000000000") { _id } }`,
		`mutation { cancelBooking(bookingId: "000000000000000000000000") { _id } }`,
	} {
		if msg := h.do(context.Background(), q, nil, nil); msg != "unauthenticated" {
			t.Errorf("%s: error = %q", q, msg)
		}
	}
}

func TestEventsWithCreator(t *testing.T) {
	h := newHarness(t)
	ctx := h.signUp("a@b.co")
	h.createEvent(ctx, "concert", 150)

	var out struct {
		Events []struct {
			Title   string  `json:"title"`
			Price   float64 `json:"price"`
			Date    string  `json:"date"`
			Creator struct {
				Email         string `json:"email"`
				CreatedEvents []struct {
					Title string `json:"title"`
				} `json:"createdEvents"`
			} `json:"creator"`
		} `json:"events"`
	}
	h.mustDo(context.Background(), `{ events { title price date creator { email createdEvents { title } } } }`, nil, &out)

	if len(out.Events) != 1 {
		t.Fatalf("events = %+v", out.Events)
	}
	e := out.Events[0]
	if e.Title != "concert" || e.Price != 150 || e.Date != "2026-05-01T20:00:00Z" {
		t.Fatalf("event = %+v", e)
	}
	if e.Creator.Email != "a@b.co" || len(e.Creator.CreatedEvents) != 1 || e.Creator.CreatedEvents[0].Title != "concert" {
		t.Fatalf("creator = %+v", e.Creator)
	}
}

func TestCreateEventValidation(t *testing.T) {
	h := newHarness(t)
	ctx := h.signUp("a@b.co")

	msg := h.do(ctx, `mutation { createEvent(eventInput: {title: "t", description: "d", price: 1, date: "tomorrow"}) { _id } }`, nil, nil)
	if !strings.Contains(msg, "RFC 3339") {
		t.Fatalf("bad date error = %q", msg)
	}
	msg = h.do(ctx, `mutation { createEvent(eventInput: {title: "", description: "d", price: -3, date: "2026-01-01T00:00:00Z"}) { _id } }`, nil, nil)
	if !strings.Contains(msg, "title is required") || !strings.Contains(msg, "price must be 0 or more") {
		t.Fatalf("validation error = %q", msg)
	}
}

func TestBookingFlowAndStats(t *testing.T) {
	h := newHarness(t)
	ctx := h.signUp("a@b.co")

	var ids []string
	for _, price := range []float64{50, 150, 150, 500, 100} {
		ids = append(ids, h.createEvent(ctx, "e", price))
	}

	var bookingIDs []string
	for _, id := range ids {
		var out struct {
			BookEvent struct {
				ID    string `json:"_id"`
				Event struct {
					ID string `json:"_id"`
				} `json:"event"`
				User struct {
					Email string `json:"email"`
				} `json:"user"`
			} `json:"bookEvent"`
		}
		h.mustDo(ctx, `mutation($id: ID!) { bookEvent(eventId: $id) { _id event { _id } user { email } } }`,
			map[string]interface{}{"id": id}, &out)
		if out.BookEvent.Event.ID != id || out.BookEvent.User.Email != "a@b.co" {
			t.Fatalf("bookEvent = %+v", out.BookEvent)
		}
		bookingIDs = append(bookingIDs, out.BookEvent.ID)
	}

	type stat struct {
		Label string `json:"label"`
		Count int    `json:"count"`
	}
	var stats struct {
		BookingStats []stat `json:"bookingStats"`
	}
	h.mustDo(ctx, `{ bookingStats { label count } }`, nil, &stats)
	want := []stat{{"Cheap", 1}, {"Normal", 2}, {"Expensive", 1}}
	if len(stats.BookingStats) != 3 {
		t.Fatalf("stats = %+v", stats.BookingStats)
	}
	for i := range want {
		if stats.BookingStats[i] != want[i] {
			t.Fatalf("stats = %+v, want %+v", stats.BookingStats, want)
		}
	}

	// someone else cannot cancel
	other := h.signUp("other@b.co")
	msg := h.do(other, `mutation($id: ID!) { cancelBooking(bookingId: $id) { _id } }`,
		map[string]interface{}{"id": bookingIDs[0]}, nil)
	if msg != "booking belongs to another user" {
		t.Fatalf("foreign cancel error = %q", msg)
	}

	var cancelled struct {
		CancelBooking struct {
			ID    string  `json:"_id"`
			Price float64 `json:"price"`
		} `json:"cancelBooking"`
	}
	h.mustDo(ctx, `mutation($id: ID!) { cancelBooking(bookingId: $id) { _id price } }`,
		map[string]interface{}{"id": bookingIDs[0]}, &cancelled)
	if cancelled.CancelBooking.ID != ids[0] || cancelled.CancelBooking.Price != 50 {
		t.Fatalf("cancelBooking = %+v", cancelled.CancelBooking)
	}

	var list struct {
		Bookings []struct {
			ID string `json:"_id"`
		} `json:"bookings"`
	}
	h.mustDo(ctx, `{ bookings { _id } }`, nil, &list)
	if len(list.Bookings) != 4 {
		t.Fatalf("bookings after cancel = %d, want 4", len(list.Bookings))
	}

	h.mustDo(ctx, `{ bookingStats { label count } }`, nil, &stats)
	if stats.BookingStats[0].Count != 0 {
		t.Fatalf("Cheap after cancel = %d", stats.BookingStats[0].Count)
	}
}

func TestBookEventErrors(t *testing.T) {
	h := newHarness(t)
	ctx := h.signUp("a@b.co")

	q := `mutation($id: ID!) { bookEvent(eventId: $id) { _id } }`
	if msg := h.do(ctx, q, map[string]interface{}{"id": "zzz"}, nil); msg != "invalid eventId" {
		t.Errorf("bad id error = %q", msg)
	}
	missing := primitive.NewObjectID().Hex()
	if msg := h.do(ctx, q, map[string]interface{}{"id": missing}, nil); msg != "event not found" {
		t.Errorf("missing event error = %q", msg)
	}
}
