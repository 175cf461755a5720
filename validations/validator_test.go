package validations

import (
	"strings"
	"testing"
	"time"
)

func TestStructReportsJSONNames(t *testing.T) {
	price := -1.0
	err := Struct(CreateEventRequest{Price: &price})
	if err == nil {
		t.Fatal("expected validation error")
	}
	msg := err.Error()
	for _, want := range []string{"title is required", "description is required", "price must be 0 or more", "date is required"} {
		if !strings.Contains(msg, want) {
			t.Errorf("error %q missing %q", msg, want)
		}
	}
}

func TestStructAccepts(t *testing.T) {
	price := 0.0
	ok := CreateEventRequest{Title: "t", Description: "d", Price: &price, Date: time.Now()}
	if err := Struct(ok); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Struct(RegisterRequest{Email: "a@b.co", Password: "secret1"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructRegister(t *testing.T) {
	err := Struct(RegisterRequest{Email: "nope", Password: "123"})
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "email must be a valid email") || !strings.Contains(err.Error(), "password must be at least 6") {
		t.Fatalf("error = %v", err)
	}
}
