package services

import (
	"testing"
	"time"

	"crosspost/models"
)

func TestOAuthStateConsumedOnValidation(t *testing.T) {
	s := NewOAuthStateService()

	state := s.GenerateState("user-1", models.Instagram)
	if state == "" {
		t.Fatal("GenerateState returned an empty state")
	}

	got, ok := s.ValidateState(state)
	if !ok {
		t.Fatal("freshly generated state did not validate")
	}
	if got.UserID != "user-1" || got.Platform != models.Instagram {
		t.Fatalf("state = %+v", got)
	}

	if _, ok := s.ValidateState(state); ok {
		t.Fatal("state validated twice; it must be single-use")
	}
}

func TestOAuthStateUnknownToken(t *testing.T) {
	s := NewOAuthStateService()

	if _, ok := s.ValidateState("deadbeef"); ok {
		t.Fatal("unknown state validated")
	}
}

func TestOAuthStateExpires(t *testing.T) {
	s := NewOAuthStateService()

	state := s.GenerateState("user-1", models.Snapchat)
	s.mu.Lock()
	s.states[state].CreatedAt = time.Now().Add(-11 * time.Minute)
	s.mu.Unlock()

	if _, ok := s.ValidateState(state); ok {
		t.Fatal("expired state validated")
	}
}
