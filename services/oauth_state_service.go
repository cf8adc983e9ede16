package services

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"crosspost/models"
)

// OAuthState stores temporary state for one in-flight OAuth flow.
type OAuthState struct {
	UserID    string
	Platform  models.Platform
	CreatedAt time.Time
}

// OAuthStateService manages single-use OAuth state tokens. States expire
// after ten minutes and are consumed on first validation.
type OAuthStateService struct {
	mu     sync.Mutex
	states map[string]*OAuthState
}

func NewOAuthStateService() *OAuthStateService {
	service := &OAuthStateService{
		states: make(map[string]*OAuthState),
	}

	go service.cleanupExpired()

	return service
}

// GenerateState creates and stores a new random state token.
func (s *OAuthStateService) GenerateState(userID string, platform models.Platform) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	bytes := make([]byte, 32)
	rand.Read(bytes)
	state := hex.EncodeToString(bytes)

	s.states[state] = &OAuthState{
		UserID:    userID,
		Platform:  platform,
		CreatedAt: time.Now(),
	}

	return state
}

// ValidateState validates and consumes a state token.
func (s *OAuthStateService) ValidateState(state string) (*OAuthState, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	oauthState, exists := s.states[state]
	if !exists {
		return nil, false
	}

	delete(s.states, state)

	if time.Since(oauthState.CreatedAt) > 10*time.Minute {
		return nil, false
	}

	return oauthState, true
}

func (s *OAuthStateService) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.mu.Lock()
		for state, oauthState := range s.states {
			if time.Since(oauthState.CreatedAt) > 10*time.Minute {
				delete(s.states, state)
			}
		}
		s.mu.Unlock()
	}
}
