package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is a token bound to a username for the lifetime of one process boot.
type Session struct {
	ID             uuid.UUID `json:"id"`
	Token          string    `json:"token"`
	Username       string    `json:"username"`
	BootID         string    `json:"boot_id"`
	ExpiresAt      time.Time `json:"expires_at"`
	LastActivityAt time.Time `json:"last_activity_at"`
	CreatedAt      time.Time `json:"created_at"`
}

func newSession(token, username, bootID string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:             uuid.New(),
		Token:          token,
		Username:       username,
		BootID:         bootID,
		ExpiresAt:      now.Add(ttl),
		LastActivityAt: now,
		CreatedAt:      now,
	}
}

func (s *Session) IsBound() bool {
	return s != nil && s.Username != ""
}

func (s *Session) IsExpired() bool {
	return s != nil && time.Now().After(s.ExpiresAt)
}

func (s *Session) Touch() {
	if s != nil {
		s.LastActivityAt = time.Now()
	}
}
