package services

import (
	"fmt"
	"sync"
	"time"

	"storefront/utils"

	"github.com/google/uuid"
)

const (
	guestIDKey = "guestId"
	tokenKey   = "token"
)

// SessionStore is durable key/value storage for the session identity.
type SessionStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type SessionMode string

const (
	ModeGuest         SessionMode = "guest"
	ModeAuthenticated SessionMode = "authenticated"
)

// Session carries the guest identifier and the bearer token. It is passed
// to services explicitly; login and logout change it in place.
type Session struct {
	store SessionStore

	mu      sync.RWMutex
	guestID string
	token   string
}

// LoadSession reads the persisted identity, generating and saving a guest
// id on first use so it stays stable across runs.
func LoadSession(store SessionStore) (*Session, error) {
	guestID, ok, err := store.Get(guestIDKey)
	if err != nil {
		return nil, fmt.Errorf("read guest id: %w", err)
	}
	if !ok || guestID == "" {
		guestID = uuid.NewString()
		if err := store.Set(guestIDKey, guestID); err != nil {
			return nil, fmt.Errorf("save guest id: %w", err)
		}
	}

	token, _, err := store.Get(tokenKey)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	return &Session{store: store, guestID: guestID, token: token}, nil
}

func (s *Session) GuestID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.guestID
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Session) Mode() SessionMode {
	if s.Token() == "" {
		return ModeGuest
	}
	return ModeAuthenticated
}

func (s *Session) SetToken(token string) error {
	if err := s.store.Set(tokenKey, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

func (s *Session) Logout() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	if err := s.store.Delete(tokenKey); err != nil {
		return fmt.Errorf("delete token: %w", err)
	}
	return nil
}

// Claims decodes the held token for display. Nil when logged out.
func (s *Session) Claims() (*utils.Claims, error) {
	token := s.Token()
	if token == "" {
		return nil, nil
	}
	return utils.InspectToken(token)
}

// Expired reports whether the held token's exp claim is in the past. A token
// without exp, or one that cannot be decoded, is left to the server to judge.
func (s *Session) Expired(now time.Time) bool {
	claims, err := s.Claims()
	if err != nil || claims == nil || claims.ExpiresAt == nil {
		return false
	}
	return now.After(claims.ExpiresAt.Time)
}
