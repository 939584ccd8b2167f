package main

import (
	"encoding/json"
	"fmt"
	"sync"
)

const sessionStorageKey = "blogUser"

// SessionStore persists the single session record. There is no expiry;
// a stale token only shows up as failing API calls.
type SessionStore struct {
	storage *localStorage
}

func NewSessionStore(storage *localStorage) *SessionStore {
	return &SessionStore{storage: storage}
}

func (s *SessionStore) Save(session Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encoding session: %w", err)
	}
	return s.storage.setItem(sessionStorageKey, string(data))
}

// Load returns nil when no session has been saved.
func (s *SessionStore) Load() (*Session, error) {
	value, ok, err := s.storage.getItem(sessionStorageKey)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	var session Session
	if err := json.Unmarshal([]byte(value), &session); err != nil {
		return nil, fmt.Errorf("decoding session: %w", err)
	}
	return &session, nil
}

func (s *SessionStore) Clear() error {
	return s.storage.removeItem(sessionStorageKey)
}

// SessionContext holds the one active session and the bearer token used
// by the API client. It is shared by pointer between the client, the
// blog list and the handlers.
type SessionContext struct {
	mu      sync.RWMutex
	session *Session
	token   string
}

func NewSessionContext() *SessionContext {
	return &SessionContext{}
}

func (c *SessionContext) Session() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

func (c *SessionContext) LoggedIn() bool {
	_, ok := c.Session()
	return ok
}

func (c *SessionContext) SetSession(session Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = &session
}

func (c *SessionContext) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *SessionContext) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

// Reset drops the session and the token.
func (c *SessionContext) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
	c.token = ""
}
