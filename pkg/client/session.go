package client

import (
	"encoding/json"
	"os"
	"sync"

	"gaming_club_backend/internal/models"
)

// sessionState is the persisted session snapshot.
type sessionState struct {
	Member       *models.Member `json:"member"`
	AccessToken  string         `json:"access_token"`
	RefreshToken string         `json:"refresh_token,omitempty"`
}

// SessionStore holds the authenticated member and their tokens. When
// constructed with a path, every mutation is persisted to that file and
// a previous session is restored on construction. A corrupted or
// unreadable file is discarded and the store starts empty.
type SessionStore struct {
	mu    sync.Mutex
	path  string
	state sessionState
}

// NewSessionStore creates a session store persisted at path. An empty
// path keeps the session in memory only.
func NewSessionStore(path string) *SessionStore {
	s := &SessionStore{path: path}
	s.restore()
	return s
}

func (s *SessionStore) restore() {
	if s.path == "" {
		return
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return
	}
	var state sessionState
	if err := json.Unmarshal(data, &state); err != nil || state.Member == nil {
		return
	}
	s.state = state
}

func (s *SessionStore) persist() {
	if s.path == "" {
		return
	}
	if s.state.Member == nil {
		os.Remove(s.path)
		return
	}
	data, err := json.Marshal(s.state)
	if err != nil {
		return
	}
	os.WriteFile(s.path, data, 0o600)
}

// Set replaces the current session.
func (s *SessionStore) Set(member *models.Member, accessToken, refreshToken string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{Member: member, AccessToken: accessToken, RefreshToken: refreshToken}
	s.persist()
}

// Clear ends the session and removes the persisted copy.
func (s *SessionStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = sessionState{}
	s.persist()
}

// Member returns a copy of the authenticated member, or nil.
func (s *SessionStore) Member() *models.Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Member == nil {
		return nil
	}
	member := *s.state.Member
	return &member
}

// AccessToken returns the bearer token for the current session.
func (s *SessionStore) AccessToken() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.AccessToken
}

// UpdateBalance replaces the cached balance of the session member after
// a recharge or purchase settles.
func (s *SessionStore) UpdateBalance(balance float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state.Member == nil {
		return
	}
	s.state.Member.Balance = balance
	s.persist()
}

// IsAuthenticated reports whether a member is signed in.
func (s *SessionStore) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Member != nil
}

// HasRole reports whether the session member holds the given role.
func (s *SessionStore) HasRole(role string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Member != nil && s.state.Member.Role == role
}

// IsAdmin reports whether the session member is an administrator.
func (s *SessionStore) IsAdmin() bool {
	return s.HasRole(models.RoleAdmin)
}
