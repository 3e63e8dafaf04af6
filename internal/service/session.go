package service

import (
	"fmt"
	"sync"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionStore maps browser session tokens to the authenticated user id.
//
// A token is an HS256 JWT whose subject is the user id and whose jti names a
// live entry in the store. Entries live until Logout or process exit; no
// expiry is enforced.
type SessionStore struct {
	mu       sync.Mutex
	sessions map[string]string // jti -> userid
	secret   []byte
}

// NewSessionStore creates a SessionStore that signs tokens with secret.
func NewSessionStore(secret string) *SessionStore {
	return &SessionStore{
		sessions: make(map[string]string),
		secret:   []byte(secret),
	}
}

// Login starts a session for userID and returns its signed token.
func (s *SessionStore) Login(userID string) (string, error) {
	id := uuid.NewString()
	claims := jwt.RegisteredClaims{
		Subject: userID,
		ID:      id,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	s.mu.Lock()
	s.sessions[id] = userID
	s.mu.Unlock()
	return token, nil
}

// CurrentUser returns the user id bound to token. A token with a bad
// signature or one that was logged out yields false.
func (s *SessionStore) CurrentUser(token string) (string, bool) {
	claims, ok := s.parse(token)
	if !ok {
		return "", false
	}

	s.mu.Lock()
	userID, live := s.sessions[claims.ID]
	s.mu.Unlock()
	if !live || userID != claims.Subject {
		return "", false
	}
	return userID, true
}

// Logout ends the session named by token. Unknown or invalid tokens are
// ignored.
func (s *SessionStore) Logout(token string) {
	claims, ok := s.parse(token)
	if !ok {
		return
	}
	s.mu.Lock()
	delete(s.sessions, claims.ID)
	s.mu.Unlock()
}

// Len reports the number of live sessions.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) parse(token string) (*jwt.RegisteredClaims, bool) {
	if token == "" {
		return nil, false
	}
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !parsed.Valid || claims.ID == "" {
		return nil, false
	}
	return claims, true
}
