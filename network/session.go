package network

import (
	"errors"
	"fmt"
	"sync"

	"github.com/automoto/splashed/shared/messages"
	"github.com/golang-jwt/jwt/v5"
	"github.com/quasilyte/gdata"
)

var (
	ErrNoToken  = errors.New("no session token")
	ErrBadToken = errors.New("malformed session token")
)

// Session is what the server put in a join token.
type Session struct {
	ClientID messages.EntityID
	Username string
	RoomID   string
	Token    string
}

// ParseSession reads the claims of token without checking its signature.
// The server verifies the token on every request; the client only needs
// to know who it joined as.
func ParseSession(token string) (Session, error) {
	if token == "" {
		return Session{}, ErrNoToken
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrBadToken, err)
	}

	clientID, ok := claims["clientId"].(string)
	if !ok || clientID == "" {
		return Session{}, fmt.Errorf("%w: missing client ID", ErrBadToken)
	}
	roomID, ok := claims["roomId"].(string)
	if !ok {
		return Session{}, fmt.Errorf("%w: missing room ID", ErrBadToken)
	}
	username, _ := claims["username"].(string)

	return Session{
		ClientID: messages.EntityID(clientID),
		Username: username,
		RoomID:   roomID,
		Token:    token,
	}, nil
}

// TokenStore persists the session token between runs. LoadToken returns
// an empty string when nothing is stored.
type TokenStore interface {
	LoadToken() (string, error)
	SaveToken(token string) error
	ClearToken() error
}

// GdataStore keeps the token in the per-user app data directory.
type GdataStore struct {
	m   *gdata.Manager
	key string
}

func OpenGdataStore(appName, key string) (*GdataStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("open app data: %w", err)
	}
	return &GdataStore{m: m, key: key}, nil
}

func (s *GdataStore) LoadToken() (string, error) {
	data, err := s.m.LoadItem(s.key)
	if err != nil {
		return "", fmt.Errorf("load token: %w", err)
	}
	return string(data), nil
}

func (s *GdataStore) SaveToken(token string) error {
	if err := s.m.SaveItem(s.key, []byte(token)); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}

func (s *GdataStore) ClearToken() error {
	if !s.m.ItemExists(s.key) {
		return nil
	}
	if err := s.m.DeleteItem(s.key); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MemoryStore keeps the token for the lifetime of the process.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func (s *MemoryStore) LoadToken() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemoryStore) SaveToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken() error {
	return s.SaveToken("")
}
