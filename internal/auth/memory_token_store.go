package auth

import (
	"context"
	"sync"
)

// MemoryTokenStore is a process-local TokenStore for tests and single
// instance setups without Redis.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	byToken map[string]string
	byUser  map[string]string
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{
		byToken: make(map[string]string),
		byUser:  make(map[string]string),
	}
}

func (s *MemoryTokenStore) Save(ctx context.Context, token, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byToken[token] = userID
	s.byUser[userID] = token
	return nil
}

func (s *MemoryTokenStore) UserForToken(ctx context.Context, token string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	userID, exists := s.byToken[token]
	if !exists {
		return "", ErrTokenNotFound
	}

	return userID, nil
}

func (s *MemoryTokenStore) TokenForUser(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, exists := s.byUser[userID]
	if !exists {
		return "", ErrTokenNotFound
	}

	return token, nil
}

func (s *MemoryTokenStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, exists := s.byUser[userID]; exists {
		delete(s.byToken, token)
		delete(s.byUser, userID)
	}

	return nil
}
