package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

var ErrTokenNotFound = errors.New("token not found")

// TokenStore persists the bidirectional token <-> user binding.
type TokenStore interface {
	Save(ctx context.Context, token, userID string) error
	UserForToken(ctx context.Context, token string) (string, error)
	TokenForUser(ctx context.Context, userID string) (string, error)
	Delete(ctx context.Context, userID string) error
}

// TokenManager issues opaque bearer tokens. A user holds at most one
// active token; issuing again returns the existing one.
type TokenManager struct {
	store      TokenStore
	tokenBytes int
}

func NewTokenManager(store TokenStore, tokenBytes int) *TokenManager {
	if tokenBytes <= 0 {
		tokenBytes = 20
	}

	return &TokenManager{
		store:      store,
		tokenBytes: tokenBytes,
	}
}

func (m *TokenManager) Issue(ctx context.Context, userID string) (string, error) {
	existing, err := m.store.TokenForUser(ctx, userID)
	if err != nil && !errors.Is(err, ErrTokenNotFound) {
		return "", fmt.Errorf("failed to look up existing token: %w", err)
	}
	if existing != "" {
		return existing, nil
	}

	token, err := m.generate()
	if err != nil {
		return "", err
	}

	if err := m.store.Save(ctx, token, userID); err != nil {
		return "", fmt.Errorf("failed to save token: %w", err)
	}

	return token, nil
}

func (m *TokenManager) Resolve(ctx context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrTokenNotFound
	}

	return m.store.UserForToken(ctx, token)
}

func (m *TokenManager) Revoke(ctx context.Context, userID string) error {
	return m.store.Delete(ctx, userID)
}

func (m *TokenManager) generate() (string, error) {
	buf := make([]byte, m.tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return hex.EncodeToString(buf), nil
}
