package auth

import (
	"context"
	"testing"
)

func TestIssue_GeneratesToken(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	token, err := manager.Issue(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token == "" {
		t.Fatal("expected non-empty token")
	}

	if len(token) != 40 {
		t.Errorf("expected 40 hex chars, got %d", len(token))
	}
}

func TestIssue_ReusesExistingToken(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	token1, err := manager.Issue(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token2, err := manager.Issue(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token1 != token2 {
		t.Errorf("expected reissue to return the same token, got '%s' and '%s'", token1, token2)
	}
}

func TestIssue_DistinctUsersDistinctTokens(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	token1, err := manager.Issue(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	token2, err := manager.Issue(context.Background(), "user-2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if token1 == token2 {
		t.Error("expected different users to get different tokens")
	}
}

func TestResolve_ReturnsIssuingUser(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	token, err := manager.Issue(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	userID, err := manager.Resolve(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if userID != "user-123" {
		t.Errorf("expected 'user-123', got '%s'", userID)
	}
}

func TestResolve_UnknownToken(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	_, err := manager.Resolve(context.Background(), "deadbeef")
	if err != ErrTokenNotFound {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestResolve_EmptyToken(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	_, err := manager.Resolve(context.Background(), "")
	if err != ErrTokenNotFound {
		t.Errorf("expected ErrTokenNotFound, got %v", err)
	}
}

func TestRevoke_TokenStopsResolving(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	token, err := manager.Issue(context.Background(), "user-123")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := manager.Revoke(context.Background(), "user-123"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := manager.Resolve(context.Background(), token); err != ErrTokenNotFound {
		t.Errorf("expected ErrTokenNotFound after revoke, got %v", err)
	}
}

func TestRevoke_NoToken(t *testing.T) {
	manager := NewTokenManager(NewMemoryTokenStore(), 20)

	if err := manager.Revoke(context.Background(), "user-without-token"); err != nil {
		t.Errorf("expected revoke without a token to be a no-op, got %v", err)
	}
}
