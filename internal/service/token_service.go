package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jfuentes/recipebox/internal/auth"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
)

// TokenService exchanges credentials for opaque bearer tokens and
// resolves presented tokens back to users.
type TokenService struct {
	users  *UserService
	tokens *auth.TokenManager
}

func NewTokenService(users *UserService, tokens *auth.TokenManager) *TokenService {
	return &TokenService{
		users:  users,
		tokens: tokens,
	}
}

func (s *TokenService) Issue(ctx context.Context, email, password string) (string, error) {
	user, err := s.users.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(ctx, user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	return token, nil
}

func (s *TokenService) Resolve(ctx context.Context, token string) (*usermodel.User, error) {
	userID, err := s.tokens.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, auth.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, fmt.Errorf("failed to resolve token: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrInvalidToken
	}

	return user, nil
}
