package auth

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const (
	tokenKeyPrefix = "token:"
	userKeyPrefix  = "usertoken:"
)

// RedisTokenStore keeps token bindings in Redis so every api-server
// instance resolves the same tokens.
type RedisTokenStore struct {
	client *redis.Client
}

func NewRedisTokenStore(client *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{client: client}
}

func (s *RedisTokenStore) Save(ctx context.Context, token, userID string) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, tokenKeyPrefix+token, userID, 0)
	pipe.Set(ctx, userKeyPrefix+userID, token, 0)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save token: %w", err)
	}

	return nil
}

func (s *RedisTokenStore) UserForToken(ctx context.Context, token string) (string, error) {
	userID, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to resolve token: %w", err)
	}

	return userID, nil
}

func (s *RedisTokenStore) TokenForUser(ctx context.Context, userID string) (string, error) {
	token, err := s.client.Get(ctx, userKeyPrefix+userID).Result()
	if err == redis.Nil {
		return "", ErrTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up user token: %w", err)
	}

	return token, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, userID string) error {
	token, err := s.TokenForUser(ctx, userID)
	if err == ErrTokenNotFound {
		return nil
	}
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, tokenKeyPrefix+token)
	pipe.Del(ctx, userKeyPrefix+userID)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
