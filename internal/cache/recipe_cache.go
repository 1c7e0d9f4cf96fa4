package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jfuentes/recipebox/internal/models"
)

// RecipeCache is a two-tier read cache for recipe detail lookups:
// a process-local LRU in front of Redis. The Redis tier is optional;
// with a nil client only the LRU is used.
type RecipeCache struct {
	l1    *LRUCache
	l2    *redis.Client
	l2TTL time.Duration
}

func NewRecipeCache(l1Capacity int, redisClient *redis.Client, l2TTL time.Duration) *RecipeCache {
	return &RecipeCache{
		l1:    NewLRUCache(l1Capacity),
		l2:    redisClient,
		l2TTL: l2TTL,
	}
}

func recipeKey(userID, recipeID string) string {
	return "recipe:" + userID + ":" + recipeID
}

func (c *RecipeCache) Get(ctx context.Context, userID, recipeID string) (*models.Recipe, bool) {
	key := recipeKey(userID, recipeID)

	if val, found := c.l1.Get(key); found {
		return decodeRecipe(val, userID)
	}

	if c.l2 != nil {
		val, err := c.l2.Get(ctx, key).Result()
		if err == nil {
			c.l1.Set(key, val)
			return decodeRecipe(val, userID)
		}
	}

	return nil, false
}

func (c *RecipeCache) Set(ctx context.Context, recipe *models.Recipe) {
	data, err := json.Marshal(recipe)
	if err != nil {
		return
	}

	key := recipeKey(recipe.UserID, recipe.ID)
	c.l1.Set(key, string(data))

	if c.l2 != nil {
		c.l2.Set(ctx, key, string(data), c.l2TTL)
	}
}

func (c *RecipeCache) Invalidate(ctx context.Context, userID, recipeID string) {
	key := recipeKey(userID, recipeID)
	c.l1.Delete(key)

	if c.l2 != nil {
		c.l2.Del(ctx, key)
	}
}

// decodeRecipe restores the owner from the cache key scope; the owner
// field is not serialized.
func decodeRecipe(val, userID string) (*models.Recipe, bool) {
	var recipe models.Recipe
	if err := json.Unmarshal([]byte(val), &recipe); err != nil {
		return nil, false
	}
	recipe.UserID = userID
	return &recipe, true
}
