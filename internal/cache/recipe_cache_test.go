package cache

import (
	"context"
	"testing"

	"github.com/jfuentes/recipebox/internal/models"
)

func sampleRecipe() *models.Recipe {
	return &models.Recipe{
		ID:            "recipe-1",
		Title:         "Thai prawn curry",
		TimeMinutes:   25,
		Price:         12.50,
		UserID:        "user-1",
		TagIDs:        []string{"tag-1", "tag-2"},
		IngredientIDs: []string{"ing-1"},
	}
}

func TestRecipeCache_SetAndGet(t *testing.T) {
	c := NewRecipeCache(10, nil, 0)
	ctx := context.Background()

	c.Set(ctx, sampleRecipe())

	got, found := c.Get(ctx, "user-1", "recipe-1")
	if !found {
		t.Fatal("expected cache hit")
	}

	if got.Title != "Thai prawn curry" {
		t.Errorf("expected cached title, got '%s'", got.Title)
	}
	if len(got.TagIDs) != 2 {
		t.Errorf("expected 2 tag ids, got %d", len(got.TagIDs))
	}
}

func TestRecipeCache_Miss(t *testing.T) {
	c := NewRecipeCache(10, nil, 0)

	if _, found := c.Get(context.Background(), "user-1", "recipe-1"); found {
		t.Error("expected cache miss")
	}
}

func TestRecipeCache_ScopedToUser(t *testing.T) {
	c := NewRecipeCache(10, nil, 0)
	ctx := context.Background()

	c.Set(ctx, sampleRecipe())

	if _, found := c.Get(ctx, "user-2", "recipe-1"); found {
		t.Error("expected miss for a different user")
	}
}

func TestRecipeCache_Invalidate(t *testing.T) {
	c := NewRecipeCache(10, nil, 0)
	ctx := context.Background()

	c.Set(ctx, sampleRecipe())
	c.Invalidate(ctx, "user-1", "recipe-1")

	if _, found := c.Get(ctx, "user-1", "recipe-1"); found {
		t.Error("expected miss after invalidation")
	}
}
