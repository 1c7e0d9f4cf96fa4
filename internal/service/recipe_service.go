package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jfuentes/recipebox/internal/cache"
	"github.com/jfuentes/recipebox/internal/logger"
	"github.com/jfuentes/recipebox/internal/models"
	"github.com/jfuentes/recipebox/internal/storage"
)

type RecipeService struct {
	store       storage.RecipeStorage
	tags        *AttributeService
	ingredients *AttributeService
	cache       *cache.RecipeCache
	log         *logger.Logger
}

func NewRecipeService(store storage.RecipeStorage, tags, ingredients *AttributeService, recipeCache *cache.RecipeCache) *RecipeService {
	return &RecipeService{
		store:       store,
		tags:        tags,
		ingredients: ingredients,
		cache:       recipeCache,
		log:         logger.New("recipe-service"),
	}
}

func (s *RecipeService) List(ctx context.Context, userID string) ([]*models.Recipe, error) {
	recipes, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}

	return recipes, nil
}

func (s *RecipeService) Get(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	if _, err := uuid.Parse(recipeID); err != nil {
		return nil, ErrRecipeNotFound
	}

	if recipe, found := s.cache.Get(ctx, userID, recipeID); found {
		return recipe, nil
	}

	recipe, err := s.store.GetByID(ctx, userID, recipeID)
	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}
	if recipe == nil {
		return nil, ErrRecipeNotFound
	}

	s.cache.Set(ctx, recipe)
	return recipe, nil
}

func (s *RecipeService) Create(ctx context.Context, userID string, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	tagIDs, err := s.tags.ValidateOwned(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	ingredientIDs, err := s.ingredients.ValidateOwned(ctx, userID, req.IngredientIDs)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &models.Recipe{
		ID:            uuid.New().String(),
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		UserID:        userID,
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("failed to create recipe: %w", err)
	}

	s.log.Info("Created recipe %s for user %s", recipe.ID, userID)
	return recipe, nil
}

// Update replaces the full recipe. Missing link lists clear the sets.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID string, req *models.CreateRecipeRequest) (*models.Recipe, error) {
	existing, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(req.Title) == "" {
		return nil, ErrTitleRequired
	}

	tagIDs, err := s.tags.ValidateOwned(ctx, userID, req.TagIDs)
	if err != nil {
		return nil, err
	}

	ingredientIDs, err := s.ingredients.ValidateOwned(ctx, userID, req.IngredientIDs)
	if err != nil {
		return nil, err
	}

	updated := &models.Recipe{
		ID:            existing.ID,
		Title:         req.Title,
		TimeMinutes:   req.TimeMinutes,
		Price:         req.Price,
		UserID:        userID,
		TagIDs:        tagIDs,
		IngredientIDs: ingredientIDs,
		CreatedAt:     existing.CreatedAt,
		UpdatedAt:     time.Now(),
	}

	if err := s.store.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.cache.Invalidate(ctx, userID, recipeID)
	return updated, nil
}

// Patch applies a partial update; nil request fields keep their value.
func (s *RecipeService) Patch(ctx context.Context, userID, recipeID string, req *models.UpdateRecipeRequest) (*models.Recipe, error) {
	existing, err := s.Get(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if strings.TrimSpace(*req.Title) == "" {
			return nil, ErrTitleRequired
		}
		existing.Title = *req.Title
	}
	if req.TimeMinutes != nil {
		existing.TimeMinutes = *req.TimeMinutes
	}
	if req.Price != nil {
		existing.Price = *req.Price
	}

	if req.TagIDs != nil {
		tagIDs, err := s.tags.ValidateOwned(ctx, userID, *req.TagIDs)
		if err != nil {
			return nil, err
		}
		existing.TagIDs = tagIDs
	}

	if req.IngredientIDs != nil {
		ingredientIDs, err := s.ingredients.ValidateOwned(ctx, userID, *req.IngredientIDs)
		if err != nil {
			return nil, err
		}
		existing.IngredientIDs = ingredientIDs
	}

	existing.UpdatedAt = time.Now()

	if err := s.store.Update(ctx, existing); err != nil {
		return nil, fmt.Errorf("failed to update recipe: %w", err)
	}

	s.cache.Invalidate(ctx, userID, recipeID)
	return existing, nil
}

func (s *RecipeService) Delete(ctx context.Context, userID, recipeID string) error {
	if _, err := uuid.Parse(recipeID); err != nil {
		return ErrRecipeNotFound
	}

	deleted, err := s.store.Delete(ctx, userID, recipeID)
	if err != nil {
		return fmt.Errorf("failed to delete recipe: %w", err)
	}
	if !deleted {
		return ErrRecipeNotFound
	}

	s.cache.Invalidate(ctx, userID, recipeID)
	s.log.Info("Deleted recipe %s for user %s", recipeID, userID)
	return nil
}
