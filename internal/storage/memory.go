package storage

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jfuentes/recipebox/internal/models"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
)

// In-memory implementations of the storage interfaces, used by tests
// and local development without Postgres.

type MemoryUserStorage struct {
	mu    sync.RWMutex
	users map[string]*usermodel.User
}

func NewMemoryUserStorage() *MemoryUserStorage {
	return &MemoryUserStorage{
		users: make(map[string]*usermodel.User),
	}
}

func (s *MemoryUserStorage) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if strings.EqualFold(existing.Email, req.Email) {
			return nil, fmt.Errorf("user with email %s already exists", req.Email)
		}
	}

	now := time.Now()
	user := &usermodel.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		Name:         req.Name,
		PasswordHash: passwordHash,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	s.users[user.ID] = user

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			copied := *user
			return &copied, nil
		}
	}

	return nil, nil
}

func (s *MemoryUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) UpdateUser(ctx context.Context, userID string, name, passwordHash *string) (*usermodel.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return nil, nil
	}

	if name != nil {
		user.Name = *name
	}
	if passwordHash != nil {
		user.PasswordHash = *passwordHash
	}
	user.UpdatedAt = time.Now()

	copied := *user
	return &copied, nil
}

func (s *MemoryUserStorage) SetSuperuser(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, exists := s.users[userID]
	if !exists {
		return fmt.Errorf("user %s not found", userID)
	}

	user.IsStaff = true
	user.IsSuperuser = true
	user.UpdatedAt = time.Now()
	return nil
}

type MemoryAttributeStorage struct {
	mu    sync.RWMutex
	attrs map[string]*models.Attribute
}

func NewMemoryAttributeStorage() *MemoryAttributeStorage {
	return &MemoryAttributeStorage{
		attrs: make(map[string]*models.Attribute),
	}
}

func (s *MemoryAttributeStorage) ListByUser(ctx context.Context, userID string) ([]*models.Attribute, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	attrs := make([]*models.Attribute, 0)
	for _, attr := range s.attrs {
		if attr.UserID == userID {
			copied := *attr
			attrs = append(attrs, &copied)
		}
	}

	sort.Slice(attrs, func(i, j int) bool {
		return attrs[i].Name < attrs[j].Name
	})

	return attrs, nil
}

func (s *MemoryAttributeStorage) Create(ctx context.Context, userID, name string) (*models.Attribute, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	attr := &models.Attribute{
		ID:     uuid.New().String(),
		Name:   name,
		UserID: userID,
	}

	s.attrs[attr.ID] = attr

	copied := *attr
	return &copied, nil
}

func (s *MemoryAttributeStorage) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, id := range ids {
		if attr, exists := s.attrs[id]; exists && attr.UserID == userID {
			count++
		}
	}

	return count, nil
}

type MemoryRecipeStorage struct {
	mu      sync.RWMutex
	recipes map[string]*models.Recipe
	seq     map[string]int
	nextSeq int
}

func NewMemoryRecipeStorage() *MemoryRecipeStorage {
	return &MemoryRecipeStorage{
		recipes: make(map[string]*models.Recipe),
		seq:     make(map[string]int),
	}
}

func (s *MemoryRecipeStorage) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipes := make([]*models.Recipe, 0)
	for _, recipe := range s.recipes {
		if recipe.UserID == userID {
			recipes = append(recipes, copyRecipe(recipe))
		}
	}

	// Newest first, matching the Postgres ordering.
	sort.Slice(recipes, func(i, j int) bool {
		return s.seq[recipes[i].ID] > s.seq[recipes[j].ID]
	})

	return recipes, nil
}

func (s *MemoryRecipeStorage) GetByID(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, exists := s.recipes[recipeID]
	if !exists || recipe.UserID != userID {
		return nil, nil
	}

	return copyRecipe(recipe), nil
}

func (s *MemoryRecipeStorage) Create(ctx context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.recipes[recipe.ID] = copyRecipe(recipe)
	s.seq[recipe.ID] = s.nextSeq
	s.nextSeq++
	return nil
}

func (s *MemoryRecipeStorage) Update(ctx context.Context, recipe *models.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, exists := s.recipes[recipe.ID]
	if !exists || existing.UserID != recipe.UserID {
		return fmt.Errorf("recipe %s not found", recipe.ID)
	}

	updated := copyRecipe(recipe)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	s.recipes[recipe.ID] = updated
	return nil
}

func (s *MemoryRecipeStorage) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, exists := s.recipes[recipeID]
	if !exists || recipe.UserID != userID {
		return false, nil
	}

	delete(s.recipes, recipeID)
	delete(s.seq, recipeID)
	return true, nil
}

func copyRecipe(recipe *models.Recipe) *models.Recipe {
	copied := *recipe
	copied.TagIDs = append([]string{}, recipe.TagIDs...)
	copied.IngredientIDs = append([]string{}, recipe.IngredientIDs...)
	return &copied
}
