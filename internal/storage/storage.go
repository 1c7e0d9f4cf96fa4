package storage

import (
	"context"

	"github.com/jfuentes/recipebox/internal/models"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
)

type UserStorage interface {
	CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error)
	GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error)
	GetUserByID(ctx context.Context, userID string) (*usermodel.User, error)
	UpdateUser(ctx context.Context, userID string, name, passwordHash *string) (*usermodel.User, error)
	SetSuperuser(ctx context.Context, userID string) error
}

// AttributeStorage backs one attribute kind (tags or ingredients).
type AttributeStorage interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Attribute, error)
	Create(ctx context.Context, userID, name string) (*models.Attribute, error)
	CountOwned(ctx context.Context, userID string, ids []string) (int, error)
}

type RecipeStorage interface {
	ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error)
	GetByID(ctx context.Context, userID, recipeID string) (*models.Recipe, error)
	Create(ctx context.Context, recipe *models.Recipe) error
	Update(ctx context.Context, recipe *models.Recipe) error
	Delete(ctx context.Context, userID, recipeID string) (bool, error)
}
