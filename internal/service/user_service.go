package service

import (
	"context"
	"fmt"

	"github.com/jfuentes/recipebox/internal/auth"
	"github.com/jfuentes/recipebox/internal/logger"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
	"github.com/jfuentes/recipebox/internal/storage"
	"github.com/jfuentes/recipebox/internal/validation"
)

type UserService struct {
	store          storage.UserStorage
	minPasswordLen int
	log            *logger.Logger
}

func NewUserService(store storage.UserStorage, minPasswordLen int) *UserService {
	if minPasswordLen <= 0 {
		minPasswordLen = 5
	}

	return &UserService{
		store:          store,
		minPasswordLen: minPasswordLen,
		log:            logger.New("user-service"),
	}
}

func (s *UserService) Register(ctx context.Context, email, password, name string) (*usermodel.User, error) {
	email = validation.NormalizeEmail(email)

	if err := validation.ValidateEmail(email); err != nil {
		switch err {
		case validation.ErrEmailRequired:
			return nil, ErrEmailRequired
		default:
			return nil, ErrEmailInvalid
		}
	}

	if name == "" {
		return nil, ErrNameRequired
	}

	if len(password) < s.minPasswordLen {
		return nil, fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, s.minPasswordLen)
	}

	existing, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.store.CreateUser(ctx, &usermodel.CreateUserRequest{
		Email:    email,
		Name:     name,
		Password: password,
	}, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.log.Info("Registered user %s", user.ID)
	return user, nil
}

func (s *UserService) Authenticate(ctx context.Context, email, password string) (*usermodel.User, error) {
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := s.store.GetUserByEmail(ctx, validation.NormalizeEmail(email))
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !user.IsActive {
		return nil, ErrInvalidCredentials
	}

	if err := auth.CheckPassword(user.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *UserService) GetByID(ctx context.Context, userID string) (*usermodel.User, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID string, req *usermodel.UpdateProfileRequest) (*usermodel.User, error) {
	if req.Name != nil && *req.Name == "" {
		return nil, ErrNameRequired
	}

	var passwordHash *string
	if req.Password != nil {
		if len(*req.Password) < s.minPasswordLen {
			return nil, fmt.Errorf("%w: must be at least %d characters", ErrPasswordTooShort, s.minPasswordLen)
		}

		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		passwordHash = &hash
	}

	user, err := s.store.UpdateUser(ctx, userID, req.Name, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	s.log.Info("Updated profile for user %s", user.ID)
	return user, nil
}

func (s *UserService) ElevateToSuperuser(ctx context.Context, userID string) error {
	if err := s.store.SetSuperuser(ctx, userID); err != nil {
		return fmt.Errorf("failed to elevate user: %w", err)
	}

	s.log.Warn("User %s elevated to superuser", userID)
	return nil
}
