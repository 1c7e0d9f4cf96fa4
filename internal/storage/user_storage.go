package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jfuentes/recipebox/internal/database"
	usermodel "github.com/jfuentes/recipebox/internal/models/user"
)

type PostgresUserStorage struct {
	db *database.DBManager
}

func NewPostgresUserStorage(db *database.DBManager) *PostgresUserStorage {
	return &PostgresUserStorage{db: db}
}

func (s *PostgresUserStorage) CreateUser(ctx context.Context, req *usermodel.CreateUserRequest, passwordHash string) (*usermodel.User, error) {
	userID := uuid.New().String()
	now := time.Now()

	query := `
		INSERT INTO users (id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at)
		VALUES ($1, $2, $3, $4, TRUE, FALSE, FALSE, $5, $6)
		RETURNING id, email, name, is_active, is_staff, is_superuser, created_at, updated_at
	`

	var user usermodel.User
	err := s.db.Write().QueryRow(ctx, query,
		userID,
		req.Email,
		req.Name,
		passwordHash,
		now,
		now,
	).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) GetUserByEmail(ctx context.Context, email string) (*usermodel.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at
		FROM users
		WHERE lower(email) = lower($1)
	`

	var user usermodel.User
	err := s.db.Read().QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) GetUserByID(ctx context.Context, userID string) (*usermodel.User, error) {
	query := `
		SELECT id, email, name, password_hash, is_active, is_staff, is_superuser, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user usermodel.User
	err := s.db.Read().QueryRow(ctx, query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.PasswordHash,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) UpdateUser(ctx context.Context, userID string, name, passwordHash *string) (*usermodel.User, error) {
	query := `
		UPDATE users
		SET name = COALESCE($1, name),
		    password_hash = COALESCE($2, password_hash),
		    updated_at = NOW()
		WHERE id = $3
		RETURNING id, email, name, is_active, is_staff, is_superuser, created_at, updated_at
	`

	var user usermodel.User
	err := s.db.Write().QueryRow(ctx, query, name, passwordHash, userID).Scan(
		&user.ID,
		&user.Email,
		&user.Name,
		&user.IsActive,
		&user.IsStaff,
		&user.IsSuperuser,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

func (s *PostgresUserStorage) SetSuperuser(ctx context.Context, userID string) error {
	query := `
		UPDATE users
		SET is_staff = TRUE, is_superuser = TRUE, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := s.db.Write().Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to elevate user: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %s not found", userID)
	}

	return nil
}
