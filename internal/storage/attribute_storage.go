package storage

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jfuentes/recipebox/internal/database"
	"github.com/jfuentes/recipebox/internal/models"
)

// PostgresAttributeStorage serves one attribute table; the tags and
// ingredients stores are two instances pointed at different tables.
type PostgresAttributeStorage struct {
	db    *database.DBManager
	table string
}

func NewPostgresAttributeStorage(db *database.DBManager, table string) *PostgresAttributeStorage {
	return &PostgresAttributeStorage{db: db, table: table}
}

func (s *PostgresAttributeStorage) ListByUser(ctx context.Context, userID string) ([]*models.Attribute, error) {
	query := fmt.Sprintf(`
		SELECT id, name, user_id
		FROM %s
		WHERE user_id = $1
		ORDER BY name
	`, s.table)

	rows, err := s.db.Read().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", s.table, err)
	}
	defer rows.Close()

	attrs := make([]*models.Attribute, 0)
	for rows.Next() {
		var attr models.Attribute
		if err := rows.Scan(&attr.ID, &attr.Name, &attr.UserID); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", s.table, err)
		}
		attrs = append(attrs, &attr)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s rows: %w", s.table, err)
	}

	return attrs, nil
}

func (s *PostgresAttributeStorage) Create(ctx context.Context, userID, name string) (*models.Attribute, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, user_id
	`, s.table)

	var attr models.Attribute
	err := s.db.Write().QueryRow(ctx, query, uuid.New().String(), name, userID).Scan(
		&attr.ID,
		&attr.Name,
		&attr.UserID,
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create %s record: %w", s.table, err)
	}

	return &attr, nil
}

func (s *PostgresAttributeStorage) CountOwned(ctx context.Context, userID string, ids []string) (int, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query := fmt.Sprintf(`
		SELECT COUNT(*)
		FROM %s
		WHERE user_id = $1 AND id = ANY($2::uuid[])
	`, s.table)

	var count int
	if err := s.db.Read().QueryRow(ctx, query, userID, ids).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s records: %w", s.table, err)
	}

	return count, nil
}
