package storage

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jfuentes/recipebox/internal/database"
	"github.com/jfuentes/recipebox/internal/models"
)

type PostgresRecipeStorage struct {
	db *database.DBManager
}

func NewPostgresRecipeStorage(db *database.DBManager) *PostgresRecipeStorage {
	return &PostgresRecipeStorage{db: db}
}

func (s *PostgresRecipeStorage) ListByUser(ctx context.Context, userID string) ([]*models.Recipe, error) {
	query := `
		SELECT id, title, time_minutes, price, user_id, created_at, updated_at
		FROM recipes
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.Read().Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*models.Recipe, 0)
	byID := make(map[string]*models.Recipe)

	for rows.Next() {
		var recipe models.Recipe
		err := rows.Scan(
			&recipe.ID,
			&recipe.Title,
			&recipe.TimeMinutes,
			&recipe.Price,
			&recipe.UserID,
			&recipe.CreatedAt,
			&recipe.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recipe row: %w", err)
		}

		recipe.TagIDs = []string{}
		recipe.IngredientIDs = []string{}
		recipes = append(recipes, &recipe)
		byID[recipe.ID] = &recipe
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read recipe rows: %w", err)
	}

	if len(recipes) == 0 {
		return recipes, nil
	}

	recipeIDs := make([]string, 0, len(recipes))
	for _, recipe := range recipes {
		recipeIDs = append(recipeIDs, recipe.ID)
	}

	if err := s.loadLinks(ctx, "recipe_tags", "tag_id", recipeIDs, func(recipeID, id string) {
		byID[recipeID].TagIDs = append(byID[recipeID].TagIDs, id)
	}); err != nil {
		return nil, err
	}

	if err := s.loadLinks(ctx, "recipe_ingredients", "ingredient_id", recipeIDs, func(recipeID, id string) {
		byID[recipeID].IngredientIDs = append(byID[recipeID].IngredientIDs, id)
	}); err != nil {
		return nil, err
	}

	return recipes, nil
}

func (s *PostgresRecipeStorage) GetByID(ctx context.Context, userID, recipeID string) (*models.Recipe, error) {
	query := `
		SELECT id, title, time_minutes, price, user_id, created_at, updated_at
		FROM recipes
		WHERE id = $1 AND user_id = $2
	`

	var recipe models.Recipe
	err := s.db.Read().QueryRow(ctx, query, recipeID, userID).Scan(
		&recipe.ID,
		&recipe.Title,
		&recipe.TimeMinutes,
		&recipe.Price,
		&recipe.UserID,
		&recipe.CreatedAt,
		&recipe.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get recipe: %w", err)
	}

	recipe.TagIDs = []string{}
	recipe.IngredientIDs = []string{}

	if err := s.loadLinks(ctx, "recipe_tags", "tag_id", []string{recipe.ID}, func(_, id string) {
		recipe.TagIDs = append(recipe.TagIDs, id)
	}); err != nil {
		return nil, err
	}

	if err := s.loadLinks(ctx, "recipe_ingredients", "ingredient_id", []string{recipe.ID}, func(_, id string) {
		recipe.IngredientIDs = append(recipe.IngredientIDs, id)
	}); err != nil {
		return nil, err
	}

	return &recipe, nil
}

func (s *PostgresRecipeStorage) Create(ctx context.Context, recipe *models.Recipe) error {
	tx, err := s.db.Write().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO recipes (id, title, time_minutes, price, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err = tx.Exec(ctx, query,
		recipe.ID,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.UserID,
		recipe.CreatedAt,
		recipe.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert recipe: %w", err)
	}

	if err := insertLinks(ctx, tx, "recipe_tags", "tag_id", recipe.ID, recipe.TagIDs); err != nil {
		return err
	}

	if err := insertLinks(ctx, tx, "recipe_ingredients", "ingredient_id", recipe.ID, recipe.IngredientIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe: %w", err)
	}

	return nil
}

func (s *PostgresRecipeStorage) Update(ctx context.Context, recipe *models.Recipe) error {
	tx, err := s.db.Write().Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		UPDATE recipes
		SET title = $1, time_minutes = $2, price = $3, updated_at = NOW()
		WHERE id = $4 AND user_id = $5
	`

	tag, err := tx.Exec(ctx, query,
		recipe.Title,
		recipe.TimeMinutes,
		recipe.Price,
		recipe.ID,
		recipe.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update recipe: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("recipe %s not found", recipe.ID)
	}

	// Link sets are replaced wholesale alongside the row update.
	if _, err := tx.Exec(ctx, `DELETE FROM recipe_tags WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("failed to clear recipe tags: %w", err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM recipe_ingredients WHERE recipe_id = $1`, recipe.ID); err != nil {
		return fmt.Errorf("failed to clear recipe ingredients: %w", err)
	}

	if err := insertLinks(ctx, tx, "recipe_tags", "tag_id", recipe.ID, recipe.TagIDs); err != nil {
		return err
	}

	if err := insertLinks(ctx, tx, "recipe_ingredients", "ingredient_id", recipe.ID, recipe.IngredientIDs); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit recipe update: %w", err)
	}

	return nil
}

func (s *PostgresRecipeStorage) Delete(ctx context.Context, userID, recipeID string) (bool, error) {
	query := `DELETE FROM recipes WHERE id = $1 AND user_id = $2`

	tag, err := s.db.Write().Exec(ctx, query, recipeID, userID)
	if err != nil {
		return false, fmt.Errorf("failed to delete recipe: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

func (s *PostgresRecipeStorage) loadLinks(ctx context.Context, table, column string, recipeIDs []string, add func(recipeID, id string)) error {
	query := fmt.Sprintf(`
		SELECT recipe_id, %s
		FROM %s
		WHERE recipe_id = ANY($1::uuid[])
	`, column, table)

	rows, err := s.db.Read().Query(ctx, query, recipeIDs)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", table, err)
	}
	defer rows.Close()

	for rows.Next() {
		var recipeID, id string
		if err := rows.Scan(&recipeID, &id); err != nil {
			return fmt.Errorf("failed to scan %s row: %w", table, err)
		}
		add(recipeID, id)
	}

	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read %s rows: %w", table, err)
	}

	return nil
}

func insertLinks(ctx context.Context, tx pgx.Tx, table, column string, recipeID string, ids []string) error {
	for _, id := range ids {
		query := fmt.Sprintf(`INSERT INTO %s (recipe_id, %s) VALUES ($1, $2)`, table, column)
		if _, err := tx.Exec(ctx, query, recipeID, id); err != nil {
			return fmt.Errorf("failed to link %s: %w", table, err)
		}
	}

	return nil
}
