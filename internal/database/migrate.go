package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/jfuentes/recipebox/internal/migrations"
)

// RunMigrations applies the embedded schema migrations against the
// primary database. It opens a short-lived database/sql connection
// because goose does not speak pgxpool.
func RunMigrations(ctx context.Context, primaryDSN string) error {
	db, err := sql.Open("pgx", primaryDSN)
	if err != nil {
		return fmt.Errorf("open migration connection: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	if err := goose.UpContext(ctx, db, "."); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	return nil
}
