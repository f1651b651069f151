package catalogstore

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// RunMigrations executes schema.sql found under migrationsPath. Every
// statement in the file uses IF NOT EXISTS, so running it against an
// already-migrated database is a no-op (grounded on the teacher's
// DB.RunMigrations in internal/database/migrations.go).
func (db *DB) RunMigrations(ctx context.Context, migrationsPath string) error {
	schemaFile := filepath.Join(migrationsPath, "schema.sql")
	content, err := os.ReadFile(schemaFile)
	if err != nil {
		return fmt.Errorf("read schema file: %w", err)
	}

	if err := db.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}

	log.Info("catalog store schema applied from %s", schemaFile)
	return nil
}

// ClearCatalogRuns drops every run and its cascaded systems, stars,
// planets, and clusters. The CLI's -save flow does not call it: each
// save adds a new run alongside any existing ones.
func (db *DB) ClearCatalogRuns(ctx context.Context) error {
	return db.Exec(ctx, "DELETE FROM catalog_runs")
}
