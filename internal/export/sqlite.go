package export

import (
	"context"
	"fmt"

	"github.com/Rana718/synthgen/internal/database"
	"github.com/Rana718/synthgen/internal/generator"
)

const DefaultSQLiteTable = "synthetic_data"

// ToSQLite writes the table into a SQLite database file, replacing any
// table of the same name.
func ToSQLite(ctx context.Context, table *generator.Table, filePath, tableName string) error {
	db, err := database.Open(ctx, "sqlite", filePath)
	if err != nil {
		return fmt.Errorf("failed to create SQLite database: %w", err)
	}
	defer db.Close()

	dialect, err := database.NewDialect("sqlite")
	if err != nil {
		return err
	}

	if _, err := database.NewSink(db, dialect).WriteTable(ctx, tableName, table, database.WriteOptions{Drop: true}); err != nil {
		return fmt.Errorf("failed to export to SQLite: %w", err)
	}
	return nil
}
