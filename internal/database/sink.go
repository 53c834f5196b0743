package database

import (
	"context"
	"database/sql"
	"fmt"
	"regexp"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/Rana718/synthgen/internal/generator"
)

// validIdentifier validates SQL identifiers (table/column names)
var validIdentifier = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

const DefaultBatchSize = 100

func IsValidIdentifier(name string) bool {
	return validIdentifier.MatchString(name)
}

type WriteOptions struct {
	Drop  bool // drop the target table before creating it
	Batch int  // rows per INSERT statement
}

// Sink loads generated tables into a database.
type Sink struct {
	db      *sql.DB
	dialect Dialect
}

func NewSink(db *sql.DB, dialect Dialect) *Sink {
	return &Sink{db: db, dialect: dialect}
}

// WriteTable creates the target table if needed and inserts every row in a
// single transaction. It returns the number of rows inserted.
func (s *Sink) WriteTable(ctx context.Context, name string, table *generator.Table, opts WriteOptions) (int, error) {
	if err := s.validate(name, table); err != nil {
		return 0, err
	}

	batchSize := opts.Batch
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}

	inserted, err := s.write(ctx, tx, name, table, opts.Drop, batchSize)
	if err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return 0, fmt.Errorf("write failed and rollback failed: %v (original: %w)", rbErr, err)
		}
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

func (s *Sink) validate(name string, table *generator.Table) error {
	if !IsValidIdentifier(name) {
		return fmt.Errorf("invalid table name: %s", name)
	}
	if len(table.Columns) == 0 {
		return fmt.Errorf("table %s has no columns", name)
	}
	for _, col := range table.Columns {
		if !IsValidIdentifier(col.Name) {
			return fmt.Errorf("invalid column name in table %s: %s", name, col.Name)
		}
	}
	return nil
}

func (s *Sink) write(ctx context.Context, tx *sql.Tx, name string, table *generator.Table, drop bool, batchSize int) (int, error) {
	quoted := s.dialect.QuoteIdentifier(name)

	if drop {
		if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+quoted); err != nil {
			return 0, fmt.Errorf("failed to drop table %s: %w", name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, s.CreateTableSQL(name, table)); err != nil {
		return 0, fmt.Errorf("failed to create table %s: %w", name, err)
	}

	columns := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		columns[i] = s.dialect.QuoteIdentifier(col.Name)
	}

	builder := sq.StatementBuilder.PlaceholderFormat(s.dialect.Placeholder())

	inserted := 0
	for start := 0; start < table.Rows(); start += batchSize {
		end := start + batchSize
		if end > table.Rows() {
			end = table.Rows()
		}

		insert := builder.Insert(quoted).Columns(columns...)
		for i := start; i < end; i++ {
			insert = insert.Values(table.Row(i)...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return inserted, fmt.Errorf("failed to build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return inserted, fmt.Errorf("failed to insert batch: %w", err)
		}
		inserted += end - start
	}

	return inserted, nil
}

// CreateTableSQL renders the CREATE TABLE statement for a generated table.
func (s *Sink) CreateTableSQL(name string, table *generator.Table) string {
	defs := make([]string, len(table.Columns))
	for i, col := range table.Columns {
		defs[i] = fmt.Sprintf("%s %s", s.dialect.QuoteIdentifier(col.Name), s.dialect.ColumnType(col.Kind))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", s.dialect.QuoteIdentifier(name), strings.Join(defs, ", "))
}
