package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// SupportedProviders lists the provider names accepted in config and flags.
var SupportedProviders = []string{"postgresql", "postgres", "mysql", "sqlite", "sqlite3"}

func NewDialect(provider string) (Dialect, error) {
	switch provider {
	case "postgresql", "postgres":
		return postgresDialect{}, nil
	case "mysql":
		return mysqlDialect{}, nil
	case "sqlite", "sqlite3":
		return sqliteDialect{}, nil
	default:
		return nil, fmt.Errorf("unsupported database provider: %s. Supported providers: %v", provider, SupportedProviders)
	}
}

// ProviderFromURL infers the provider from a URL scheme such as sqlite://
// or postgres://. It reports false for URLs without a known scheme.
func ProviderFromURL(url string) (string, bool) {
	scheme, _, found := strings.Cut(url, "://")
	if !found {
		return "", false
	}
	switch strings.ToLower(scheme) {
	case "postgres", "postgresql":
		return "postgresql", true
	case "mysql":
		return "mysql", true
	case "sqlite", "sqlite3":
		return "sqlite", true
	default:
		return "", false
	}
}

// Open connects to the database behind url and pings it.
func Open(ctx context.Context, provider, url string) (*sql.DB, error) {
	dialect, err := NewDialect(provider)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(dialect.DriverName(), dialect.DSN(url))
	if err != nil {
		return nil, err
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func trimScheme(url string, schemes ...string) string {
	for _, scheme := range schemes {
		if strings.HasPrefix(url, scheme) {
			return strings.TrimPrefix(url, scheme)
		}
	}
	return url
}
