package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	"github.com/pressly/goose/v3"

	"github.com/freeup86/trainingpulse-sub004/internal/config"
	"github.com/freeup86/trainingpulse-sub004/migrations"
)

// Migrator applies the embedded goose migrations. Close releases its
// database/sql connection.
type Migrator struct {
	*goose.Provider
	db *sql.DB
}

// NewMigrator opens a database/sql handle for goose on cfg.DSN.
func NewMigrator(cfg config.DatabaseConfig) (*Migrator, error) {
	db, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("sql.Open: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		db.Close() //nolint:errcheck
		return nil, fmt.Errorf("goose new provider: %w", err)
	}

	return &Migrator{Provider: provider, db: db}, nil
}

// Close closes the underlying database handle.
func (m *Migrator) Close() error {
	return m.db.Close()
}
