package migrator

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// ErrMigration возвращается при ошибке применения миграций
var ErrMigration = errors.New("migrator: migration failed")

// Migrator применяет встроенные SQL миграции в порядке имен файлов
// Примененные версии хранятся в таблице schema_migrations
type Migrator struct {
	db     *sqlx.DB
	logger Logger
	schema string
}

// NewMigrator создает мигратор поверх открытого соединения
func NewMigrator(db *sql.DB, logger Logger, schema string) *Migrator {
	if schema == "" {
		schema = "public"
	}
	return &Migrator{
		db:     sqlx.NewDb(db, "postgres"),
		logger: logger,
		schema: schema,
	}
}

// Run применяет все еще не примененные миграции
func (m *Migrator) Run(ctx context.Context) error {
	m.logger.Info("Migrator.Run: schema=%s", m.schema)

	if err := m.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigration, err)
	}

	files, err := migrationFiles()
	if err != nil {
		return fmt.Errorf("%w: read migration files: %v", ErrMigration, err)
	}

	for _, file := range files {
		if err := m.apply(ctx, file); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrMigration, file, err)
		}
	}

	return nil
}

// Applied возвращает примененные версии, новые первыми
func (m *Migrator) Applied(ctx context.Context) ([]string, error) {
	var versions []string
	query := fmt.Sprintf(`SELECT version FROM %s.schema_migrations ORDER BY applied_at DESC, version DESC`, m.schema)
	if err := m.db.SelectContext(ctx, &versions, query); err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: list applied: %v", ErrMigration, err)
	}
	return versions, nil
}

func (m *Migrator) createMigrationsTable(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, fmt.Sprintf(`CREATE SCHEMA IF NOT EXISTS %s`, m.schema)); err != nil {
		return err
	}

	_, err := m.db.ExecContext(ctx, fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s.schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)
	`, m.schema))
	return err
}

func migrationFiles() ([]string, error) {
	entries, err := migrationsFS.ReadDir("migrations")
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

func (m *Migrator) apply(ctx context.Context, file string) (err error) {
	version := strings.TrimSuffix(file, ".sql")

	var count int
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s.schema_migrations WHERE version = $1`, m.schema)
	if err := m.db.GetContext(ctx, &count, query, version); err != nil {
		return err
	}
	if count > 0 {
		m.logger.Debug("Migrator.apply: version=%s already applied", version)
		return nil
	}

	content, err := migrationsFS.ReadFile("migrations/" + file)
	if err != nil {
		return err
	}

	tx, err := m.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(ctx, fmt.Sprintf("SET LOCAL search_path TO %s, public", m.schema)); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, string(content)); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, fmt.Sprintf(`INSERT INTO %s.schema_migrations (version) VALUES ($1)`, m.schema), version); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}

	m.logger.Info("Migrator.apply: version=%s applied", version)
	return nil
}
