package migrations

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

//go:embed sql/*.sql
var embedded embed.FS

// Files returns the schema migrations shipped with the binary
func Files() fs.FS {
	sub, err := fs.Sub(embedded, "sql")
	if err != nil {
		// the embed pattern guarantees the directory
		panic(err)
	}
	return sub
}

// Migration is one versioned SQL file
type Migration struct {
	Version string
	Name    string
}

// Conn is what the migrator needs from a pool or a single connection
type Conn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Migrator manages database migrations
type Migrator struct {
	db     Conn
	files  fs.FS
	logger zerolog.Logger
}

// NewMigrator creates a migrator applying the files in fsys
func NewMigrator(db Conn, fsys fs.FS, logger zerolog.Logger) *Migrator {
	return &Migrator{
		db:     db,
		files:  fsys,
		logger: logger,
	}
}

// List returns the migrations in fsys ordered by file name.
// The version is the file name prefix before the first underscore ("001_schema.sql" => "001").
func List(fsys fs.FS) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migration directory: %w", err)
	}

	var migrations []Migration
	seen := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version := strings.SplitN(entry.Name(), "_", 2)[0]
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("migration version %s used by both %s and %s", version, other, entry.Name())
		}
		seen[version] = entry.Name()
		migrations = append(migrations, Migration{Version: version, Name: entry.Name()})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Name < migrations[j].Name })
	return migrations, nil
}

// ensureMigrationTableExists creates the migration tracking table if it doesn't exist
func (m *Migrator) ensureMigrationTableExists(ctx context.Context) error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS schema_migrations (
		version VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`

	if _, err := m.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("failed to create migration tracking table: %w", err)
	}
	return nil
}

// isMigrationApplied checks if a specific migration has already been applied
func (m *Migrator) isMigrationApplied(ctx context.Context, version string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1);`
	if err := m.db.QueryRow(ctx, query, version).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check migration status: %w", err)
	}
	return exists, nil
}

// apply runs one migration file and records it in the same transaction
func (m *Migrator) apply(ctx context.Context, migration Migration) error {
	content, err := fs.ReadFile(m.files, path.Clean(migration.Name))
	if err != nil {
		return fmt.Errorf("failed to read migration file %s: %w", migration.Name, err)
	}

	tx, err := m.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("error occurred during SQL migration %s: %w", migration.Name, err)
	}

	if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, migration.Version); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.Version, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", migration.Name, err)
	}
	return nil
}

// Migrate applies every pending migration in order and returns how many ran.
func (m *Migrator) Migrate(ctx context.Context) (int, error) {
	if err := m.ensureMigrationTableExists(ctx); err != nil {
		return 0, err
	}

	migrations, err := List(m.files)
	if err != nil {
		return 0, err
	}

	applied := 0
	for _, migration := range migrations {
		done, err := m.isMigrationApplied(ctx, migration.Version)
		if err != nil {
			return applied, err
		}
		if done {
			m.logger.Debug().Str("migration", migration.Name).Msg("Migration already applied, skipping")
			continue
		}

		if err := m.apply(ctx, migration); err != nil {
			return applied, err
		}
		applied++
		m.logger.Info().Str("migration", migration.Name).Msg("Migration applied")
	}

	return applied, nil
}
