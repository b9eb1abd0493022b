package postgres

import (
	"context"
	"embed"
	"io/fs"
	"sort"
	"strings"
	"time"

	ierr "github.com/claimsdesk/claims-service/internal/errors"
	"github.com/lib/pq"
)

const pqUndefinedTable = "42P01"

//go:embed migrations/*.sql
var migrationFiles embed.FS

// Migration is one forward-only SQL file
type Migration struct {
	Version string
	SQL     string
}

// Migrations returns the embedded migration files ordered by version
func Migrations() ([]Migration, error) {
	entries, err := fs.ReadDir(migrationFiles, "migrations")
	if err != nil {
		return nil, err
	}

	migrations := make([]Migration, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		body, err := fs.ReadFile(migrationFiles, "migrations/"+e.Name())
		if err != nil {
			return nil, err
		}
		migrations = append(migrations, Migration{
			Version: strings.TrimSuffix(e.Name(), ".sql"),
			SQL:     string(body),
		})
	}

	sort.Slice(migrations, func(i, j int) bool {
		return migrations[i].Version < migrations[j].Version
	})
	return migrations, nil
}

// Migrate creates the schema and applies every migration not yet recorded in
// schema_migrations, each in its own transaction. It returns the versions applied.
func (db *DB) Migrate(ctx context.Context, schema string) ([]string, error) {
	if schema != "" {
		if _, err := db.ExecContext(ctx, "CREATE SCHEMA IF NOT EXISTS "+pq.QuoteIdentifier(schema)); err != nil {
			return nil, ierr.WithError(err).
				WithMessagef("failed to create schema %s", schema).
				Mark(ierr.ErrDatabase)
		}
	}

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    VARCHAR(100) PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL
	)`); err != nil {
		return nil, ierr.WithError(err).
			WithMessage("failed to create schema_migrations").
			Mark(ierr.ErrDatabase)
	}

	pending, err := db.PendingMigrations(ctx)
	if err != nil {
		return nil, err
	}

	applied := make([]string, 0, len(pending))
	for _, m := range pending {
		err := db.WithTx(ctx, func(txCtx context.Context) error {
			q := db.GetQuerier(txCtx)
			if _, err := q.ExecContext(txCtx, m.SQL); err != nil {
				return err
			}
			_, err := q.ExecContext(txCtx,
				`INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)`,
				m.Version, time.Now().UTC())
			return err
		})
		if err != nil {
			return applied, ierr.WithError(err).
				WithMessagef("migration %s failed", m.Version).
				Mark(ierr.ErrDatabase)
		}
		db.logger.Infow("applied migration", "version", m.Version)
		applied = append(applied, m.Version)
	}

	return applied, nil
}

// PendingMigrations lists migrations that are not recorded as applied
func (db *DB) PendingMigrations(ctx context.Context) ([]Migration, error) {
	all, err := Migrations()
	if err != nil {
		return nil, err
	}

	var done []string
	if err := db.SelectContext(ctx, &done, `SELECT version FROM schema_migrations`); err != nil {
		// a fresh database has no bookkeeping table yet
		var pqErr *pq.Error
		if ierr.As(err, &pqErr) && pqErr.Code == pqUndefinedTable {
			return all, nil
		}
		return nil, ierr.WithError(err).
			WithMessage("failed to read schema_migrations").
			Mark(ierr.ErrDatabase)
	}

	seen := make(map[string]struct{}, len(done))
	for _, v := range done {
		seen[v] = struct{}{}
	}

	pending := make([]Migration, 0, len(all))
	for _, m := range all {
		if _, ok := seen[m.Version]; !ok {
			pending = append(pending, m)
		}
	}
	return pending, nil
}
