// Package migrate applies the embedded schema files in name order
// applied versions are recorded in schema_migrations
package migrate

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"juryduty/internal/platform/logger"
	"juryduty/internal/platform/store"
)

//go:embed sql/*.up.sql
var files embed.FS

const ensureTable = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    TEXT PRIMARY KEY,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`

// Migration is one schema file
type Migration struct {
	Version string
	SQL     string
}

// Embedded lists the bundled migrations sorted by version
func Embedded() ([]Migration, error) { return load(files, "sql") }

func load(fsys fs.FS, dir string) ([]Migration, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var out []Migration
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".up.sql") {
			continue
		}
		b, err := fs.ReadFile(fsys, path.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: e.Name(), SQL: string(b)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Version < out[j].Version })
	return out, nil
}

// Up applies every embedded migration not yet recorded
func Up(ctx context.Context, db store.TxRunner) (applied []string, err error) {
	ms, err := Embedded()
	if err != nil {
		return nil, err
	}
	return Apply(ctx, db, ms)
}

// Apply runs each pending migration and its bookkeeping row in one transaction
func Apply(ctx context.Context, db store.TxRunner, ms []Migration) ([]string, error) {
	log := logger.Named("migrate")
	if _, err := db.Exec(ctx, ensureTable); err != nil {
		return nil, fmt.Errorf("ensure schema_migrations: %w", err)
	}

	var applied []string
	for _, m := range ms {
		done, err := store.Scalar[bool](ctx, db,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, m.Version)
		if err != nil {
			return applied, fmt.Errorf("check migration %s: %w", m.Version, err)
		}
		if done {
			continue
		}
		err = db.Tx(ctx, func(q store.RowQuerier) error {
			if _, err := q.Exec(ctx, m.SQL); err != nil {
				return fmt.Errorf("execute migration %s: %w", m.Version, err)
			}
			if _, err := q.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, m.Version); err != nil {
				return fmt.Errorf("record migration %s: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		log.Info().Str("version", m.Version).Msg("migration applied")
		applied = append(applied, m.Version)
	}
	return applied, nil
}
