package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/prodline/internal/domain"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateSeedTaxonomy(db); err != nil {
		return fmt.Errorf("seeding default taxonomy: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS production_entries (
		id           TEXT PRIMARY KEY,
		entry_date   TEXT NOT NULL,
		area         TEXT NOT NULL
		             CHECK(area IN ('CRF','Pre-assembly','Door foaming','Cabinet foaming','CF final','WD final')),
		supervisor   TEXT NOT NULL,
		submitted_at TEXT NOT NULL,
		updated_at   TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS batch_items (
		entry_id TEXT NOT NULL REFERENCES production_entries(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		quantity INTEGER NOT NULL CHECK(quantity > 0),
		model    TEXT NOT NULL,
		machine  TEXT NOT NULL DEFAULT '',
		part     TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT '',
		PRIMARY KEY (entry_id, position)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_date ON production_entries(entry_date)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_area_date ON production_entries(area, entry_date)`,

	// Categories of the cf_line branch and machines of the crf branch.
	`CREATE TABLE IF NOT EXISTS taxonomy_groups (
		branch   TEXT NOT NULL CHECK(branch IN ('crf','cf_line','wd_line')),
		name     TEXT NOT NULL,
		position INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (branch, name)
	)`,

	// Models, parts and flat-list items. group_name is '' for flat branches.
	`CREATE TABLE IF NOT EXISTS taxonomy_items (
		branch     TEXT NOT NULL CHECK(branch IN ('crf','cf_line','wd_line')),
		group_name TEXT NOT NULL DEFAULT '',
		name       TEXT NOT NULL,
		position   INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (branch, group_name, name)
	)`,

	`CREATE TABLE IF NOT EXISTS active_flags (
		name   TEXT PRIMARY KEY,
		active INTEGER NOT NULL DEFAULT 1
	)`,

	`CREATE TABLE IF NOT EXISTS daily_targets (
		target_date TEXT NOT NULL,
		item        TEXT NOT NULL,
		quantity    INTEGER NOT NULL CHECK(quantity >= 0),
		PRIMARY KEY (target_date, item)
	)`,

	`CREATE TABLE IF NOT EXISTS monthly_targets (
		target_month TEXT NOT NULL,
		item         TEXT NOT NULL,
		quantity     INTEGER NOT NULL CHECK(quantity >= 0),
		PRIMARY KEY (target_month, item)
	)`,

	`CREATE TABLE IF NOT EXISTS schema_meta (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}

// migrateSeedTaxonomy writes the default catalog once per database. Later
// runs leave an edited (or emptied) catalog alone.
func migrateSeedTaxonomy(db *sql.DB) error {
	ctx := context.Background()

	var seeded int
	if err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM schema_meta WHERE key = 'taxonomy_seeded'`).Scan(&seeded); err != nil {
		return fmt.Errorf("checking seed marker: %w", err)
	}
	if seeded > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting seed transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	for key, branch := range domain.DefaultTaxonomy() {
		if err := seedBranch(ctx, tx, key, branch); err != nil {
			return err
		}
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO schema_meta (key, value) VALUES ('taxonomy_seeded', '1')`); err != nil {
		return fmt.Errorf("writing seed marker: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing taxonomy seed: %w", err)
	}
	committed = true
	return nil
}

func seedBranch(ctx context.Context, tx *sql.Tx, key domain.BranchKey, branch domain.Branch) error {
	insertGroup := `INSERT OR IGNORE INTO taxonomy_groups (branch, name, position) VALUES (?, ?, ?)`
	insertItem := `INSERT OR IGNORE INTO taxonomy_items (branch, group_name, name, position) VALUES (?, ?, ?, ?)`

	switch b := branch.(type) {
	case domain.FlatBranch:
		for i, name := range b.Items {
			if _, err := tx.ExecContext(ctx, insertItem, key, "", name, i); err != nil {
				return fmt.Errorf("seeding %s item %q: %w", key, name, err)
			}
		}
	case domain.CategoryBranch:
		for gi, c := range b.Categories {
			if _, err := tx.ExecContext(ctx, insertGroup, key, c.Name, gi); err != nil {
				return fmt.Errorf("seeding %s category %q: %w", key, c.Name, err)
			}
			for i, name := range c.Items {
				if _, err := tx.ExecContext(ctx, insertItem, key, c.Name, name, i); err != nil {
					return fmt.Errorf("seeding %s item %q: %w", key, name, err)
				}
			}
		}
	case domain.MachineBranch:
		for gi, m := range b.Machines {
			if _, err := tx.ExecContext(ctx, insertGroup, key, m.Name, gi); err != nil {
				return fmt.Errorf("seeding %s machine %q: %w", key, m.Name, err)
			}
			for i, part := range m.Parts {
				if _, err := tx.ExecContext(ctx, insertItem, key, m.Name, part, i); err != nil {
					return fmt.Errorf("seeding %s part %q: %w", key, part, err)
				}
			}
		}
	}
	return nil
}
