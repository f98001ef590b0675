package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
)

// SQLiteActiveFlagRepo implements ActiveFlagRepo using a SQLite database.
type SQLiteActiveFlagRepo struct {
	db db.DBTX
}

// NewSQLiteActiveFlagRepo creates a new SQLiteActiveFlagRepo.
func NewSQLiteActiveFlagRepo(conn db.DBTX) *SQLiteActiveFlagRepo {
	return &SQLiteActiveFlagRepo{db: conn}
}

func (r *SQLiteActiveFlagRepo) Load(ctx context.Context) (domain.ActiveFlags, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT name, active FROM active_flags`)
	if err != nil {
		return nil, fmt.Errorf("listing active flags: %w", err)
	}
	defer rows.Close()

	flags := make(domain.ActiveFlags)
	for rows.Next() {
		var name string
		var active int
		if err := rows.Scan(&name, &active); err != nil {
			return nil, fmt.Errorf("scanning active flag: %w", err)
		}
		flags[name] = intToBool(active)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating active flags: %w", err)
	}
	return flags, nil
}

func (r *SQLiteActiveFlagRepo) Set(ctx context.Context, name string, active bool) error {
	query := `INSERT INTO active_flags (name, active) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET active = excluded.active`
	if _, err := r.db.ExecContext(ctx, query, name, boolToInt(active)); err != nil {
		return fmt.Errorf("setting active flag %q: %w", name, err)
	}
	return nil
}
