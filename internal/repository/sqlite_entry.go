package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
)

const entryColumns = `e.id, e.entry_date, e.area, e.supervisor, e.submitted_at, e.updated_at,
		i.quantity, i.model, i.machine, i.part, i.category`

// SQLiteEntryRepo implements EntryRepo using a SQLite database. Create and
// Replace issue several statements; callers run them inside a UnitOfWork.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.ProductionEntry) error {
	query := `INSERT INTO production_entries (id, entry_date, area, supervisor, submitted_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`
	updatedAt := e.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = e.SubmittedAt
	}
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		dateValue(e.Date),
		string(e.Area),
		e.Supervisor,
		formatTime(e.SubmittedAt),
		formatTime(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting production entry: %w", err)
	}
	return r.insertItems(ctx, e.ID, e.Items)
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.ProductionEntry, error) {
	query := `SELECT ` + entryColumns + `
		FROM production_entries e
		LEFT JOIN batch_items i ON i.entry_id = e.id
		WHERE e.id = ?
		ORDER BY i.position`
	rows, err := r.db.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("querying production entry: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("production entry %s: %w", id, ErrNotFound)
	}
	return entries[0], nil
}

func (r *SQLiteEntryRepo) Replace(ctx context.Context, e *domain.ProductionEntry) error {
	query := `UPDATE production_entries
		SET entry_date = ?, area = ?, supervisor = ?, updated_at = ?
		WHERE id = ?`
	updatedAt := e.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	res, err := r.db.ExecContext(ctx, query,
		dateValue(e.Date),
		string(e.Area),
		e.Supervisor,
		formatTime(updatedAt),
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("updating production entry: %w", err)
	}
	if err := checkAffected(res, "production entry "+e.ID); err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM batch_items WHERE entry_id = ?`, e.ID); err != nil {
		return fmt.Errorf("clearing batch items: %w", err)
	}
	return r.insertItems(ctx, e.ID, e.Items)
}

func (r *SQLiteEntryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM production_entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting production entry: %w", err)
	}
	return checkAffected(res, "production entry "+id)
}

// List returns matching entries ordered by date, then submission time.
func (r *SQLiteEntryRepo) List(ctx context.Context, f EntryFilter) ([]*domain.ProductionEntry, error) {
	var where []string
	var args []any
	if f.Area != "" {
		where = append(where, "e.area = ?")
		args = append(args, string(f.Area))
	}
	if !f.From.IsZero() {
		where = append(where, "e.entry_date >= ?")
		args = append(args, dateValue(f.From))
	}
	if !f.To.IsZero() {
		where = append(where, "e.entry_date <= ?")
		args = append(args, dateValue(f.To))
	}

	query := `SELECT ` + entryColumns + `
		FROM production_entries e
		LEFT JOIN batch_items i ON i.entry_id = e.id`
	if len(where) > 0 {
		query += "\n\t\tWHERE " + strings.Join(where, " AND ")
	}
	query += "\n\t\tORDER BY e.entry_date, e.submitted_at, e.id, i.position"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing production entries: %w", err)
	}
	defer rows.Close()
	return scanEntries(rows)
}

func (r *SQLiteEntryRepo) insertItems(ctx context.Context, entryID string, items []domain.BatchItem) error {
	query := `INSERT INTO batch_items (entry_id, position, quantity, model, machine, part, category)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for i, it := range items {
		_, err := r.db.ExecContext(ctx, query,
			entryID, i, it.Quantity, it.Model, it.Machine, it.Part, it.Category,
		)
		if err != nil {
			return fmt.Errorf("inserting batch item %d: %w", i+1, err)
		}
	}
	return nil
}

// scanEntries folds joined entry/item rows into entries. Rows for one entry
// must be contiguous.
func scanEntries(rows *sql.Rows) ([]*domain.ProductionEntry, error) {
	var entries []*domain.ProductionEntry
	var current *domain.ProductionEntry

	for rows.Next() {
		var (
			id, dateStr, area, supervisor  string
			submittedStr, updatedStr       string
			qty                            sql.NullInt64
			model, machine, part, category sql.NullString
		)
		if err := rows.Scan(&id, &dateStr, &area, &supervisor, &submittedStr, &updatedStr,
			&qty, &model, &machine, &part, &category); err != nil {
			return nil, fmt.Errorf("scanning production entry row: %w", err)
		}

		if current == nil || current.ID != id {
			e, err := populateEntry(id, dateStr, area, supervisor, submittedStr, updatedStr)
			if err != nil {
				return nil, err
			}
			entries = append(entries, e)
			current = e
		}
		if qty.Valid {
			current.Items = append(current.Items, domain.BatchItem{
				Quantity: int(qty.Int64),
				Model:    model.String,
				Machine:  machine.String,
				Part:     part.String,
				Category: category.String,
			})
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating production entries: %w", err)
	}
	return entries, nil
}

func populateEntry(id, dateStr, area, supervisor, submittedStr, updatedStr string) (*domain.ProductionEntry, error) {
	date, err := domain.ParseDate(dateStr)
	if err != nil {
		return nil, fmt.Errorf("parsing entry_date: %w", err)
	}
	submittedAt, err := time.Parse(time.RFC3339, submittedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing submitted_at: %w", err)
	}
	updatedAt, err := time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &domain.ProductionEntry{
		ID:          id,
		Date:        date,
		Area:        domain.Area(area),
		Supervisor:  supervisor,
		SubmittedAt: submittedAt,
		UpdatedAt:   updatedAt,
	}, nil
}
