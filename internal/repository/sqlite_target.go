package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
)

// targetTable names the table and key column of one target store.
type targetTable struct {
	table  string
	keyCol string
}

var (
	dailyTable   = targetTable{table: "daily_targets", keyCol: "target_date"}
	monthlyTable = targetTable{table: "monthly_targets", keyCol: "target_month"}
)

// SQLiteTargetRepo implements TargetRepo over the daily and monthly tables.
type SQLiteTargetRepo struct {
	db db.DBTX
}

// NewSQLiteTargetRepo creates a new SQLiteTargetRepo.
func NewSQLiteTargetRepo(conn db.DBTX) *SQLiteTargetRepo {
	return &SQLiteTargetRepo{db: conn}
}

func (r *SQLiteTargetRepo) LoadDaily(ctx context.Context) (domain.DailyTargets, error) {
	all, err := r.loadAll(ctx, dailyTable)
	return domain.DailyTargets(all), err
}

func (r *SQLiteTargetRepo) LoadMonthly(ctx context.Context) (domain.MonthlyTargets, error) {
	all, err := r.loadAll(ctx, monthlyTable)
	return domain.MonthlyTargets(all), err
}

// GetDaily returns the map saved for date; an empty map when none was saved.
func (r *SQLiteTargetRepo) GetDaily(ctx context.Context, date string) (domain.TargetMap, error) {
	return r.get(ctx, dailyTable, date)
}

func (r *SQLiteTargetRepo) GetMonthly(ctx context.Context, month string) (domain.TargetMap, error) {
	return r.get(ctx, monthlyTable, month)
}

func (r *SQLiteTargetRepo) ReplaceDaily(ctx context.Context, date string, m domain.TargetMap) error {
	return r.replace(ctx, dailyTable, date, m)
}

func (r *SQLiteTargetRepo) ReplaceMonthly(ctx context.Context, month string, m domain.TargetMap) error {
	return r.replace(ctx, monthlyTable, month, m)
}

func (r *SQLiteTargetRepo) loadAll(ctx context.Context, t targetTable) (map[string]domain.TargetMap, error) {
	query := fmt.Sprintf(`SELECT %s, item, quantity FROM %s`, t.keyCol, t.table)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", t.table, err)
	}
	defer rows.Close()

	all := make(map[string]domain.TargetMap)
	for rows.Next() {
		var key, item string
		var qty int
		if err := rows.Scan(&key, &item, &qty); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", t.table, err)
		}
		if all[key] == nil {
			all[key] = make(domain.TargetMap)
		}
		all[key][item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.table, err)
	}
	return all, nil
}

func (r *SQLiteTargetRepo) get(ctx context.Context, t targetTable, key string) (domain.TargetMap, error) {
	query := fmt.Sprintf(`SELECT item, quantity FROM %s WHERE %s = ?`, t.table, t.keyCol)
	rows, err := r.db.QueryContext(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("querying %s: %w", t.table, err)
	}
	defer rows.Close()

	m := make(domain.TargetMap)
	for rows.Next() {
		var item string
		var qty int
		if err := rows.Scan(&item, &qty); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", t.table, err)
		}
		m[item] = qty
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating %s: %w", t.table, err)
	}
	return m, nil
}

// replace deletes every row for key and writes m. Zero quantities are kept so
// an explicit zero plan survives a round trip.
func (r *SQLiteTargetRepo) replace(ctx context.Context, t targetTable, key string, m domain.TargetMap) error {
	del := fmt.Sprintf(`DELETE FROM %s WHERE %s = ?`, t.table, t.keyCol)
	if _, err := r.db.ExecContext(ctx, del, key); err != nil {
		return fmt.Errorf("clearing %s for %s: %w", t.table, key, err)
	}
	ins := fmt.Sprintf(`INSERT INTO %s (%s, item, quantity) VALUES (?, ?, ?)`, t.table, t.keyCol)
	for _, item := range sortedKeys(m) {
		if _, err := r.db.ExecContext(ctx, ins, key, item, m[item]); err != nil {
			return fmt.Errorf("inserting %s %s/%s: %w", t.table, key, item, err)
		}
	}
	return nil
}
