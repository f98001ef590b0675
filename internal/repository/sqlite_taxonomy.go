package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
)

// SQLiteTaxonomyRepo stores the catalog as groups (categories or machines)
// and items (models, parts or flat-list names). Flat branches keep their
// items under the empty group name.
type SQLiteTaxonomyRepo struct {
	db db.DBTX
}

// NewSQLiteTaxonomyRepo creates a new SQLiteTaxonomyRepo.
func NewSQLiteTaxonomyRepo(conn db.DBTX) *SQLiteTaxonomyRepo {
	return &SQLiteTaxonomyRepo{db: conn}
}

type groupKey struct {
	branch domain.BranchKey
	group  string
}

// Load returns every branch, including empty ones, in stored order.
func (r *SQLiteTaxonomyRepo) Load(ctx context.Context) (domain.Taxonomy, error) {
	groups, err := r.loadGroups(ctx)
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx)
	if err != nil {
		return nil, err
	}

	tax := make(domain.Taxonomy, len(domain.AllBranches))
	for _, key := range domain.AllBranches {
		switch domain.ShapeForBranch(key) {
		case domain.ShapeFlat:
			tax[key] = domain.FlatBranch{Items: items[groupKey{key, ""}]}
		case domain.ShapeCategory:
			var b domain.CategoryBranch
			for _, g := range groups[key] {
				b.Categories = append(b.Categories, domain.Category{Name: g, Items: items[groupKey{key, g}]})
			}
			tax[key] = b
		case domain.ShapeMachine:
			var b domain.MachineBranch
			for _, g := range groups[key] {
				b.Machines = append(b.Machines, domain.Machine{Name: g, Parts: items[groupKey{key, g}]})
			}
			tax[key] = b
		}
	}
	return tax, nil
}

func (r *SQLiteTaxonomyRepo) loadGroups(ctx context.Context) (map[domain.BranchKey][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT branch, name FROM taxonomy_groups ORDER BY branch, position, name`)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomy groups: %w", err)
	}
	defer rows.Close()

	groups := make(map[domain.BranchKey][]string)
	for rows.Next() {
		var branch, name string
		if err := rows.Scan(&branch, &name); err != nil {
			return nil, fmt.Errorf("scanning taxonomy group: %w", err)
		}
		key := domain.BranchKey(branch)
		groups[key] = append(groups[key], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taxonomy groups: %w", err)
	}
	return groups, nil
}

func (r *SQLiteTaxonomyRepo) loadItems(ctx context.Context) (map[groupKey][]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT branch, group_name, name FROM taxonomy_items ORDER BY branch, group_name, position, name`)
	if err != nil {
		return nil, fmt.Errorf("listing taxonomy items: %w", err)
	}
	defer rows.Close()

	items := make(map[groupKey][]string)
	for rows.Next() {
		var branch, group, name string
		if err := rows.Scan(&branch, &group, &name); err != nil {
			return nil, fmt.Errorf("scanning taxonomy item: %w", err)
		}
		k := groupKey{domain.BranchKey(branch), group}
		items[k] = append(items[k], name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating taxonomy items: %w", err)
	}
	return items, nil
}

func (r *SQLiteTaxonomyRepo) AddGroup(ctx context.Context, branch domain.BranchKey, name string) error {
	if domain.ShapeForBranch(branch) == domain.ShapeFlat {
		return fmt.Errorf("branch %s has no groups", branch)
	}
	exists, err := r.groupExists(ctx, branch, name)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%s group %q: %w", branch, name, ErrAlreadyExists)
	}

	query := `INSERT INTO taxonomy_groups (branch, name, position)
		SELECT ?, ?, COALESCE(MAX(position) + 1, 0) FROM taxonomy_groups WHERE branch = ?`
	if _, err := r.db.ExecContext(ctx, query, string(branch), name, string(branch)); err != nil {
		return fmt.Errorf("inserting taxonomy group: %w", err)
	}
	return nil
}

// RemoveGroup deletes a group and every item filed under it.
func (r *SQLiteTaxonomyRepo) RemoveGroup(ctx context.Context, branch domain.BranchKey, name string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM taxonomy_groups WHERE branch = ? AND name = ?`, string(branch), name)
	if err != nil {
		return fmt.Errorf("deleting taxonomy group: %w", err)
	}
	if err := checkAffected(res, fmt.Sprintf("%s group %q", branch, name)); err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM taxonomy_items WHERE branch = ? AND group_name = ?`, string(branch), name); err != nil {
		return fmt.Errorf("deleting taxonomy group items: %w", err)
	}
	return nil
}

// AddItem files name under group. Flat branches ignore group.
func (r *SQLiteTaxonomyRepo) AddItem(ctx context.Context, branch domain.BranchKey, group, name string) error {
	if domain.ShapeForBranch(branch) == domain.ShapeFlat {
		group = ""
	} else {
		exists, err := r.groupExists(ctx, branch, group)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("%s group %q: %w", branch, group, ErrNotFound)
		}
	}

	var n int
	if err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM taxonomy_items WHERE branch = ? AND group_name = ? AND name = ?`,
		string(branch), group, name).Scan(&n); err != nil {
		return fmt.Errorf("checking taxonomy item: %w", err)
	}
	if n > 0 {
		return fmt.Errorf("%s item %q: %w", branch, name, ErrAlreadyExists)
	}

	query := `INSERT INTO taxonomy_items (branch, group_name, name, position)
		SELECT ?, ?, ?, COALESCE(MAX(position) + 1, 0)
		FROM taxonomy_items WHERE branch = ? AND group_name = ?`
	if _, err := r.db.ExecContext(ctx, query, string(branch), group, name, string(branch), group); err != nil {
		return fmt.Errorf("inserting taxonomy item: %w", err)
	}
	return nil
}

func (r *SQLiteTaxonomyRepo) RemoveItem(ctx context.Context, branch domain.BranchKey, group, name string) error {
	if domain.ShapeForBranch(branch) == domain.ShapeFlat {
		group = ""
	}
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM taxonomy_items WHERE branch = ? AND group_name = ? AND name = ?`,
		string(branch), group, name)
	if err != nil {
		return fmt.Errorf("deleting taxonomy item: %w", err)
	}
	return checkAffected(res, fmt.Sprintf("%s item %q", branch, name))
}

func (r *SQLiteTaxonomyRepo) groupExists(ctx context.Context, branch domain.BranchKey, name string) (bool, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM taxonomy_groups WHERE branch = ? AND name = ?`, string(branch), name).Scan(&n)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking taxonomy group: %w", err)
	}
	return true, nil
}
