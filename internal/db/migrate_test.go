package db

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := OpenDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestMigrate_Idempotent(t *testing.T) {
	db := openTestDB(t)

	// Run migrations a second time; should succeed without error.
	err := Migrate(db)
	require.NoError(t, err)

	err = Migrate(db)
	require.NoError(t, err)
}

func TestMigrate_CreatesAllTables(t *testing.T) {
	db := openTestDB(t)

	expected := []string{
		"production_entries", "batch_items", "taxonomy_groups", "taxonomy_items",
		"active_flags", "daily_targets", "monthly_targets", "schema_meta",
	}
	for _, table := range expected {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='table' AND name=?`, table).Scan(&name)
		require.NoError(t, err, "table %s should exist", table)
		assert.Equal(t, table, name)
	}
}

func TestMigrate_CreatesIndexes(t *testing.T) {
	db := openTestDB(t)

	for _, idx := range []string{"idx_entries_date", "idx_entries_area_date"} {
		var name string
		err := db.QueryRow(`SELECT name FROM sqlite_master WHERE type='index' AND name=?`, idx).Scan(&name)
		require.NoError(t, err, "index %s should exist", idx)
	}
}

func TestMigrate_ForeignKeysEnabled(t *testing.T) {
	db := openTestDB(t)

	var fk int
	err := db.QueryRow(`PRAGMA foreign_keys`).Scan(&fk)
	require.NoError(t, err)
	assert.Equal(t, 1, fk, "foreign keys should be enabled")
}

func TestMigrate_SeedsDefaultTaxonomyOnce(t *testing.T) {
	db := openTestDB(t)

	var items int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM taxonomy_items WHERE branch = 'cf_line'`).Scan(&items))
	assert.Equal(t, 9, items)

	var machines int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM taxonomy_groups WHERE branch = 'crf'`).Scan(&machines))
	assert.Equal(t, 4, machines)

	// An emptied catalog is not reseeded.
	_, err := db.Exec(`DELETE FROM taxonomy_items`)
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM taxonomy_items`).Scan(&items))
	assert.Equal(t, 0, items)
}

func TestMigrate_BatchItemQuantityCheck(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO production_entries (id, entry_date, area, supervisor, submitted_at, updated_at)
		VALUES ('e1', '2024-03-01', 'CF final', 'A', '2024-03-01T08:00:00Z', '2024-03-01T08:00:00Z')`)
	require.NoError(t, err)

	_, err = db.Exec(`INSERT INTO batch_items (entry_id, position, quantity, model) VALUES ('e1', 0, 0, '300L')`)
	assert.Error(t, err, "zero quantity should violate CHECK")

	_, err = db.Exec(`INSERT INTO production_entries (id, entry_date, area, supervisor, submitted_at, updated_at)
		VALUES ('e2', '2024-03-01', 'Paint', 'A', '2024-03-01T08:00:00Z', '2024-03-01T08:00:00Z')`)
	assert.Error(t, err, "unknown area should violate CHECK")
}

func TestMigrate_DeletingEntryCascadesItems(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO production_entries (id, entry_date, area, supervisor, submitted_at, updated_at)
		VALUES ('e1', '2024-03-01', 'CF final', 'A', '2024-03-01T08:00:00Z', '2024-03-01T08:00:00Z')`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO batch_items (entry_id, position, quantity, model) VALUES ('e1', 0, 3, '300L')`)
	require.NoError(t, err)

	_, err = db.Exec(`DELETE FROM production_entries WHERE id = 'e1'`)
	require.NoError(t, err)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM batch_items`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestMigrate_EntryUpdatedAtRequired(t *testing.T) {
	db := openTestDB(t)

	_, err := db.Exec(`INSERT INTO production_entries (id, entry_date, area, supervisor, submitted_at)
		VALUES ('e1', '2024-03-01', 'CF final', 'A', '2024-03-01T08:00:00Z')`)
	assert.Error(t, err, "missing updated_at should violate NOT NULL")

	// Re-running over an existing schema must not trip on any column.
	require.NoError(t, Migrate(db))
}
