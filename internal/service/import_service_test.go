package service

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/importer"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/alexanderramin/prodline/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSeed() *importer.Seed {
	return &importer.Seed{
		Taxonomy: &importer.TaxonomyImport{
			CFLine: []importer.GroupImport{
				{Name: "Hard Top", Items: []string{"300L", "600L"}},
				{Name: "Side by Side", Items: []string{"700L"}},
			},
			WDLine: []string{"Hot and Cold"},
		},
		Inactive:       []string{"100L"},
		DailyTargets:   map[string]map[string]int{"2024-03-01": {"300L": 50}},
		MonthlyTargets: map[string]map[string]int{"2024-03": {"300L": 1200}},
		Entries: []importer.EntryImport{
			{Date: "2024-03-01", Area: "Cabinet foaming", Supervisor: "Ravi",
				Items: []importer.ItemImport{{Quantity: 40, Model: "300L", Category: "Hard Top"}}},
			{Date: "2024-03-01", Area: "Cabinet foaming", Supervisor: "Ravi",
				Items: []importer.ItemImport{{Quantity: 10, Model: "300L", Category: "Hard Top"}}},
		},
	}
}

func TestImportSeed_SuccessPath(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	res, err := s.imports.ImportSeed(ctx, validSeed())
	require.NoError(t, err)
	assert.Equal(t, &ImportResult{
		GroupsAdded:    1, // Hard Top already exists
		ItemsAdded:     3, // 600L, 700L, Hot and Cold
		FlagsSet:       1,
		DailyTargets:   1,
		MonthlyTargets: 1,
		Entries:        2,
	}, res)

	tax, flags, err := s.taxonomy.Get(ctx)
	require.NoError(t, err)
	assert.Contains(t, tax.AssemblyModels(), "700L")
	assert.Contains(t, tax[domain.BranchWDLine].Names(), "Hot and Cold")
	assert.False(t, flags.IsActive("100L"))
	assert.True(t, flags.IsActive("600L"))

	entries, err := s.entries.List(ctx, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	ev := s.observer.last()
	assert.Equal(t, "import-seed", ev.Name)
	assert.True(t, ev.Success)
}

func TestImportSeed_IsIdempotentForCatalog(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	seed := validSeed()
	seed.Entries = nil
	_, err := s.imports.ImportSeed(ctx, seed)
	require.NoError(t, err)

	res, err := s.imports.ImportSeed(ctx, seed)
	require.NoError(t, err)
	assert.Zero(t, res.GroupsAdded)
	assert.Zero(t, res.ItemsAdded)
}

func TestImportSeed_ValidationFailsBeforeWriting(t *testing.T) {
	s := setupServices(t)
	ctx := context.Background()

	seed := validSeed()
	seed.Entries[1].Items[0].Quantity = -1
	seed.DailyTargets["bad-key"] = map[string]int{"300L": 1}

	_, err := s.imports.ImportSeed(ctx, seed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "import validation failed (2 errors)")

	entries, err := s.entries.List(ctx, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestImportSeed_RollbackOnEntryFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()

	seed := validSeed()
	seed.Taxonomy = nil
	seed.Inactive = nil
	seed.MonthlyTargets = nil
	// Exec #1 = clear daily, #2 = insert daily, #3 = entry header, #4 = entry item,
	// #5 = second entry header.
	injected := errors.New("injected entry failure")
	svc := NewImportService(&testutil.FailOnNthExecUoW{DB: database, FailOn: 5, Err: injected})

	_, err := svc.ImportSeed(ctx, seed)
	require.ErrorIs(t, err, injected)

	entries, err := repository.NewSQLiteEntryRepo(database).List(ctx, repository.EntryFilter{})
	require.NoError(t, err)
	assert.Empty(t, entries, "first entry rolled back")

	daily, err := repository.NewSQLiteTargetRepo(database).LoadDaily(ctx)
	require.NoError(t, err)
	assert.Empty(t, daily, "targets rolled back")
}

func TestImport_FromYAMLFile(t *testing.T) {
	s := setupServices(t)
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
monthly_targets:
  "2024-04":
    400L: 800
`), 0o644))

	res, err := s.imports.Import(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MonthlyTargets)

	got, err := s.targets.GetMonthly(context.Background(), testutil.Day(2024, 4, 1))
	require.NoError(t, err)
	assert.Equal(t, domain.TargetMap{"400L": 800}, got)

	_, err = s.imports.Import(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "loading import file")
}
