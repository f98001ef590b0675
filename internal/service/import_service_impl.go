package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/importer"
	"github.com/alexanderramin/prodline/internal/repository"
)

type importService struct {
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewImportService(uow db.UnitOfWork, observers ...UseCaseObserver) ImportService {
	return &importService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *importService) Import(ctx context.Context, path string) (*ImportResult, error) {
	seed, err := importer.LoadSeed(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportSeed(ctx, seed)
}

// ImportSeed merges catalog additions, writes flags and targets, and appends
// entries, all in one transaction. Catalog names that already exist are
// skipped; targets replace the stored map for each key.
func (s *importService) ImportSeed(ctx context.Context, seed *importer.Seed) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() { observe(ctx, s.observer, "import-seed", startedAt, fields, &err) }()

	if errs := importer.ValidateSeed(seed); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}
	entries, err := importer.ConvertEntries(seed.Entries, startedAt)
	if err != nil {
		return nil, fmt.Errorf("converting entries: %w", err)
	}

	result = &ImportResult{}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		tax := repository.NewSQLiteTaxonomyRepo(tx)
		flags := repository.NewSQLiteActiveFlagRepo(tx)
		targets := repository.NewSQLiteTargetRepo(tx)
		entryRepo := repository.NewSQLiteEntryRepo(tx)

		if seed.Taxonomy != nil {
			if err := importGroups(ctx, tax, flags, domain.BranchCFLine, seed.Taxonomy.CFLine, result); err != nil {
				return err
			}
			if err := importGroups(ctx, tax, flags, domain.BranchCRF, seed.Taxonomy.CRF, result); err != nil {
				return err
			}
			for _, name := range seed.Taxonomy.WDLine {
				if err := importItem(ctx, tax, flags, domain.BranchWDLine, "", name, result); err != nil {
					return err
				}
			}
		}

		for _, name := range seed.Inactive {
			if err := flags.Set(ctx, name, false); err != nil {
				return err
			}
			result.FlagsSet++
		}

		for _, key := range importer.SortedTargetKeys(seed.DailyTargets) {
			if err := targets.ReplaceDaily(ctx, key, domain.TargetMap(seed.DailyTargets[key])); err != nil {
				return err
			}
			result.DailyTargets++
		}
		for _, key := range importer.SortedTargetKeys(seed.MonthlyTargets) {
			if err := targets.ReplaceMonthly(ctx, key, domain.TargetMap(seed.MonthlyTargets[key])); err != nil {
				return err
			}
			result.MonthlyTargets++
		}

		for _, e := range entries {
			if err := entryRepo.Create(ctx, e); err != nil {
				return fmt.Errorf("creating entry for %s on %s: %w", e.Area, domain.DateKey(e.Date), err)
			}
			result.Entries++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["groups_added"] = result.GroupsAdded
	fields["items_added"] = result.ItemsAdded
	fields["entries"] = result.Entries
	return result, nil
}

func importGroups(ctx context.Context, tax *repository.SQLiteTaxonomyRepo, flags *repository.SQLiteActiveFlagRepo,
	branch domain.BranchKey, groups []importer.GroupImport, result *ImportResult) error {
	for _, g := range groups {
		err := tax.AddGroup(ctx, branch, g.Name)
		switch {
		case err == nil:
			result.GroupsAdded++
		case !errors.Is(err, repository.ErrAlreadyExists):
			return err
		}
		for _, name := range g.Items {
			if err := importItem(ctx, tax, flags, branch, g.Name, name, result); err != nil {
				return err
			}
		}
	}
	return nil
}

func importItem(ctx context.Context, tax *repository.SQLiteTaxonomyRepo, flags *repository.SQLiteActiveFlagRepo,
	branch domain.BranchKey, group, name string, result *ImportResult) error {
	err := tax.AddItem(ctx, branch, group, name)
	if errors.Is(err, repository.ErrAlreadyExists) {
		return nil
	}
	if err != nil {
		return err
	}
	result.ItemsAdded++
	return flags.Set(ctx, name, true)
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
