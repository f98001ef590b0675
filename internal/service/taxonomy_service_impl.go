package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
)

type taxonomyService struct {
	taxonomy repository.TaxonomyRepo
	flags    repository.ActiveFlagRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTaxonomyService(
	taxonomy repository.TaxonomyRepo,
	flags repository.ActiveFlagRepo,
	uow db.UnitOfWork,
	observers ...UseCaseObserver,
) TaxonomyService {
	return &taxonomyService{
		taxonomy: taxonomy,
		flags:    flags,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *taxonomyService) Get(ctx context.Context) (domain.Taxonomy, domain.ActiveFlags, error) {
	tax, err := s.taxonomy.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	flags, err := s.flags.Load(ctx)
	if err != nil {
		return nil, nil, err
	}
	return tax, flags, nil
}

// AddCategory adds a category to the category tree or a machine to the
// machine-nested branch.
func (s *taxonomyService) AddCategory(ctx context.Context, branch domain.BranchKey, name string) (err error) {
	startedAt := time.Now().UTC()
	name = strings.TrimSpace(name)
	defer func() {
		observe(ctx, s.observer, "add-category", startedAt, map[string]any{"branch": string(branch), "name": name}, &err)
	}()

	if err = requireGroupedBranch(branch); err != nil {
		return err
	}
	if name == "" {
		return &domain.ValidationError{Code: domain.ErrCodeMissingField, Field: "name", Message: "is required"}
	}
	return s.taxonomy.AddGroup(ctx, branch, name)
}

func (s *taxonomyService) RemoveCategory(ctx context.Context, branch domain.BranchKey, name string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "remove-category", startedAt, map[string]any{"branch": string(branch), "name": name}, &err)
	}()

	if err = requireGroupedBranch(branch); err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTaxonomyRepo(tx).RemoveGroup(ctx, branch, name)
	})
}

func (s *taxonomyService) AddItem(ctx context.Context, branch domain.BranchKey, group, name string) (err error) {
	startedAt := time.Now().UTC()
	name = strings.TrimSpace(name)
	group = strings.TrimSpace(group)
	defer func() {
		observe(ctx, s.observer, "add-item", startedAt, map[string]any{"branch": string(branch), "group": group, "name": name}, &err)
	}()

	if _, err = domain.ParseBranchKey(string(branch)); err != nil {
		return err
	}
	if name == "" {
		return &domain.ValidationError{Code: domain.ErrCodeMissingField, Field: "name", Message: "is required"}
	}
	if domain.ShapeForBranch(branch) != domain.ShapeFlat && group == "" {
		return &domain.ValidationError{Code: domain.ErrCodeMissingField, Field: "group", Message: fmt.Sprintf("is required for %s", branch)}
	}

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteTaxonomyRepo(tx).AddItem(ctx, branch, group, name); err != nil {
			return err
		}
		return repository.NewSQLiteActiveFlagRepo(tx).Set(ctx, name, true)
	})
}

func (s *taxonomyService) RemoveItem(ctx context.Context, branch domain.BranchKey, group, name string) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "remove-item", startedAt, map[string]any{"branch": string(branch), "group": group, "name": name}, &err)
	}()

	if _, err = domain.ParseBranchKey(string(branch)); err != nil {
		return err
	}
	return s.taxonomy.RemoveItem(ctx, branch, group, name)
}

func (s *taxonomyService) SetActive(ctx context.Context, name string, active bool) (err error) {
	startedAt := time.Now().UTC()
	name = strings.TrimSpace(name)
	defer func() {
		observe(ctx, s.observer, "set-active", startedAt, map[string]any{"name": name, "active": active}, &err)
	}()

	if name == "" {
		return &domain.ValidationError{Code: domain.ErrCodeMissingField, Field: "name", Message: "is required"}
	}
	return s.flags.Set(ctx, name, active)
}

func requireGroupedBranch(branch domain.BranchKey) error {
	if _, err := domain.ParseBranchKey(string(branch)); err != nil {
		return err
	}
	if domain.ShapeForBranch(branch) == domain.ShapeFlat {
		return fmt.Errorf("branch %s is a flat list and has no categories", branch)
	}
	return nil
}
