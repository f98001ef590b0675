package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
)

type targetService struct {
	targets  repository.TargetRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewTargetService(targets repository.TargetRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TargetService {
	return &targetService{targets: targets, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *targetService) GetDaily(ctx context.Context, date time.Time) (domain.TargetMap, error) {
	return s.targets.GetDaily(ctx, domain.DateKey(date))
}

func (s *targetService) GetMonthly(ctx context.Context, month time.Time) (domain.TargetMap, error) {
	return s.targets.GetMonthly(ctx, domain.MonthKey(month))
}

func (s *targetService) SetDaily(ctx context.Context, date time.Time, m domain.TargetMap) (err error) {
	key := domain.DateKey(date)
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "set-daily-targets", startedAt, map[string]any{"date": key, "items": len(m), "total": m.Total()}, &err)
	}()

	clean, err := cleanTargets(m)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTargetRepo(tx).ReplaceDaily(ctx, key, clean)
	})
}

func (s *targetService) SetMonthly(ctx context.Context, month time.Time, m domain.TargetMap) (err error) {
	key := domain.MonthKey(month)
	startedAt := time.Now().UTC()
	defer func() {
		observe(ctx, s.observer, "set-monthly-targets", startedAt, map[string]any{"month": key, "items": len(m), "total": m.Total()}, &err)
	}()

	clean, err := cleanTargets(m)
	if err != nil {
		return err
	}
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteTargetRepo(tx).ReplaceMonthly(ctx, key, clean)
	})
}

// cleanTargets trims item names and rejects blank names and negative plans.
func cleanTargets(m domain.TargetMap) (domain.TargetMap, error) {
	if err := domain.ValidateTargets(m); err != nil {
		return nil, err
	}
	clean := make(domain.TargetMap, len(m))
	for name, q := range m {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, &domain.ValidationError{Code: domain.ErrCodeMissingField, Field: "item", Message: "target item name is required"}
		}
		clean[name] += q
	}
	return clean, nil
}
