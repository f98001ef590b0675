package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/google/uuid"
)

type entryService struct {
	entries  repository.EntryRepo
	uow      db.UnitOfWork
	observer UseCaseObserver
}

func NewEntryService(entries repository.EntryRepo, uow db.UnitOfWork, observers ...UseCaseObserver) EntryService {
	return &entryService{entries: entries, uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *entryService) Submit(ctx context.Context, e *domain.ProductionEntry) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"area": string(e.Area), "items": len(e.Items)}
	defer func() { observe(ctx, s.observer, "submit-entry", startedAt, fields, &err) }()

	prepareEntry(e)
	if err = e.Validate(); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	e.SubmittedAt = startedAt.Truncate(time.Second)
	e.UpdatedAt = e.SubmittedAt
	fields["entry_id"] = e.ID
	fields["quantity"] = e.TotalQuantity()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		return repository.NewSQLiteEntryRepo(tx).Create(ctx, e)
	})
}

func (s *entryService) Edit(ctx context.Context, e *domain.ProductionEntry) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"entry_id": e.ID, "items": len(e.Items)}
	defer func() { observe(ctx, s.observer, "edit-entry", startedAt, fields, &err) }()

	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := repository.NewSQLiteEntryRepo(tx)
		existing, err := repo.GetByID(ctx, e.ID)
		if err != nil {
			return err
		}

		e.Area = existing.Area
		e.SubmittedAt = existing.SubmittedAt
		e.UpdatedAt = startedAt.Truncate(time.Second)
		prepareEntry(e)
		if err := e.Validate(); err != nil {
			return err
		}
		fields["area"] = string(e.Area)
		return repo.Replace(ctx, e)
	})
}

func (s *entryService) GetByID(ctx context.Context, id string) (*domain.ProductionEntry, error) {
	return s.entries.GetByID(ctx, id)
}

func (s *entryService) Delete(ctx context.Context, id string) (err error) {
	startedAt := time.Now().UTC()
	defer func() { observe(ctx, s.observer, "delete-entry", startedAt, map[string]any{"entry_id": id}, &err) }()

	return s.entries.Delete(ctx, id)
}

func (s *entryService) List(ctx context.Context, f repository.EntryFilter) ([]*domain.ProductionEntry, error) {
	return s.entries.List(ctx, f)
}

// prepareEntry canonicalizes the area name, trims text fields, pins the
// date to midnight UTC and clears item fields the area does not use.
func prepareEntry(e *domain.ProductionEntry) {
	if a, err := domain.ParseArea(string(e.Area)); err == nil {
		e.Area = a
	}
	e.Supervisor = strings.TrimSpace(e.Supervisor)
	if !e.Date.IsZero() {
		e.Date = time.Date(e.Date.Year(), e.Date.Month(), e.Date.Day(), 0, 0, 0, 0, time.UTC)
	}
	for i, it := range e.Items {
		it.Model = strings.TrimSpace(it.Model)
		it.Machine = strings.TrimSpace(it.Machine)
		it.Part = strings.TrimSpace(it.Part)
		it.Category = strings.TrimSpace(it.Category)
		e.Items[i] = it.Normalize(e.Area)
	}
}
