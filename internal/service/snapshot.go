package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/repository"
)

// SnapshotSource supplies the engine with a consistent view of the stores.
type SnapshotSource interface {
	Load(ctx context.Context) (engine.Snapshot, error)
}

// SnapshotLoader reads the entry log, taxonomy, flags and both target maps
// inside a single transaction.
type SnapshotLoader struct {
	uow db.UnitOfWork
	now func() time.Time
}

func NewSnapshotLoader(uow db.UnitOfWork) *SnapshotLoader {
	return &SnapshotLoader{uow: uow, now: time.Now}
}

func (l *SnapshotLoader) Load(ctx context.Context) (engine.Snapshot, error) {
	var snap engine.Snapshot
	err := l.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		entries, err := repository.NewSQLiteEntryRepo(tx).List(ctx, repository.EntryFilter{})
		if err != nil {
			return fmt.Errorf("loading entries: %w", err)
		}
		tax, err := repository.NewSQLiteTaxonomyRepo(tx).Load(ctx)
		if err != nil {
			return fmt.Errorf("loading taxonomy: %w", err)
		}
		flags, err := repository.NewSQLiteActiveFlagRepo(tx).Load(ctx)
		if err != nil {
			return fmt.Errorf("loading active flags: %w", err)
		}
		targets := repository.NewSQLiteTargetRepo(tx)
		daily, err := targets.LoadDaily(ctx)
		if err != nil {
			return fmt.Errorf("loading daily targets: %w", err)
		}
		monthly, err := targets.LoadMonthly(ctx)
		if err != nil {
			return fmt.Errorf("loading monthly targets: %w", err)
		}

		snap.Entries = make([]domain.ProductionEntry, 0, len(entries))
		for _, e := range entries {
			snap.Entries = append(snap.Entries, *e)
		}
		snap.Taxonomy = tax
		snap.Flags = flags
		snap.Daily = daily
		snap.Monthly = monthly
		return nil
	})
	if err != nil {
		return engine.Snapshot{}, err
	}
	snap.TakenAt = l.now().UTC()
	return snap, nil
}
