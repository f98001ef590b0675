package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"

	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/alexanderramin/prodline/internal/testutil"
)

type testServices struct {
	db       *sql.DB
	uow      db.UnitOfWork
	entries  EntryService
	taxonomy TaxonomyService
	targets  TargetService
	reports  ReportService
	imports  ImportService
	observer *recordingObserver
}

func setupServices(t *testing.T) *testServices {
	t.Helper()
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	obs := &recordingObserver{}

	return &testServices{
		db:       database,
		uow:      uow,
		entries:  NewEntryService(repository.NewSQLiteEntryRepo(database), uow, obs),
		taxonomy: NewTaxonomyService(repository.NewSQLiteTaxonomyRepo(database), repository.NewSQLiteActiveFlagRepo(database), uow, obs),
		targets:  NewTargetService(repository.NewSQLiteTargetRepo(database), uow, obs),
		reports:  NewReportService(NewSnapshotLoader(uow), obs),
		imports:  NewImportService(uow, obs),
		observer: obs,
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	if len(o.events) == 0 {
		return UseCaseEvent{}
	}
	return o.events[len(o.events)-1]
}

// staticSource serves a fixed snapshot without touching a database.
type staticSource struct {
	snap engine.Snapshot
	err  error
}

func (s staticSource) Load(context.Context) (engine.Snapshot, error) {
	return s.snap, s.err
}
