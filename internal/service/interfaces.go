package service

import (
	"context"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/importer"
	"github.com/alexanderramin/prodline/internal/repository"
)

type EntryService interface {
	// Submit validates and stores a new entry, assigning ID and timestamps.
	Submit(ctx context.Context, e *domain.ProductionEntry) error
	// Edit replaces date, supervisor and items of an existing entry. The
	// area and submission time are kept.
	Edit(ctx context.Context, e *domain.ProductionEntry) error
	GetByID(ctx context.Context, id string) (*domain.ProductionEntry, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f repository.EntryFilter) ([]*domain.ProductionEntry, error)
}

type TaxonomyService interface {
	Get(ctx context.Context) (domain.Taxonomy, domain.ActiveFlags, error)
	AddCategory(ctx context.Context, branch domain.BranchKey, name string) error
	RemoveCategory(ctx context.Context, branch domain.BranchKey, name string) error
	// AddItem files a new item and marks it active.
	AddItem(ctx context.Context, branch domain.BranchKey, group, name string) error
	RemoveItem(ctx context.Context, branch domain.BranchKey, group, name string) error
	SetActive(ctx context.Context, name string, active bool) error
}

type TargetService interface {
	GetDaily(ctx context.Context, date time.Time) (domain.TargetMap, error)
	GetMonthly(ctx context.Context, month time.Time) (domain.TargetMap, error)
	SetDaily(ctx context.Context, date time.Time, m domain.TargetMap) error
	SetMonthly(ctx context.Context, month time.Time, m domain.TargetMap) error
}

// DashboardRequest selects the views shown together on the dashboard.
type DashboardRequest struct {
	Date  time.Time
	Area  domain.Area
	Model string
}

// Dashboard bundles every report built over one snapshot.
type Dashboard struct {
	TakenAt    time.Time
	Daily      engine.ProductionReport
	Monthly    engine.ProductionReport
	Flow       engine.FlowReport
	MonthPlan  engine.MonthlyRollupReport
	EntryCount int
}

type ReportService interface {
	Production(ctx context.Context, q engine.ProductionQuery) (*engine.ProductionReport, error)
	Flow(ctx context.Context, q engine.FlowQuery) (*engine.FlowReport, error)
	MonthlyPlan(ctx context.Context, month time.Time) (*engine.MonthlyRollupReport, error)
	RangePlan(ctx context.Context, start, end time.Time) (*engine.RangeRollupReport, error)
	Dashboard(ctx context.Context, req DashboardRequest) (*Dashboard, error)
}

// ImportResult counts what a seed import wrote.
type ImportResult struct {
	GroupsAdded    int
	ItemsAdded     int
	FlagsSet       int
	DailyTargets   int
	MonthlyTargets int
	Entries        int
}

type ImportService interface {
	Import(ctx context.Context, path string) (*ImportResult, error)
	ImportSeed(ctx context.Context, seed *importer.Seed) (*ImportResult, error)
}
