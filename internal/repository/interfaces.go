package repository

import (
	"context"
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

// EntryFilter narrows an entry listing. Zero values match everything; From
// and To are inclusive calendar dates.
type EntryFilter struct {
	Area domain.Area
	From time.Time
	To   time.Time
}

type EntryRepo interface {
	Create(ctx context.Context, e *domain.ProductionEntry) error
	GetByID(ctx context.Context, id string) (*domain.ProductionEntry, error)
	// Replace overwrites date, supervisor and items under the same id.
	Replace(ctx context.Context, e *domain.ProductionEntry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f EntryFilter) ([]*domain.ProductionEntry, error)
}

type TaxonomyRepo interface {
	Load(ctx context.Context) (domain.Taxonomy, error)
	AddGroup(ctx context.Context, branch domain.BranchKey, name string) error
	RemoveGroup(ctx context.Context, branch domain.BranchKey, name string) error
	AddItem(ctx context.Context, branch domain.BranchKey, group, name string) error
	RemoveItem(ctx context.Context, branch domain.BranchKey, group, name string) error
}

type ActiveFlagRepo interface {
	Load(ctx context.Context) (domain.ActiveFlags, error)
	Set(ctx context.Context, name string, active bool) error
}

type TargetRepo interface {
	LoadDaily(ctx context.Context) (domain.DailyTargets, error)
	LoadMonthly(ctx context.Context) (domain.MonthlyTargets, error)
	GetDaily(ctx context.Context, date string) (domain.TargetMap, error)
	GetMonthly(ctx context.Context, month string) (domain.TargetMap, error)
	// ReplaceDaily and ReplaceMonthly overwrite the whole map for one key.
	ReplaceDaily(ctx context.Context, date string, m domain.TargetMap) error
	ReplaceMonthly(ctx context.Context, month string, m domain.TargetMap) error
}
