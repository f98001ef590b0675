package testutil

import (
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/google/uuid"
)

// Day returns midnight UTC of the given calendar date.
func Day(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Entry options
type EntryOption func(*domain.ProductionEntry)

func WithEntryID(id string) EntryOption {
	return func(e *domain.ProductionEntry) {
		e.ID = id
	}
}

func WithSupervisor(name string) EntryOption {
	return func(e *domain.ProductionEntry) {
		e.Supervisor = name
	}
}

func WithItems(items ...domain.BatchItem) EntryOption {
	return func(e *domain.ProductionEntry) {
		e.Items = items
	}
}

func WithSubmittedAt(t time.Time) EntryOption {
	return func(e *domain.ProductionEntry) {
		e.SubmittedAt = t
		e.UpdatedAt = t
	}
}

// NewTestEntry builds a valid entry for area on date. Without WithItems the
// entry carries one item shaped for the area.
func NewTestEntry(area domain.Area, date time.Time, opts ...EntryOption) *domain.ProductionEntry {
	now := time.Now().UTC().Truncate(time.Second)
	e := &domain.ProductionEntry{
		ID:          uuid.New().String(),
		Date:        date,
		Area:        area,
		Supervisor:  "Shift A",
		SubmittedAt: now,
		UpdatedAt:   now,
		Items:       []domain.BatchItem{DefaultItem(area, 10)},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// DefaultItem returns an item with the fields the area's shape requires.
func DefaultItem(area domain.Area, qty int) domain.BatchItem {
	switch domain.ShapeForArea(area) {
	case domain.ShapeMachine:
		return CRFItem("Komatsu Press", "Side Panel", "300L", qty)
	case domain.ShapeFlat:
		return WDItem("Floor Standing", qty)
	default:
		return CFItem("Hard Top", "300L", qty)
	}
}

// CFItem is a category-tree item.
func CFItem(category, model string, qty int) domain.BatchItem {
	return domain.BatchItem{Quantity: qty, Model: model, Category: category}
}

// CRFItem is a machine-nested item.
func CRFItem(machine, part, model string, qty int) domain.BatchItem {
	return domain.BatchItem{Quantity: qty, Model: model, Machine: machine, Part: part}
}

// WDItem is a flat-list item.
func WDItem(model string, qty int) domain.BatchItem {
	return domain.BatchItem{Quantity: qty, Model: model}
}
