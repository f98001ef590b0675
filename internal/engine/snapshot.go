// Package engine reconciles production entries against targets. Every
// function here is a pure computation over an explicit Snapshot: no I/O, no
// shared state, and inputs are never mutated, so report builders may run
// concurrently over the same snapshot.
package engine

import (
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

// Snapshot is a consistent, read-only view of the entry log, target store,
// taxonomy and active flags at one point in time.
type Snapshot struct {
	Entries  []domain.ProductionEntry
	Taxonomy domain.Taxonomy
	Flags    domain.ActiveFlags
	Daily    domain.DailyTargets
	Monthly  domain.MonthlyTargets
	TakenAt  time.Time
}

type WindowKind string

const (
	WindowDay   WindowKind = "daily"
	WindowMonth WindowKind = "monthly"
)

// Window selects entries by calendar date or calendar month.
type Window struct {
	Kind  WindowKind
	Start time.Time
}

// DayWindow selects entries dated exactly on date.
func DayWindow(date time.Time) Window {
	return Window{Kind: WindowDay, Start: truncateDay(date)}
}

// MonthWindow selects entries in the same year-month as month.
func MonthWindow(month time.Time) Window {
	return Window{Kind: WindowMonth, Start: time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)}
}

// Key returns the target-store key for the window.
func (w Window) Key() string {
	if w.Kind == WindowMonth {
		return domain.MonthKey(w.Start)
	}
	return domain.DateKey(w.Start)
}

// Contains reports whether date falls inside the window.
func (w Window) Contains(date time.Time) bool {
	if w.Kind == WindowMonth {
		return domain.MonthKey(date) == domain.MonthKey(w.Start)
	}
	return domain.DateKey(date) == domain.DateKey(w.Start)
}

// Targets returns the target map that applies to the window; nil when absent.
func (w Window) Targets(s Snapshot) domain.TargetMap {
	if w.Kind == WindowMonth {
		return s.Monthly[w.Key()]
	}
	return s.Daily[w.Key()]
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// selectEntries returns entries for area inside w, preserving input order.
func selectEntries(entries []domain.ProductionEntry, area domain.Area, w Window) []domain.ProductionEntry {
	var out []domain.ProductionEntry
	for _, e := range entries {
		if e.Area == area && w.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return out
}
