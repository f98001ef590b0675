package engine

import (
	"sort"
	"time"
)

// ItemQuantity pairs a model with a planned quantity.
type ItemQuantity struct {
	Model    string
	Quantity int
}

// DayTotal is the sum of every item target for one date.
type DayTotal struct {
	Date  time.Time
	Total int
}

// MonthlyRollupReport lists one month's budget.
type MonthlyRollupReport struct {
	Month time.Time
	Items []ItemQuantity
	Total int
}

// RangeRollupReport aggregates daily targets across an inclusive date range.
type RangeRollupReport struct {
	Start time.Time
	End   time.Time
	Items []ItemQuantity
	Daily []DayTotal
	Total int
}

// MonthlyRollup returns every targetable model with a positive budget for
// month, largest first. Models of the machine-nested branch never appear.
func MonthlyRollup(s Snapshot, month time.Time) MonthlyRollupReport {
	w := MonthWindow(month)
	plan := s.Monthly[w.Key()]
	report := MonthlyRollupReport{Month: w.Start}
	for _, model := range s.Taxonomy.TargetableModels() {
		if q := plan.Get(model); q > 0 {
			report.Items = append(report.Items, ItemQuantity{Model: model, Quantity: q})
			report.Total += q
		}
	}
	sort.SliceStable(report.Items, func(i, j int) bool {
		return report.Items[i].Quantity > report.Items[j].Quantity
	})
	return report
}

// RangeRollup sums daily targets for every date from start to end inclusive.
// An inverted range yields an empty report.
func RangeRollup(s Snapshot, start, end time.Time) RangeRollupReport {
	start, end = truncateDay(start), truncateDay(end)
	report := RangeRollupReport{Start: start, End: end}

	totals := make(map[string]int)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		plan := s.Daily.For(d)
		for model, q := range plan {
			totals[model] += q
		}
		day := plan.Total()
		report.Daily = append(report.Daily, DayTotal{Date: d, Total: day})
		report.Total += day
	}

	for model, q := range totals {
		report.Items = append(report.Items, ItemQuantity{Model: model, Quantity: q})
	}
	sort.Slice(report.Items, func(i, j int) bool {
		a, b := report.Items[i], report.Items[j]
		if a.Quantity != b.Quantity {
			return a.Quantity > b.Quantity
		}
		return a.Model < b.Model
	})
	return report
}
