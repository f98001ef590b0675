package engine

import (
	"sort"

	"github.com/alexanderramin/prodline/internal/domain"
)

// ProductionQuery selects one area over one time window.
type ProductionQuery struct {
	Area   domain.Area
	Window Window
}

// MachineRow is the summed output of one (machine, part, model) key.
type MachineRow struct {
	Machine string
	Part    string
	Model   string
	Actual  int
}

// ReconciliationRow pairs plan and actual output for one model.
type ReconciliationRow struct {
	Model   string
	Plan    int
	Actual  int
	Percent int
	// Unlisted marks output recorded for a model missing from the area's
	// taxonomy branch.
	Unlisted bool
}

// ProductionReport is the plan-vs-actual view of one area and window.
// MachineRows is populated for the machine-nested area, Rows otherwise.
type ProductionReport struct {
	Area        domain.Area
	Window      Window
	MachineRows []MachineRow
	Rows        []ReconciliationRow
	TotalActual int
}

// ReconcileProduction builds the production report for q over s.
func ReconcileProduction(s Snapshot, q ProductionQuery) ProductionReport {
	matched := selectEntries(s.Entries, q.Area, q.Window)
	report := ProductionReport{Area: q.Area, Window: q.Window}

	if domain.ExcludedFromTargets(q.Area) {
		report.MachineRows = groupByMachine(matched)
		for _, r := range report.MachineRows {
			report.TotalActual += r.Actual
		}
		return report
	}

	actuals := make(map[string]int)
	var order []string
	for _, e := range matched {
		for _, it := range e.Items {
			if _, seen := actuals[it.Model]; !seen {
				order = append(order, it.Model)
			}
			actuals[it.Model] += it.Quantity
			report.TotalActual += it.Quantity
		}
	}

	plan := q.Window.Targets(s)
	multiplier := domain.PlanMultiplier(q.Area)
	listed := make(map[string]bool)

	for _, model := range s.Taxonomy.ModelsFor(q.Area) {
		listed[model] = true
		base := plan.Get(model)
		actual := actuals[model]
		if !s.Flags.IsActive(model) && base == 0 && actual == 0 {
			continue
		}
		report.Rows = append(report.Rows, newRow(model, base*multiplier, actual, false))
	}

	for _, model := range order {
		if listed[model] {
			continue
		}
		report.Rows = append(report.Rows, newRow(model, plan.Get(model)*multiplier, actuals[model], true))
	}

	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Actual > report.Rows[j].Actual
	})
	return report
}

func newRow(model string, plan, actual int, unlisted bool) ReconciliationRow {
	return ReconciliationRow{
		Model:    model,
		Plan:     plan,
		Actual:   actual,
		Percent:  AchievementPercent(actual, plan),
		Unlisted: unlisted,
	}
}

type machineKey struct {
	machine, part, model string
}

func groupByMachine(entries []domain.ProductionEntry) []MachineRow {
	index := make(map[machineKey]int)
	var rows []MachineRow
	for _, e := range entries {
		for _, it := range e.Items {
			k := machineKey{it.Machine, it.Part, it.Model}
			i, ok := index[k]
			if !ok {
				i = len(rows)
				index[k] = i
				rows = append(rows, MachineRow{Machine: it.Machine, Part: it.Part, Model: it.Model})
			}
			rows[i].Actual += it.Quantity
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Actual > rows[j].Actual
	})
	return rows
}
