package engine

import (
	"time"

	"github.com/alexanderramin/prodline/internal/domain"
)

// FlowQuery selects one day of main-line output, optionally for one model.
type FlowQuery struct {
	Date  time.Time
	Model string
	// Stages overrides domain.MainLine when non-empty.
	Stages []domain.Area
}

// StageBalance is one main-line stage's output against plan.
type StageBalance struct {
	Area    domain.Area
	Actual  int
	Balance int
	// WIP is the upstream stage's output minus this stage's output. It is
	// nil for the first stage.
	WIP *int
	// WIPAnomaly is set when WIP is negative: downstream consumed more than
	// upstream reported.
	WIPAnomaly bool
}

// FlowReport is the stage-to-stage balance of the main line for one day.
type FlowReport struct {
	Date        time.Time
	Model       string
	TotalPlan   int
	Stages      []StageBalance
	AreaActuals map[domain.Area]int
}

// ProcessFlow computes per-stage actuals, balance to plan and WIP between
// consecutive stages.
func ProcessFlow(s Snapshot, q FlowQuery) FlowReport {
	date := truncateDay(q.Date)
	stages := q.Stages
	if len(stages) == 0 {
		stages = domain.MainLine
	}

	plan := s.Daily.For(date)
	models := s.Taxonomy.AssemblyModels()
	if q.Model != "" {
		models = []string{q.Model}
	}
	totalPlan := 0
	for _, m := range models {
		totalPlan += plan.Get(m)
	}

	actuals := make(map[domain.Area]int, len(domain.AllAreas))
	for _, a := range domain.AllAreas {
		if domain.ExcludedFromTargets(a) {
			continue
		}
		actuals[a] = 0
	}
	day := DayWindow(date)
	for _, e := range s.Entries {
		if !day.Contains(e.Date) {
			continue
		}
		if _, tracked := actuals[e.Area]; !tracked {
			continue
		}
		for _, it := range e.Items {
			if q.Model == "" || it.Model == q.Model {
				actuals[e.Area] += it.Quantity
			}
		}
	}

	report := FlowReport{
		Date:        date,
		Model:       q.Model,
		TotalPlan:   totalPlan,
		Stages:      make([]StageBalance, 0, len(stages)),
		AreaActuals: actuals,
	}
	for i, area := range stages {
		st := StageBalance{
			Area:    area,
			Actual:  actuals[area],
			Balance: totalPlan - actuals[area],
		}
		if i > 0 {
			wip := actuals[stages[i-1]] - actuals[area]
			st.WIP = &wip
			st.WIPAnomaly = wip < 0
		}
		report.Stages = append(report.Stages, st)
	}
	return report
}

// HasAnomaly reports whether any stage carries negative WIP.
func (r FlowReport) HasAnomaly() bool {
	for _, st := range r.Stages {
		if st.WIPAnomaly {
			return true
		}
	}
	return false
}
