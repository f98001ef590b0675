package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/service"
)

const percentBarWidth = 10

func itoa(n int) string { return strconv.Itoa(n) }

func windowLabel(w engine.Window) string {
	if w.Kind == engine.WindowMonth {
		return HumanMonth(w.Start)
	}
	return HumanDate(w.Start)
}

// FormatProduction renders a production report. The machine-nested area is
// shown as machine rows without plan columns.
func FormatProduction(r *engine.ProductionReport) string {
	title := fmt.Sprintf("%s · %s", r.Area, windowLabel(r.Window))
	return RenderBox(title, productionBody(r))
}

func productionBody(r *engine.ProductionReport) string {
	if domain.ShapeForArea(r.Area) == domain.ShapeMachine {
		if len(r.MachineRows) == 0 {
			return Dim("No output recorded.")
		}
		rows := make([][]string, 0, len(r.MachineRows))
		for _, m := range r.MachineRows {
			rows = append(rows, []string{m.Machine, m.Part, m.Model, itoa(m.Actual)})
		}
		return RenderTable([]string{"MACHINE", "PART", "MODEL", "ACTUAL"}, rows,
			AlignRight(3), WithFooter("Total", "", "", itoa(r.TotalActual)))
	}

	if len(r.Rows) == 0 {
		return Dim("No active models for this area.")
	}
	rows := make([][]string, 0, len(r.Rows))
	totalPlan := 0
	for _, row := range r.Rows {
		model := row.Model
		if row.Unlisted {
			model += " " + StyleYellow.Render("(unlisted)")
		}
		totalPlan += row.Plan
		rows = append(rows, []string{
			model,
			itoa(row.Plan),
			itoa(row.Actual),
			RenderProgress(row.Percent, percentBarWidth),
		})
	}
	return RenderTable([]string{"MODEL", "PLAN", "ACTUAL", "ACHIEVED"}, rows,
		AlignRight(1, 2),
		WithFooter("Total", itoa(totalPlan), itoa(r.TotalActual), Percent(engine.AchievementPercent(r.TotalActual, totalPlan))))
}

// FormatFlow renders the stage-to-stage balance of the main line.
func FormatFlow(r *engine.FlowReport) string {
	title := "Process flow · " + HumanDate(r.Date)
	if r.Model != "" {
		title += " · " + r.Model
	}
	return RenderBox(title, flowBody(r))
}

func flowBody(r *engine.FlowReport) string {
	rows := make([][]string, 0, len(r.Stages))
	for _, st := range r.Stages {
		wip := Dim("--")
		if st.WIP != nil {
			wip = itoa(*st.WIP)
			if st.WIPAnomaly {
				wip = StyleRed.Render(wip + " !")
			}
		}
		rows = append(rows, []string{string(st.Area), itoa(r.TotalPlan), itoa(st.Actual), Signed(st.Balance), wip})
	}

	var b strings.Builder
	b.WriteString(RenderTable([]string{"STAGE", "PLAN", "ACTUAL", "BALANCE", "WIP"}, rows, AlignRight(1, 2, 3, 4)))
	if r.HasAnomaly() {
		b.WriteString("\n")
		b.WriteString(StyleRed.Render("  WARNING: a stage consumed more than its upstream stage produced"))
		b.WriteString("\n")
	}
	return b.String()
}

// FormatMonthlyPlan renders one month's budget.
func FormatMonthlyPlan(r *engine.MonthlyRollupReport) string {
	return RenderBox("Plan · "+HumanMonth(r.Month), itemsTable(r.Items, r.Total))
}

// FormatRangePlan renders the model totals and per-day totals of a range.
func FormatRangePlan(r *engine.RangeRollupReport) string {
	var b strings.Builder
	b.WriteString(itemsTable(r.Items, r.Total))
	if len(r.Daily) > 0 {
		b.WriteString("\n")
		rows := make([][]string, 0, len(r.Daily))
		for _, d := range r.Daily {
			rows = append(rows, []string{domain.DateKey(d.Date), itoa(d.Total)})
		}
		b.WriteString(RenderTable([]string{"DATE", "TOTAL"}, rows, AlignRight(1)))
	}
	title := fmt.Sprintf("Plan · %s to %s", domain.DateKey(r.Start), domain.DateKey(r.End))
	return RenderBox(title, b.String())
}

func itemsTable(items []engine.ItemQuantity, total int) string {
	if len(items) == 0 {
		return Dim("No targets set.")
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		rows = append(rows, []string{it.Model, itoa(it.Quantity)})
	}
	return RenderTable([]string{"MODEL", "QUANTITY"}, rows, AlignRight(1), WithFooter("Total", itoa(total)))
}

// FormatDashboard renders every dashboard view as one stacked document.
func FormatDashboard(d *service.Dashboard) string {
	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%s · today", d.Daily.Area)))
	b.WriteString("\n")
	b.WriteString(productionBody(&d.Daily))
	b.WriteString("\n")
	b.WriteString(Header(fmt.Sprintf("%s · %s", d.Monthly.Area, HumanMonth(d.Monthly.Window.Start))))
	b.WriteString("\n")
	b.WriteString(productionBody(&d.Monthly))
	b.WriteString("\n")
	b.WriteString(Header("Process flow"))
	b.WriteString("\n")
	b.WriteString(flowBody(&d.Flow))
	b.WriteString("\n")
	b.WriteString(Header("Month plan"))
	b.WriteString("\n")
	b.WriteString(itemsTable(d.MonthPlan.Items, d.MonthPlan.Total))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%d entries · snapshot %s", d.EntryCount, Timestamp(d.TakenAt))))
	return b.String()
}
