// Package export writes engine reports as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/engine"
)

// Production writes one row per report row. Machine-nested reports use the
// Machine, Part, Model, Actual columns.
func Production(w io.Writer, r *engine.ProductionReport) error {
	if domain.ShapeForArea(r.Area) == domain.ShapeMachine {
		records := [][]string{{"Machine", "Part", "Model", "Actual"}}
		for _, row := range r.MachineRows {
			records = append(records, []string{row.Machine, row.Part, row.Model, itoa(row.Actual)})
		}
		return writeAll(w, records)
	}

	records := [][]string{{"Model", "Plan", "Actual", "Percent", "Unlisted"}}
	for _, row := range r.Rows {
		records = append(records, []string{
			row.Model, itoa(row.Plan), itoa(row.Actual), itoa(row.Percent), strconv.FormatBool(row.Unlisted),
		})
	}
	return writeAll(w, records)
}

// Flow writes one row per stage. WIP_Stock is blank for the first stage.
func Flow(w io.Writer, r *engine.FlowReport) error {
	records := [][]string{{"Area", "Plan", "Actual", "Balance", "WIP_Stock"}}
	for _, st := range r.Stages {
		wip := ""
		if st.WIP != nil {
			wip = itoa(*st.WIP)
		}
		records = append(records, []string{string(st.Area), itoa(r.TotalPlan), itoa(st.Actual), itoa(st.Balance), wip})
	}
	return writeAll(w, records)
}

func MonthlyPlan(w io.Writer, r *engine.MonthlyRollupReport) error {
	records := [][]string{{"Model", "Quantity"}}
	for _, it := range r.Items {
		records = append(records, []string{it.Model, itoa(it.Quantity)})
	}
	return writeAll(w, records)
}

// RangePlan writes the per-model totals followed by a blank line and the
// per-day totals.
func RangePlan(w io.Writer, r *engine.RangeRollupReport) error {
	records := [][]string{{"Model", "Quantity"}}
	for _, it := range r.Items {
		records = append(records, []string{it.Model, itoa(it.Quantity)})
	}
	if err := writeAll(w, records); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	days := [][]string{{"Date", "Total"}}
	for _, d := range r.Daily {
		days = append(days, []string{domain.DateKey(d.Date), itoa(d.Total)})
	}
	return writeAll(w, days)
}

// ToFile creates path and runs write against it.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeAll(w io.Writer, records [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("writing csv: %w", err)
	}
	return nil
}

func itoa(n int) string { return strconv.Itoa(n) }
