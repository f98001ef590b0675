package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/engine"
	"github.com/alexanderramin/prodline/internal/export"
	"github.com/spf13/cobra"
)

func newReportCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Plan-vs-actual, process flow and target reports",
	}

	cmd.AddCommand(
		newReportProductionCmd(app),
		newReportFlowCmd(app),
		newReportPlanCmd(app),
		newReportWatchCmd(app),
	)

	return cmd
}

// report renders one report as text and, when requested, as CSV.
type report struct {
	text string
	csv  func(io.Writer) error
}

// emit prints r and writes its CSV to csvPath when set.
func emit(cmd *cobra.Command, r *report, csvPath string) error {
	fmt.Fprintln(cmd.OutOrStdout(), r.text)
	if csvPath == "" {
		return nil
	}
	if err := export.ToFile(csvPath, r.csv); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s\n", formatter.Dim("CSV written to "+csvPath))
	return nil
}

type productionOpts struct {
	area        areaValue
	date, month string
}

func (o productionOpts) build(ctx context.Context, app *App) (*report, error) {
	area, err := resolveArea(app, o.area)
	if err != nil {
		return nil, err
	}
	var window engine.Window
	if o.month != "" {
		m, err := resolveMonth(app, o.month)
		if err != nil {
			return nil, err
		}
		window = engine.MonthWindow(m)
	} else {
		d, err := resolveDate(app, o.date)
		if err != nil {
			return nil, err
		}
		window = engine.DayWindow(d)
	}

	r, err := app.Reports.Production(ctx, engine.ProductionQuery{Area: area, Window: window})
	if err != nil {
		return nil, err
	}
	return &report{
		text: formatter.FormatProduction(r),
		csv:  func(w io.Writer) error { return export.Production(w, r) },
	}, nil
}

func (o *productionOpts) bind(cmd *cobra.Command) {
	cmd.Flags().Var(&o.area, "area", "Production area (default from config)")
	cmd.Flags().StringVar(&o.date, "date", "", "Report date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&o.month, "month", "", "Report month (YYYY-MM) instead of one date")
	cmd.MarkFlagsMutuallyExclusive("date", "month")
}

func newReportProductionCmd(app *App) *cobra.Command {
	var opts productionOpts
	var csvPath string

	cmd := &cobra.Command{
		Use:     "production",
		Aliases: []string{"prod"},
		Short:   "Plan vs actual for one area over a day or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.build(cmd.Context(), app)
			if err != nil {
				return err
			}
			return emit(cmd, r, csvPath)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the report as CSV to this file")
	return cmd
}

type flowOpts struct {
	date, model string
}

func (o flowOpts) build(ctx context.Context, app *App) (*report, error) {
	d, err := resolveDate(app, o.date)
	if err != nil {
		return nil, err
	}
	r, err := app.Reports.Flow(ctx, engine.FlowQuery{Date: d, Model: o.model})
	if err != nil {
		return nil, err
	}
	return &report{
		text: formatter.FormatFlow(r),
		csv:  func(w io.Writer) error { return export.Flow(w, r) },
	}, nil
}

func (o *flowOpts) bind(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.date, "date", "", "Report date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&o.model, "model", "", "Only this model")
}

func newReportFlowCmd(app *App) *cobra.Command {
	var opts flowOpts
	var csvPath string

	cmd := &cobra.Command{
		Use:   "flow",
		Short: "Stage-to-stage balance and WIP of the main line for one day",
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := opts.build(cmd.Context(), app)
			if err != nil {
				return err
			}
			return emit(cmd, r, csvPath)
		},
	}

	opts.bind(cmd)
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the report as CSV to this file")
	return cmd
}

// maxPlanRangeDays bounds `report plan --from/--to` to about a year.
const maxPlanRangeDays = 366

func newReportPlanCmd(app *App) *cobra.Command {
	var monthFlag, fromFlag, toFlag, csvPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Monthly budget or daily targets summed over a date range",
		Example: `  prodline report plan --month 2024-03
  prodline report plan --from 2024-03-01 --to 2024-03-07 --csv week.csv`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			if fromFlag == "" && toFlag == "" {
				month, err := resolveMonth(app, monthFlag)
				if err != nil {
					return err
				}
				r, err := app.Reports.MonthlyPlan(ctx, month)
				if err != nil {
					return err
				}
				return emit(cmd, &report{
					text: formatter.FormatMonthlyPlan(r),
					csv:  func(w io.Writer) error { return export.MonthlyPlan(w, r) },
				}, csvPath)
			}

			if monthFlag != "" {
				return fmt.Errorf("--month cannot be combined with --from/--to")
			}
			start, err := resolveDate(app, fromFlag)
			if err != nil {
				return err
			}
			end, err := resolveDate(app, toFlag)
			if err != nil {
				return err
			}
			if end.After(start.AddDate(0, 0, maxPlanRangeDays-1)) {
				return fmt.Errorf("date range %s to %s is too long: at most %d days allowed",
					start.Format("2006-01-02"), end.Format("2006-01-02"), maxPlanRangeDays)
			}
			r, err := app.Reports.RangePlan(ctx, start, end)
			if err != nil {
				return err
			}
			return emit(cmd, &report{
				text: formatter.FormatRangePlan(r),
				csv:  func(w io.Writer) error { return export.RangePlan(w, r) },
			}, csvPath)
		},
	}

	cmd.Flags().StringVar(&monthFlag, "month", "", "Budget month (YYYY-MM)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "First date of the range (default today)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last date of the range (default today)")
	cmd.Flags().StringVar(&csvPath, "csv", "", "Also write the report as CSV to this file")
	return cmd
}
