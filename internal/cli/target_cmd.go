package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/spf13/cobra"
)

func newTargetCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "target",
		Short: "Set and show daily or monthly production targets",
	}

	cmd.AddCommand(
		newTargetSetCmd(app),
		newTargetShowCmd(app),
	)

	return cmd
}

// targetKey resolves --date/--month into the period and its label.
func targetKey(app *App, dateFlag, monthFlag string) (period time.Time, monthly bool, label string, err error) {
	if monthFlag != "" {
		period, err = resolveMonth(app, monthFlag)
		return period, true, "Monthly targets · " + formatter.HumanMonth(period), err
	}
	period, err = resolveDate(app, dateFlag)
	return period, false, "Daily targets · " + formatter.HumanDate(period), err
}

func newTargetSetCmd(app *App) *cobra.Command {
	var dateFlag, monthFlag string
	var specs []string

	cmd := &cobra.Command{
		Use:   "set",
		Short: "Replace the target map for one date or month",
		Long: `Replace the whole target map for one date or month. Models not listed
lose their target. An explicit zero is stored as a zero target.`,
		Example: `  prodline target set --date 2024-03-01 --item 300L=50 --item 400L=10
  prodline target set --month 2024-03 --item 300L=1200`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			period, monthly, _, err := targetKey(app, dateFlag, monthFlag)
			if err != nil {
				return err
			}
			m, err := parseTargetSpecs(specs)
			if err != nil {
				return err
			}

			if monthly {
				err = app.Targets.SetMonthly(ctx, period, m)
			} else {
				err = app.Targets.SetDaily(ctx, period, m)
			}
			if err != nil {
				return err
			}
			key := domain.DateKey(period)
			if monthly {
				key = domain.MonthKey(period)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %d targets for %s (total %d)\n", len(m), key, m.Total())
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&monthFlag, "month", "", "Target month (YYYY-MM)")
	cmd.Flags().StringArrayVar(&specs, "item", nil, "Target as MODEL=QTY (repeatable)")
	cmd.MarkFlagsMutuallyExclusive("date", "month")
	return cmd
}

func newTargetShowCmd(app *App) *cobra.Command {
	var dateFlag, monthFlag string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored target map for one date or month",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			period, monthly, label, err := targetKey(app, dateFlag, monthFlag)
			if err != nil {
				return err
			}

			var m domain.TargetMap
			if monthly {
				m, err = app.Targets.GetMonthly(ctx, period)
			} else {
				m, err = app.Targets.GetDaily(ctx, period)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatTargets(label, m))
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "Target date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&monthFlag, "month", "", "Target month (YYYY-MM)")
	cmd.MarkFlagsMutuallyExclusive("date", "month")
	return cmd
}
