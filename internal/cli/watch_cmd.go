package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/watch"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const clearScreen = "\033[H\033[2J"

func newReportWatchCmd(app *App) *cobra.Command {
	var prod productionOpts
	var flow flowOpts
	var view string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render a report whenever the database changes",
		Long: `Render the production or flow report, then render it again each time
another prodline process writes to the database. Stop with Ctrl+C.`,
		Example: `  prodline report watch --area "CF final"
  prodline report watch --view flow --model 300L`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var build func(context.Context, *App) (*report, error)
			switch view {
			case "production":
				build = prod.build
			case "flow":
				build = flow.build
			default:
				return fmt.Errorf("unknown --view %q (production or flow)", view)
			}
			if app.Config.DBPath == "" || app.Config.DBPath == ":memory:" {
				return fmt.Errorf("report watch needs a database file")
			}

			render := func(ctx context.Context) error {
				r, err := build(ctx, app)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if app.interactive() {
					fmt.Fprint(out, clearScreen)
				}
				fmt.Fprintln(out, r.text)
				fmt.Fprintln(out, formatter.Dim("Updated "+app.now().Format(time.TimeOnly)+" · watching for changes"))
				return nil
			}

			ctx := cmd.Context()
			if err := render(ctx); err != nil {
				return err
			}
			debounce := time.Duration(app.Config.Reports.WatchDebounceMs) * time.Millisecond
			w := watch.NewDBWatcher(app.Config.DBPath, debounce, app.logger())
			app.logger().Debug("report watch started", zap.String("view", view), zap.String("db", app.Config.DBPath))
			return w.Run(ctx, render)
		},
	}

	cmd.Flags().StringVar(&view, "view", "production", "Report to watch: production or flow")
	cmd.Flags().Var(&prod.area, "area", "Production area (default from config)")
	cmd.Flags().StringVar(&prod.month, "month", "", "Watch a month instead of a day")
	cmd.Flags().StringVar(&flow.model, "model", "", "Only this model (flow view)")
	cmd.Flags().StringVar(&prod.date, "date", "", "Report date (YYYY-MM-DD, today, yesterday)")
	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		flow.date = prod.date
	}
	return cmd
}
