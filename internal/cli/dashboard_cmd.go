package cli

import (
	"fmt"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/service"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newDashboardCmd(app *App) *cobra.Command {
	var areaFlag areaValue
	var dateFlag, model string
	var plain bool

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Live overview of one area, the main-line flow and the month plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			area, err := resolveArea(app, areaFlag)
			if err != nil {
				return err
			}
			date, err := resolveDate(app, dateFlag)
			if err != nil {
				return err
			}
			req := service.DashboardRequest{Date: date, Area: area, Model: model}

			if plain || !app.interactive() {
				d, err := app.Reports.Dashboard(ctx, req)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(d))
				return nil
			}

			p := tea.NewProgram(newDashboardModel(ctx, app, req), tea.WithAltScreen(), tea.WithContext(ctx))
			_, err = p.Run()
			return err
		},
	}

	cmd.Flags().Var(&areaFlag, "area", "Production area (default from config)")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Day to open on (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&model, "model", "", "Limit the flow view to one model")
	cmd.Flags().BoolVar(&plain, "plain", false, "Print once instead of opening the TUI")
	return cmd
}
