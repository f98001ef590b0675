package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/spf13/cobra"
)

func newEntryCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Record and manage production batches",
	}

	cmd.AddCommand(
		newEntryAddCmd(app),
		newEntryEditCmd(app),
		newEntryListCmd(app),
		newEntryShowCmd(app),
		newEntryRemoveCmd(app),
	)

	return cmd
}

func newEntryAddCmd(app *App) *cobra.Command {
	var area areaValue
	var dateFlag, supervisor string
	var itemSpecs []string
	var interactive bool

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Submit a production batch",
		Example: `  prodline entry add --area "CF final" --supervisor Ravi --item "40:Hard Top/300L"
  prodline entry add --area CRF --supervisor Ravi --item "12:Komatsu Press/Side Panel/300L"
  prodline entry add -i`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var e *domain.ProductionEntry
			if interactive {
				if !app.interactive() {
					return fmt.Errorf("--interactive needs a terminal on stdin")
				}
				draft, err := runEntryForm(app, area.area, supervisor)
				if err != nil {
					return err
				}
				e = draft
			} else {
				if area.area == "" {
					return fmt.Errorf("--area is required")
				}
				date, err := resolveDate(app, dateFlag)
				if err != nil {
					return err
				}
				items, err := parseItemSpecs(area.area, itemSpecs)
				if err != nil {
					return err
				}
				e = &domain.ProductionEntry{Area: area.area, Date: date, Supervisor: supervisor, Items: items}
			}

			if err := app.Entries.Submit(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Recorded %d units for %s on %s (%s)\n",
				e.TotalQuantity(), e.Area, domain.DateKey(e.Date), e.ID)
			return nil
		},
	}

	cmd.Flags().Var(&area, "area", "Production area")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Production date (YYYY-MM-DD, today, yesterday)")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "Supervisor submitting the batch")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Batch item as QTY:PATH (repeatable)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill the batch in a form")

	return cmd
}

func newEntryEditCmd(app *App) *cobra.Command {
	var dateFlag, supervisor string
	var itemSpecs []string

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Resubmit an entry with new date, supervisor or items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, err := app.Entries.GetByID(ctx, args[0])
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("date") {
				if e.Date, err = resolveDate(app, dateFlag); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("supervisor") {
				e.Supervisor = supervisor
			}
			if cmd.Flags().Changed("item") {
				if e.Items, err = parseItemSpecs(e.Area, itemSpecs); err != nil {
					return err
				}
			}

			if err := app.Entries.Edit(ctx, e); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dateFlag, "date", "", "New production date")
	cmd.Flags().StringVar(&supervisor, "supervisor", "", "New supervisor")
	cmd.Flags().StringArrayVar(&itemSpecs, "item", nil, "Replacement batch item as QTY:PATH (repeatable)")

	return cmd
}

func newEntryListCmd(app *App) *cobra.Command {
	var area areaValue
	var dateFlag, fromFlag, toFlag, where string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List submitted entries",
		Example: `  prodline entry list --date today --area "CF final"
  prodline entry list --from 2024-03-01 --to 2024-03-31 --where 'quantity > 100 && "300L" in models'`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			f := repository.EntryFilter{Area: area.area}
			var err error
			switch {
			case dateFlag != "":
				if f.From, err = resolveDate(app, dateFlag); err != nil {
					return err
				}
				f.To = f.From
			default:
				if fromFlag != "" {
					if f.From, err = resolveDate(app, fromFlag); err != nil {
						return err
					}
				}
				if toFlag != "" {
					if f.To, err = resolveDate(app, toFlag); err != nil {
						return err
					}
				}
			}

			var filter *entryFilter
			if where != "" {
				if filter, err = compileEntryFilter(where); err != nil {
					return err
				}
			}

			entries, err := app.Entries.List(ctx, f)
			if err != nil {
				return err
			}
			if filter != nil {
				if entries, err = filter.apply(entries); err != nil {
					return err
				}
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntries(entries))
			return nil
		},
	}

	cmd.Flags().Var(&area, "area", "Only this area")
	cmd.Flags().StringVar(&dateFlag, "date", "", "Only this date (overrides --from/--to)")
	cmd.Flags().StringVar(&fromFlag, "from", "", "First date, inclusive")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last date, inclusive")
	cmd.Flags().StringVar(&where, "where", "", "Filter expression over id, date, area, supervisor, quantity, items, models")

	return cmd
}

func newEntryShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show one entry with its items",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := app.Entries.GetByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatEntry(e))
			return nil
		},
	}
}

func newEntryRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Delete an entry",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := app.Entries.Delete(cmd.Context(), args[0])
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("no entry with id %s", args[0])
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		},
	}
}
