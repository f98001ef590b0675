package cli

import (
	"fmt"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/spf13/cobra"
)

func newTaxonomyCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taxonomy",
		Aliases: []string{"tax"},
		Short:   "Manage branches, categories, machines and items",
		Long: `Manage the product catalog. Branches are cf_line (categories of models),
wd_line (a flat model list) and crf (machines and the parts they form).`,
	}

	cmd.AddCommand(
		newTaxonomyListCmd(app),
		newTaxonomyAddCategoryCmd(app),
		newTaxonomyRemoveCategoryCmd(app),
		newTaxonomyAddItemCmd(app),
		newTaxonomyRemoveItemCmd(app),
		newTaxonomyToggleCmd(app),
	)

	return cmd
}

func newTaxonomyListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the catalog tree",
		RunE: func(cmd *cobra.Command, args []string) error {
			tax, flags, err := app.Taxonomy.Get(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTaxonomy(tax, flags))
			return nil
		},
	}
}

func newTaxonomyAddCategoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "add-category BRANCH NAME",
		Short: "Add a category (cf_line) or machine (crf)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := domain.ParseBranchKey(args[0])
			if err != nil {
				return err
			}
			if err := app.Taxonomy.AddCategory(cmd.Context(), branch, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %q to %s\n", args[1], branch)
			return nil
		},
	}
}

func newTaxonomyRemoveCategoryCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove-category BRANCH NAME",
		Short: "Remove a category or machine with all its items",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := domain.ParseBranchKey(args[0])
			if err != nil {
				return err
			}
			if err := app.Taxonomy.RemoveCategory(cmd.Context(), branch, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %q from %s\n", args[1], branch)
			return nil
		},
	}
}

func newTaxonomyAddItemCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "add-item BRANCH NAME",
		Short: "Add a model or part; new items start active",
		Example: `  prodline taxonomy add-item cf_line 600L --group "Hard Top"
  prodline taxonomy add-item wd_line "Hot and Cold"`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := domain.ParseBranchKey(args[0])
			if err != nil {
				return err
			}
			if err := app.Taxonomy.AddItem(cmd.Context(), branch, group, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added item %q to %s\n", args[1], branch)
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Category or machine (not used for wd_line)")
	return cmd
}

func newTaxonomyRemoveItemCmd(app *App) *cobra.Command {
	var group string

	cmd := &cobra.Command{
		Use:   "remove-item BRANCH NAME",
		Short: "Remove a model or part",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			branch, err := domain.ParseBranchKey(args[0])
			if err != nil {
				return err
			}
			if err := app.Taxonomy.RemoveItem(cmd.Context(), branch, group, args[1]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed item %q from %s\n", args[1], branch)
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "Category or machine (not used for wd_line)")
	return cmd
}

func newTaxonomyToggleCmd(app *App) *cobra.Command {
	var on, off bool

	cmd := &cobra.Command{
		Use:   "toggle NAME",
		Short: "Flip whether a model is offered and planned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			name := args[0]

			var active bool
			switch {
			case on:
				active = true
			case off:
				active = false
			default:
				_, flags, err := app.Taxonomy.Get(ctx)
				if err != nil {
					return err
				}
				active = !flags.IsActive(name)
			}

			if err := app.Taxonomy.SetActive(ctx, name, active); err != nil {
				return err
			}
			state := "inactive"
			if active {
				state = "active"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", name, state)
			return nil
		},
	}

	cmd.Flags().BoolVar(&on, "on", false, "Mark active")
	cmd.Flags().BoolVar(&off, "off", false, "Mark inactive")
	cmd.MarkFlagsMutuallyExclusive("on", "off")
	return cmd
}
