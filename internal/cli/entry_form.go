package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/prodline/internal/cli/formatter"
	"github.com/alexanderramin/prodline/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// prodlineHuhTheme returns a huh theme matching the formatter palette.
func prodlineHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// entryDraft holds the raw form values before they become an entry.
type entryDraft struct {
	Area       string
	Date       string
	Supervisor string
	Items      string
}

func (d entryDraft) toEntry(app *App) (*domain.ProductionEntry, error) {
	area, err := domain.ParseArea(d.Area)
	if err != nil {
		return nil, err
	}
	date, err := resolveDate(app, d.Date)
	if err != nil {
		return nil, err
	}
	items, err := parseItemSpecs(area, itemLines(d.Items))
	if err != nil {
		return nil, err
	}
	return &domain.ProductionEntry{Area: area, Date: date, Supervisor: d.Supervisor, Items: items}, nil
}

func itemLines(s string) []string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

// newEntryForm builds the two-step batch form: header first, then one item
// per line in the QTY:PATH syntax of --item.
func newEntryForm(d *entryDraft) *huh.Form {
	areaOpts := make([]huh.Option[string], 0, len(domain.AllAreas))
	for _, a := range domain.AllAreas {
		areaOpts = append(areaOpts, huh.NewOption(string(a), string(a)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Area").
				Options(areaOpts...).
				Value(&d.Area),
			huh.NewInput().
				Title("Date").
				Placeholder("today").
				Value(&d.Date).
				Validate(validateOptionalDate),
			huh.NewInput().
				Title("Supervisor").
				Value(&d.Supervisor).
				Validate(validateRequired("supervisor")),
		),
		huh.NewGroup(
			huh.NewText().
				Title("Items").
				Description("One per line: QTY:MODEL, QTY:CATEGORY/MODEL or QTY:MACHINE/PART/MODEL").
				Value(&d.Items).
				Validate(func(s string) error {
					area, err := domain.ParseArea(d.Area)
					if err != nil {
						return err
					}
					lines := itemLines(s)
					if len(lines) == 0 {
						return fmt.Errorf("enter at least one item")
					}
					_, err = parseItemSpecs(area, lines)
					return err
				}),
		),
	).WithTheme(prodlineHuhTheme()).WithShowHelp(false)
}

func runEntryForm(app *App, area domain.Area, supervisor string) (*domain.ProductionEntry, error) {
	d := &entryDraft{Area: string(area), Supervisor: supervisor}
	if d.Area == "" {
		d.Area = app.Config.Reports.DefaultArea
	}
	if err := newEntryForm(d).Run(); err != nil {
		return nil, err
	}
	return d.toEntry(app)
}

func validateRequired(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

// validateOptionalDate accepts empty, "today", "yesterday" or YYYY-MM-DD.
func validateOptionalDate(s string) error {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today", "yesterday":
		return nil
	}
	if _, err := domain.ParseDate(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("use YYYY-MM-DD format")
	}
	return nil
}
