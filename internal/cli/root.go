package cli

import (
	"time"

	"github.com/alexanderramin/prodline/internal/config"
	"github.com/alexanderramin/prodline/internal/service"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Entries  service.EntryService
	Taxonomy service.TaxonomyService
	Targets  service.TargetService
	Reports  service.ReportService
	Import   service.ImportService

	Config config.Config
	Logger *zap.Logger

	// IsInteractive reports whether stdin is a terminal. Nil means no.
	IsInteractive func() bool
	// Now overrides the clock; tests pin it.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// today is the current calendar date at midnight UTC.
func (a *App) today() time.Time {
	y, m, d := a.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

// NewRootCmd creates the top-level "prodline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "prodline",
		Short:         "Production line entry log and plan-vs-actual reports",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newEntryCmd(app),
		newTaxonomyCmd(app),
		newTargetCmd(app),
		newReportCmd(app),
		newDashboardCmd(app),
		newImportCmd(app),
	)

	return root
}
