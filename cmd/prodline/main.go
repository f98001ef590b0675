package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/prodline/internal/cli"
	"github.com/alexanderramin/prodline/internal/config"
	"github.com/alexanderramin/prodline/internal/db"
	"github.com/alexanderramin/prodline/internal/logging"
	"github.com/alexanderramin/prodline/internal/repository"
	"github.com/alexanderramin/prodline/internal/service"
	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()
	logger.Debug("database ready", zap.String("path", cfg.DBPath))

	// Wire repositories
	entryRepo := repository.NewSQLiteEntryRepo(database)
	taxonomyRepo := repository.NewSQLiteTaxonomyRepo(database)
	flagRepo := repository.NewSQLiteActiveFlagRepo(database)
	targetRepo := repository.NewSQLiteTargetRepo(database)

	uow := db.NewSQLiteUnitOfWork(database)

	var observer service.UseCaseObserver = service.NoopUseCaseObserver{}
	if cfg.Log.UseCases {
		observer = service.NewZapUseCaseObserver(logger)
	}

	app := &cli.App{
		Entries:  service.NewEntryService(entryRepo, uow, observer),
		Taxonomy: service.NewTaxonomyService(taxonomyRepo, flagRepo, uow, observer),
		Targets:  service.NewTargetService(targetRepo, uow, observer),
		Reports:  service.NewReportService(service.NewSnapshotLoader(uow), observer),
		Import:   service.NewImportService(uow, observer),
		Config:   cfg,
		Logger:   logger,
	}
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return cli.NewRootCmd(app).ExecuteContext(ctx)
}
